package mesh

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// ============================================================
// GLB Export
// ============================================================

// WriteGLB сохраняет сцену в бинарный glTF. Каждый элемент становится
// отдельным узлом со своим мешем и двусторонним материалом.
func WriteGLB(path string, scene *Scene) error {
	doc := gltf.NewDocument()

	for _, m := range scene.Meshes {
		if len(m.Positions) == 0 || len(m.Indices) == 0 {
			continue
		}
		posAcc := modeler.WritePosition(doc, m.Positions)
		colAcc := modeler.WriteColor(doc, m.Colors)
		idxAcc := modeler.WriteIndices(doc, m.Indices)

		base := m.Colors[0]
		doc.Materials = append(doc.Materials, &gltf.Material{
			Name:        m.Name,
			DoubleSided: true,
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor: &[4]float32{
					float32(base[0]) / 255,
					float32(base[1]) / 255,
					float32(base[2]) / 255,
					float32(base[3]) / 255,
				},
			},
		})
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name: m.Name,
			Primitives: []*gltf.Primitive{{
				Attributes: gltf.Attribute{
					gltf.POSITION: posAcc,
					gltf.COLOR_0:  colAcc,
				},
				Indices:  gltf.Index(idxAcc),
				Material: gltf.Index(uint32(len(doc.Materials) - 1)),
			}},
		})
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name: m.Name,
			Mesh: gltf.Index(uint32(len(doc.Meshes) - 1)),
			Translation: [3]float32{
				float32(m.Translation[0]),
				float32(m.Translation[1]),
				float32(m.Translation[2]),
			},
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)-1))
	}

	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("save glb: %w", err)
	}
	return nil
}
