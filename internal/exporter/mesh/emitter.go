package mesh

import (
	"math"

	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/geometry"
	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/models"
)

// ============================================================
// Mesh Emitter
// ============================================================

// Палитра этажей, цвет выбирается циклически по индексу этажа.
var storeyPalette = [][4]uint8{
	{200, 200, 200, 255},
	{180, 220, 180, 255},
	{180, 180, 220, 255},
}

// Mesh — двусторонне триангулированная экструзия одного элемента.
type Mesh struct {
	Name        string
	Positions   [][3]float32
	Colors      [][4]uint8
	Indices     []uint32
	Translation [3]float64
}

// Scene — набор мешей всего документа.
type Scene struct {
	Meshes []*Mesh
}

// BuildScene триангулирует все solid-элементы документа. Каждый
// треугольник дублируется с обратным порядком обхода, чтобы меш
// был видим с обеих сторон без нормалей.
func BuildScene(doc *models.Document) *Scene {
	scene := &Scene{}
	for si, storey := range doc.Storeys() {
		color := storeyPalette[si%len(storeyPalette)]
		for _, elem := range storey.Elements {
			m := triangulate(elem, color)
			if m == nil {
				continue
			}
			m.Translation = [3]float64{
				elem.Placement.X,
				elem.Placement.Y,
				storey.Elevation + elem.Placement.Z,
			}
			scene.Meshes = append(scene.Meshes, m)
		}
	}
	return scene
}

// triangulate строит вершины и индексы экструзии профиля: нижнее
// и верхнее основание веером от нулевой вершины, борта по два
// квада на ребро (лицевой и обратный).
func triangulate(elem *models.Element, color [4]uint8) *Mesh {
	g := elem.Geometry
	if g == nil || g.Kind != models.GeomSolid || g.Depth <= 0 {
		return nil
	}
	profile := dropClosing(g.Profile)
	n := len(profile)
	if n < 3 {
		return nil
	}

	m := &Mesh{Name: elem.Name}
	m.Positions = make([][3]float32, 0, 2*n)
	for _, p := range profile {
		m.Positions = append(m.Positions, [3]float32{float32(p.X), float32(p.Y), 0})
	}
	depth := float32(g.Depth)
	for _, p := range profile {
		m.Positions = append(m.Positions, [3]float32{float32(p.X), float32(p.Y), depth})
	}
	m.Colors = make([][4]uint8, len(m.Positions))
	for i := range m.Colors {
		m.Colors[i] = color
	}

	un := uint32(n)
	for i := uint32(1); i+1 < un; i++ {
		// нижнее основание
		m.Indices = append(m.Indices, 0, i, i+1, 0, i+1, i)
		// верхнее основание
		m.Indices = append(m.Indices, un, un+i+1, un+i, un, un+i, un+i+1)
	}
	for i := uint32(0); i < un; i++ {
		j := (i + 1) % un
		m.Indices = append(m.Indices,
			i, j, un+j,
			i, un+j, un+i,
			j, i, un+j,
			un+j, i, un+i,
		)
	}
	return m
}

func dropClosing(profile []models.Point) []models.Point {
	n := len(profile)
	if n > 1 {
		first, last := profile[0], profile[n-1]
		if math.Hypot(first.X-last.X, first.Y-last.Y) <= geometry.ClosureTolerance {
			return profile[:n-1]
		}
	}
	return profile
}
