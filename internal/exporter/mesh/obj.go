package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// ============================================================
// OBJ Export
// ============================================================

// WriteOBJ пишет сцену одним комбинированным Wavefront OBJ:
// трансляции узлов вносятся в координаты вершин, индексы
// сдвигаются в сквозную нумерацию (OBJ считает с единицы).
func WriteOBJ(path string, scene *Scene) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create obj file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := writeOBJ(w, scene); err != nil {
		return err
	}
	return w.Flush()
}

func writeOBJ(w io.Writer, scene *Scene) error {
	offset := 1
	for _, m := range scene.Meshes {
		if _, err := fmt.Fprintf(w, "o %s\n", m.Name); err != nil {
			return err
		}
		for _, p := range m.Positions {
			fmt.Fprintf(w, "v %g %g %g\n",
				float64(p[0])+m.Translation[0],
				float64(p[1])+m.Translation[1],
				float64(p[2])+m.Translation[2])
		}
		for i := 0; i+2 < len(m.Indices); i += 3 {
			fmt.Fprintf(w, "f %d %d %d\n",
				int(m.Indices[i])+offset,
				int(m.Indices[i+1])+offset,
				int(m.Indices[i+2])+offset)
		}
		offset += len(m.Positions)
	}
	return nil
}
