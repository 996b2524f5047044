package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ionuting/BubbleBIM-Comunity/internal/diagram"
	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/ifc"
	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/levels"
	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/mesh"
	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/pipeline"
	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/stream"
	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/units"
	"github.com/ionuting/BubbleBIM-Comunity/pkg/logger"
)

// ============================================================
// Exporter CLI
// ============================================================

const usage = `usage:
  exporter dxf <out.ifc> <metric|imperial> <plan.json> [plan.json ...]
  exporter diagram <diagram.xml> <out.ifc> [out.glb]`

func main() {
	logger.Init(os.Getenv("DEBUG") != "")

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "dxf":
		err = runDXF(os.Args[2:])
	case "diagram":
		err = runDiagram(os.Args[2:])
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		logger.Fatal("export failed", "err", err)
	}
}

// runDXF собирает IFC из потоков сущностей. Файлы обрабатываются
// в порядке возрастания отметки; файл без пригодных примитивов
// пропускается, экспорт падает только если не обработан ни один.
func runDXF(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("dxf: not enough arguments\n%s", usage)
	}
	outPath, unitName := args[0], args[1]
	inputs := append([]string(nil), args[2:]...)

	sys, err := units.Parse(unitName)
	if err != nil {
		return err
	}

	sort.SliceStable(inputs, func(i, j int) bool {
		return levels.FromIdentifier(inputs[i]) < levels.FromIdentifier(inputs[j])
	})

	exp := pipeline.New(projectName(outPath), sys)
	processed := 0
	for _, path := range inputs {
		prims, err := stream.ReadFile(path)
		if err != nil {
			logger.Warn("skipping unreadable file", "file", path, "err", err)
			continue
		}
		if err := exp.ProcessFile(path, prims); err != nil {
			logger.Warn("skipping file", "file", path, "err", err)
			continue
		}
		processed++
	}
	if processed == 0 {
		return fmt.Errorf("no input file produced any elements")
	}

	if err := ifc.WriteFile(outPath, exp.Document(), sys); err != nil {
		return err
	}
	logger.Info("ifc written", "path", outPath, "files", processed,
		"storeys", len(exp.Document().Storeys()), "elements", exp.Document().ElementCount())
	return nil
}

// runDiagram собирает IFC и опционально GLB из графовой диаграммы.
// Рядом с GLB пишется комбинированный OBJ.
func runDiagram(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("diagram: not enough arguments\n%s", usage)
	}
	diagramPath, ifcPath := args[0], args[1]

	d, err := diagram.ParseFile(diagramPath)
	if err != nil {
		return err
	}
	diagram.ResolvePolygons(d)

	exp := pipeline.New(projectName(ifcPath), units.Metric)
	if err := exp.ProcessDiagram(d); err != nil {
		return err
	}
	doc := exp.Document()

	if err := ifc.WriteFile(ifcPath, doc, units.Metric); err != nil {
		return err
	}
	logger.Info("ifc written", "path", ifcPath,
		"storeys", len(doc.Storeys()), "spaces", doc.ElementCount())

	if len(args) > 2 {
		glbPath := args[2]
		scene := mesh.BuildScene(doc)
		if err := mesh.WriteGLB(glbPath, scene); err != nil {
			return err
		}
		objPath := strings.TrimSuffix(glbPath, ".glb") + ".obj"
		if err := mesh.WriteOBJ(objPath, scene); err != nil {
			return err
		}
		logger.Info("meshes written", "glb", glbPath, "obj", objPath, "meshes", len(scene.Meshes))
	}
	return nil
}

func projectName(outPath string) string {
	base := outPath
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	return strings.TrimSuffix(base, ".ifc")
}
