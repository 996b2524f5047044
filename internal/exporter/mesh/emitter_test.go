package mesh

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/models"
)

func solidElem(name string, profile []models.Point, depth float64) *models.Element {
	return &models.Element{
		Name: name,
		Type: models.ElemWall,
		Geometry: &models.Geometry{
			Kind:    models.GeomSolid,
			Profile: profile,
			Depth:   depth,
		},
	}
}

func docWith(elems ...*models.Element) *models.Document {
	storey := &models.SpatialNode{Kind: models.NodeStorey, Name: "s0", Elevation: 3.0, Elements: elems}
	building := &models.SpatialNode{Kind: models.NodeBuilding, Children: []*models.SpatialNode{storey}}
	site := &models.SpatialNode{Kind: models.NodeSite, Children: []*models.SpatialNode{building}}
	project := &models.SpatialNode{Kind: models.NodeProject, Name: "p", Children: []*models.SpatialNode{site}}
	return &models.Document{Project: project}
}

func TestTriangulateCounts(t *testing.T) {
	// квадрат: n=4 вершины профиля, замыкающая точка отбрасывается
	profile := []models.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 0}}
	scene := BuildScene(docWith(solidElem("wall", profile, 2.0)))
	if len(scene.Meshes) != 1 {
		t.Fatalf("meshes = %d", len(scene.Meshes))
	}
	m := scene.Meshes[0]
	n := 4
	if len(m.Positions) != 2*n {
		t.Errorf("positions = %d, want %d", len(m.Positions), 2*n)
	}
	// основания 4(n-2) + борта 4n треугольников
	wantTris := 4*(n-2) + 4*n
	if len(m.Indices) != wantTris*3 {
		t.Errorf("indices = %d, want %d", len(m.Indices), wantTris*3)
	}
	// верхнее основание на высоте экструзии
	if m.Positions[n][2] != 2.0 {
		t.Errorf("top z = %v", m.Positions[n][2])
	}
}

func TestTriangulateDropsNearClosedDuplicate(t *testing.T) {
	// замыкающая точка в пределах допуска профиля, но не точная копия
	profile := []models.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0.0005, Y: 0}}
	scene := BuildScene(docWith(solidElem("wall", profile, 2.0)))
	if len(scene.Meshes) != 1 {
		t.Fatalf("meshes = %d", len(scene.Meshes))
	}
	if got := len(scene.Meshes[0].Positions); got != 8 {
		t.Errorf("positions = %d, want 8 (дубль отброшен)", got)
	}
}

func TestWriteGLB(t *testing.T) {
	profile := []models.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	elem := solidElem("wall", profile, 2.0)
	elem.Placement = models.Placement{X: 5, Y: 6, Z: 0.4}
	scene := BuildScene(docWith(elem))

	path := filepath.Join(t.TempDir(), "out.glb")
	if err := WriteGLB(path, scene); err != nil {
		t.Fatalf("write glb: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read glb: %v", err)
	}
	if len(data) < 12 || string(data[:4]) != "glTF" {
		t.Errorf("glb header = %q", data[:min(4, len(data))])
	}
}

func TestBuildSceneTranslationCarriesElevation(t *testing.T) {
	profile := []models.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	elem := solidElem("wall", profile, 2.0)
	elem.Placement = models.Placement{X: 5, Y: 6, Z: 0.4}
	scene := BuildScene(docWith(elem))
	tr := scene.Meshes[0].Translation
	if tr[0] != 5 || tr[1] != 6 || math.Abs(tr[2]-3.4) > 1e-9 {
		t.Errorf("translation = %v", tr)
	}
}

func TestBuildSceneSkipsNonSolids(t *testing.T) {
	curve := &models.Element{
		Name:     "footprint",
		Geometry: &models.Geometry{Kind: models.GeomCurve, Profile: []models.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}},
	}
	noGeom := &models.Element{Name: "bare"}
	scene := BuildScene(docWith(curve, noGeom))
	if len(scene.Meshes) != 0 {
		t.Errorf("meshes = %d, want 0", len(scene.Meshes))
	}
}

func TestStoreyPaletteCycles(t *testing.T) {
	profile := []models.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	storeys := make([]*models.SpatialNode, 4)
	for i := range storeys {
		storeys[i] = &models.SpatialNode{
			Kind:     models.NodeStorey,
			Elements: []*models.Element{solidElem("w", profile, 1.0)},
		}
	}
	building := &models.SpatialNode{Kind: models.NodeBuilding, Children: storeys}
	site := &models.SpatialNode{Kind: models.NodeSite, Children: []*models.SpatialNode{building}}
	project := &models.SpatialNode{Kind: models.NodeProject, Children: []*models.SpatialNode{site}}
	scene := BuildScene(&models.Document{Project: project})

	if len(scene.Meshes) != 4 {
		t.Fatalf("meshes = %d", len(scene.Meshes))
	}
	if scene.Meshes[0].Colors[0] != scene.Meshes[3].Colors[0] {
		t.Error("palette must cycle with period 3")
	}
	if scene.Meshes[0].Colors[0] == scene.Meshes[1].Colors[0] {
		t.Error("adjacent storeys must differ in color")
	}
}

func TestWriteOBJCombined(t *testing.T) {
	profile := []models.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	scene := BuildScene(docWith(solidElem("a", profile, 1.0), solidElem("b", profile, 1.0)))

	var buf bytes.Buffer
	if err := writeOBJ(&buf, scene); err != nil {
		t.Fatalf("write obj: %v", err)
	}
	out := buf.String()
	if strings.Count(out, "o ") != 2 {
		t.Errorf("objects = %d, want 2", strings.Count(out, "o "))
	}
	if strings.Count(out, "v ") != 16 {
		t.Errorf("vertices = %d, want 16", strings.Count(out, "v "))
	}
	// индексы второго меша смещены за вершины первого
	if !strings.Contains(out, "f 9 ") {
		t.Error("second mesh faces must reference offset vertices")
	}
}
