package resolve

import (
	"testing"

	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/models"
)

func stubGeom(rec *models.ElementRecord) *models.Geometry {
	return &models.Geometry{Kind: models.GeomSolid, Depth: rec.Attrs.Height}
}

func rec(name string, typ models.ElementType, solid int) *models.ElementRecord {
	return &models.ElementRecord{
		Name:  name,
		Type:  typ,
		Attrs: models.Attributes{Height: 2.8, Solid: solid},
	}
}

func TestResolveWindowScope(t *testing.T) {
	records := []*models.ElementRecord{
		rec("wall1", models.ElemWall, 1),
		rec("col1", models.ElemColumn, 1),
		rec("cov1", models.ElemCovering, 1),
		rec("win1", models.ElemWindow, 0),
	}
	solids := Resolve(records, stubGeom)
	if len(solids) != 3 {
		t.Fatalf("solids = %d, want 3", len(solids))
	}
	byName := map[string]*models.ElementRecord{}
	for _, s := range solids {
		byName[s.Name] = s
	}
	if n := len(byName["wall1"].Openings); n != 1 {
		t.Errorf("wall openings = %d, want 1", n)
	}
	if n := len(byName["cov1"].Openings); n != 1 {
		t.Errorf("covering openings = %d, want 1", n)
	}
	if n := len(byName["col1"].Openings); n != 0 {
		t.Errorf("column openings = %d, want 0 (оконный void не режет колонны)", n)
	}
	if got := byName["wall1"].Openings[0].Name; got != "Opening_win1" {
		t.Errorf("opening name = %q", got)
	}
}

func TestResolveGenericScopeCutsAll(t *testing.T) {
	records := []*models.ElementRecord{
		rec("wall1", models.ElemWall, 1),
		rec("col1", models.ElemColumn, 1),
		rec("shaft", models.ElemProxy, 0),
	}
	solids := Resolve(records, stubGeom)
	for _, s := range solids {
		if len(s.Openings) != 1 {
			t.Errorf("%s openings = %d, want 1", s.Name, len(s.Openings))
		}
	}
}

func TestResolveOpeningIDsUnique(t *testing.T) {
	records := []*models.ElementRecord{
		rec("wall1", models.ElemWall, 1),
		rec("wall2", models.ElemWall, 1),
		rec("win1", models.ElemWindow, 0),
	}
	solids := Resolve(records, stubGeom)
	seen := map[string]bool{}
	for _, s := range solids {
		for _, op := range s.Openings {
			if seen[op.ID] {
				t.Fatalf("duplicate opening id %s", op.ID)
			}
			seen[op.ID] = true
		}
	}
	if len(seen) != 2 {
		t.Errorf("total openings = %d, want 2", len(seen))
	}
}

func TestResolveVoidWithoutGeometrySkipped(t *testing.T) {
	records := []*models.ElementRecord{
		rec("wall1", models.ElemWall, 1),
		rec("win1", models.ElemWindow, 0),
	}
	solids := Resolve(records, func(*models.ElementRecord) *models.Geometry { return nil })
	if len(solids[0].Openings) != 0 {
		t.Errorf("openings = %d, want 0", len(solids[0].Openings))
	}
}
