package ifc

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/models"
	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/units"
)

func sampleDoc() *models.Document {
	wall := &models.Element{
		ID:   "e1",
		Type: models.ElemWall,
		Name: "Walls_A1",
		Geometry: &models.Geometry{
			Kind:    models.GeomSolid,
			Profile: []models.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 0.3}, {X: 0, Y: 0.3}, {X: 0, Y: 0}},
			Depth:   3.0,
			Area:    1.2,
			Volume:  3.6,
		},
		Openings: []models.Opening{{
			ID:   "o1",
			Name: "Opening_Windows_B1",
			Geometry: &models.Geometry{
				Kind:    models.GeomSolid,
				Profile: []models.Point{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 0.3}, {X: 1, Y: 0.3}, {X: 1, Y: 0}},
				Depth:   1.2,
			},
		}},
		Pset: &models.PropertySet{
			Name: "DXF_Properties_Walls",
			Props: []models.Property{
				{Name: "Layer", Value: models.TextValue("Walls")},
				{Name: "height", Value: models.LengthValue(3.0)},
				{Name: "solid", Value: models.IntegerValue(1)},
			},
		},
	}
	storey := &models.SpatialNode{Kind: models.NodeStorey, Name: "plan_0.0", Elements: []*models.Element{wall}}
	building := &models.SpatialNode{Kind: models.NodeBuilding, Name: "Building", Children: []*models.SpatialNode{storey}}
	site := &models.SpatialNode{Kind: models.NodeSite, Name: "Site", Children: []*models.SpatialNode{building}}
	project := &models.SpatialNode{Kind: models.NodeProject, Name: "Demo", Children: []*models.SpatialNode{site}}
	return &models.Document{ID: "doc", Project: project}
}

func TestWriteMetric(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleDoc(), units.Metric); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"ISO-10303-21;",
		"FILE_SCHEMA(('IFC4'));",
		"IFCPROJECT(",
		"IFCSITE(",
		"IFCBUILDING(",
		"IFCBUILDINGSTOREY(",
		"IFCWALL(",
		"IFCEXTRUDEDAREASOLID(",
		"IFCARBITRARYCLOSEDPROFILEDEF(.AREA.",
		"'Body','SweptSolid'",
		"IFCOPENINGELEMENT(",
		"IFCRELVOIDSELEMENT(",
		"IFCRELAGGREGATES(",
		"IFCRELCONTAINEDINSPATIALSTRUCTURE(",
		"IFCPROPERTYSET('",
		"IFCRELDEFINESBYPROPERTIES(",
		"IFCSIUNIT(*,.LENGTHUNIT.,$,.METRE.)",
		"END-ISO-10303-21;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "IFCCONVERSIONBASEDUNIT") {
		t.Error("metric output must not declare a conversion based unit")
	}
}

func TestWriteImperialUnits(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleDoc(), units.Imperial); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"IFCCONVERSIONBASEDUNIT(",
		"'FOOT'",
		"IFCMEASUREWITHUNIT(IFCLENGTHMEASURE(0.3048)",
		"IFCDIMENSIONALEXPONENTS(1,0,0,0,0,0,0)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestWriteEntityNumbersMonotonic(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleDoc(), units.Metric); err != nil {
		t.Fatalf("write: %v", err)
	}
	next := 1
	for _, line := range strings.Split(buf.String(), "\n") {
		if !strings.HasPrefix(line, "#") {
			continue
		}
		end := strings.IndexByte(line, '=')
		if end < 0 {
			t.Fatalf("bad entity line %q", line)
		}
		id, err := strconv.Atoi(line[1:end])
		if err != nil {
			t.Fatalf("bad entity number in %q: %v", line, err)
		}
		if id != next {
			t.Fatalf("entity #%d out of order, want #%d", id, next)
		}
		next++
	}
	if next == 1 {
		t.Fatal("no entities written")
	}
}

func TestRealFormatting(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0."},
		{3, "3."},
		{2.8, "2.8"},
		{-1.5, "-1.5"},
	}
	for _, tt := range tests {
		if got := real(tt.in); got != tt.want {
			t.Errorf("real(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeQuotes(t *testing.T) {
	if got := escape("it's"); got != "it''s" {
		t.Errorf("escape = %q", got)
	}
}
