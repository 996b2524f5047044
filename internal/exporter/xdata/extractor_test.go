package xdata

import (
	"testing"

	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/models"
)

func prim(apps ...models.XDataApp) *models.Primitive {
	return &models.Primitive{Kind: models.PrimPolyline, XData: apps}
}

func TestExtractDefaults(t *testing.T) {
	attrs := Extract(prim())
	if attrs.Height != DefaultHeight {
		t.Errorf("height = %v, want %v", attrs.Height, DefaultHeight)
	}
	if attrs.Solid != DefaultSolid {
		t.Errorf("solid = %v, want %v", attrs.Solid, DefaultSolid)
	}
	if attrs.HasName || attrs.HasZRel {
		t.Errorf("unexpected name/z flags: %+v", attrs)
	}
}

func TestExtractStringWinsOverReal(t *testing.T) {
	// числовой код идет первым, но строковый все равно выигрывает
	attrs := Extract(prim(models.XDataApp{
		AppID: "QCAD",
		Items: []models.XDataItem{
			{Code: models.XDataCodeReal, Real: 3.2},
			{Code: models.XDataCodeString, Str: "height:2.5"},
		},
	}))
	if attrs.Height != 2.5 {
		t.Errorf("height = %v, want 2.5", attrs.Height)
	}
}

func TestExtractRealFillsGapOnly(t *testing.T) {
	attrs := Extract(prim(models.XDataApp{
		AppID: "QCAD",
		Items: []models.XDataItem{
			{Code: models.XDataCodeString, Str: "height:2.5"},
			{Code: models.XDataCodeReal, Real: 3.2},
		},
	}))
	if attrs.Height != 2.5 {
		t.Errorf("height = %v, want 2.5", attrs.Height)
	}
}

func TestExtractFirstStringWins(t *testing.T) {
	attrs := Extract(prim(models.XDataApp{
		AppID: "QCAD",
		Items: []models.XDataItem{
			{Code: models.XDataCodeString, Str: "height:2.5"},
			{Code: models.XDataCodeString, Str: "height:9.9"},
		},
	}))
	if attrs.Height != 2.5 {
		t.Errorf("height = %v, want 2.5", attrs.Height)
	}
}

func TestExtractSolidValidation(t *testing.T) {
	tests := []struct {
		name string
		item models.XDataItem
		want int
	}{
		{"int zero", models.XDataItem{Code: models.XDataCodeInt, Int: 0}, 0},
		{"int one", models.XDataItem{Code: models.XDataCodeInt, Int: 1}, 1},
		{"int out of range", models.XDataItem{Code: models.XDataCodeInt, Int: 7}, DefaultSolid},
		{"string zero", models.XDataItem{Code: models.XDataCodeString, Str: "solid:0"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := Extract(prim(models.XDataApp{AppID: "QCAD", Items: []models.XDataItem{tt.item}}))
			if attrs.Solid != tt.want {
				t.Errorf("solid = %v, want %v", attrs.Solid, tt.want)
			}
		})
	}
}

func TestExtractCanonicalAppFirst(t *testing.T) {
	// группа QCAD опрашивается раньше любых других независимо от порядка
	attrs := Extract(prim(
		models.XDataApp{AppID: "OTHER", Items: []models.XDataItem{
			{Code: models.XDataCodeString, Str: "Name:other"},
		}},
		models.XDataApp{AppID: "QCAD", Items: []models.XDataItem{
			{Code: models.XDataCodeString, Str: "Name:canonical"},
		}},
	))
	if attrs.Name != "canonical" {
		t.Errorf("name = %q, want canonical", attrs.Name)
	}
}

func TestExtractMalformedSkipped(t *testing.T) {
	attrs := Extract(prim(models.XDataApp{
		AppID: "QCAD",
		Items: []models.XDataItem{
			{Code: models.XDataCodeString, Str: "height:abc"},
			{Code: models.XDataCodeString, Str: "z:??"},
		},
	}))
	if attrs.Height != DefaultHeight {
		t.Errorf("height = %v, want default", attrs.Height)
	}
	if attrs.HasZRel {
		t.Error("z must stay unset on parse error")
	}
}

func TestExtractUnknownKeysBecomeExtra(t *testing.T) {
	attrs := Extract(prim(models.XDataApp{
		AppID: "QCAD",
		Items: []models.XDataItem{
			{Code: models.XDataCodeString, Str: "material:brick"},
			{Code: models.XDataCodeString, Str: "z:0.4"},
		},
	}))
	if len(attrs.Extra) != 1 {
		t.Fatalf("extra = %d entries, want 1", len(attrs.Extra))
	}
	if attrs.Extra[0].Key != "xdata_QCAD" || attrs.Extra[0].Value != "material:brick" {
		t.Errorf("extra[0] = %+v", attrs.Extra[0])
	}
	if !attrs.HasZRel || attrs.ZRel != 0.4 {
		t.Errorf("z = %v (has=%v), want 0.4", attrs.ZRel, attrs.HasZRel)
	}
}
