package geometry

import (
	"math"

	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/models"
	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/units"
)

// ============================================================
// Extrusion Builder
// ============================================================

// Build превращает примитив с атрибутами в геометрию элемента.
// Координаты профиля и глубина выдаются в целевых единицах, площадь
// и объем остаются в исходных и конвертируются на этапе свойств.
// Возвращает nil, если из примитива нельзя получить ни профиль,
// ни ограничивающую рамку.
func Build(prim *models.Primitive, attrs models.Attributes, sys units.System) *models.Geometry {
	depthRaw := attrs.Height

	if prim.Kind == models.PrimCircle && prim.Center != nil {
		areaRaw := math.Pi * prim.Radius * prim.Radius
		return &models.Geometry{
			Kind:   models.GeomCircle,
			Center: models.Point{X: sys.ToLength(prim.Center.X), Y: sys.ToLength(prim.Center.Y)},
			Radius: sys.ToLength(prim.Radius),
			Depth:  sys.ToLength(depthRaw),
			Area:   areaRaw,
			Volume: areaRaw * depthRaw,
		}
	}

	var raw []models.Point
	kind := models.GeomSolid

	switch prim.Kind {
	case models.PrimArc:
		if prim.Center != nil {
			raw = SampleArc(*prim.Center, prim.Radius, prim.StartAngle, prim.EndAngle)
		}
	case models.PrimLine, models.PrimPolyline:
		if len(prim.Points) >= 2 {
			raw = append(raw, prim.Points...)
		}
	}

	if raw == nil {
		// ни профиля, ни дуги: пробуем рамку как плоский контур
		if prim.BBoxMin == nil || prim.BBoxMax == nil {
			return nil
		}
		raw = bboxRect(*prim.BBoxMin, *prim.BBoxMax)
		kind = models.GeomCurve
	}

	// замкнутая двухточечная линия дает три точки: вертикальный
	// лист стены с нулевой площадью основания
	raw = Close(raw)
	if len(raw) < 3 {
		return nil
	}

	profile := make([]models.Point, len(raw))
	for i, p := range raw {
		profile[i] = models.Point{X: sys.ToLength(p.X), Y: sys.ToLength(p.Y)}
	}

	areaRaw := Area(raw)
	return &models.Geometry{
		Kind:    kind,
		Profile: profile,
		Depth:   sys.ToLength(depthRaw),
		Area:    areaRaw,
		Volume:  areaRaw * depthRaw,
	}
}
