package pset

import (
	"strings"

	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/models"
	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/units"
)

// ============================================================
// Property-Set Attacher
// ============================================================

// Build собирает набор свойств элемента: исходный слой, атрибуты
// из XDATA и вычисленные площадь/объем. Числовые свойства, чье имя
// содержит area/length/width/height, конвертируются в активную
// систему единиц; z_relative остается в исходных единицах как
// внутренняя отметка. Пустой набор не создается.
func Build(layer string, attrs models.Attributes, geom *models.Geometry, sys units.System) *models.PropertySet {
	var props []models.Property

	if layer != "" {
		props = append(props, models.Property{Name: "Layer", Value: models.TextValue(layer)})
	}
	props = append(props,
		models.Property{Name: "height", Value: models.LengthValue(convert("height", attrs.Height, sys))},
		models.Property{Name: "solid", Value: models.IntegerValue(attrs.Solid)},
	)
	if attrs.HasName {
		props = append(props, models.Property{Name: "name", Value: models.TextValue(attrs.Name)})
	}
	if attrs.HasZRel {
		props = append(props, models.Property{Name: "z_relative", Value: models.RealValue(attrs.ZRel)})
	}
	for _, ex := range attrs.Extra {
		props = append(props, models.Property{Name: ex.Key, Value: models.TextValue(ex.Value)})
	}

	if geom != nil {
		if geom.Area > 0 {
			props = append(props, models.Property{
				Name:  "CalculatedArea",
				Value: models.AreaValue(sys.ToArea(geom.Area)),
			})
		}
		if geom.Volume > 0 {
			props = append(props, models.Property{
				Name:  "CalculatedVolume",
				Value: models.VolumeValue(sys.ToVolume(geom.Volume)),
			})
		}
	}

	if len(props) == 0 {
		return nil
	}
	name := "DXF_Properties"
	if layer != "" {
		name += "_" + layer
	}
	return &models.PropertySet{Name: name, Props: props}
}

// convert применяет линейный коэффициент к unit-sensitive свойствам.
func convert(name string, v float64, sys units.System) float64 {
	lower := strings.ToLower(name)
	for _, key := range []string{"area", "length", "width", "height"} {
		if strings.Contains(lower, key) {
			if key == "area" {
				return sys.ToArea(v)
			}
			return sys.ToLength(v)
		}
	}
	return v
}
