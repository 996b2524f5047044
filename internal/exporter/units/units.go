package units

import "fmt"

// ============================================================
// Unit system
// ============================================================

// System — активная система единиц экспорта, выбирается один раз
// на запуск и применяется ко всем длинам, площадям и объемам.
type System struct {
	Name   string
	Length float64
	Area   float64
	Volume float64
}

var (
	// Metric — метры, без конвертации.
	Metric = System{Name: "metric", Length: 1.0, Area: 1.0, Volume: 1.0}

	// Imperial — футы: 1m = 3.28084 ft.
	Imperial = System{Name: "imperial", Length: 3.28084, Area: 10.7639, Volume: 35.3147}
)

// Parse возвращает систему единиц по имени.
func Parse(name string) (System, error) {
	switch name {
	case "metric":
		return Metric, nil
	case "imperial":
		return Imperial, nil
	}
	return System{}, fmt.Errorf("unknown unit system %q (want metric or imperial)", name)
}

func (s System) ToLength(v float64) float64 { return v * s.Length }
func (s System) ToArea(v float64) float64   { return v * s.Area }
func (s System) ToVolume(v float64) float64 { return v * s.Volume }

// IsMetric — true для метрической системы.
func (s System) IsMetric() bool { return s.Name == "metric" }
