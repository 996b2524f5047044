package levels

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// ============================================================
// Elevation from identifier
// ============================================================

// Паттерны в порядке приоритета: первый совпавший выигрывает.
// Для неоднозначных имен (level_3_50) молча берется первое
// совпадение — поведение зафиксировано, не валидируется.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`[._](-?\d+\.\d+)[._]`), // level_3.50.dxf
	regexp.MustCompile(`[._](-?\d+\.?\d*)[._]`), // level_3.dxf
	regexp.MustCompile(`_(-?\d+\.\d+)$`),        // level_3.50
	regexp.MustCompile(`_(-?\d+)$`),             // level_3
}

// FromIdentifier извлекает глобальную отметку Z из имени файла или
// диаграммы. Если ни один паттерн не совпал — 0.0.
func FromIdentifier(name string) float64 {
	base := filepath.Base(name)
	for _, re := range patterns {
		m := re.FindStringSubmatch(base)
		if m == nil {
			continue
		}
		z, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		return z
	}
	return 0.0
}

// StoreyName возвращает имя этажа из идентификатора файла
// (basename без расширения).
func StoreyName(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
