package classify

import (
	"strings"

	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/models"
)

// ============================================================
// Element Classifier
// ============================================================

type rule struct {
	keys []string
	elem models.ElementType
}

// Таблица синонимов слоев; порядок строк задает приоритет,
// внутри примитива выигрывает первое совпадение.
var rules = []rule{
	{[]string{"wall", "walls", "muri"}, models.ElemWall},
	{[]string{"column", "columns", "stalpi", "stâlpi"}, models.ElemColumn},
	{[]string{"beam", "beams", "grinzi"}, models.ElemBeam},
	{[]string{"slab", "slabs", "placi", "plăci"}, models.ElemSlab},
	{[]string{"door", "doors", "usi", "uși"}, models.ElemDoor},
	{[]string{"window", "windows", "ferestre"}, models.ElemWindow},
	{[]string{"space", "spaces", "spatii", "spații", "ifcspace"}, models.ElemSpace},
	{[]string{"covering", "coverings", "finisaj"}, models.ElemCovering},
	{[]string{"roof", "acoperis"}, models.ElemRoof},
}

// ByLayer определяет тип элемента по имени слоя. Сравнение
// регистронезависимое по вхождению подстроки. Слои без совпадения
// становятся proxy-элементами, текст на таких слоях пропускается.
func ByLayer(layer string, kind models.PrimitiveKind) models.ElementType {
	lower := strings.ToLower(layer)
	for _, r := range rules {
		for _, key := range r.keys {
			if strings.Contains(lower, key) {
				return r.elem
			}
		}
	}
	if kind == models.PrimText {
		return models.ElemSkip
	}
	return models.ElemProxy
}
