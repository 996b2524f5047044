package diagram

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/models"
	"github.com/ionuting/BubbleBIM-Comunity/pkg/logger"
)

// ============================================================
// Diagram Parser (mxGraph XML)
// ============================================================

// DefaultOffsetInterior внутренний отступ помещения, если объект
// не задает свой.
const DefaultOffsetInterior = 0.125

var (
	htmlTagRe  = regexp.MustCompile(`<[^>]+>`)
	axisXRe    = regexp.MustCompile(`x=\[([^\]]*)\]`)
	axisYRe    = regexp.MustCompile(`y=\[([^\]]*)\]`)
	roomCodeRe = regexp.MustCompile(`^r\d+$`)
)

// Уровни по умолчанию, когда таблица levels в диаграмме отсутствует.
var fallbackLevels = []models.Level{
	{Name: "Level01", Elevation: 0.00},
	{Name: "Level02", Elevation: 2.80},
	{Name: "Level03", Elevation: 5.60},
}

// cell — плоское представление mxCell, значение уже очищено от HTML.
type cell struct {
	id     string
	value  string
	style  string
	parent string
	edge   bool
	source string
	target string
}

// ParseFile читает диаграмму из файла.
func ParseFile(path string) (*models.Diagram, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open diagram: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse разбирает несжатый mxGraph XML: оси координатной сетки,
// таблицы levels и rooms, объекты помещений и ребра помещение → узел.
func Parse(r io.Reader) (*models.Diagram, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("parse diagram xml: %w", err)
	}
	root := doc.FindElement("//mxGraphModel/root")
	if root == nil {
		return nil, fmt.Errorf("diagram has no mxGraphModel/root")
	}

	var cells []cell
	labels := map[string]string{} // id → очищенный label/value
	type roomObj struct {
		code   string
		levels []int
		offset float64
		hasOff bool
	}
	roomObjs := map[string]*roomObj{} // object id → attrs

	for _, el := range root.ChildElements() {
		switch el.Tag {
		case "mxCell":
			c := cellFrom(el, el.SelectAttrValue("id", ""))
			cells = append(cells, c)
			labels[c.id] = c.value

		case "object":
			id := el.SelectAttrValue("id", "")
			label := clean(el.SelectAttrValue("label", ""))
			labels[id] = label
			if inner := el.SelectElement("mxCell"); inner != nil {
				cells = append(cells, cellFrom(inner, id))
			}
			if roomCodeRe.MatchString(label) {
				obj := &roomObj{code: label}
				if lv := el.SelectAttrValue("Levels", ""); lv != "" {
					obj.levels = parseIntList(lv)
				}
				if off := el.SelectAttrValue("offset_interior", ""); off != "" {
					if v, err := strconv.ParseFloat(strings.TrimSpace(off), 64); err == nil {
						obj.offset = v
						obj.hasOff = true
					}
				}
				roomObjs[id] = obj
			}
		}
	}

	d := &models.Diagram{}
	if err := parseAxes(cells, d); err != nil {
		return nil, err
	}
	d.Levels = parseLevelsTable(cells)
	if len(d.Levels) == 0 {
		logger.Warn("diagram has no levels table, using defaults")
		d.Levels = append(d.Levels, fallbackLevels...)
	}

	rooms := parseRoomsTable(cells)
	byCode := map[string]*models.Room{}
	for _, rm := range rooms {
		byCode[rm.Code] = rm
	}

	// объекты помещений уточняют уровни и внутренний отступ;
	// явный offset_interior="0" тоже считается заданным
	idToRoom := map[string]*models.Room{}
	hasOffset := map[*models.Room]bool{}
	for id, obj := range roomObjs {
		rm := byCode[obj.code]
		if rm == nil {
			rm = &models.Room{Code: obj.code, Name: obj.code, Height: 2.8}
			rooms = append(rooms, rm)
			byCode[obj.code] = rm
		}
		if len(obj.levels) > 0 {
			rm.Levels = obj.levels
		}
		if obj.hasOff {
			rm.OffsetInterior = obj.offset
			hasOffset[rm] = true
		}
		idToRoom[id] = rm
	}
	for _, rm := range rooms {
		if !hasOffset[rm] {
			rm.OffsetInterior = DefaultOffsetInterior
		}
	}

	// ребра: помещение → узел сетки, метка узла — его индекс
	for _, c := range cells {
		if !c.edge {
			continue
		}
		rm := idToRoom[c.source]
		if rm == nil {
			continue
		}
		idx, err := strconv.Atoi(strings.TrimSpace(labels[c.target]))
		if err != nil {
			logger.Warn("edge target is not a grid node", "room", rm.Code, "target", c.target)
			continue
		}
		rm.Nodes = append(rm.Nodes, idx)
	}

	d.Rooms = rooms
	return d, nil
}

func cellFrom(el *etree.Element, id string) cell {
	return cell{
		id:     id,
		value:  clean(el.SelectAttrValue("value", "")),
		style:  el.SelectAttrValue("style", ""),
		parent: el.SelectAttrValue("parent", ""),
		edge:   el.SelectAttrValue("edge", "") == "1",
		source: el.SelectAttrValue("source", ""),
		target: el.SelectAttrValue("target", ""),
	}
}

// clean убирает HTML-разметку и неразрывные пробелы из значения ячейки.
func clean(s string) string {
	s = htmlTagRe.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	return strings.TrimSpace(s)
}

// parseAxes ищет ячейку с объявлением осей вида x=[...] y=[...].
func parseAxes(cells []cell, d *models.Diagram) error {
	for _, c := range cells {
		if !strings.Contains(c.value, "x=[") || !strings.Contains(c.value, "y=[") {
			continue
		}
		xm := axisXRe.FindStringSubmatch(c.value)
		ym := axisYRe.FindStringSubmatch(c.value)
		if xm == nil || ym == nil {
			continue
		}
		d.XAxis = parseFloatList(xm[1])
		d.YAxis = parseFloatList(ym[1])
		if len(d.XAxis) == 0 || len(d.YAxis) == 0 {
			return fmt.Errorf("axes declaration is empty: %q", c.value)
		}
		return nil
	}
	return fmt.Errorf("diagram has no axes declaration cell")
}

// tableRows собирает строки таблицы и значения их ячеек в порядке документа.
func tableRows(cells []cell, tableID string) [][]string {
	var rows [][]string
	for _, row := range cells {
		if !strings.Contains(row.style, "shape=tableRow") || row.parent != tableID {
			continue
		}
		var vals []string
		for _, c := range cells {
			if strings.Contains(c.style, "shape=partialRectangle") && c.parent == row.id {
				vals = append(vals, c.value)
			}
		}
		if len(vals) > 0 {
			rows = append(rows, vals)
		}
	}
	return rows
}

func findTable(cells []cell, keyword string) (string, bool) {
	for _, c := range cells {
		if strings.Contains(c.style, "shape=table") && !strings.Contains(c.style, "shape=tableRow") &&
			strings.Contains(strings.ToLower(c.value), keyword) {
			return c.id, true
		}
	}
	return "", false
}

func parseLevelsTable(cells []cell) []models.Level {
	tableID, ok := findTable(cells, "levels")
	if !ok {
		return nil
	}
	var out []models.Level
	for _, vals := range tableRows(cells, tableID) {
		if len(vals) < 2 {
			continue
		}
		elev, err := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err != nil {
			logger.Warn("unparsable level elevation", "row", vals)
			continue
		}
		out = append(out, models.Level{Name: vals[0], Elevation: elev})
	}
	return out
}

func parseRoomsTable(cells []cell) []*models.Room {
	tableID, ok := findTable(cells, "rooms")
	if !ok {
		return nil
	}
	var out []*models.Room
	for _, vals := range tableRows(cells, tableID) {
		if len(vals) < 3 {
			continue
		}
		if strings.EqualFold(vals[0], "code") {
			continue // строка заголовка
		}
		height, err := strconv.ParseFloat(strings.TrimSpace(vals[2]), 64)
		if err != nil {
			logger.Warn("unparsable room height", "row", vals)
			continue
		}
		rm := &models.Room{Code: vals[0], Name: vals[1], Height: height}
		if len(vals) > 3 {
			rm.Levels = parseIntList(vals[3])
		}
		out = append(out, rm)
	}
	return out
}

func parseFloatList(s string) []float64 {
	var out []float64
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == ';' }) {
		if v, err := strconv.ParseFloat(part, 64); err == nil {
			out = append(out, v)
		}
	}
	return out
}

func parseIntList(s string) []int {
	var out []int
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == ';' }) {
		if v, err := strconv.Atoi(part); err == nil {
			out = append(out, v)
		}
	}
	return out
}
