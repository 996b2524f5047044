package models

// ============================================================
// Output entity graph
// ============================================================

// ElementType — тип строительного элемента в выходном графе.
type ElementType string

const (
	ElemWall     ElementType = "IfcWall"
	ElemColumn   ElementType = "IfcColumn"
	ElemBeam     ElementType = "IfcBeam"
	ElemSlab     ElementType = "IfcSlab"
	ElemDoor     ElementType = "IfcDoor"
	ElemWindow   ElementType = "IfcWindow"
	ElemSpace    ElementType = "IfcSpace"
	ElemCovering ElementType = "IfcCovering"
	ElemRoof     ElementType = "IfcRoof"
	ElemProxy    ElementType = "IfcBuildingElementProxy"

	// ElemSkip — примитив не материализуется как элемент.
	ElemSkip ElementType = "SKIP"
)

type GeometryKind string

const (
	// GeomSolid — замкнутый профиль, экструдированный на Depth.
	GeomSolid GeometryKind = "solid"
	// GeomCurve — плоский контур без экструзии (footprint).
	GeomCurve GeometryKind = "curve"
	// GeomCircle — аналитическая окружность, только footprint.
	GeomCircle GeometryKind = "circle"
)

// Geometry — геометрия элемента. Координаты профиля уже приведены
// к активной системе единиц; Area и Volume хранятся в метрических
// единицах и конвертируются при записи свойств.
type Geometry struct {
	Kind    GeometryKind
	Profile []Point // замкнутый контур (solid/curve)
	Center  Point   // circle
	Radius  float64 // circle
	Depth   float64 // 0 для curve/circle
	Area    float64
	Volume  float64
}

// Opening — проем: void-геометрия, привязанная ровно к одному solid-элементу.
// Булево вычитание не вычисляется, фиксируется только связь.
type Opening struct {
	ID       string
	Name     string
	Geometry *Geometry
}

// Placement — локальное смещение относительно placement родителя.
// Для элементов Z — относительная отметка: глобальную несет этаж.
type Placement struct {
	X float64
	Y float64
	Z float64
}

// ============================================================
// Property sets
// ============================================================

type PropertyKind string

const (
	PropLength  PropertyKind = "length"
	PropArea    PropertyKind = "area"
	PropVolume  PropertyKind = "volume"
	PropText    PropertyKind = "text"
	PropInteger PropertyKind = "integer"
	PropReal    PropertyKind = "real"
)

// PropertyValue — закрытый набор типов значений свойств.
type PropertyValue struct {
	Kind   PropertyKind
	Text   string
	Number float64
	Int    int
}

func LengthValue(v float64) PropertyValue  { return PropertyValue{Kind: PropLength, Number: v} }
func AreaValue(v float64) PropertyValue    { return PropertyValue{Kind: PropArea, Number: v} }
func VolumeValue(v float64) PropertyValue  { return PropertyValue{Kind: PropVolume, Number: v} }
func TextValue(s string) PropertyValue     { return PropertyValue{Kind: PropText, Text: s} }
func IntegerValue(v int) PropertyValue     { return PropertyValue{Kind: PropInteger, Int: v} }
func RealValue(v float64) PropertyValue    { return PropertyValue{Kind: PropReal, Number: v} }

type Property struct {
	Name  string
	Value PropertyValue
}

type PropertySet struct {
	Name  string
	Props []Property
}

// ============================================================
// Spatial hierarchy
// ============================================================

type NodeKind string

const (
	NodeProject  NodeKind = "project"
	NodeSite     NodeKind = "site"
	NodeBuilding NodeKind = "building"
	NodeStorey   NodeKind = "storey"
)

// SpatialNode — узел дерева Project → Site → Building → Storey.
// Элементы содержатся только в этажах.
type SpatialNode struct {
	Kind      NodeKind
	ID        string
	Name      string
	Elevation float64 // только для Storey
	Children  []*SpatialNode
	Elements  []*Element
}

// Element — типизированный строительный объект, принадлежит ровно
// одному этажу.
type Element struct {
	ID        string
	Type      ElementType
	Name      string
	Layer     string
	GlobalZ   float64
	RelativeZ float64
	Geometry  *Geometry
	Placement Placement
	Openings  []Opening
	Pset      *PropertySet
}

// Document владеет всем выходным графом; ровно один на экспорт.
type Document struct {
	ID      string
	Project *SpatialNode
}

// Storeys возвращает все этажи в порядке создания.
func (d *Document) Storeys() []*SpatialNode {
	var out []*SpatialNode
	var walk func(n *SpatialNode)
	walk = func(n *SpatialNode) {
		if n == nil {
			return
		}
		if n.Kind == NodeStorey {
			out = append(out, n)
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(d.Project)
	return out
}

// ElementCount считает элементы по всем этажам.
func (d *Document) ElementCount() int {
	total := 0
	for _, s := range d.Storeys() {
		total += len(s.Elements)
	}
	return total
}

// ============================================================
// Diagram path (графовые диаграммы помещений)
// ============================================================

// Level — уровень здания из таблицы levels диаграммы.
type Level struct {
	Name      string
	Elevation float64
}

// Room — помещение из таблицы rooms. Points заполняется после
// разрешения связей с узлами сетки; потребляется по одному разу
// на каждый индекс уровня.
type Room struct {
	Code           string
	Name           string
	Height         float64
	Levels         []int
	OffsetInterior float64
	Nodes          []int   // индексы узлов сетки (row*width+col)
	Points         []Point // CCW-полигон после разрешения узлов
}

// Diagram — распарсенная графовая диаграмма: оси сетки, уровни,
// помещения и их связи с узлами.
type Diagram struct {
	XAxis  []float64
	YAxis  []float64
	Levels []Level
	Rooms  []*Room
}

// NodePosition возвращает координату узла сетки по индексу.
func (d *Diagram) NodePosition(idx int) (Point, bool) {
	if len(d.XAxis) == 0 {
		return Point{}, false
	}
	col := idx % len(d.XAxis)
	row := idx / len(d.XAxis)
	if idx < 0 || row >= len(d.YAxis) {
		return Point{}, false
	}
	return Point{X: d.XAxis[col], Y: d.YAxis[row]}, true
}
