package models

// ============================================================
// Input primitives (уже распарсенный поток сущностей)
// ============================================================

// PrimitiveKind — дискриминатор типа примитива. Для каждого типа
// валидны только свои поля Primitive.
type PrimitiveKind string

const (
	PrimLine     PrimitiveKind = "line"
	PrimPolyline PrimitiveKind = "polyline"
	PrimArc      PrimitiveKind = "arc"
	PrimCircle   PrimitiveKind = "circle"
	PrimFace     PrimitiveKind = "face" // 3D face/solid/mesh — только bounding box
	PrimText     PrimitiveKind = "text" // текст, аннотации, размеры
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Коды XDATA, которые понимает экстрактор.
const (
	XDataCodeString = 1000
	XDataCodeReal   = 1040
	XDataCodeInt    = 1071
)

// XDataItem — одна пара (код, значение). Значение берется из поля,
// соответствующего коду: Str для 1000, Real для 1040, Int для 1071.
type XDataItem struct {
	Code int     `json:"code"`
	Str  string  `json:"s,omitempty"`
	Real float64 `json:"r,omitempty"`
	Int  int     `json:"i,omitempty"`
}

// XDataApp — группа XDATA для одного application id, порядок сохраняется.
type XDataApp struct {
	AppID string      `json:"appid"`
	Items []XDataItem `json:"items"`
}

// Primitive — геометрический примитив из одного входного файла.
type Primitive struct {
	Kind   PrimitiveKind `json:"kind"`
	Layer  string        `json:"layer"`
	Handle string        `json:"handle"`

	// Line: ровно 2 точки, Polyline: контур по порядку.
	Points []Point `json:"points,omitempty"`

	// Arc / Circle.
	Center     *Point  `json:"center,omitempty"`
	Radius     float64 `json:"radius,omitempty"`
	StartAngle float64 `json:"start_angle,omitempty"` // градусы
	EndAngle   float64 `json:"end_angle,omitempty"`   // градусы

	// Face: bounding box, если известен.
	BBoxMin *Point `json:"bbox_min,omitempty"`
	BBoxMax *Point `json:"bbox_max,omitempty"`

	XData []XDataApp `json:"xdata,omitempty"`
}

// ============================================================
// Decoded attributes
// ============================================================

// ExtraProp — нераспознанное строковое свойство из XDATA.
type ExtraProp struct {
	Key   string
	Value string
}

// Attributes — типизированные свойства примитива после декодирования XDATA.
type Attributes struct {
	Height  float64 // высота экструзии (по умолчанию 2.8)
	Solid   int     // 1 = solid, 0 = void (по умолчанию 1)
	Name    string
	ZRel    float64 // относительная отметка внутри этажа
	HasName bool
	HasZRel bool
	Extra   []ExtraProp
}
