package models

// ElementRecord — промежуточная запись между классификацией и сборкой
// элемента: примитив + тип + декодированные атрибуты. Неизменяемое
// значение, мутирует документ только построитель иерархии.
type ElementRecord struct {
	Prim     *Primitive
	Type     ElementType
	Name     string
	Layer    string
	Attrs    Attributes
	Openings []Opening
}

// IsVoid — элемент с solid=0 вырезается из solid-элементов.
func (r *ElementRecord) IsVoid() bool {
	return r.Attrs.Solid == 0
}
