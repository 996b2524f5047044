package hierarchy

import (
	"github.com/google/uuid"

	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/models"
)

// ============================================================
// Spatial Hierarchy Builder
// ============================================================

// Builder собирает дерево Project → Site → Building → Storey.
// Project, Site и Building создаются один раз при конструировании;
// этажи добавляются по одному на входной файл или диаграмму и не
// переиспользуются. Builder — единственный компонент, мутирующий
// документ.
type Builder struct {
	doc      *models.Document
	building *models.SpatialNode
}

// New создает документ с готовой цепочкой Project/Site/Building.
func New(projectName string) *Builder {
	building := &models.SpatialNode{
		Kind: models.NodeBuilding,
		ID:   uuid.NewString(),
		Name: "Building",
	}
	site := &models.SpatialNode{
		Kind:     models.NodeSite,
		ID:       uuid.NewString(),
		Name:     "Site",
		Children: []*models.SpatialNode{building},
	}
	project := &models.SpatialNode{
		Kind:     models.NodeProject,
		ID:       uuid.NewString(),
		Name:     projectName,
		Children: []*models.SpatialNode{site},
	}
	return &Builder{
		doc:      &models.Document{ID: uuid.NewString(), Project: project},
		building: building,
	}
}

// AddStorey добавляет этаж с глобальной отметкой. Отметка хранится
// на этаже; элементы внутри несут только относительный Z.
func (b *Builder) AddStorey(name string, elevation float64) *models.SpatialNode {
	storey := &models.SpatialNode{
		Kind:      models.NodeStorey,
		ID:        uuid.NewString(),
		Name:      name,
		Elevation: elevation,
	}
	b.building.Children = append(b.building.Children, storey)
	return storey
}

// AttachElement привязывает элемент ровно к одному этажу. Placement.Z
// выставляется в относительную отметку элемента: глобальную уже несет
// placement этажа, складывать ее повторно нельзя.
func (b *Builder) AttachElement(storey *models.SpatialNode, elem *models.Element) {
	elem.Placement.Z = elem.RelativeZ
	storey.Elements = append(storey.Elements, elem)
}

// Document возвращает собранный граф.
func (b *Builder) Document() *models.Document {
	return b.doc
}
