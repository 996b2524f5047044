package pipeline

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/classify"
	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/geometry"
	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/hierarchy"
	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/levels"
	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/models"
	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/pset"
	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/resolve"
	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/units"
	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/xdata"
	"github.com/ionuting/BubbleBIM-Comunity/pkg/logger"
)

// ============================================================
// Export Pipeline
// ============================================================

// Exporter прогоняет входные файлы и диаграммы через конвейер и
// накапливает единый выходной документ. Конвейер строго
// последовательный: документ мутируется только через hierarchy.Builder.
type Exporter struct {
	sys  units.System
	hier *hierarchy.Builder
}

// New создает экспорт с активной системой единиц.
func New(projectName string, sys units.System) *Exporter {
	return &Exporter{
		sys:  sys,
		hier: hierarchy.New(projectName),
	}
}

// ProcessFile обрабатывает один входной файл: отметка из имени,
// классификация и извлечение атрибутов, разрешение проемов,
// геометрия, свойства, привязка к новому этажу. Файл без пригодных
// примитивов дает ошибку и не оставляет следа в документе.
func (e *Exporter) ProcessFile(name string, prims []*models.Primitive) error {
	var records []*models.ElementRecord
	for _, prim := range prims {
		typ := classify.ByLayer(prim.Layer, prim.Kind)
		if typ == models.ElemSkip {
			continue
		}
		attrs := xdata.Extract(prim)
		recName := attrs.Name
		if !attrs.HasName {
			recName = fmt.Sprintf("%s_%s", prim.Layer, prim.Handle)
		}
		records = append(records, &models.ElementRecord{
			Prim:  prim,
			Type:  typ,
			Name:  recName,
			Layer: prim.Layer,
			Attrs: attrs,
		})
	}
	if len(records) == 0 {
		return fmt.Errorf("file %s: no usable primitives", name)
	}

	// этаж заводится только для пригодного файла
	elevation := levels.FromIdentifier(name)
	storey := e.hier.AddStorey(levels.StoreyName(name), e.sys.ToLength(elevation))

	solids := resolve.Resolve(records, func(rec *models.ElementRecord) *models.Geometry {
		return geometry.Build(rec.Prim, rec.Attrs, e.sys)
	})

	for _, rec := range solids {
		geom := geometry.Build(rec.Prim, rec.Attrs, e.sys)
		if geom == nil {
			logger.Warn("primitive without geometry", "file", name, "layer", rec.Layer, "handle", rec.Prim.Handle)
		}
		relZ := e.sys.ToLength(rec.Attrs.ZRel)
		elem := &models.Element{
			ID:        uuid.NewString(),
			Type:      rec.Type,
			Name:      rec.Name,
			Layer:     rec.Layer,
			GlobalZ:   storey.Elevation + relZ,
			RelativeZ: relZ,
			Geometry:  geom,
			Openings:  rec.Openings,
			Pset:      pset.Build(rec.Layer, rec.Attrs, geom, e.sys),
		}
		e.hier.AttachElement(storey, elem)
	}

	logger.Info("file processed", "file", name, "elevation", elevation, "elements", len(solids))
	return nil
}

// ProcessDiagram обрабатывает графовую диаграмму помещений: этаж
// на каждый уровень таблицы levels, по одному Space на пару
// (помещение, уровень). Помещения с вырожденным внутренним отступом
// пропускаются с предупреждением.
func (e *Exporter) ProcessDiagram(d *models.Diagram) error {
	if len(d.Levels) == 0 {
		return fmt.Errorf("diagram has no levels")
	}

	storeys := make([]*models.SpatialNode, len(d.Levels))
	for i, lv := range d.Levels {
		storeys[i] = e.hier.AddStorey(lv.Name, e.sys.ToLength(lv.Elevation))
	}

	placed := 0
	for _, room := range d.Rooms {
		if len(room.Points) < 3 {
			logger.Warn("room has fewer than 3 resolved nodes", "room", room.Code)
			continue
		}
		inner := geometry.OffsetInward(room.Points, room.OffsetInterior)
		if inner == nil {
			logger.Warn("interior offset collapsed room polygon", "room", room.Code, "offset", room.OffsetInterior)
			continue
		}

		minX, minY := inner[0].X, inner[0].Y
		for _, p := range inner {
			if p.X < minX {
				minX = p.X
			}
			if p.Y < minY {
				minY = p.Y
			}
		}

		// профиль в локальных координатах от минимального угла
		// смещенного полигона, сам угол уходит в placement
		profile := make([]models.Point, len(inner))
		for i, p := range inner {
			profile[i] = models.Point{
				X: e.sys.ToLength(p.X - minX),
				Y: e.sys.ToLength(p.Y - minY),
			}
		}
		profile = geometry.Close(profile)
		areaRaw := geometry.Area(inner)

		for _, levelIdx := range room.Levels {
			if levelIdx < 0 || levelIdx >= len(storeys) {
				logger.Warn("room references unknown level", "room", room.Code, "level", levelIdx)
				continue
			}
			geom := &models.Geometry{
				Kind:    models.GeomSolid,
				Profile: append([]models.Point(nil), profile...),
				Depth:   e.sys.ToLength(room.Height),
				Area:    areaRaw,
				Volume:  areaRaw * room.Height,
			}
			attrs := models.Attributes{
				Height:  room.Height,
				Solid:   1,
				Name:    room.Code,
				HasName: true,
			}
			elem := &models.Element{
				ID:    uuid.NewString(),
				Type:  models.ElemSpace,
				Name:  fmt.Sprintf("%s_L%d", room.Name, levelIdx),
				Layer: "IfcSpace",
				Placement: models.Placement{
					X: e.sys.ToLength(minX),
					Y: e.sys.ToLength(minY),
				},
				GlobalZ:  storeys[levelIdx].Elevation,
				Geometry: geom,
				Pset:     pset.Build("IfcSpace", attrs, geom, e.sys),
			}
			e.hier.AttachElement(storeys[levelIdx], elem)
			placed++
		}
	}

	if placed == 0 {
		return fmt.Errorf("diagram produced no spaces")
	}
	logger.Info("diagram processed", "levels", len(d.Levels), "spaces", placed)
	return nil
}

// Document возвращает накопленный граф.
func (e *Exporter) Document() *models.Document {
	return e.hier.Document()
}
