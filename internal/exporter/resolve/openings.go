package resolve

import (
	"github.com/google/uuid"

	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/models"
	"github.com/ionuting/BubbleBIM-Comunity/pkg/logger"
)

// ============================================================
// Boolean / Opening Resolver
// ============================================================

// GeometryFunc строит void-геометрию по записи (профиль + экструзия
// с собственной высотой void-а).
type GeometryFunc func(rec *models.ElementRecord) *models.Geometry

type voidRec struct {
	name string
	geom *models.Geometry
}

// Resolve разбивает записи одного этажа на solids и voids и
// регистрирует проемы. Void-ы оконного типа режут только Wall и
// Covering; остальные void-ы режут все solids. Булево вычитание не
// выполняется, фиксируется только связь solid → opening; каждый
// проем принадлежит ровно одному solid и получает собственный id.
// Возвращает записи solid-ов с заполненными Openings.
func Resolve(records []*models.ElementRecord, buildGeom GeometryFunc) []*models.ElementRecord {
	var solids []*models.ElementRecord
	var windowVoids, genericVoids []voidRec

	for _, rec := range records {
		if !rec.IsVoid() {
			solids = append(solids, rec)
			continue
		}
		geom := buildGeom(rec)
		if geom == nil {
			logger.Warn("void without geometry skipped", "name", rec.Name, "layer", rec.Layer)
			continue
		}
		v := voidRec{name: rec.Name, geom: geom}
		if rec.Type == models.ElemWindow {
			windowVoids = append(windowVoids, v)
		} else {
			genericVoids = append(genericVoids, v)
		}
	}

	for _, sol := range solids {
		if sol.Type == models.ElemWall || sol.Type == models.ElemCovering {
			attach(sol, windowVoids)
		}
		attach(sol, genericVoids)
	}
	return solids
}

func attach(sol *models.ElementRecord, voids []voidRec) {
	for _, v := range voids {
		sol.Openings = append(sol.Openings, models.Opening{
			ID:       uuid.NewString(),
			Name:     "Opening_" + v.name,
			Geometry: v.geom,
		})
	}
}
