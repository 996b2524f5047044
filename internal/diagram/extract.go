package diagram

import (
	"math"
	"sort"

	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/models"
	"github.com/ionuting/BubbleBIM-Comunity/pkg/logger"
)

// ============================================================
// Room Graph Extractor
// ============================================================

// ResolvePolygons превращает связи помещение → узел в простые
// CCW-полигоны. Узлы сортируются по углу от центроида; для
// невыпуклых наборов узлов порядок может быть неверным, это
// принятое ограничение. Помещения с менее чем тремя узлами
// пропускаются с предупреждением.
func ResolvePolygons(d *models.Diagram) {
	for _, rm := range d.Rooms {
		pts := make([]models.Point, 0, len(rm.Nodes))
		for _, idx := range rm.Nodes {
			p, ok := d.NodePosition(idx)
			if !ok {
				logger.Warn("room references node outside grid", "room", rm.Code, "node", idx)
				continue
			}
			pts = append(pts, p)
		}
		if len(pts) < 3 {
			logger.Warn("room has fewer than 3 grid nodes", "room", rm.Code, "nodes", len(pts))
			continue
		}

		var cx, cy float64
		for _, p := range pts {
			cx += p.X
			cy += p.Y
		}
		cx /= float64(len(pts))
		cy /= float64(len(pts))

		sort.Slice(pts, func(i, j int) bool {
			ai := math.Atan2(pts[i].Y-cy, pts[i].X-cx)
			aj := math.Atan2(pts[j].Y-cy, pts[j].X-cx)
			return ai < aj
		})
		rm.Points = pts
	}
}
