package geometry

import (
	"math"

	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/models"
)

// ============================================================
// Inward Offset
// ============================================================

// OffsetInward сдвигает контур внутрь на расстояние d, пересекая
// смещенные продолжения соседних ребер. Контур должен идти против
// часовой стрелки; замыкающая дубль-точка отбрасывается на входе.
// Возвращает nil, если результат вырождается (неположительная площадь
// или параллельные соседние ребра).
func OffsetInward(points []models.Point, d float64) []models.Point {
	pts := dropClosing(points)
	n := len(pts)
	if n < 3 {
		return nil
	}

	// каждое ребро смещается по левой нормали (для CCW это внутрь)
	type line struct {
		p, dir models.Point
	}
	lines := make([]line, n)
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%n]
		dx, dy := b.X-a.X, b.Y-a.Y
		length := math.Hypot(dx, dy)
		if length == 0 {
			return nil
		}
		nx, ny := -dy/length, dx/length
		lines[i] = line{
			p:   models.Point{X: a.X + nx*d, Y: a.Y + ny*d},
			dir: models.Point{X: dx, Y: dy},
		}
	}

	out := make([]models.Point, 0, n)
	for i := 0; i < n; i++ {
		prev := lines[(i+n-1)%n]
		cur := lines[i]
		denom := prev.dir.X*cur.dir.Y - prev.dir.Y*cur.dir.X
		if math.Abs(denom) < 1e-12 {
			return nil
		}
		t := ((cur.p.X-prev.p.X)*cur.dir.Y - (cur.p.Y-prev.p.Y)*cur.dir.X) / denom
		out = append(out, models.Point{
			X: prev.p.X + prev.dir.X*t,
			Y: prev.p.Y + prev.dir.Y*t,
		})
	}

	if SignedArea(out) <= 0 {
		return nil
	}

	// при d больше вписанного радиуса контур выворачивается дважды и
	// снова идет против часовой стрелки; ловим это по расстоянию:
	// каждый итоговый узел обязан отстоять от всех исходных ребер
	// не меньше чем на d с внутренней стороны
	for _, v := range out {
		for i := 0; i < n; i++ {
			a, b := pts[i], pts[(i+1)%n]
			dx, dy := b.X-a.X, b.Y-a.Y
			dist := (dx*(v.Y-a.Y) - dy*(v.X-a.X)) / math.Hypot(dx, dy)
			if dist < d-1e-9 {
				return nil
			}
		}
	}
	return out
}

func dropClosing(points []models.Point) []models.Point {
	n := len(points)
	if n > 1 {
		first, last := points[0], points[n-1]
		if math.Hypot(first.X-last.X, first.Y-last.Y) <= ClosureTolerance {
			return points[:n-1]
		}
	}
	return points
}
