package geometry

import (
	"math"

	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/models"
)

// ============================================================
// Profile Builder
// ============================================================

// ClosureTolerance расстояние, в пределах которого первая и последняя
// точки профиля считаются совпадающими.
const ClosureTolerance = 0.001

// ArcSegments число сегментов при линеаризации дуги.
const ArcSegments = 16

// Close замыкает профиль: если первая и последняя точки расходятся
// больше чем на допуск, первая точка добавляется в конец.
func Close(points []models.Point) []models.Point {
	if len(points) < 2 {
		return points
	}
	first, last := points[0], points[len(points)-1]
	if math.Hypot(first.X-last.X, first.Y-last.Y) > ClosureTolerance {
		points = append(points, first)
	}
	return points
}

// SampleArc линеаризует дугу в ArcSegments отрезков (ArcSegments+1 точек).
// Углы в градусах; дуга через ноль обрабатывается добавлением полного круга.
func SampleArc(center models.Point, radius, startDeg, endDeg float64) []models.Point {
	start := startDeg * math.Pi / 180.0
	end := endDeg * math.Pi / 180.0
	if end <= start {
		end += 2 * math.Pi
	}
	step := (end - start) / ArcSegments
	pts := make([]models.Point, 0, ArcSegments+1)
	for i := 0; i <= ArcSegments; i++ {
		a := start + float64(i)*step
		pts = append(pts, models.Point{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
		})
	}
	return pts
}

// bboxRect строит прямоугольный профиль по ограничивающей рамке.
func bboxRect(min, max models.Point) []models.Point {
	return []models.Point{
		{X: min.X, Y: min.Y},
		{X: max.X, Y: min.Y},
		{X: max.X, Y: max.Y},
		{X: min.X, Y: max.Y},
		{X: min.X, Y: min.Y},
	}
}

// Area площадь замкнутого профиля по формуле шнуровки, всегда
// неотрицательная. Замыкающая дубль-точка учитывается корректно.
func Area(points []models.Point) float64 {
	if len(points) < 3 {
		return 0
	}
	sum := 0.0
	n := len(points)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += points[i].X*points[j].Y - points[j].X*points[i].Y
	}
	return math.Abs(sum) / 2.0
}

// SignedArea знаковая площадь: положительная для обхода против
// часовой стрелки.
func SignedArea(points []models.Point) float64 {
	if len(points) < 3 {
		return 0
	}
	sum := 0.0
	n := len(points)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += points[i].X*points[j].Y - points[j].X*points[i].Y
	}
	return sum / 2.0
}
