package entity

import (
	"image"
	"math"
)

// Point2D точка с дробными координатами.
type Point2D struct {
	X float64
	Y float64
}

// Region связная область объекта, найденная на маске
type Region struct {
	Boundary []image.Point // замкнутый контур, центры пикселей
	Area     float64       // площадь внутри контура в пикселях
	Centroid *Point2D      // центр масс, nil при нулевой площади
}

// NewRegion строит область по контуру, вычисляя площадь и центр масс.
func NewRegion(boundary []image.Point) Region {
	return Region{
		Boundary: boundary,
		Area:     PolygonArea(boundary),
		Centroid: PolygonCentroid(boundary),
	}
}

// Anchor возвращает точку для подписи (округлённый вниз центр масс).
// ok=false для вырожденной области без центра.
func (r Region) Anchor() (p image.Point, ok bool) {
	if r.Centroid == nil {
		return image.Point{}, false
	}
	return image.Pt(int(math.Floor(r.Centroid.X)), int(math.Floor(r.Centroid.Y))), true
}

// PolygonArea площадь многоугольника по формуле шнуровки, всегда неотрицательная.
func PolygonArea(pts []image.Point) float64 {
	return math.Abs(signedArea(pts))
}

// PolygonCentroid центр масс многоугольника по моментам первого порядка.
func PolygonCentroid(pts []image.Point) *Point2D {
	a := signedArea(pts)
	if a == 0 {
		return nil
	}
	var cx, cy float64
	n := len(pts)
	for i := 0; i < n; i++ {
		p, q := pts[i], pts[(i+1)%n]
		cross := float64(p.X*q.Y - q.X*p.Y)
		cx += float64(p.X+q.X) * cross
		cy += float64(p.Y+q.Y) * cross
	}
	return &Point2D{X: cx / (6 * a), Y: cy / (6 * a)}
}

func signedArea(pts []image.Point) float64 {
	n := len(pts)
	if n < 3 {
		return 0
	}
	var s int64
	for i := 0; i < n; i++ {
		p, q := pts[i], pts[(i+1)%n]
		s += int64(p.X)*int64(q.Y) - int64(q.X)*int64(p.Y)
	}
	return float64(s) / 2
}
