package entity

import "image"

// ClassifiedSet эталон (может отсутствовать) и фрагменты в порядке обнаружения.
type ClassifiedSet struct {
	Reference *Region
	Fragments []Region
}

// ReferenceArea площадь эталона или 0.
func (s ClassifiedSet) ReferenceArea() float64 {
	if s.Reference == nil {
		return 0
	}
	return s.Reference.Area
}

// FragmentMeasurement измерения одного фрагмента.
type FragmentMeasurement struct {
	Region
	Index              int      // порядковый номер, с 1
	Percentage         float64  // доля от эталона, %
	AdjustedPercentage float64  // доля от суммы фрагментов, %
	Weight             *float64 // вес, только при заданном общем весе
}

// OverlayRole роль контура при отрисовке.
type OverlayRole string

const (
	RoleReference OverlayRole = "reference"
	RoleFragment  OverlayRole = "fragment"
)

// Overlay контур с подписью для отрисовщика.
type Overlay struct {
	Boundary []image.Point
	Role     OverlayRole
	Label    string
	Anchor   *image.Point // nil, если подпись ставить некуда
}

// AnalysisResult итог одного прогона анализа.
type AnalysisResult struct {
	RunID             string
	Config            Configuration
	Mask              *BinaryMask
	RegionCount       int // число найденных контуров до фильтра
	Classified        ClassifiedSet
	Fragments         []FragmentMeasurement
	TotalFragmentArea float64
	Report            string
	Overlays          []Overlay
}

// TotalWeight сумма заданных весов фрагментов и признак, что хотя бы один вес задан.
func (r *AnalysisResult) TotalWeight() (sum float64, ok bool) {
	for _, f := range r.Fragments {
		if f.Weight != nil {
			sum += *f.Weight
			ok = true
		}
	}
	return sum, ok
}
