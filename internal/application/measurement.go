package app

import (
	"gonum.org/v1/gonum/floats"

	"fragment-analyzer/internal/domain/entity"
)

// Measure считает проценты и веса фрагментов.
//
// В режиме без эталона и в режиме скорректированных процентов веса делят общий
// вес пропорционально площадям и в сумме дают его. С эталоном и сырыми
// процентами каждый вес считается от площади эталона, сумма не гарантируется.
func Measure(set entity.ClassifiedSet, cfg entity.Configuration) ([]entity.FragmentMeasurement, float64) {
	areas := make([]float64, len(set.Fragments))
	for i, f := range set.Fragments {
		areas[i] = f.Area
	}
	total := floats.Sum(areas)
	refArea := set.ReferenceArea()

	out := make([]entity.FragmentMeasurement, len(set.Fragments))
	for i, f := range set.Fragments {
		m := entity.FragmentMeasurement{Region: f, Index: i + 1}
		if set.Reference != nil && refArea > 0 {
			m.Percentage = f.Area / refArea * 100
		}
		if total > 0 {
			m.AdjustedPercentage = f.Area / total * 100
		}

		if cfg.HasWeight() {
			w := cfg.Weight()
			switch {
			case cfg.NoReferenceMode || cfg.UseAdjustedPercentage:
				v := 0.0
				if total > 0 {
					v = f.Area / total * w
				}
				m.Weight = &v
			case refArea > 0:
				v := f.Area / refArea * w
				m.Weight = &v
			}
		}
		out[i] = m
	}
	return out, total
}
