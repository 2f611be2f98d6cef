package app

import (
	"fmt"

	"fragment-analyzer/internal/domain/entity"
)

// LabelOriginal подпись эталона без заданного веса.
const LabelOriginal = "ORIGINAL"

// BuildOverlays готовит контуры с подписями для отрисовщика.
// Области без центра масс получают контур, но не подпись.
func BuildOverlays(r *entity.AnalysisResult) []entity.Overlay {
	cfg := r.Config
	hasWeight := cfg.HasWeight()
	overlays := make([]entity.Overlay, 0, len(r.Fragments)+1)

	if ref := r.Classified.Reference; ref != nil && !cfg.NoReferenceMode {
		label := LabelOriginal
		if hasWeight {
			label = cfg.FormatValue(cfg.Weight(), 2)
		}
		overlays = append(overlays, newOverlay(*ref, entity.RoleReference, label))
	}

	for _, f := range r.Fragments {
		var label string
		if hasWeight && f.Weight != nil {
			label = cfg.FormatValue(*f.Weight, 2)
		} else {
			pct := f.Percentage
			if cfg.UseAdjustedPercentage {
				pct = f.AdjustedPercentage
			}
			label = fmt.Sprintf("%.1f%%", pct)
		}
		overlays = append(overlays, newOverlay(f.Region, entity.RoleFragment, label))
	}
	return overlays
}

func newOverlay(region entity.Region, role entity.OverlayRole, label string) entity.Overlay {
	o := entity.Overlay{Boundary: region.Boundary, Role: role, Label: label}
	if p, ok := region.Anchor(); ok {
		o.Anchor = &p
	}
	return o
}
