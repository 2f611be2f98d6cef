package app

import (
	"fmt"
	"strings"

	"fragment-analyzer/internal/domain/entity"
)

const (
	reportRule    = "========================================"
	reportDivider = "----------------------------------------"
)

// FormatReport собирает текстовый отчёт по результату анализа.
func FormatReport(r *entity.AnalysisResult) string {
	cfg := r.Config
	hasWeight := cfg.HasWeight()
	refArea := r.Classified.ReferenceArea()

	var b strings.Builder
	b.WriteString(reportRule + "\n")
	b.WriteString("ANALYSIS RESULTS\n")
	b.WriteString(reportRule + "\n\n")

	if !cfg.NoReferenceMode {
		b.WriteString("Original Rectangle:\n")
		fmt.Fprintf(&b, "  Area: %.0f px²\n", refArea)
		if hasWeight {
			fmt.Fprintf(&b, "  Value: %s\n", cfg.FormatValue(cfg.Weight(), 2))
		}
		b.WriteString("\n")
	} else {
		b.WriteString("Mode: No Original Reference\n")
		b.WriteString("(All pieces treated equally)\n\n")
		if hasWeight {
			fmt.Fprintf(&b, "Total Value to Distribute: %s\n\n", cfg.FormatValue(cfg.Weight(), 2))
		}
	}

	fmt.Fprintf(&b, "Fragments Detected: %d\n\n", len(r.Fragments))
	if len(r.Fragments) == 0 {
		return b.String()
	}

	b.WriteString("Individual Fragments:\n")
	b.WriteString(reportDivider + "\n")
	for _, f := range r.Fragments {
		fmt.Fprintf(&b, "  Fragment %d:\n", f.Index)
		fmt.Fprintf(&b, "    Area: %.0f px²\n", f.Area)
		if hasWeight && f.Weight != nil {
			fmt.Fprintf(&b, "    Value: %s\n", cfg.FormatValue(*f.Weight, 2))
		} else {
			fmt.Fprintf(&b, "    Percentage: %.2f%%\n", f.Percentage)
			if cfg.UseAdjustedPercentage {
				fmt.Fprintf(&b, "    Adjusted %%: %.2f%%\n", f.AdjustedPercentage)
			}
		}
		b.WriteString("\n")
	}
	b.WriteString(reportDivider + "\n")

	if total, ok := r.TotalWeight(); hasWeight && ok {
		fmt.Fprintf(&b, "Total Fragment Value: %s\n", cfg.FormatValue(total, 2))
		return b.String()
	}

	fmt.Fprintf(&b, "Total Fragment Area: %.0f px²\n", r.TotalFragmentArea)
	if !cfg.NoReferenceMode && refArea > 0 {
		fmt.Fprintf(&b, "Total Percentage: %.2f%%\n", r.TotalFragmentArea/refArea*100)
	}
	if cfg.UseAdjustedPercentage || cfg.NoReferenceMode {
		b.WriteString("\n✓ Adjusted percentages sum to 100%\n")
	}
	return b.String()
}

// FormatFailure сообщение о неудачном анализе для поля отчёта.
func FormatFailure(err error) string {
	return "Error processing image: " + err.Error()
}
