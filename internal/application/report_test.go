package app

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"fragment-analyzer/internal/domain/entity"
)

func resultFor(regions []entity.Region, cfg entity.Configuration) *entity.AnalysisResult {
	cfg = cfg.Normalize()
	set := Classify(regions, cfg)
	fragments, total := Measure(set, cfg)
	return &entity.AnalysisResult{Config: cfg, Classified: set, Fragments: fragments, TotalFragmentArea: total}
}

func TestFormatReport_ReferenceMode(t *testing.T) {
	cfg := entity.DefaultConfiguration()
	r := resultFor(threeRegions(), cfg)

	want := `========================================
ANALYSIS RESULTS
========================================

Original Rectangle:
  Area: 90000 px²

Fragments Detected: 1

Individual Fragments:
----------------------------------------
  Fragment 1:
    Area: 9000 px²
    Percentage: 10.00%
    Adjusted %: 100.00%

----------------------------------------
Total Fragment Area: 9000 px²
Total Percentage: 10.00%

✓ Adjusted percentages sum to 100%
`
	require.Equal(t, want, FormatReport(r))
}

func TestFormatReport_NoReferenceWithWeight(t *testing.T) {
	cfg := entity.DefaultConfiguration()
	cfg.MinRegionArea = 1000
	cfg.NoReferenceMode = true
	cfg.TotalWeight = weight(150)
	cfg.WeightUnit = "g"
	report := FormatReport(resultFor(threeRegions(), cfg))

	require.Contains(t, report, "Mode: No Original Reference\n(All pieces treated equally)\n\n")
	require.Contains(t, report, "Total Value to Distribute: 150.00 g\n")
	require.Contains(t, report, "Fragments Detected: 3\n")
	require.Contains(t, report, "  Fragment 1:\n    Area: 90000 px²\n    Value: 130.43 g\n")
	require.Contains(t, report, "    Value: 13.04 g\n")
	require.Contains(t, report, "    Value: 6.52 g\n")
	require.True(t, strings.HasSuffix(report, "Total Fragment Value: 150.00 g\n"))
	require.NotContains(t, report, "Percentage")
	require.NotContains(t, report, "Original Rectangle")
}

func TestFormatReport_WithoutWeightShowsPercentages(t *testing.T) {
	cfg := entity.DefaultConfiguration()
	cfg.MinRegionArea = 1000
	cfg.UseAdjustedPercentage = false
	report := FormatReport(resultFor(threeRegions(), cfg))

	require.Contains(t, report, "    Percentage: 10.00%\n")
	require.Contains(t, report, "    Percentage: 5.00%\n")
	require.NotContains(t, report, "Adjusted")
	require.NotContains(t, report, "Value")
	require.Contains(t, report, "Total Fragment Area: 13500 px²\nTotal Percentage: 15.00%\n")
}

func TestFormatReport_ReferenceValueShown(t *testing.T) {
	cfg := entity.DefaultConfiguration()
	cfg.TotalWeight = weight(80)
	report := FormatReport(resultFor(threeRegions(), cfg))

	require.Contains(t, report, "Original Rectangle:\n  Area: 90000 px²\n  Value: 80.00\n")
	require.Contains(t, report, "Total Fragment Value: 80.00\n")
}

func TestFormatReport_NoFragments(t *testing.T) {
	cfg := entity.DefaultConfiguration()
	cfg.MinRegionArea = 1e6
	report := FormatReport(resultFor(threeRegions(), cfg))

	require.Contains(t, report, "Area: 0 px²")
	require.True(t, strings.HasSuffix(report, "Fragments Detected: 0\n\n"))
}

func TestFormatReport_WeightUnusableInRawModeFallsBackToArea(t *testing.T) {
	cfg := entity.Configuration{MinRegionArea: 10000, TotalWeight: weight(50)}
	report := FormatReport(resultFor(threeRegions(), cfg))

	require.Contains(t, report, "    Percentage: 0.00%\n")
	require.Contains(t, report, "Total Fragment Area: 90000 px²\n")
	require.NotContains(t, report, "Total Fragment Value")
}

func TestFormatFailure(t *testing.T) {
	require.Equal(t, "Error processing image: boom", FormatFailure(errors.New("boom")))
}
