package app

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"fragment-analyzer/internal/domain/entity"
)

func TestMeasure_ReferenceScenario(t *testing.T) {
	cfg := entity.DefaultConfiguration()
	cfg.MinRegionArea = 5000

	fragments, total := Measure(Classify(threeRegions(), cfg), cfg)
	require.Len(t, fragments, 1)
	require.Equal(t, 9000.0, total)
	require.Equal(t, 1, fragments[0].Index)
	require.InDelta(t, 10.0, fragments[0].Percentage, 1e-9)
	require.InDelta(t, 100.0, fragments[0].AdjustedPercentage, 1e-9)
	require.Nil(t, fragments[0].Weight)
}

func TestMeasure_NoReferenceWeights(t *testing.T) {
	cfg := entity.DefaultConfiguration()
	cfg.MinRegionArea = 1000
	cfg.NoReferenceMode = true
	cfg.TotalWeight = weight(150)

	fragments, total := Measure(Classify(threeRegions(), cfg), cfg)
	require.Len(t, fragments, 3)
	require.Equal(t, 103500.0, total)

	want := []float64{130.43, 13.04, 6.52}
	var sum float64
	for i, f := range fragments {
		require.Equal(t, i+1, f.Index)
		require.Zero(t, f.Percentage)
		require.NotNil(t, f.Weight)
		require.InDelta(t, want[i], *f.Weight, 0.01)
		sum += *f.Weight
	}
	require.InDelta(t, 150.0, sum, 1e-9)
}

func TestMeasure_RawModeScalesAgainstReference(t *testing.T) {
	cfg := entity.Configuration{MinRegionArea: 1000, TotalWeight: weight(200)}

	fragments, _ := Measure(Classify(threeRegions(), cfg), cfg)
	require.Len(t, fragments, 2)
	require.InDelta(t, 20.0, *fragments[0].Weight, 1e-9)
	require.InDelta(t, 10.0, *fragments[1].Weight, 1e-9)
	require.InDelta(t, 10.0, fragments[0].Percentage, 1e-9)
	require.InDelta(t, 5.0, fragments[1].Percentage, 1e-9)
}

func TestMeasure_RawModeWithoutReferenceLeavesWeightUnset(t *testing.T) {
	cfg := entity.Configuration{MinRegionArea: 10000, TotalWeight: weight(50)}

	fragments, _ := Measure(Classify(threeRegions(), cfg), cfg)
	require.Len(t, fragments, 1)
	require.Nil(t, fragments[0].Weight)
	require.Zero(t, fragments[0].Percentage)
	require.InDelta(t, 100.0, fragments[0].AdjustedPercentage, 1e-9)
}

func TestMeasure_InvalidWeightIgnored(t *testing.T) {
	for _, w := range []*float64{nil, weight(0), weight(-3)} {
		cfg := entity.Configuration{MinRegionArea: 1000, UseAdjustedPercentage: true, TotalWeight: w}
		fragments, _ := Measure(Classify(threeRegions(), cfg), cfg)
		for _, f := range fragments {
			require.Nil(t, f.Weight)
		}
	}
}

func TestMeasure_ZeroAreaFragments(t *testing.T) {
	set := entity.ClassifiedSet{Fragments: []entity.Region{entity.NewRegion(nil), entity.NewRegion(nil)}}
	cfg := entity.Configuration{NoReferenceMode: true, TotalWeight: weight(10)}

	fragments, total := Measure(set, cfg)
	require.Zero(t, total)
	for _, f := range fragments {
		require.Zero(t, f.AdjustedPercentage)
		require.NotNil(t, f.Weight)
		require.Zero(t, *f.Weight)
	}
}

func TestMeasure_ProportionalModesSumToTotal(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for run := 0; run < 50; run++ {
		n := 1 + rng.IntN(8)
		set := entity.ClassifiedSet{}
		for i := 0; i < n; i++ {
			set.Fragments = append(set.Fragments, entity.Region{Area: 1 + rng.Float64()*50000})
		}
		if run%2 == 0 {
			set.Reference = &entity.Region{Area: 100000}
		}
		w := 1 + rng.Float64()*1000
		cfg := entity.Configuration{
			UseAdjustedPercentage: run%3 != 0,
			NoReferenceMode:       run%3 == 0,
			TotalWeight:           weight(w),
		}

		fragments, _ := Measure(set, cfg)
		var pct, sum float64
		for _, f := range fragments {
			pct += f.AdjustedPercentage
			sum += *f.Weight
		}
		require.InDelta(t, 100.0, pct, 1e-9)
		require.InDelta(t, w, sum, 1e-9)
	}
}
