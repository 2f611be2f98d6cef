package app

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"fragment-analyzer/internal/domain/entity"
)

func TestBuildOverlays_Labels(t *testing.T) {
	cfg := entity.DefaultConfiguration()
	cfg.MinRegionArea = 1000
	overlays := BuildOverlays(resultFor(threeRegions(), cfg))

	require.Len(t, overlays, 3)
	require.Equal(t, entity.RoleReference, overlays[0].Role)
	require.Equal(t, LabelOriginal, overlays[0].Label)
	require.Equal(t, image.Pt(150, 150), *overlays[0].Anchor)

	require.Equal(t, entity.RoleFragment, overlays[1].Role)
	require.Equal(t, "66.7%", overlays[1].Label)
	require.Equal(t, "33.3%", overlays[2].Label)
}

func TestBuildOverlays_RawPercentAndWeights(t *testing.T) {
	cfg := entity.Configuration{MinRegionArea: 1000}
	overlays := BuildOverlays(resultFor(threeRegions(), cfg))
	require.Equal(t, "10.0%", overlays[1].Label)
	require.Equal(t, "5.0%", overlays[2].Label)

	cfg.TotalWeight = weight(200)
	cfg.WeightUnit = "kg"
	overlays = BuildOverlays(resultFor(threeRegions(), cfg))
	require.Equal(t, "200.00 kg", overlays[0].Label)
	require.Equal(t, "20.00 kg", overlays[1].Label)
	require.Equal(t, "10.00 kg", overlays[2].Label)
}

func TestBuildOverlays_NoReferenceAndDegenerate(t *testing.T) {
	regions := []entity.Region{rectRegion(0, 0, 10, 10), entity.NewRegion([]image.Point{{40, 40}})}
	cfg := entity.Configuration{NoReferenceMode: true}
	overlays := BuildOverlays(resultFor(regions, cfg))

	require.Len(t, overlays, 2)
	for _, o := range overlays {
		require.Equal(t, entity.RoleFragment, o.Role)
	}
	require.NotNil(t, overlays[0].Anchor)
	require.Nil(t, overlays[1].Anchor)
	require.Equal(t, "0.0%", overlays[1].Label)
}
