package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fragment-analyzer/internal/domain/entity"
)

func TestApplyOption(t *testing.T) {
	base := entity.DefaultConfiguration()

	cases := []struct {
		name  string
		value string
		check func(t *testing.T, c entity.Configuration)
	}{
		{OptionBlur, "6", func(t *testing.T, c entity.Configuration) { require.Equal(t, 7, c.BlurRadius) }},
		{OptionBlur, "9", func(t *testing.T, c entity.Configuration) { require.Equal(t, 9, c.BlurRadius) }},
		{OptionThreshold, "300", func(t *testing.T, c entity.Configuration) { require.Equal(t, 255, c.BinaryThreshold) }},
		{OptionMorphSize, "0", func(t *testing.T, c entity.Configuration) { require.Equal(t, 1, c.MorphKernelSize) }},
		{OptionMorphClose, "0", func(t *testing.T, c entity.Configuration) { require.Zero(t, c.CloseIterations) }},
		{OptionMorphOpen, " 4 ", func(t *testing.T, c entity.Configuration) { require.Equal(t, 4, c.OpenIterations) }},
		{OptionMinArea, "1500.5", func(t *testing.T, c entity.Configuration) { require.Equal(t, 1500.5, c.MinRegionArea) }},
		{OptionUseAdjusted, "off", func(t *testing.T, c entity.Configuration) { require.False(t, c.UseAdjustedPercentage) }},
		{OptionNoOriginal, "true", func(t *testing.T, c entity.Configuration) { require.True(t, c.NoReferenceMode) }},
		{OptionWeight, "12.5", func(t *testing.T, c entity.Configuration) { require.Equal(t, 12.5, c.Weight()) }},
		{OptionWeight, "abc", func(t *testing.T, c entity.Configuration) { require.Nil(t, c.TotalWeight) }},
		{OptionUnit, "kg", func(t *testing.T, c entity.Configuration) { require.Equal(t, "kg", c.WeightUnit) }},
	}
	for _, tc := range cases {
		t.Run(tc.name+"="+tc.value, func(t *testing.T) {
			c, err := ApplyOption(base, tc.name, tc.value)
			require.NoError(t, err)
			tc.check(t, c)
		})
	}
}

func TestApplyOption_Errors(t *testing.T) {
	base := entity.DefaultConfiguration()

	_, err := ApplyOption(base, "sharpen", "1")
	require.ErrorIs(t, err, ErrUnknownOption)

	_, err = ApplyOption(base, OptionThreshold, "high")
	require.ErrorIs(t, err, ErrInvalidOption)

	_, err = ApplyOption(base, OptionNoOriginal, "maybe")
	require.ErrorIs(t, err, ErrInvalidOption)
}

func TestOptionValueRoundTrip(t *testing.T) {
	cfg := entity.DefaultConfiguration()
	cfg.TotalWeight = weight(2.5)
	cfg.WeightUnit = "lb"

	for _, name := range OptionNames() {
		got, err := ApplyOption(cfg, name, OptionValue(cfg, name))
		require.NoError(t, err, name)
		require.Equal(t, cfg, got, name)
	}
	require.Empty(t, OptionValue(entity.DefaultConfiguration(), OptionWeight))
}

func TestOptionNamesCoverAllOptions(t *testing.T) {
	for _, name := range OptionNames() {
		_, err := ApplyOption(entity.DefaultConfiguration(), name, "1")
		require.NoError(t, err, name)
	}
}
