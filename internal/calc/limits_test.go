package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framecheck/framecheck/internal/model"
)

func mustSize(t *testing.T, nominal, plus, minus float64) *model.SizeDimension {
	t.Helper()
	s, err := model.NewSizeDimension(nominal, plus, minus)
	require.NoError(t, err)
	return s
}

func TestLimits(t *testing.T) {
	tests := []struct {
		name        string
		featureType model.FeatureType
		wantMMC     float64
		wantLMC     float64
	}{
		{name: "hole MMC at lower limit", featureType: model.FeatureHole, wantMMC: 9.95, wantLMC: 10.1},
		{name: "slot MMC at lower limit", featureType: model.FeatureSlot, wantMMC: 9.95, wantLMC: 10.1},
		{name: "pin MMC at upper limit", featureType: model.FeaturePin, wantMMC: 10.1, wantLMC: 9.95},
		{name: "boss MMC at upper limit", featureType: model.FeatureBoss, wantMMC: 10.1, wantLMC: 9.95},
	}

	size := mustSize(t, 10, 0.1, 0.05)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limits, err := Limits(tt.featureType, size)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantMMC, limits.MMC, 1e-9)
			assert.InDelta(t, tt.wantLMC, limits.LMC, 1e-9)
			assert.InDelta(t, 10.1, limits.Upper, 1e-9)
			assert.InDelta(t, 9.95, limits.Lower, 1e-9)
		})
	}
}

func TestLimitsRejectsNonSizeFeatures(t *testing.T) {
	size := mustSize(t, 10, 0.1, 0.05)

	for _, ft := range []model.FeatureType{model.FeatureSurface, model.FeatureOther, ""} {
		_, err := Limits(ft, size)
		assert.Error(t, err, "feature type %q", ft)
	}
}

func TestLimitsRequiresSize(t *testing.T) {
	_, err := Limits(model.FeatureHole, nil)
	assert.Error(t, err)
}
