package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framecheck/framecheck/internal/model"
)

func floatPtr(v float64) *float64 { return &v }

func TestCalculateDispatch(t *testing.T) {
	for _, c := range []model.Characteristic{
		model.CharacteristicPosition,
		model.CharacteristicFlatness,
		model.CharacteristicPerpendicularity,
		model.CharacteristicProfile,
	} {
		t.Run(string(c), func(t *testing.T) {
			result, err := Calculate(Input{Characteristic: c, ToleranceValue: 0.1})
			require.NoError(t, err)
			assert.Equal(t, c, result.Characteristic)
			assert.InDelta(t, 0.1, result.StatedTolerance, 1e-9)
		})
	}
}

func TestCalculateUnsupportedCharacteristic(t *testing.T) {
	for _, c := range []model.Characteristic{model.CharacteristicOther, "", "circularity"} {
		_, err := Calculate(Input{Characteristic: c, ToleranceValue: 0.1})
		assert.ErrorIs(t, err, ErrUnsupportedCharacteristic, "characteristic %q", c)
	}
}

func TestCalculateRejectsNonPositiveTolerance(t *testing.T) {
	for _, c := range []model.Characteristic{
		model.CharacteristicPosition,
		model.CharacteristicFlatness,
		model.CharacteristicPerpendicularity,
		model.CharacteristicProfile,
	} {
		_, err := Calculate(Input{Characteristic: c, ToleranceValue: 0})
		assert.Error(t, err, "characteristic %q", c)
	}
}

func TestInputFromFrame(t *testing.T) {
	size := mustSize(t, 10, 0.1, 0.05)
	f := &model.FeatureControlFrame{
		Characteristic: model.CharacteristicPosition,
		FeatureType:    model.FeatureHole,
		SourceUnit:     model.UnitMM,
		Tolerance:      model.Tolerance{Value: 0.1, Diameter: true, MaterialCondition: model.ConditionMMC},
		Size:           size,
	}

	in := InputFromFrame(f, floatPtr(9.98))
	assert.Equal(t, model.CharacteristicPosition, in.Characteristic)
	assert.Equal(t, model.FeatureHole, in.FeatureType)
	assert.True(t, in.Diameter)
	assert.Equal(t, model.ConditionMMC, in.MaterialCondition)
	assert.Same(t, size, in.Size)
	require.NotNil(t, in.ActualSize)
	assert.InDelta(t, 9.98, *in.ActualSize, 1e-9)
}

func TestInputFromFrameDefaultsToRFS(t *testing.T) {
	f := &model.FeatureControlFrame{
		Characteristic: model.CharacteristicPosition,
		Tolerance:      model.Tolerance{Value: 0.1},
	}
	in := InputFromFrame(f, nil)
	assert.Equal(t, model.ConditionRFS, in.MaterialCondition)
	assert.Nil(t, in.ActualSize)
}
