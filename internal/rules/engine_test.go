package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framecheck/framecheck/internal/model"
)

func positionFrame() *model.FeatureControlFrame {
	return &model.FeatureControlFrame{
		Characteristic: model.CharacteristicPosition,
		FeatureType:    model.FeatureHole,
		SourceUnit:     model.UnitMM,
		Tolerance:      model.Tolerance{Value: 0.1, Diameter: true, MaterialCondition: model.ConditionMMC},
		Datums:         []model.DatumReference{{ID: "A"}, {ID: "B"}, {ID: "C"}},
	}
}

func TestValidateCompliantFrames(t *testing.T) {
	tests := []struct {
		name  string
		frame *model.FeatureControlFrame
	}{
		{name: "position with full datum frame", frame: positionFrame()},
		{
			name: "flatness with no datums",
			frame: &model.FeatureControlFrame{
				Characteristic: model.CharacteristicFlatness,
				FeatureType:    model.FeatureSurface,
				Tolerance:      model.Tolerance{Value: 0.05},
			},
		},
		{
			name: "perpendicularity with one datum",
			frame: &model.FeatureControlFrame{
				Characteristic: model.CharacteristicPerpendicularity,
				FeatureType:    model.FeaturePin,
				Tolerance:      model.Tolerance{Value: 0.02, Diameter: true, MaterialCondition: model.ConditionMMC},
				Datums:         []model.DatumReference{{ID: "A"}},
			},
		},
		{
			name: "profile without datums",
			frame: &model.FeatureControlFrame{
				Characteristic: model.CharacteristicProfile,
				FeatureType:    model.FeatureSurface,
				Tolerance:      model.Tolerance{Value: 0.4},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Validate(tt.frame)
			assert.True(t, report.Valid)
			assert.Empty(t, report.Issues)
			assert.Zero(t, report.Summary.ErrorCount)
			assert.Zero(t, report.Summary.WarningCount)
		})
	}
}

func TestValidateViolations(t *testing.T) {
	tests := []struct {
		name     string
		frame    *model.FeatureControlFrame
		wantCode Code
	}{
		{
			name: "MMC on flatness",
			frame: &model.FeatureControlFrame{
				Characteristic: model.CharacteristicFlatness,
				Tolerance:      model.Tolerance{Value: 0.05, MaterialCondition: model.ConditionMMC},
			},
			wantCode: CodeIllegalMaterialCondition,
		},
		{
			name: "LMC on flatness",
			frame: &model.FeatureControlFrame{
				Characteristic: model.CharacteristicFlatness,
				Tolerance:      model.Tolerance{Value: 0.05, MaterialCondition: model.ConditionLMC},
			},
			wantCode: CodeIllegalMaterialCondition,
		},
		{
			name: "datums on flatness",
			frame: &model.FeatureControlFrame{
				Characteristic: model.CharacteristicFlatness,
				Tolerance:      model.Tolerance{Value: 0.05},
				Datums:         []model.DatumReference{{ID: "A"}},
			},
			wantCode: CodeDatumOnFormTolerance,
		},
		{
			name: "missing characteristic",
			frame: &model.FeatureControlFrame{
				Tolerance: model.Tolerance{Value: 0.1},
			},
			wantCode: CodeMissingCharacteristic,
		},
		{
			name: "unrecognized characteristic reported as other",
			frame: &model.FeatureControlFrame{
				Characteristic: model.CharacteristicOther,
				Tolerance:      model.Tolerance{Value: 0.1},
			},
			wantCode: CodeMissingCharacteristic,
		},
		{
			name: "diameter zone on a slot",
			frame: &model.FeatureControlFrame{
				Characteristic: model.CharacteristicPosition,
				FeatureType:    model.FeatureSlot,
				Tolerance:      model.Tolerance{Value: 0.1, Diameter: true},
				Datums:         []model.DatumReference{{ID: "A"}},
			},
			wantCode: CodeModifierFeatureMismatch,
		},
		{
			name: "position without datums",
			frame: &model.FeatureControlFrame{
				Characteristic: model.CharacteristicPosition,
				FeatureType:    model.FeatureHole,
				Tolerance:      model.Tolerance{Value: 0.1, Diameter: true},
			},
			wantCode: CodeMissingDatum,
		},
		{
			name: "perpendicularity without datums",
			frame: &model.FeatureControlFrame{
				Characteristic: model.CharacteristicPerpendicularity,
				FeatureType:    model.FeaturePin,
				Tolerance:      model.Tolerance{Value: 0.02},
			},
			wantCode: CodeMissingDatum,
		},
		{
			name: "MMC on a surface",
			frame: &model.FeatureControlFrame{
				Characteristic: model.CharacteristicProfile,
				FeatureType:    model.FeatureSurface,
				Tolerance:      model.Tolerance{Value: 0.4, MaterialCondition: model.ConditionMMC},
			},
			wantCode: CodeConditionOnNonSizeFeature,
		},
		{
			name: "projected modifier without length",
			frame: &model.FeatureControlFrame{
				Characteristic: model.CharacteristicPosition,
				FeatureType:    model.FeatureHole,
				Tolerance:      model.Tolerance{Value: 0.1, Diameter: true, Projected: true},
				Datums:         []model.DatumReference{{ID: "A"}},
			},
			wantCode: CodeProjectedZoneUndeclared,
		},
		{
			name: "composite on perpendicularity",
			frame: &model.FeatureControlFrame{
				Characteristic: model.CharacteristicPerpendicularity,
				FeatureType:    model.FeaturePin,
				Datums:         []model.DatumReference{{ID: "A"}},
				Composite: []model.ToleranceTier{
					{Tolerance: model.Tolerance{Value: 0.5}},
					{Tolerance: model.Tolerance{Value: 0.1}},
				},
			},
			wantCode: CodeCompositeNotSupported,
		},
		{
			name: "composite with one tier",
			frame: &model.FeatureControlFrame{
				Characteristic: model.CharacteristicPosition,
				Datums:         []model.DatumReference{{ID: "A"}},
				Composite: []model.ToleranceTier{
					{Tolerance: model.Tolerance{Value: 0.5}},
				},
			},
			wantCode: CodeMalformedComposite,
		},
		{
			name: "composite lower tier looser than tier 1",
			frame: &model.FeatureControlFrame{
				Characteristic: model.CharacteristicPosition,
				Datums:         []model.DatumReference{{ID: "A"}},
				Composite: []model.ToleranceTier{
					{Tolerance: model.Tolerance{Value: 0.1}, Datums: []model.DatumReference{{ID: "A"}}},
					{Tolerance: model.Tolerance{Value: 0.5}, Datums: []model.DatumReference{{ID: "A"}}},
				},
			},
			wantCode: CodeMalformedComposite,
		},
		{
			name: "composite lower tier breaks datum order",
			frame: &model.FeatureControlFrame{
				Characteristic: model.CharacteristicPosition,
				Datums:         []model.DatumReference{{ID: "A"}},
				Composite: []model.ToleranceTier{
					{Tolerance: model.Tolerance{Value: 0.5}, Datums: []model.DatumReference{{ID: "A"}, {ID: "B"}}},
					{Tolerance: model.Tolerance{Value: 0.1}, Datums: []model.DatumReference{{ID: "B"}}},
				},
			},
			wantCode: CodeMalformedComposite,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Validate(tt.frame)
			assert.False(t, report.Valid)
			assert.True(t, report.HasCode(tt.wantCode), "expected issue %s, got %+v", tt.wantCode, report.Issues)
			assert.Positive(t, report.Summary.ErrorCount)
		})
	}
}

func TestValidateAdvisories(t *testing.T) {
	t.Run("explicit RFS warns without failing", func(t *testing.T) {
		f := positionFrame()
		f.Tolerance.MaterialCondition = model.ConditionRFS

		report := Validate(f)
		assert.True(t, report.Valid)
		assert.True(t, report.HasCode(CodeRedundantRFS))
		assert.Equal(t, 1, report.Summary.WarningCount)
		assert.Zero(t, report.Summary.ErrorCount)
	})

	t.Run("more than three datums warns without failing", func(t *testing.T) {
		f := positionFrame()
		f.Datums = append(f.Datums, model.DatumReference{ID: "D"})

		report := Validate(f)
		assert.True(t, report.Valid)
		assert.True(t, report.HasCode(CodeExcessDatums))
	})
}

func TestValidateAccumulatesAllIssues(t *testing.T) {
	// Flatness with datums, MMC, and a diameter zone on a surface trips
	// several independent rules in a single pass.
	f := &model.FeatureControlFrame{
		Characteristic: model.CharacteristicFlatness,
		FeatureType:    model.FeatureSurface,
		Tolerance:      model.Tolerance{Value: 0.05, Diameter: true, MaterialCondition: model.ConditionMMC},
		Datums:         []model.DatumReference{{ID: "A"}},
	}

	report := Validate(f)
	assert.False(t, report.Valid)
	assert.True(t, report.HasCode(CodeIllegalMaterialCondition))
	assert.True(t, report.HasCode(CodeConditionOnNonSizeFeature))
	assert.True(t, report.HasCode(CodeDatumOnFormTolerance))
	assert.True(t, report.HasCode(CodeModifierFeatureMismatch))
	assert.GreaterOrEqual(t, report.Summary.ErrorCount, 4)
}

func TestValidateIsDeterministicAndPure(t *testing.T) {
	f := positionFrame()
	f.Tolerance.MaterialCondition = model.ConditionRFS
	before := f.Clone()

	first := Validate(f)
	second := Validate(f)

	assert.Equal(t, first, second)
	assert.Equal(t, before, f)
}

func TestValidateNeverReturnsNilIssues(t *testing.T) {
	report := Validate(positionFrame())
	require.NotNil(t, report.Issues)
	assert.Empty(t, report.Issues)
}
