package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharacteristicPredicates(t *testing.T) {
	tests := []struct {
		characteristic Characteristic
		known          bool
		requiresDatums bool
		isForm         bool
	}{
		{CharacteristicPosition, true, true, false},
		{CharacteristicFlatness, true, false, true},
		{CharacteristicPerpendicularity, true, true, false},
		{CharacteristicProfile, true, false, false},
		{CharacteristicOther, true, false, false},
		{Characteristic("circularity"), false, false, false},
		{Characteristic(""), false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.characteristic), func(t *testing.T) {
			assert.Equal(t, tt.known, tt.characteristic.IsKnown())
			assert.Equal(t, tt.requiresDatums, tt.characteristic.RequiresDatums())
			assert.Equal(t, tt.isForm, tt.characteristic.IsForm())
		})
	}
}

func TestFeatureTypePredicates(t *testing.T) {
	tests := []struct {
		featureType   FeatureType
		internal      bool
		external      bool
		featureOfSize bool
		cylindrical   bool
	}{
		{FeatureHole, true, false, true, true},
		{FeatureSlot, true, false, true, false},
		{FeaturePin, false, true, true, true},
		{FeatureBoss, false, true, true, true},
		{FeatureSurface, false, false, false, false},
		{FeatureOther, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.featureType), func(t *testing.T) {
			assert.Equal(t, tt.internal, tt.featureType.IsInternal())
			assert.Equal(t, tt.external, tt.featureType.IsExternal())
			assert.Equal(t, tt.featureOfSize, tt.featureType.IsFeatureOfSize())
			assert.Equal(t, tt.cylindrical, tt.featureType.IsCylindrical())
		})
	}
}

func TestEffectiveMaterialCondition(t *testing.T) {
	assert.Equal(t, ConditionRFS, Tolerance{}.EffectiveMaterialCondition())
	assert.Equal(t, ConditionMMC, Tolerance{MaterialCondition: ConditionMMC}.EffectiveMaterialCondition())
	assert.Equal(t, ConditionLMC, Tolerance{MaterialCondition: ConditionLMC}.EffectiveMaterialCondition())
	assert.Equal(t, ConditionRFS, Tolerance{MaterialCondition: ConditionRFS}.EffectiveMaterialCondition())
}

func TestClone(t *testing.T) {
	size, err := NewSizeDimension(10, 0.1, 0.05)
	require.NoError(t, err)

	original := &FeatureControlFrame{
		Characteristic: CharacteristicPosition,
		FeatureType:    FeatureHole,
		SourceUnit:     UnitMM,
		Tolerance:      Tolerance{Value: 0.1, Diameter: true, MaterialCondition: ConditionMMC},
		Datums: []DatumReference{
			{ID: "A"}, {ID: "B", MaterialCondition: ConditionMMC},
		},
		Composite: []ToleranceTier{
			{Tolerance: Tolerance{Value: 0.5}, Datums: []DatumReference{{ID: "A"}, {ID: "B"}}},
			{Tolerance: Tolerance{Value: 0.1}, Datums: []DatumReference{{ID: "A"}}},
		},
		Size: size,
	}

	clone := original.Clone()
	require.NotNil(t, clone)
	assert.Equal(t, original, clone)

	clone.Datums[0].ID = "Z"
	clone.Composite[1].Datums[0].ID = "Z"
	clone.Size.Nominal = 99

	assert.Equal(t, "A", original.Datums[0].ID)
	assert.Equal(t, "A", original.Composite[1].Datums[0].ID)
	assert.InDelta(t, 10.0, original.Size.Nominal, 1e-9)
}

func TestCloneNil(t *testing.T) {
	var f *FeatureControlFrame
	assert.Nil(t, f.Clone())
}

func TestDatumSequence(t *testing.T) {
	f := &FeatureControlFrame{
		Datums: []DatumReference{{ID: "A"}, {ID: "B"}, {ID: "C"}},
	}
	assert.Equal(t, "A|B|C", f.DatumSequence())

	assert.Empty(t, (&FeatureControlFrame{}).DatumSequence())
}
