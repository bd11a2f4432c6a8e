package calc

import (
	"errors"
	"fmt"

	"github.com/framecheck/framecheck/internal/model"
)

// ErrUnsupportedCharacteristic is returned when the dispatcher receives a
// characteristic no calculator handles. Callers must treat this as a
// contract violation, not an empty result.
var ErrUnsupportedCharacteristic = errors.New("no calculator for characteristic")

// ProfileDistribution describes how a profile tolerance band is split
// around the true profile.
type ProfileDistribution string

// Profile band distributions.
const (
	ProfileBilateral         ProfileDistribution = "bilateral"
	ProfileUnilateralOutside ProfileDistribution = "unilateral-outside"
	ProfileUnilateralInside  ProfileDistribution = "unilateral-inside"
)

// Input carries everything a calculator may need. Fields beyond the
// tolerance itself are optional; each calculator documents which drive
// which result fields.
type Input struct {
	Characteristic      model.Characteristic    `json:"characteristic"`
	FeatureType         model.FeatureType       `json:"featureType,omitempty"`
	Unit                model.Unit              `json:"unit,omitempty"`
	ToleranceValue      float64                 `json:"toleranceValue"`
	Diameter            bool                    `json:"diameter,omitempty"`
	MaterialCondition   model.MaterialCondition `json:"materialCondition,omitempty"`
	Size                *model.SizeDimension    `json:"size,omitempty"`
	ActualSize          *float64                `json:"actualSize,omitempty"`
	ProfileDistribution ProfileDistribution     `json:"profileDistribution,omitempty"`
}

// InputFromFrame builds a calculation input from a frame plus the measured
// values the frame itself does not carry.
func InputFromFrame(f *model.FeatureControlFrame, actualSize *float64) Input {
	return Input{
		Characteristic:    f.Characteristic,
		FeatureType:       f.FeatureType,
		Unit:              f.SourceUnit,
		ToleranceValue:    f.Tolerance.Value,
		Diameter:          f.Tolerance.Diameter,
		MaterialCondition: f.Tolerance.EffectiveMaterialCondition(),
		Size:              f.Size,
		ActualSize:        actualSize,
	}
}

// ZoneShape describes the geometry of a tolerance zone.
type ZoneShape string

// Zone shapes.
const (
	ZoneCylindrical    ZoneShape = "cylindrical"
	ZoneParallelPlanes ZoneShape = "parallel-planes"
	ZoneProfileBand    ZoneShape = "profile-band"
)

// Result is a characteristic-specific calculation outcome. Pointer fields
// are present only when their preconditions held; a nil field is a valid
// state meaning "not applicable to this input", never a computation bug.
type Result struct {
	Characteristic   model.Characteristic `json:"characteristic"`
	Unit             model.Unit           `json:"unit,omitempty"`
	ZoneShape        ZoneShape            `json:"zoneShape"`
	StatedTolerance  float64              `json:"statedTolerance"`
	BonusTolerance   *float64             `json:"bonusTolerance,omitempty"`
	TotalAllowable   *float64             `json:"totalAllowableTolerance,omitempty"`
	VirtualCondition *float64             `json:"virtualCondition,omitempty"`
	SizeLimits       *SizeLimits          `json:"sizeLimits,omitempty"`
	OuterOffset      *float64             `json:"outerOffset,omitempty"`
	InnerOffset      *float64             `json:"innerOffset,omitempty"`
	Notes            []string             `json:"notes,omitempty"`
}

// Calculate dispatches to the calculator for the input's characteristic.
// The switch is exhaustive over the closed characteristic set; "other" and
// anything unrecognized fail loudly rather than falling through to a zero
// result.
func Calculate(in Input) (*Result, error) {
	switch in.Characteristic {
	case model.CharacteristicPosition:
		return calculatePosition(in)
	case model.CharacteristicFlatness:
		return calculateFlatness(in)
	case model.CharacteristicPerpendicularity:
		return calculatePerpendicularity(in)
	case model.CharacteristicProfile:
		return calculateProfile(in)
	case model.CharacteristicOther:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCharacteristic, in.Characteristic)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCharacteristic, in.Characteristic)
	}
}

func requirePositiveTolerance(in Input) error {
	if in.ToleranceValue <= 0 {
		return fmt.Errorf("tolerance value must be positive, got %v", in.ToleranceValue)
	}
	return nil
}
