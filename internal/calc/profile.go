package calc

import (
	"fmt"

	"github.com/framecheck/framecheck/internal/model"
)

// calculateProfile implements the profile-of-a-surface formula set. The
// zone is an offset band around the true profile: split evenly for a
// bilateral band, or entirely to one side for a unilateral one. Bonus
// tolerance is intentionally not computed for profile in this version;
// callers get the stated zone only.
func calculateProfile(in Input) (*Result, error) {
	if err := requirePositiveTolerance(in); err != nil {
		return nil, err
	}

	dist := in.ProfileDistribution
	if dist == "" {
		dist = ProfileBilateral
	}

	var outer, inner float64
	switch dist {
	case ProfileBilateral:
		outer = in.ToleranceValue / 2
		inner = in.ToleranceValue / 2
	case ProfileUnilateralOutside:
		outer = in.ToleranceValue
	case ProfileUnilateralInside:
		inner = in.ToleranceValue
	default:
		return nil, fmt.Errorf("unrecognized profile distribution %q", dist)
	}

	return &Result{
		Characteristic:  model.CharacteristicProfile,
		Unit:            in.Unit,
		ZoneShape:       ZoneProfileBand,
		StatedTolerance: in.ToleranceValue,
		OuterOffset:     &outer,
		InnerOffset:     &inner,
	}, nil
}
