package calc

import "github.com/framecheck/framecheck/internal/model"

// calculatePosition implements the position tolerance formula set.
//
// Stated tolerance is taken directly from the frame. When an MMC or LMC
// modifier is in force and both the size limits and an actual measured size
// are available, bonus tolerance is the departure of the actual size from
// the modifier's boundary, and total allowable tolerance is stated plus
// bonus. Virtual condition is derived from the size limits alone: for an
// internal feature the gage pin is MMC minus the stated tolerance; for an
// external feature the gage hole is MMC plus the stated tolerance.
func calculatePosition(in Input) (*Result, error) {
	if err := requirePositiveTolerance(in); err != nil {
		return nil, err
	}

	result := &Result{
		Characteristic:  model.CharacteristicPosition,
		Unit:            in.Unit,
		ZoneShape:       ZoneParallelPlanes,
		StatedTolerance: in.ToleranceValue,
	}
	if in.Diameter {
		result.ZoneShape = ZoneCylindrical
	}

	if in.Size == nil {
		return result, nil
	}

	limits, err := Limits(in.FeatureType, in.Size)
	if err != nil {
		// Size supplied for a non-size feature: the rule engine reports the
		// semantic violation; the calculator stops at the stated zone.
		result.Notes = append(result.Notes, err.Error())
		return result, nil
	}
	result.SizeLimits = &limits

	vc := virtualCondition(in.FeatureType, limits.MMC, in.ToleranceValue)
	result.VirtualCondition = &vc

	if bonus, ok := bonusTolerance(in, limits); ok {
		total := in.ToleranceValue + bonus
		result.BonusTolerance = &bonus
		result.TotalAllowable = &total
		if in.ActualSize != nil && !in.Size.Contains(*in.ActualSize) {
			result.Notes = append(result.Notes,
				"actual size is outside the size limits; the feature does not conform regardless of position")
		}
	}

	return result, nil
}

// virtualCondition combines the MMC boundary with the stated geometric
// tolerance: subtractively for internal features, additively for external.
func virtualCondition(featureType model.FeatureType, mmc, stated float64) float64 {
	if featureType.IsInternal() {
		return mmc - stated
	}
	return mmc + stated
}

// bonusTolerance computes the extra tolerance earned by departure from the
// material condition boundary. It requires a modifier other than RFS and a
// measured actual size; otherwise no bonus applies and ok is false.
func bonusTolerance(in Input, limits SizeLimits) (float64, bool) {
	if in.ActualSize == nil {
		return 0, false
	}
	var boundary float64
	switch in.MaterialCondition {
	case model.ConditionMMC:
		boundary = limits.MMC
	case model.ConditionLMC:
		boundary = limits.LMC
	default:
		return 0, false
	}
	departure := *in.ActualSize - boundary
	if departure < 0 {
		departure = -departure
	}
	return departure, true
}
