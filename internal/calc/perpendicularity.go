package calc

import "github.com/framecheck/framecheck/internal/model"

// calculatePerpendicularity implements the perpendicularity formula set.
// The zone is cylindrical when the diameter modifier is present (axis
// control) and two parallel planes otherwise (surface control). When the
// diameter modifier and a material condition modifier are both in force,
// the same bonus mechanics as position apply.
func calculatePerpendicularity(in Input) (*Result, error) {
	if err := requirePositiveTolerance(in); err != nil {
		return nil, err
	}

	result := &Result{
		Characteristic:  model.CharacteristicPerpendicularity,
		Unit:            in.Unit,
		ZoneShape:       ZoneParallelPlanes,
		StatedTolerance: in.ToleranceValue,
	}
	if !in.Diameter {
		return result, nil
	}
	result.ZoneShape = ZoneCylindrical

	if in.Size == nil {
		return result, nil
	}
	limits, err := Limits(in.FeatureType, in.Size)
	if err != nil {
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
	}

	return result, nil
}
