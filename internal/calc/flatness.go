package calc

import "github.com/framecheck/framecheck/internal/model"

// calculateFlatness implements the flatness formula set. The zone is the
// distance between two parallel planes bounding every point of the surface.
// Flatness earns no bonus tolerance and references no datums; the rule
// engine rejects frames that try.
func calculateFlatness(in Input) (*Result, error) {
	if err := requirePositiveTolerance(in); err != nil {
		return nil, err
	}

	return &Result{
		Characteristic:  model.CharacteristicFlatness,
		Unit:            in.Unit,
		ZoneShape:       ZoneParallelPlanes,
		StatedTolerance: in.ToleranceValue,
	}, nil
}
