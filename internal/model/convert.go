package model

import "fmt"

const mmPerInch = 25.4

// ConvertValue converts a single numeric value between units.
func ConvertValue(v float64, from, to Unit) (float64, error) {
	switch {
	case from == to:
		return v, nil
	case from == UnitMM && to == UnitInch:
		return v / mmPerInch, nil
	case from == UnitInch && to == UnitMM:
		return v * mmPerInch, nil
	default:
		return 0, fmt.Errorf("unsupported unit conversion %q to %q", from, to)
	}
}

// ConvertFrame returns a copy of the frame with every numeric field
// expressed in the target unit. The input frame is not modified.
func ConvertFrame(f *FeatureControlFrame, to Unit) (*FeatureControlFrame, error) {
	from := f.SourceUnit
	if from == "" {
		from = UnitMM
	}
	if _, err := ConvertValue(1, from, to); err != nil {
		return nil, err
	}

	out := f.Clone()
	out.SourceUnit = to
	if from == to {
		return out, nil
	}

	conv := func(v float64) float64 {
		c, _ := ConvertValue(v, from, to)
		return c
	}
	out.Tolerance.Value = conv(out.Tolerance.Value)
	out.Tolerance.ProjectedLength = conv(out.Tolerance.ProjectedLength)
	for i := range out.Composite {
		out.Composite[i].Tolerance.Value = conv(out.Composite[i].Tolerance.Value)
		out.Composite[i].Tolerance.ProjectedLength = conv(out.Composite[i].Tolerance.ProjectedLength)
	}
	if out.Size != nil {
		out.Size = &SizeDimension{
			Nominal:        conv(out.Size.Nominal),
			TolerancePlus:  conv(out.Size.TolerancePlus),
			ToleranceMinus: conv(out.Size.ToleranceMinus),
		}
	}
	return out, nil
}
