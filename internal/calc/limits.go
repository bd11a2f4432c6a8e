// Package calc implements the tolerance calculators mandated by ASME
// Y14.5-2018: bonus tolerance, virtual condition, and material condition
// boundary derivation. Every function here is pure: numeric inputs in,
// numeric results out, no state.
package calc

import (
	"fmt"

	"github.com/framecheck/framecheck/internal/model"
)

// SizeLimits holds the material condition boundaries of a feature of size.
type SizeLimits struct {
	MMC   float64 `json:"mmc"`
	LMC   float64 `json:"lmc"`
	Upper float64 `json:"upper"`
	Lower float64 `json:"lower"`
}

// materialDirection encodes which size limit is the maximum material
// condition for a feature class. Keeping this in one table instead of
// per-call-site conditionals is required: the MMC/LMC flip between internal
// and external features is the most common source of sign errors in
// tolerance work.
var materialDirection = map[model.FeatureType]struct{ mmcAtLower bool }{
	model.FeatureHole: {mmcAtLower: true},
	model.FeatureSlot: {mmcAtLower: true},
	model.FeaturePin:  {mmcAtLower: false},
	model.FeatureBoss: {mmcAtLower: false},
}

// Limits derives the MMC and LMC boundaries of a size dimension for the
// given feature type. For internal features (hole, slot) MMC is the smallest
// permissible size; for external features (pin, boss) it is the largest.
// Feature types that are not features of size have no material boundaries.
func Limits(featureType model.FeatureType, size *model.SizeDimension) (SizeLimits, error) {
	if size == nil {
		return SizeLimits{}, fmt.Errorf("size dimension is required to derive limits")
	}
	dir, ok := materialDirection[featureType]
	if !ok {
		return SizeLimits{}, fmt.Errorf("feature type %q is not a feature of size", featureType)
	}

	limits := SizeLimits{
		Upper: size.UpperLimit(),
		Lower: size.LowerLimit(),
	}
	if dir.mmcAtLower {
		limits.MMC = limits.Lower
		limits.LMC = limits.Upper
	} else {
		limits.MMC = limits.Upper
		limits.LMC = limits.Lower
	}
	return limits, nil
}
