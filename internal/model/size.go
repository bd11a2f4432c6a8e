package model

import (
	"errors"
	"fmt"
)

// SizeDimension is a toleranced size in canonical plus/minus form. It is a
// value object: constructed once from one of three input notations, then
// read-only for the rest of its life.
type SizeDimension struct {
	Nominal        float64 `json:"nominal"`
	TolerancePlus  float64 `json:"tolerancePlus"`
	ToleranceMinus float64 `json:"toleranceMinus"`
}

// NewSizeDimension builds a size from an asymmetric plus/minus tolerance.
func NewSizeDimension(nominal, plus, minus float64) (*SizeDimension, error) {
	s := &SizeDimension{Nominal: nominal, TolerancePlus: plus, ToleranceMinus: minus}
	if err := s.check(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewSymmetricSize builds a size from a symmetric ± tolerance.
func NewSymmetricSize(nominal, tol float64) (*SizeDimension, error) {
	return NewSizeDimension(nominal, tol, tol)
}

// NewSizeFromLimits builds a size from explicit upper and lower limits.
// The nominal is taken as the midpoint, so the canonical form is symmetric.
func NewSizeFromLimits(upper, lower float64) (*SizeDimension, error) {
	if upper < lower {
		return nil, fmt.Errorf("upper limit %v is below lower limit %v", upper, lower)
	}
	nominal := (upper + lower) / 2
	half := (upper - lower) / 2
	return NewSizeDimension(nominal, half, half)
}

// UpperLimit returns the largest permissible size.
func (s *SizeDimension) UpperLimit() float64 {
	return s.Nominal + s.TolerancePlus
}

// LowerLimit returns the smallest permissible size.
func (s *SizeDimension) LowerLimit() float64 {
	return s.Nominal - s.ToleranceMinus
}

// Contains reports whether an actual measured size conforms to the limits.
func (s *SizeDimension) Contains(actual float64) bool {
	return actual >= s.LowerLimit() && actual <= s.UpperLimit()
}

func (s *SizeDimension) check() error {
	if s.Nominal <= 0 {
		return errors.New("nominal size must be positive")
	}
	if s.TolerancePlus < 0 || s.ToleranceMinus < 0 {
		return errors.New("size tolerances must not be negative")
	}
	if s.LowerLimit() <= 0 {
		return errors.New("lower size limit must remain positive")
	}
	return nil
}
