// Package model defines the core domain models for feature control frames.
package model

import (
	"fmt"
	"strings"
)

// Characteristic identifies the geometric characteristic a frame controls.
type Characteristic string

// Geometric characteristic constants.
const (
	CharacteristicPosition         Characteristic = "position"
	CharacteristicFlatness         Characteristic = "flatness"
	CharacteristicPerpendicularity Characteristic = "perpendicularity"
	CharacteristicProfile          Characteristic = "profile"
	CharacteristicOther            Characteristic = "other"
)

// Characteristics lists every recognized characteristic. Dispatch sites
// switch over this closed set and must handle all members explicitly.
var Characteristics = []Characteristic{
	CharacteristicPosition,
	CharacteristicFlatness,
	CharacteristicPerpendicularity,
	CharacteristicProfile,
	CharacteristicOther,
}

// IsKnown reports whether c is a member of the closed characteristic set.
func (c Characteristic) IsKnown() bool {
	switch c {
	case CharacteristicPosition, CharacteristicFlatness,
		CharacteristicPerpendicularity, CharacteristicProfile,
		CharacteristicOther:
		return true
	default:
		return false
	}
}

// RequiresDatums reports whether the characteristic demands at least one
// datum reference (orientation and location tolerances).
func (c Characteristic) RequiresDatums() bool {
	return c == CharacteristicPosition || c == CharacteristicPerpendicularity
}

// IsForm reports whether the characteristic is a form tolerance. Form
// tolerances reference no datums and take no material condition modifiers.
func (c Characteristic) IsForm() bool {
	return c == CharacteristicFlatness
}

// FeatureType identifies the kind of feature the frame applies to.
type FeatureType string

// Feature type constants.
const (
	FeatureHole    FeatureType = "hole"
	FeaturePin     FeatureType = "pin"
	FeatureSlot    FeatureType = "slot"
	FeatureBoss    FeatureType = "boss"
	FeatureSurface FeatureType = "surface"
	FeatureOther   FeatureType = "other"
)

// IsInternal reports whether the feature is an internal feature of size
// (material surrounds the feature; MMC is the smallest permissible size).
func (f FeatureType) IsInternal() bool {
	return f == FeatureHole || f == FeatureSlot
}

// IsExternal reports whether the feature is an external feature of size
// (the feature is the material; MMC is the largest permissible size).
func (f FeatureType) IsExternal() bool {
	return f == FeaturePin || f == FeatureBoss
}

// IsFeatureOfSize reports whether the feature has opposing surfaces that
// define a size, making material condition modifiers meaningful.
func (f FeatureType) IsFeatureOfSize() bool {
	return f.IsInternal() || f.IsExternal()
}

// IsCylindrical reports whether a diameter zone is applicable to the feature.
func (f FeatureType) IsCylindrical() bool {
	return f == FeatureHole || f == FeaturePin || f == FeatureBoss
}

// MaterialCondition is a material condition modifier on a tolerance or datum.
type MaterialCondition string

// Material condition constants.
const (
	ConditionMMC MaterialCondition = "MMC"
	ConditionLMC MaterialCondition = "LMC"
	ConditionRFS MaterialCondition = "RFS"
)

// Unit is the measurement unit all numeric fields of a frame share.
type Unit string

// Unit constants.
const (
	UnitMM   Unit = "mm"
	UnitInch Unit = "inch"
)

// InputSource records how a frame entered the system. Provenance is always
// set explicitly by the acquiring code path, never inferred from content.
type InputSource string

// Input source constants.
const (
	SourceBuilder InputSource = "builder"
	SourceImage   InputSource = "image"
	SourceJSON    InputSource = "json"
)

// Tolerance is the tolerance compartment of a feature control frame.
type Tolerance struct {
	Value             float64           `json:"value"`
	Diameter          bool              `json:"diameter,omitempty"`
	MaterialCondition MaterialCondition `json:"materialCondition,omitempty"`
	Projected         bool              `json:"projected,omitempty"`
	ProjectedLength   float64           `json:"projectedLength,omitempty"`
}

// EffectiveMaterialCondition returns the material condition in force.
// Per ASME Y14.5, RFS applies by default when no modifier is stated.
func (t Tolerance) EffectiveMaterialCondition() MaterialCondition {
	if t.MaterialCondition == "" {
		return ConditionRFS
	}
	return t.MaterialCondition
}

// DatumReference is a single entry in the datum reference frame. Order in
// the containing slice carries meaning: primary, secondary, tertiary.
type DatumReference struct {
	ID                string            `json:"id"`
	MaterialCondition MaterialCondition `json:"materialCondition,omitempty"`
}

// ToleranceTier is one segment of a composite frame. The first tier locates
// the pattern; lower tiers refine it against a subset of the same datums.
type ToleranceTier struct {
	Tolerance Tolerance        `json:"tolerance"`
	Datums    []DatumReference `json:"datums,omitempty"`
}

// Source is the provenance tag of a frame.
type Source struct {
	InputType InputSource `json:"inputType"`
}

// FeatureControlFrame is the canonical in-memory form of a GD&T feature
// control frame. Once parsed it is treated as immutable by every consumer:
// validation and calculation read it and never write it.
type FeatureControlFrame struct {
	Name           string           `json:"name,omitempty"`
	Characteristic Characteristic   `json:"characteristic,omitempty"`
	FeatureType    FeatureType      `json:"featureType,omitempty"`
	SourceUnit     Unit             `json:"sourceUnit,omitempty"`
	Tolerance      Tolerance        `json:"tolerance"`
	Datums         []DatumReference `json:"datums,omitempty"`
	Composite      []ToleranceTier  `json:"composite,omitempty"`
	Size           *SizeDimension   `json:"size,omitempty"`
	Source         Source           `json:"source"`
}

// IsComposite reports whether the frame carries composite tiers.
func (f *FeatureControlFrame) IsComposite() bool {
	return len(f.Composite) > 0
}

// Clone returns a deep copy of the frame. Consumers that must not share
// slices with the original copy first.
func (f *FeatureControlFrame) Clone() *FeatureControlFrame {
	if f == nil {
		return nil
	}
	out := *f
	if f.Datums != nil {
		out.Datums = make([]DatumReference, len(f.Datums))
		copy(out.Datums, f.Datums)
	}
	if f.Composite != nil {
		out.Composite = make([]ToleranceTier, len(f.Composite))
		for i, tier := range f.Composite {
			out.Composite[i] = tier
			if tier.Datums != nil {
				out.Composite[i].Datums = make([]DatumReference, len(tier.Datums))
				copy(out.Composite[i].Datums, tier.Datums)
			}
		}
	}
	if f.Size != nil {
		size := *f.Size
		out.Size = &size
	}
	return &out
}

// DatumSequence returns the datum IDs in reference order, e.g. "A|B|C".
func (f *FeatureControlFrame) DatumSequence() string {
	ids := make([]string, len(f.Datums))
	for i, d := range f.Datums {
		ids[i] = d.ID
	}
	return strings.Join(ids, "|")
}

func validMaterialCondition(mc MaterialCondition) bool {
	switch mc {
	case "", ConditionMMC, ConditionLMC, ConditionRFS:
		return true
	default:
		return false
	}
}

func validDatumID(id string) bool {
	if len(id) != 1 {
		return false
	}
	return id[0] >= 'A' && id[0] <= 'Z'
}

// checkStructure verifies structural conformance: recognized enum values,
// positive tolerance value, well-formed datum identifiers. Semantic rule
// compliance (datum requirements, modifier legality) is the rule engine's
// job and is deliberately not checked here; in particular a missing
// characteristic is structurally acceptable so the rule engine can report
// it as an issue instead of the parser rejecting the frame outright.
func (f *FeatureControlFrame) checkStructure() *ParseError {
	switch f.SourceUnit {
	case "", UnitMM, UnitInch:
	default:
		return &ParseError{Path: "sourceUnit", Reason: fmt.Sprintf("unrecognized unit %q", f.SourceUnit)}
	}
	if f.Tolerance.Value < 0 {
		return &ParseError{Path: "tolerance.value", Reason: "tolerance value must not be negative"}
	}
	if f.Tolerance.Value == 0 && !f.IsComposite() {
		return &ParseError{Path: "tolerance.value", Reason: "tolerance value is required and must be positive"}
	}
	if !validMaterialCondition(f.Tolerance.MaterialCondition) {
		return &ParseError{Path: "tolerance.materialCondition", Reason: fmt.Sprintf("unrecognized material condition %q", f.Tolerance.MaterialCondition)}
	}
	if f.Tolerance.ProjectedLength < 0 {
		return &ParseError{Path: "tolerance.projectedLength", Reason: "projected length must not be negative"}
	}
	for i, d := range f.Datums {
		if !validDatumID(d.ID) {
			return &ParseError{Path: fmt.Sprintf("datums[%d].id", i), Reason: fmt.Sprintf("datum id must be a single letter A-Z, got %q", d.ID)}
		}
		if !validMaterialCondition(d.MaterialCondition) {
			return &ParseError{Path: fmt.Sprintf("datums[%d].materialCondition", i), Reason: fmt.Sprintf("unrecognized material condition %q", d.MaterialCondition)}
		}
	}
	for i, tier := range f.Composite {
		if tier.Tolerance.Value < 0 {
			return &ParseError{Path: fmt.Sprintf("composite[%d].tolerance.value", i), Reason: "tier tolerance value must not be negative"}
		}
		for j, d := range tier.Datums {
			if !validDatumID(d.ID) {
				return &ParseError{Path: fmt.Sprintf("composite[%d].datums[%d].id", i, j), Reason: fmt.Sprintf("datum id must be a single letter A-Z, got %q", d.ID)}
			}
		}
	}
	if f.Size != nil {
		if err := f.Size.check(); err != nil {
			return &ParseError{Path: "size", Reason: err.Error()}
		}
	}
	return nil
}
