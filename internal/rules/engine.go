package rules

import (
	"fmt"

	"github.com/framecheck/framecheck/internal/model"
)

// Validate applies every compliance rule to the frame and returns the full
// report. All rules run on every call; the report is identical regardless of
// evaluation order, and the frame is never modified.
func Validate(f *model.FeatureControlFrame) Report {
	var issues []Issue

	issues = append(issues, checkCharacteristic(f)...)
	issues = append(issues, checkMaterialConditions(f)...)
	issues = append(issues, checkDatums(f)...)
	issues = append(issues, checkModifiers(f)...)
	issues = append(issues, checkComposite(f)...)
	issues = append(issues, checkAdvisories(f)...)

	report := Report{Issues: issues}
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			report.Summary.ErrorCount++
		case SeverityWarning:
			report.Summary.WarningCount++
		}
	}
	report.Valid = report.Summary.ErrorCount == 0
	if report.Issues == nil {
		report.Issues = []Issue{}
	}
	return report
}

// checkCharacteristic enforces E003. A characteristic of "other" means the
// input carried something the system does not recognize, which is reported
// the same way as an absent characteristic rather than crashing a dispatch.
func checkCharacteristic(f *model.FeatureControlFrame) []Issue {
	switch f.Characteristic {
	case model.CharacteristicPosition,
		model.CharacteristicFlatness,
		model.CharacteristicPerpendicularity,
		model.CharacteristicProfile:
		return nil
	case model.CharacteristicOther:
		return []Issue{{
			Code:       CodeMissingCharacteristic,
			Message:    "characteristic is not one of the supported geometric characteristics",
			Path:       "characteristic",
			Severity:   SeverityError,
			Suggestion: "use one of: position, flatness, perpendicularity, profile",
		}}
	default:
		return []Issue{{
			Code:       CodeMissingCharacteristic,
			Message:    "characteristic is required",
			Path:       "characteristic",
			Severity:   SeverityError,
			Suggestion: "set the geometric characteristic symbol for this frame",
		}}
	}
}

// checkMaterialConditions enforces E001 and E007.
func checkMaterialConditions(f *model.FeatureControlFrame) []Issue {
	var issues []Issue

	mc := f.Tolerance.MaterialCondition
	modifierStated := mc == model.ConditionMMC || mc == model.ConditionLMC

	if modifierStated && f.Characteristic.IsForm() {
		issues = append(issues, Issue{
			Code:       CodeIllegalMaterialCondition,
			Message:    fmt.Sprintf("%s does not permit a %s modifier", f.Characteristic, mc),
			Path:       "tolerance.materialCondition",
			Severity:   SeverityError,
			Suggestion: "remove the material condition modifier; form tolerances apply regardless of feature size",
		})
	}

	if modifierStated && f.FeatureType != "" && !f.FeatureType.IsFeatureOfSize() {
		issues = append(issues, Issue{
			Code:       CodeConditionOnNonSizeFeature,
			Message:    fmt.Sprintf("%s modifier requires a feature of size, but feature type is %q", mc, f.FeatureType),
			Path:       "featureType",
			Severity:   SeverityError,
			Suggestion: "material condition modifiers only apply to holes, pins, slots, and bosses",
		})
	}

	return issues
}

// checkDatums enforces E002 and E006.
func checkDatums(f *model.FeatureControlFrame) []Issue {
	var issues []Issue

	if f.Characteristic.IsForm() && len(f.Datums) > 0 {
		issues = append(issues, Issue{
			Code:       CodeDatumOnFormTolerance,
			Message:    fmt.Sprintf("%s is a form tolerance and must not reference datums", f.Characteristic),
			Path:       "datums",
			Severity:   SeverityError,
			Suggestion: "remove the datum references; form controls are evaluated against the feature itself",
		})
	}

	if f.Characteristic.RequiresDatums() && len(f.Datums) == 0 {
		issues = append(issues, Issue{
			Code:       CodeMissingDatum,
			Message:    fmt.Sprintf("%s requires at least one datum reference", f.Characteristic),
			Path:       "datums",
			Severity:   SeverityError,
			Suggestion: "add a datum reference frame, e.g. |A|B|C|",
		})
	}

	return issues
}

// checkModifiers enforces E005 and E008.
func checkModifiers(f *model.FeatureControlFrame) []Issue {
	var issues []Issue

	if f.Tolerance.Diameter && f.FeatureType != "" && !f.FeatureType.IsCylindrical() {
		issues = append(issues, Issue{
			Code:       CodeModifierFeatureMismatch,
			Message:    fmt.Sprintf("diameter zone modifier is incompatible with feature type %q", f.FeatureType),
			Path:       "tolerance.diameter",
			Severity:   SeverityError,
			Suggestion: "use a total-width zone for non-cylindrical features",
		})
	}

	if f.Tolerance.Projected && f.Tolerance.ProjectedLength <= 0 {
		issues = append(issues, Issue{
			Code:       CodeProjectedZoneUndeclared,
			Message:    "projected tolerance zone modifier is present without a projection length",
			Path:       "tolerance.projectedLength",
			Severity:   SeverityError,
			Suggestion: "declare the projected zone length alongside the modifier",
		})
	}

	return issues
}

// checkComposite enforces E004 and E009. A composite frame has two or more
// tiers; each lower tier repeats a leading subset of the first tier's datum
// sequence in the same order and refines (never loosens) the tolerance.
func checkComposite(f *model.FeatureControlFrame) []Issue {
	if !f.IsComposite() {
		return nil
	}

	if f.Characteristic != model.CharacteristicPosition {
		return []Issue{{
			Code:       CodeCompositeNotSupported,
			Message:    fmt.Sprintf("composite frames are only supported for position, not %s", orUnset(f.Characteristic)),
			Path:       "composite",
			Severity:   SeverityError,
			Suggestion: "split the tiers into independent single-segment frames",
		}}
	}

	var issues []Issue
	if len(f.Composite) < 2 {
		issues = append(issues, Issue{
			Code:       CodeMalformedComposite,
			Message:    "a composite frame requires at least two tiers",
			Path:       "composite",
			Severity:   SeverityError,
			Suggestion: "add the refinement tier or use a single-segment frame",
		})
		return issues
	}

	first := f.Composite[0]
	if first.Tolerance.Value <= 0 {
		issues = append(issues, Issue{
			Code:     CodeMalformedComposite,
			Message:  "composite tier 1 has no tolerance value",
			Path:     "composite[0].tolerance.value",
			Severity: SeverityError,
		})
	}

	for i, tier := range f.Composite[1:] {
		idx := i + 1
		if tier.Tolerance.Value <= 0 {
			issues = append(issues, Issue{
				Code:     CodeMalformedComposite,
				Message:  fmt.Sprintf("composite tier %d has no tolerance value", idx+1),
				Path:     fmt.Sprintf("composite[%d].tolerance.value", idx),
				Severity: SeverityError,
			})
			continue
		}
		if first.Tolerance.Value > 0 && tier.Tolerance.Value > first.Tolerance.Value {
			issues = append(issues, Issue{
				Code:       CodeMalformedComposite,
				Message:    fmt.Sprintf("composite tier %d tolerance %.4g is looser than tier 1 tolerance %.4g", idx+1, tier.Tolerance.Value, first.Tolerance.Value),
				Path:       fmt.Sprintf("composite[%d].tolerance.value", idx),
				Severity:   SeverityError,
				Suggestion: "lower tiers refine the pattern-locating tolerance and must be tighter",
			})
		}
		if !datumPrefix(first.Datums, tier.Datums) {
			issues = append(issues, Issue{
				Code:       CodeMalformedComposite,
				Message:    fmt.Sprintf("composite tier %d datum sequence does not repeat tier 1 datums in order", idx+1),
				Path:       fmt.Sprintf("composite[%d].datums", idx),
				Severity:   SeverityError,
				Suggestion: "lower tiers reference a leading subset of the tier 1 datum sequence",
			})
		}
	}

	return issues
}

// checkAdvisories produces the non-blocking warnings W101 and W102.
func checkAdvisories(f *model.FeatureControlFrame) []Issue {
	var issues []Issue

	if f.Tolerance.MaterialCondition == model.ConditionRFS {
		issues = append(issues, Issue{
			Code:       CodeRedundantRFS,
			Message:    "RFS is stated explicitly but is already the default condition",
			Path:       "tolerance.materialCondition",
			Severity:   SeverityWarning,
			Suggestion: "omit the RFS modifier",
		})
	}

	if len(f.Datums) > 3 {
		issues = append(issues, Issue{
			Code:       CodeExcessDatums,
			Message:    fmt.Sprintf("%d datum references exceed the primary/secondary/tertiary frame", len(f.Datums)),
			Path:       "datums",
			Severity:   SeverityWarning,
			Suggestion: "a datum reference frame needs at most three datums to constrain all degrees of freedom",
		})
	}

	return issues
}

// datumPrefix reports whether sub is a leading, same-order subset of full.
func datumPrefix(full, sub []model.DatumReference) bool {
	if len(sub) > len(full) {
		return false
	}
	for i, d := range sub {
		if d.ID != full[i].ID {
			return false
		}
	}
	return true
}

func orUnset(c model.Characteristic) string {
	if c == "" {
		return "an unset characteristic"
	}
	return string(c)
}
