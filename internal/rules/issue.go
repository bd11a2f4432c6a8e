// Package rules implements ASME Y14.5-2018 compliance checking for feature
// control frames. Validation is a pure function: it never mutates the frame
// and never stops at the first violation, so one response carries the
// complete set of problems.
package rules

// Code identifies a compliance rule. The enumeration is closed and
// externally documented; a retired code is never reused for a new rule.
type Code string

// Error rule codes.
const (
	// CodeIllegalMaterialCondition flags MMC/LMC on a characteristic that
	// forbids material condition modifiers (form tolerances).
	CodeIllegalMaterialCondition Code = "E001"
	// CodeDatumOnFormTolerance flags datum references on a form tolerance.
	CodeDatumOnFormTolerance Code = "E002"
	// CodeMissingCharacteristic flags a frame with no usable characteristic.
	CodeMissingCharacteristic Code = "E003"
	// CodeMalformedComposite flags composite tiers with inconsistent structure.
	CodeMalformedComposite Code = "E004"
	// CodeModifierFeatureMismatch flags a modifier incompatible with the
	// declared feature type.
	CodeModifierFeatureMismatch Code = "E005"
	// CodeMissingDatum flags a missing required datum reference.
	CodeMissingDatum Code = "E006"
	// CodeConditionOnNonSizeFeature flags a material condition applied to a
	// feature that is not a feature of size.
	CodeConditionOnNonSizeFeature Code = "E007"
	// CodeProjectedZoneUndeclared flags a projected tolerance zone modifier
	// without a matching length declaration.
	CodeProjectedZoneUndeclared Code = "E008"
	// CodeCompositeNotSupported flags composite structure on any
	// characteristic other than position.
	CodeCompositeNotSupported Code = "E009"
)

// Warning rule codes.
const (
	// CodeRedundantRFS flags an explicitly stated RFS modifier, which is
	// already the default per the standard.
	CodeRedundantRFS Code = "W101"
	// CodeExcessDatums flags more than three datum references.
	CodeExcessDatums Code = "W102"
)

// Severity classifies an issue. Errors make the frame non-compliant;
// warnings leave it usable downstream with reduced confidence.
type Severity string

// Severity constants.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one rule violation. Issues are accumulated in a report, never
// raised as Go errors.
type Issue struct {
	Code       Code     `json:"code"`
	Message    string   `json:"message"`
	Path       string   `json:"path"`
	Severity   Severity `json:"severity"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// Summary counts issues by severity.
type Summary struct {
	ErrorCount   int `json:"errorCount"`
	WarningCount int `json:"warningCount"`
}

// Report is the result of validating one frame.
type Report struct {
	Valid   bool    `json:"valid"`
	Issues  []Issue `json:"issues"`
	Summary Summary `json:"summary"`
}

// HasCode reports whether the report contains an issue with the given code.
func (r Report) HasCode(code Code) bool {
	for _, issue := range r.Issues {
		if issue.Code == code {
			return true
		}
	}
	return false
}
