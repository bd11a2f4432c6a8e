package engine

import "github.com/framecheck/framecheck/internal/rules"

// DefaultLowConfidenceThreshold is the parse confidence below which an
// extraction-sourced interpretation is marked low regardless of validation.
const DefaultLowConfidenceThreshold = 0.6

// DeriveConfidence computes the overall confidence tier from the validation
// report and the parse confidence, when extraction contributed one. It is a
// pure derivation recomputed at response-assembly time; confidence is never
// stored or mutated independently of its inputs, so the tier can never
// drift from the issue list it summarizes.
//
// Tiers:
//   - low: the report has at least one error, or parse confidence is below
//     the threshold
//   - medium: no errors but at least one warning
//   - high: otherwise
func DeriveConfidence(report *rules.Report, parseConfidence *float64, threshold float64) Confidence {
	if threshold <= 0 {
		threshold = DefaultLowConfidenceThreshold
	}

	if report != nil && report.Summary.ErrorCount > 0 {
		return ConfidenceLow
	}
	if parseConfidence != nil && *parseConfidence < threshold {
		return ConfidenceLow
	}
	if report != nil && report.Summary.WarningCount > 0 {
		return ConfidenceMedium
	}
	return ConfidenceHigh
}
