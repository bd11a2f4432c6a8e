package extract

import (
	"fmt"
	"sort"
	"strings"
)

const extractionSystemPrompt = `You are a GD&T feature control frame reader. ` +
	`You read engineering drawings and free-text tolerance callouts and emit ` +
	`structured JSON. Respond only with JSON in the exact shape requested; no prose.`

const explanationSystemPrompt = `You are a GD&T tutor explaining feature control ` +
	`frames to mechanical engineers. Respond only with JSON in the exact shape requested.`

// buildExtractionPrompt renders the instruction block shared by both
// providers. The response contract mirrors service.ExtractionResult.
func buildExtractionPrompt(input ExtractionInput) string {
	var b strings.Builder

	b.WriteString("Read the feature control frame and respond with JSON of this exact shape:\n")
	b.WriteString(`{"fcf": {"characteristic": "position|flatness|perpendicularity|profile", ` +
		`"featureType": "hole|pin|slot|boss|surface", "sourceUnit": "mm|inch", ` +
		`"tolerance": {"value": 0.0, "diameter": false, "materialCondition": "MMC|LMC|RFS"}, ` +
		`"datums": [{"id": "A"}], "size": {"nominal": 0.0, "tolerancePlus": 0.0, "toleranceMinus": 0.0}}, ` +
		`"parseConfidence": 0.0, "notes": []}` + "\n\n")
	b.WriteString("Rules:\n")
	b.WriteString("- parseConfidence is your own confidence in the reading, between 0 and 1.\n")
	b.WriteString("- Omit any field you cannot read; never invent values.\n")
	b.WriteString("- Preserve datum order exactly as written: primary, secondary, tertiary.\n")
	b.WriteString("- Put anything ambiguous into notes.\n")

	if input.Text != "" {
		b.WriteString("\nCallout text:\n")
		b.WriteString(input.Text)
		b.WriteString("\n")
	}

	if len(input.Hints) > 0 {
		keys := make([]string, 0, len(input.Hints))
		for k := range input.Hints {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("\nHints from the caller:\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "- %s: %s\n", k, input.Hints[k])
		}
	}

	return b.String()
}

// buildExplanationPrompt renders the explanation request. The payload is the
// already-serialized interpretation material.
func buildExplanationPrompt(frameJSON, validationJSON, calcJSON []byte) string {
	var b strings.Builder

	b.WriteString("Explain this feature control frame interpretation in plain language ")
	b.WriteString("for a mechanical engineer. Respond with JSON of this exact shape:\n")
	b.WriteString(`{"explanation": "...", "warnings": []}` + "\n\n")
	b.WriteString("Frame:\n")
	b.Write(frameJSON)
	b.WriteString("\n")
	if len(validationJSON) > 0 {
		b.WriteString("\nValidation report:\n")
		b.Write(validationJSON)
		b.WriteString("\n")
	}
	if len(calcJSON) > 0 {
		b.WriteString("\nCalculation result:\n")
		b.Write(calcJSON)
		b.WriteString("\n")
	}
	b.WriteString("\nKeep the explanation under 200 words. Put caveats into warnings.")

	return b.String()
}
