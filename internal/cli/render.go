package cli

import (
	"fmt"
	"strings"

	"github.com/framecheck/framecheck/internal/calc"
	"github.com/framecheck/framecheck/internal/engine"
	"github.com/framecheck/framecheck/internal/rules"
)

// RenderReport renders a validation report for the terminal.
func RenderReport(report *rules.Report) string {
	var b strings.Builder

	if report.Valid {
		b.WriteString(FormatSuccess("frame is compliant") + "\n")
	} else {
		b.WriteString(FormatError(fmt.Sprintf("frame is non-compliant (%d error(s))", report.Summary.ErrorCount)) + "\n")
	}

	for _, issue := range report.Issues {
		line := fmt.Sprintf("[%s] %s", issue.Code, issue.Message)
		switch issue.Severity {
		case rules.SeverityError:
			b.WriteString("  " + ErrorStyle.Render(line) + "\n")
		case rules.SeverityWarning:
			b.WriteString("  " + WarningStyle.Render(line) + "\n")
		}
		if issue.Suggestion != "" {
			b.WriteString("    " + SubtleStyle.Render("fix: "+issue.Suggestion) + "\n")
		}
	}

	return b.String()
}

// RenderCalc renders a calculation result for the terminal.
func RenderCalc(result *calc.Result) string {
	var b strings.Builder

	b.WriteString(BoldStyle.Render(string(result.Characteristic)) + "\n")
	b.WriteString(fmt.Sprintf("  zone: %s\n", result.ZoneShape))
	b.WriteString(fmt.Sprintf("  stated tolerance: %s\n", formatValue(result.StatedTolerance, result)))

	if result.SizeLimits != nil {
		b.WriteString(fmt.Sprintf("  MMC: %s  LMC: %s\n",
			formatValue(result.SizeLimits.MMC, result),
			formatValue(result.SizeLimits.LMC, result)))
	}
	if result.BonusTolerance != nil {
		b.WriteString(fmt.Sprintf("  bonus tolerance: %s\n", formatValue(*result.BonusTolerance, result)))
	}
	if result.TotalAllowable != nil {
		b.WriteString(fmt.Sprintf("  total allowable: %s\n", formatValue(*result.TotalAllowable, result)))
	}
	if result.VirtualCondition != nil {
		b.WriteString(fmt.Sprintf("  virtual condition: %s\n", formatValue(*result.VirtualCondition, result)))
	}
	if result.OuterOffset != nil && result.InnerOffset != nil {
		b.WriteString(fmt.Sprintf("  band: +%s / -%s about true profile\n",
			formatValue(*result.OuterOffset, result),
			formatValue(*result.InnerOffset, result)))
	}
	for _, note := range result.Notes {
		b.WriteString("  " + FormatWarning(note) + "\n")
	}

	return b.String()
}

// RenderResponse renders a full interpretation response for the terminal.
func RenderResponse(resp *engine.Response) string {
	var b strings.Builder

	if resp.Status != engine.StatusOK {
		b.WriteString(FormatError(fmt.Sprintf("%s at %s stage: %s", resp.Status, resp.Stage, resp.Message)) + "\n")
		return b.String()
	}

	if resp.FCF != nil {
		title := string(resp.FCF.Characteristic)
		if resp.FCF.Name != "" {
			title = resp.FCF.Name + " (" + title + ")"
		}
		b.WriteString(FormatTitle(title) + "\n")
		if seq := resp.FCF.DatumSequence(); seq != "" {
			b.WriteString(SubtleStyle.Render("datums: |"+seq+"|") + "\n")
		}
	}

	if resp.Validation != nil {
		b.WriteString(RenderReport(resp.Validation))
	}
	if resp.CalcResult != nil && resp.CalcResult.Result != nil {
		b.WriteString(RenderCalc(resp.CalcResult.Result))
	}
	if resp.CalcFailure != "" {
		b.WriteString(FormatWarning("calculation: "+resp.CalcFailure) + "\n")
	}
	if resp.Explanation != nil {
		b.WriteString("\n" + resp.Explanation.Explanation + "\n")
		for _, w := range resp.Explanation.Warnings {
			b.WriteString(FormatWarning(w) + "\n")
		}
	}

	b.WriteString("\n" + renderConfidence(resp.Confidence) + "\n")
	return b.String()
}

func renderConfidence(c engine.Confidence) string {
	label := "confidence: " + string(c)
	switch c {
	case engine.ConfidenceHigh:
		return SuccessStyle.Render(label)
	case engine.ConfidenceMedium:
		return WarningStyle.Render(label)
	case engine.ConfidenceLow:
		return ErrorStyle.Render(label)
	default:
		return SubtleStyle.Render(label)
	}
}

func formatValue(v float64, result *calc.Result) string {
	if result.Unit != "" {
		return fmt.Sprintf("%.4g %s", v, result.Unit)
	}
	return fmt.Sprintf("%.4g", v)
}
