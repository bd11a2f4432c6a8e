package main

import (
	"encoding/json"
	"fmt"

	"github.com/framecheck/framecheck/internal/cli"
	"github.com/framecheck/framecheck/internal/common"
	"github.com/framecheck/framecheck/internal/model"
	"github.com/framecheck/framecheck/internal/rules"
	"github.com/spf13/cobra"
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Schema-check and rule-validate a frame",
		Long: `Run the schema check and the ASME Y14.5 rule set on a frame without
calculation or extraction.

Examples:
  framecheck validate --frame @frame.json
  framecheck validate --frame '{"characteristic":"flatness","tolerance":{"value":0.05}}'`,
		RunE: runValidate,
	}

	cmd.Flags().StringP("frame", "f", "", "frame JSON, or @path to a JSON file")
	cmd.Flags().StringP("output", "o", "pretty", "output format (pretty, json)")
	_ = cmd.MarkFlagRequired("frame")

	return cmd
}

func runValidate(cmd *cobra.Command, _ []string) error {
	frameArg, _ := cmd.Flags().GetString("frame")
	output, _ := cmd.Flags().GetString("output")

	frameJSON, err := readFrameArg(frameArg)
	if err != nil {
		return err
	}

	frame, err := model.ParseFrame(frameJSON)
	if err != nil {
		return common.NewUserError("frame is structurally invalid", err)
	}

	report := rules.Validate(frame)

	if output == "json" {
		data, marshalErr := json.MarshalIndent(report, "", "  ")
		if marshalErr != nil {
			return fmt.Errorf("failed to render report: %w", marshalErr)
		}
		fmt.Println(string(data))
	} else {
		fmt.Print(cli.RenderReport(&report))
	}

	if !report.Valid {
		return fmt.Errorf("frame is non-compliant")
	}
	return nil
}
