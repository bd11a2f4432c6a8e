package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/framecheck/framecheck/internal/cli"
	"github.com/framecheck/framecheck/internal/common"
	"github.com/framecheck/framecheck/internal/engine"
	"github.com/framecheck/framecheck/internal/model"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func interpretCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interpret",
		Short: "Interpret a feature control frame",
		Long: `Run the full interpretation pipeline on a frame.

The frame comes from exactly one source: a JSON payload (--frame, inline or
@file), a drawing image (--image), or a free-text callout (--text). Image and
text inputs require a configured extraction provider.

Examples:
  framecheck interpret --frame @frame.json
  framecheck interpret --frame '{"characteristic":"position",...}' --actual-size 9.98
  framecheck interpret --image https://example.com/drawing.png --explain
  framecheck interpret --text "position dia 0.1 MMC to A B C" --save`,
		RunE: runInterpret,
	}

	cmd.Flags().StringP("frame", "f", "", "frame JSON, or @path to a JSON file")
	cmd.Flags().String("image", "", "drawing image URL to extract a frame from")
	cmd.Flags().String("text", "", "free-text callout to extract a frame from")
	cmd.Flags().Float64("actual-size", 0, "actual measured feature size for bonus tolerance")
	cmd.Flags().Float64("nominal", 0, "nominal size, overriding the frame's size dimension")
	cmd.Flags().Float64("plus", 0, "plus size tolerance")
	cmd.Flags().Float64("minus", 0, "minus size tolerance")
	cmd.Flags().Bool("explain", false, "request a natural-language explanation")
	cmd.Flags().Bool("save", false, "save the interpretation to the history database")
	cmd.Flags().Float64("confidence-override", -1, "override the extraction parse confidence (0-1)")
	cmd.Flags().String("correlation-id", "", "correlation ID to tag the interpretation with")
	cmd.Flags().StringP("output", "o", "pretty", "output format (pretty, json)")

	_ = viper.BindPFlag("interpret.output", cmd.Flags().Lookup("output"))

	return cmd
}

func runInterpret(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	frameArg, _ := cmd.Flags().GetString("frame")
	imageURL, _ := cmd.Flags().GetString("image")
	text, _ := cmd.Flags().GetString("text")
	explain, _ := cmd.Flags().GetBool("explain")
	save, _ := cmd.Flags().GetBool("save")
	override, _ := cmd.Flags().GetFloat64("confidence-override")
	correlationID, _ := cmd.Flags().GetString("correlation-id")

	frameJSON, err := readFrameArg(frameArg)
	if err != nil {
		return err
	}
	if len(frameJSON) == 0 && imageURL == "" && text == "" {
		return fmt.Errorf("one of --frame, --image, or --text is required")
	}

	req := engine.Request{
		FCF:             frameJSON,
		ImageURL:        imageURL,
		Text:            text,
		CorrelationID:   correlationID,
		WantExplanation: explain,
	}
	if override >= 0 {
		req.ParseConfidenceOverride = &override
	}
	if cmd.Flags().Changed("actual-size") || cmd.Flags().Changed("nominal") {
		req.CalculationInput = &engine.CalculationInput{
			Characteristic: peekCharacteristic(frameJSON),
		}
		if cmd.Flags().Changed("actual-size") {
			actual, _ := cmd.Flags().GetFloat64("actual-size")
			req.CalculationInput.ActualSize = &actual
		}
		if cmd.Flags().Changed("nominal") {
			nominal, _ := cmd.Flags().GetFloat64("nominal")
			plus, _ := cmd.Flags().GetFloat64("plus")
			minus, _ := cmd.Flags().GetFloat64("minus")
			size, sizeErr := model.NewSizeDimension(nominal, plus, minus)
			if sizeErr != nil {
				return fmt.Errorf("invalid size dimension: %w", sizeErr)
			}
			req.CalculationInput.Size = size
		}
	}
	if req.CorrelationID == "" {
		req.CorrelationID = uuid.NewString()
	}

	interpreter, cleanup, err := newInterpreter()
	if err != nil {
		return err
	}
	defer cleanup()

	resp := interpreter.Interpret(ctx, req)

	if save && resp.Status == engine.StatusOK {
		if err := saveResponse(cmd, resp); err != nil {
			common.LogError(err, "Failed to save interpretation",
				common.Fields{"correlation_id": resp.CorrelationID})
		}
	}

	return printResponse(resp)
}

// peekCharacteristic reads just the characteristic field of a direct frame
// payload so a calculation input can be formed before the schema stage runs.
// For extraction inputs it returns empty, which the engine treats as "apply
// to whatever frame is acquired".
func peekCharacteristic(frameJSON []byte) model.Characteristic {
	if len(frameJSON) == 0 {
		return ""
	}
	var peek struct {
		Characteristic model.Characteristic `json:"characteristic"`
	}
	if err := json.Unmarshal(frameJSON, &peek); err != nil {
		return ""
	}
	return peek.Characteristic
}

func saveResponse(cmd *cobra.Command, resp *engine.Response) error {
	rec, err := engine.Record(uuid.NewString(), resp)
	if err != nil {
		return err
	}

	db, err := openStorage()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("Failed to close database", "error", closeErr)
		}
	}()

	if err := db.Migrate(cmd.Context()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := db.SaveInterpretation(cmd.Context(), rec); err != nil {
		return err
	}
	fmt.Println(cli.FormatSuccess("saved interpretation " + rec.ID))
	return nil
}

func printResponse(resp *engine.Response) error {
	if viper.GetString("interpret.output") == "json" {
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to render response: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}
	fmt.Print(cli.RenderResponse(resp))
	return nil
}
