package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/framecheck/framecheck/internal/cli"
	"github.com/framecheck/framecheck/internal/common"
	"github.com/framecheck/framecheck/internal/config"
	"github.com/framecheck/framecheck/internal/engine"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Interpret a file of requests",
		Long: `Interpret every request in a JSON file (an array of interpret request
objects) and print a summary. Use --save to record each interpretation in
the history database.

Examples:
  framecheck batch frames.json
  framecheck batch frames.json --save --output json`,
		Args: cobra.ExactArgs(1),
		RunE: runBatch,
	}

	cmd.Flags().Bool("save", false, "save each interpretation to the history database")
	cmd.Flags().StringP("output", "o", "summary", "output format (summary, json)")

	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	save, _ := cmd.Flags().GetBool("save")
	output, _ := cmd.Flags().GetString("output")

	data, err := os.ReadFile(config.ExpandPath(args[0]))
	if err != nil {
		return fmt.Errorf("failed to read batch file: %w", err)
	}

	var requests []engine.Request
	if err := json.Unmarshal(data, &requests); err != nil {
		return fmt.Errorf("failed to parse batch file: %w", err)
	}
	if len(requests) == 0 {
		return fmt.Errorf("batch file contains no requests")
	}

	interpreter, cleanup, err := newInterpreter()
	if err != nil {
		return err
	}
	defer cleanup()

	responses := make([]*engine.Response, 0, len(requests))
	bar := progressbar.NewOptions(len(requests),
		progressbar.OptionSetDescription("interpreting"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	for _, req := range requests {
		resp := interpreter.Interpret(ctx, req)
		responses = append(responses, resp)
		_ = bar.Add(1)

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	_ = bar.Finish()

	if save {
		if err := saveBatch(cmd, responses); err != nil {
			common.LogError(err, "Failed to save batch results",
				common.Fields{"requests": len(requests)})
		}
	}
	common.LogInfo("batch completed", common.Fields{"requests": len(requests)})

	if output == "json" {
		out, marshalErr := json.MarshalIndent(responses, "", "  ")
		if marshalErr != nil {
			return fmt.Errorf("failed to render responses: %w", marshalErr)
		}
		fmt.Println(string(out))
		return nil
	}

	printBatchSummary(responses)
	return nil
}

func saveBatch(cmd *cobra.Command, responses []*engine.Response) error {
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

	for _, resp := range responses {
		if resp.Status != engine.StatusOK {
			continue
		}
		rec, recErr := engine.Record(uuid.NewString(), resp)
		if recErr != nil {
			return recErr
		}
		if saveErr := db.SaveInterpretation(cmd.Context(), rec); saveErr != nil {
			return saveErr
		}
	}
	return nil
}

func printBatchSummary(responses []*engine.Response) {
	var ok, invalid, failed, compliant int
	for _, resp := range responses {
		switch resp.Status {
		case engine.StatusOK:
			ok++
			if resp.Validation != nil && resp.Validation.Valid {
				compliant++
			}
		case engine.StatusInvalid:
			invalid++
		case engine.StatusError:
			failed++
		}
	}

	fmt.Println(cli.FormatTitle(fmt.Sprintf("interpreted %d frame(s)", len(responses))))
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("%d interpreted, %d compliant", ok, compliant)))
	if invalid > 0 {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("%d structurally invalid", invalid)))
	}
	if failed > 0 {
		fmt.Println(cli.FormatError(fmt.Sprintf("%d failed (extraction or pipeline)", failed)))
	}
}
