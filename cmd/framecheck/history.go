package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/framecheck/framecheck/internal/cli"
	"github.com/framecheck/framecheck/internal/service"
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse saved interpretations",
	}
	cmd.AddCommand(historyListCmd())
	cmd.AddCommand(historyShowCmd())
	return cmd
}

func historyListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved interpretations",
		RunE:  runHistoryList,
	}
	cmd.Flags().String("characteristic", "", "filter by characteristic")
	cmd.Flags().String("status", "", "filter by status")
	cmd.Flags().Int("limit", 20, "maximum records to return")
	cmd.Flags().Int("offset", 0, "records to skip")
	return cmd
}

func historyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one saved interpretation",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryShow,
	}
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	characteristic, _ := cmd.Flags().GetString("characteristic")
	status, _ := cmd.Flags().GetString("status")
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")

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

	records, err := db.ListInterpretations(cmd.Context(), service.RecordFilter{
		Characteristic: characteristic,
		Status:         status,
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println(cli.SubtleStyle.Render("no saved interpretations"))
		return nil
	}

	for _, rec := range records {
		fmt.Printf("%s  %s  %-16s  %-7s  %s\n",
			rec.ID, formatTimestamp(rec.CreatedAt), rec.Characteristic, rec.Status, rec.Confidence)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
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

	rec, err := db.GetInterpretation(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	var pretty json.RawMessage = rec.Payload
	data, err := json.MarshalIndent(pretty, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render payload: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
