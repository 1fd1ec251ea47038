package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"automark/internal/contextstore"
)

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Inspect or clear the campaign context",
}

var contextShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the campaign context as JSON",
	RunE:  runContextShow,
}

var contextClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Reset the campaign context",
	RunE:  runContextClear,
}

func init() {
	contextCmd.AddCommand(contextShowCmd)
	contextCmd.AddCommand(contextClearCmd)
}

func runContextShow(cmd *cobra.Command, _ []string) error {
	ws, _, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	store := contextstore.New(ws.ContextFile, logger)
	data, err := json.MarshalIndent(store.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode context: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func runContextClear(cmd *cobra.Command, _ []string) error {
	ws, _, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	store := contextstore.New(ws.ContextFile, logger)
	if err := store.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Campaign context cleared.")
	return nil
}
