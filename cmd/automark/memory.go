package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var memoryResultsFlag int

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Search past campaigns",
}

var memorySearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find past campaigns similar to a query",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runMemorySearch,
}

func init() {
	memorySearchCmd.Flags().IntVar(&memoryResultsFlag, "results", 3, "Maximum number of results")
	memoryCmd.AddCommand(memorySearchCmd)
}

func runMemorySearch(cmd *cobra.Command, args []string) error {
	ws, cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	if !cfg.Memory.Enabled {
		return fmt.Errorf("campaign memory is disabled (set memory.enabled: true)")
	}
	mem, err := openMemory(ws, cfg, logger)
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	results, err := mem.SearchSimilar(cmd.Context(), query, memoryResultsFlag)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No similar campaigns found.")
		return nil
	}
	for i, r := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "%d. %s (similarity %.2f, %s)\n   %s\n",
			i+1, r.CampaignID, r.Similarity, r.Timestamp, r.Brief)
	}
	return nil
}
