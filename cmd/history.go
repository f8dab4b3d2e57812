package main

import (
	"fmt"

	"agrivision-service/internal/config"
	"agrivision-service/internal/repository"
	"agrivision-service/internal/services"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print the most recent scans from the history log",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", services.HistoryViewSize, "Number of rows to show")

	return cmd
}

func runHistory(limit int) error {
	if limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", limit)
	}
	cfg := config.New()

	entries, err := repository.NewScanLogRepository(cfg.LogFilesCfg.HistoryLogPath).Tail(limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No scans recorded yet.")
		return nil
	}

	fmt.Printf("%-19s  %-40s  %s\n", "Date", "Disease", "Confidence")
	for _, e := range entries {
		fmt.Printf("%-19s  %-40s  %s\n", e.Date, e.Disease, e.Confidence)
	}
	return nil
}
