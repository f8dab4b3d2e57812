package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"agrivision-service/internal/config"
	"agrivision-service/internal/imaging"
	"agrivision-service/internal/models"
	"agrivision-service/internal/repository"

	"github.com/spf13/cobra"
)

func newClassifyCmd() *cobra.Command {
	var appendLog bool

	cmd := &cobra.Command{
		Use:   "classify <image>",
		Short: "Classify a leaf photo from the command line",
		Example: `  agrivision classify leaf.jpg
  agrivision classify --log leaf.png  # also append the result to the history log`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd.Context(), args[0], appendLog)
		},
	}

	cmd.Flags().BoolVarP(&appendLog, "log", "l", false, "Append the result to the scan history log")

	return cmd
}

func runClassify(ctx context.Context, path string, appendLog bool) error {
	cfg := config.New()

	clf := newClassifier(cfg)
	if err := clf.Ready(); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, err := imaging.Decode(f)
	if err != nil {
		return err
	}

	prediction, err := clf.Classify(ctx, imaging.Preprocess(img))
	if err != nil {
		return err
	}

	fmt.Printf("Disease:    %s\n", prediction.Label)
	fmt.Printf("Confidence: %s\n", prediction.ConfidencePercent())

	if appendLog {
		scanLog := repository.NewScanLogRepository(cfg.LogFilesCfg.HistoryLogPath)
		if err := scanLog.Append(models.NewScanRecord(prediction, time.Now())); err != nil {
			return fmt.Errorf("failed to append scan log: %w", err)
		}
		fmt.Printf("Logged to %s\n", cfg.LogFilesCfg.HistoryLogPath)
	}
	return nil
}
