/*
Package main is the entry point of the AgriVision service.

Usage:

	agrivision [command]

Available Commands:

	serve       Run the HTTP API
	classify    Classify a leaf photo from the command line
	history     Print the most recent scans from the history log
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "agrivision",
		Short: "Crop leaf disease detection with localized treatment advice",
		Long: `agrivision classifies crop leaf photos against a pretrained disease model
and serves treatment advice, voice playback, video guides, spray forecasts and
agriculture office directories over HTTP.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newClassifyCmd())
	rootCmd.AddCommand(newHistoryCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
