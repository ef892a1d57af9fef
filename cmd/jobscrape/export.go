package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dimasramdhani/jobscrape/internal/db"
	"github.com/dimasramdhani/jobscrape/internal/export"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored job records",
	Long:  `Write all stored job records to a file or stdout as CSV or JSON.`,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv or json")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	logger := newLogger()

	cfg, err := loadConfigForExport()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	jobs, err := database.ListJobs(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to list jobs: %w", err)
	}

	out := os.Stdout
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := export.WriteJobs(out, jobs, export.Format(exportFormat)); err != nil {
		return err
	}

	logger.Info().Int("records", len(jobs)).Str("format", exportFormat).Msg("export complete")
	return nil
}
