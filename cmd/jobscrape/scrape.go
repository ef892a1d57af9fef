package main

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dimasramdhani/jobscrape/internal/observability"
	"github.com/dimasramdhani/jobscrape/internal/pipeline"
)

var (
	scrapeURLs        []string
	scrapeConcurrency int
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape job listings from one or more pages",
	Long:  `Run the fetch, extract, and persist pipeline for each given URL without starting the server.`,
	RunE:  runScrape,
}

func init() {
	scrapeCmd.Flags().StringArrayVar(&scrapeURLs, "url", nil, "Page URL to scrape (repeatable)")
	scrapeCmd.Flags().IntVar(&scrapeConcurrency, "concurrency", 2, "Number of URLs scraped in parallel")
	_ = scrapeCmd.MarkFlagRequired("url")
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, _ []string) error {
	logger := newLogger()

	cfg, err := loadConfig("")
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	orchestrator, _, cleanup, err := buildPipeline(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}
	defer cleanup()

	printer := observability.NewPrinter(os.Stdout)

	var (
		mu     sync.Mutex
		total  int
		failed int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(scrapeConcurrency)
	for _, url := range scrapeURLs {
		g.Go(func() error {
			result, err := orchestrator.Run(gctx, url)

			mu.Lock()
			defer mu.Unlock()
			if errors.Is(err, pipeline.ErrNoListings) {
				printer.PrintScrapeSummary(url, nil)
				return nil
			}
			if err != nil {
				// A single bad page should not cancel the rest of the batch.
				failed++
				printer.PrintScrapeFailure(url, err)
				return nil
			}
			total += result.Count
			printer.PrintScrapeSummary(url, result.Records)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("\nScraped %d records from %d pages (%d failed)\n", total, len(scrapeURLs)-failed, failed)
	if failed == len(scrapeURLs) {
		return fmt.Errorf("all %d pages failed", failed)
	}
	return nil
}
