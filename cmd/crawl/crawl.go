// Package crawl implements the crawl command that runs the acquisition
// pipeline for one site profile.
package crawl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/riftline/guidecrawl/cmd/common"
	"github.com/riftline/guidecrawl/internal/crawler"
	"github.com/riftline/guidecrawl/internal/fetcher"
	"github.com/riftline/guidecrawl/internal/profiles"
	"github.com/riftline/guidecrawl/internal/storage"
)

// Command returns the crawl command.
func Command() *cobra.Command {
	var (
		dryRun     bool
		reportPath string
	)

	cmd := &cobra.Command{
		Use:   "crawl [profile]",
		Short: "Crawl a source site for content",
		Long: `Run the acquisition pipeline for the named site profile: discover article
links on the profile's listing pages, filter them, then fetch, extract,
sanitize and persist each surviving candidate.

With --dry-run the full pipeline executes against an in-memory store and
nothing is persisted externally.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewDeps()
			if err != nil {
				return err
			}
			return run(cmd.Context(), deps, args[0], dryRun, reportPath)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"run the pipeline without persisting records externally")
	cmd.Flags().StringVar(&reportPath, "report", "",
		"write the full JSON crawl report to this file")

	return cmd
}

// run executes a crawl for the named profile and renders the report.
func run(ctx context.Context, deps *common.Deps, profileName string, dryRun bool, reportPath string) error {
	manager, err := profiles.Load(deps.Config.Crawler.ProfilesDir, deps.Logger)
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}

	profile, err := manager.FindByName(profileName)
	if err != nil {
		return err
	}

	store, err := buildStore(deps, dryRun)
	if err != nil {
		return err
	}

	orchestrator, err := crawler.New(crawler.Params{
		Profile: profile,
		Fetcher: fetcher.New(&deps.Config.Crawler, deps.Logger),
		Store:   store,
		Config:  &deps.Config.Crawler,
		Logger:  deps.Logger,
	})
	if err != nil {
		return err
	}

	// SIGINT/SIGTERM cancel the run between candidates; the report then
	// reflects the partial run.
	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, runErr := orchestrator.Run(runCtx)
	if report != nil {
		renderReport(report)
		if reportPath != "" {
			if err := writeReport(report, reportPath); err != nil {
				deps.Logger.Error("Failed to write report file", "path", reportPath, "error", err)
			}
		}
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}

// buildStore creates the record store: in-memory for dry runs, Elasticsearch
// otherwise.
func buildStore(deps *common.Deps, dryRun bool) (storage.RecordStore, error) {
	if dryRun {
		deps.Logger.Info("Dry run: records will not be persisted")
		return storage.NewMemoryStore(), nil
	}

	store, err := storage.NewElasticStore(&deps.Config.Elasticsearch, deps.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create record store: %w", err)
	}
	return store, nil
}

// renderReport prints the run counters and per-candidate outcomes.
func renderReport(report *crawler.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Counter", "Value"})
	t.AppendRows([]table.Row{
		{"Discovered", report.Discovered},
		{"Rejected by validator", report.Rejected},
		{"Fetched", report.Fetched},
		{"Failed extraction", report.FailedExtraction},
		{"Saved", report.Saved},
		{"Skipped duplicates", report.Duplicates},
		{"Fetch failures", report.FetchFailures},
		{"Persist failures", report.PersistFailures},
	})
	t.Render()

	if len(report.Outcomes) == 0 {
		return
	}

	o := table.NewWriter()
	o.SetOutputMirror(os.Stdout)
	o.SetStyle(table.StyleLight)
	o.AppendHeader(table.Row{"URL", "Outcome", "Title"})
	for _, entry := range report.Outcomes {
		o.AppendRow(table.Row{entry.URL, string(entry.Outcome), entry.Title})
	}
	o.Render()
}

// writeReport marshals the full report to a JSON file.
func writeReport(report *crawler.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
