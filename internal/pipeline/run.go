// Package pipeline provides the high-level orchestration for a
// reconciliation run: per region, parse the authored metadata document,
// load the region's videos, compute a decision per video, then report or
// apply.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/onlyyou-coaching/catalog-sync/internal/config"
	"github.com/onlyyou-coaching/catalog-sync/internal/match"
	"github.com/onlyyou-coaching/catalog-sync/internal/metadata"
	"github.com/onlyyou-coaching/catalog-sync/internal/observability"
	"github.com/onlyyou-coaching/catalog-sync/internal/types"
)

// defaultConcurrency bounds the decision-computation workers. Decisions
// are pure CPU work; a small pool is plenty for catalog-sized batches.
const defaultConcurrency = 4

// Catalog is the slice of the store the pipeline needs.
type Catalog interface {
	ListVideos(ctx context.Context, region string) ([]types.VideoRecord, error)
	ApplyDecision(ctx context.Context, d types.MatchDecision) error
}

// RunOptions holds configuration for a reconciliation run.
type RunOptions struct {
	Regions     []config.RegionSource
	MetadataDir string
	// Apply writes accepted diffs back to the catalog; when false the run
	// is a dry run that only reports decisions.
	Apply       bool
	Verbose     bool
	MatchConfig match.Config
	Concurrency int
	Printer     *observability.Printer
	// ReadDocument supplies a metadata document's text. Defaults to
	// reading from the filesystem.
	ReadDocument func(path string) (string, error)
}

func (o *RunOptions) withDefaults() {
	if o.Concurrency <= 0 {
		o.Concurrency = defaultConcurrency
	}
	if o.Printer == nil {
		o.Printer = observability.NewPrinter(os.Stdout)
	}
	if o.ReadDocument == nil {
		o.ReadDocument = func(path string) (string, error) {
			data, err := os.ReadFile(path)
			if err != nil {
				return "", err
			}
			return string(data), nil
		}
	}
}

// Run reconciles every configured region and returns the per-region
// summaries. A region whose document is missing or unreadable is skipped
// with a warning; store failures abort the run.
func Run(ctx context.Context, store Catalog, opts RunOptions) ([]observability.RegionSummary, error) {
	opts.withDefaults()

	var summaries []observability.RegionSummary
	for _, region := range opts.Regions {
		summary, err := runRegion(ctx, store, region, opts)
		if err != nil {
			return summaries, fmt.Errorf("region %s: %w", region.Region, err)
		}
		summaries = append(summaries, summary)
	}

	if len(opts.Regions) > 1 {
		opts.Printer.PrintTotals(summaries)
	}
	return summaries, nil
}

func runRegion(ctx context.Context, store Catalog, region config.RegionSource, opts RunOptions) (observability.RegionSummary, error) {
	summary := observability.RegionSummary{
		Region:      region.Region,
		DisplayName: region.DisplayName,
	}

	text, err := opts.ReadDocument(filepath.Join(opts.MetadataDir, region.File))
	if err != nil {
		// A missing or unreadable document only skips its region.
		fmt.Printf("Warning: skipping region %s: %v\n", region.Region, err)
		return summary, nil
	}

	records := metadata.Parse(text)
	summary.Documents = len(records)

	videos, err := store.ListVideos(ctx, region.Region)
	if err != nil {
		return summary, fmt.Errorf("listing videos: %w", err)
	}
	summary.Videos = len(videos)

	decisions := computeDecisions(ctx, videos, records, opts)

	// Second, strictly sequential pass: counting, reporting and applying
	// happen in input order, never interleaved with computation.
	for i, d := range decisions {
		switch d.Strategy {
		case types.StrategyNumeric:
			summary.ByNumber++
		case types.StrategyNormalizedTitle:
			summary.ByTitle++
		case types.StrategyFuzzyTitle:
			summary.ByFuzzy++
		case types.StrategyNone:
			summary.Unmatched++
		}
		if d.Conflict {
			summary.Conflicts++
		}

		if opts.Verbose {
			opts.Printer.PrintDecision(videos[i], d)
		}

		if opts.Apply && d.HasDiffs() {
			if err := store.ApplyDecision(ctx, d); err != nil {
				// One failed row must not abort the rest of the batch.
				fmt.Printf("Warning: failed to update video %s: %v\n", d.VideoID, err)
				continue
			}
			summary.Applied++
		}
	}

	if !opts.Apply {
		opts.Printer.RenderDecisionTable(videos, decisions)
	}
	opts.Printer.PrintRegionSummary(summary)

	return summary, nil
}

// computeDecisions evaluates every video against the parsed records with a
// bounded worker pool. Each video's decision is independent pure
// computation; results land in per-video slots so output order matches
// input order.
func computeDecisions(ctx context.Context, videos []types.VideoRecord, records []types.ExerciseMetadata, opts RunOptions) []types.MatchDecision {
	decisions := make([]types.MatchDecision, len(videos))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i := range videos {
		i := i
		g.Go(func() error {
			decisions[i] = match.Reconcile(videos[i], records, opts.MatchConfig)
			return nil
		})
	}
	// Workers never return errors; Wait only synchronizes.
	_ = g.Wait()

	return decisions
}
