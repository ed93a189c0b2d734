package movie

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"movision-server/internal/domain/chat"
	"movision-server/internal/infrastructure/metrics"
)

// Searcher resolves a title against the metadata catalog. A (nil, nil)
// return means the catalog had no match.
type Searcher interface {
	SearchMovie(ctx context.Context, title string) (*Metadata, error)
}

// Enricher fans candidate lookups out against the catalog with a bounded
// concurrency. Individual lookup failures degrade to an unenriched
// candidate; the batch as a whole never fails.
type Enricher struct {
	searcher    Searcher
	concurrency int
	logger      zerolog.Logger
}

func NewEnricher(searcher Searcher, concurrency int, logger zerolog.Logger) *Enricher {
	if concurrency <= 0 {
		concurrency = 6
	}
	return &Enricher{
		searcher:    searcher,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Enrich resolves metadata for every candidate concurrently, preserving
// input order.
func (e *Enricher) Enrich(ctx context.Context, candidates []chat.MovieCandidate) []Enriched {
	enriched := make([]Enriched, len(candidates))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(e.concurrency)

	for i, candidate := range candidates {
		i, candidate := i, candidate
		group.Go(func() error {
			metadata, err := e.searcher.SearchMovie(groupCtx, candidate.Title)
			if err != nil {
				metrics.EnrichmentFailuresTotal.Inc()
				e.logger.Warn().Err(err).Str("title", candidate.Title).Msg("metadata lookup failed, passing candidate through")
				metadata = nil
			}
			enriched[i] = Merge(candidate, metadata)
			return nil
		})
	}

	// Goroutines never return errors; Wait only joins the fan-out.
	_ = group.Wait()
	return enriched
}
