package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nao1215/iconaudit/internal/model"
	"golang.org/x/sync/errgroup"
)

// BatchProcessor audits multiple sites concurrently.
// Each site is independent, so the only coordination needed is the
// concurrency bound and the result slice.
//
// Design decision: We keep batching out of Pipeline so that Pipeline
// stays focused on single-site execution and the concurrency policy can
// change without touching it.
type BatchProcessor struct {
	// pipelineFactory creates a fresh pipeline per site so that no step
	// state is shared between concurrent audits.
	pipelineFactory func(baseURL string) *Pipeline

	// concurrency is the maximum number of concurrent site audits.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// results stores completed audit reports, guarded by mu.
	results []*model.FaviconReport
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent site audits.
// Default is 4 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a BatchProcessor. The factory is called
// once per site with the site's base URL.
func NewBatchProcessor(factory func(baseURL string) *Pipeline, opts ...BatchOption) *BatchProcessor {
	b := &BatchProcessor{
		pipelineFactory: factory,
		concurrency:     4,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.logger == nil {
		b.logger = slog.Default()
	}

	return b
}

// Process audits all base URLs and returns the reports in completion
// order. A site whose pipeline fails still yields a report carrying the
// error; Process itself only fails on context cancellation.
func (b *BatchProcessor) Process(ctx context.Context, baseURLs []string) ([]*model.FaviconReport, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	start := time.Now()
	b.logger.Info("starting batch audit",
		"sites", len(baseURLs),
		"concurrency", b.concurrency,
	)

	for _, baseURL := range baseURLs {
		baseURL := baseURL
		g.Go(func() error {
			report := model.NewFaviconReport(baseURL)
			p := b.pipelineFactory(baseURL)

			if err := p.Execute(ctx, report); err != nil {
				// Cancellation aborts the whole batch; anything else is
				// already recorded on the report.
				if ctx.Err() != nil {
					return ctx.Err()
				}
				report.Error = err
				report.ErrorMessage = err.Error()
			}

			b.mu.Lock()
			b.results = append(b.results, report)
			b.mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return b.snapshotResults(), err
	}

	b.logger.Info("batch audit finished",
		"sites", len(baseURLs),
		"elapsed", time.Since(start),
	)
	return b.snapshotResults(), nil
}

func (b *BatchProcessor) snapshotResults() []*model.FaviconReport {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*model.FaviconReport, len(b.results))
	copy(out, b.results)
	return out
}
