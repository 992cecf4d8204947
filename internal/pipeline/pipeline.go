package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/iconaudit/internal/model"
)

// Step defines the interface that all audit steps must implement.
// Steps are executed in sequence, each filling its section of the
// shared report.
//
// Design decision: We use an interface rather than function types because:
// 1. It allows steps to carry their candidate inputs as state
// 2. It provides a Name() method for logging and the performed-checks list
// 3. It keeps the pipeline open for future steps without signature churn
type Step interface {
	// Do executes the audit step. Classification outcomes belong in the
	// report; an error return is reserved for infrastructure failures
	// (invalid base URL, undecodable image).
	Do(ctx context.Context, report *model.FaviconReport) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline executes the audit steps for a single site in order.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger

	// continueOnError determines whether remaining steps run after one
	// fails. A failed favicon check should not suppress the manifest
	// audit, so the audit command enables this.
	continueOnError bool
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to keep executing steps
// after one fails. The failing step's error is recorded on the report.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddSteps after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddSteps appends steps to the pipeline in execution order.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence.
// It checks for cancellation between steps; steps handle their own
// timeouts internally.
//
// Returns the first error encountered if continueOnError is false, or
// nil once all steps have run (errors are recorded in the report).
func (p *Pipeline) Execute(ctx context.Context, report *model.FaviconReport) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("audit cancelled",
				"step", step.Name(),
				"reason", ctx.Err(),
			)
			return ctx.Err()
		default:
		}

		p.logger.Info("executing check",
			"step", step.Name(),
			"site", report.BaseURL,
		)

		if err := step.Do(ctx, report); err != nil {
			p.logger.Error("check failed",
				"step", step.Name(),
				"site", report.BaseURL,
				"error", err,
			)

			report.Error = err
			report.ErrorMessage = err.Error()

			if !p.continueOnError {
				return err
			}
		} else {
			p.logger.Debug("check completed",
				"step", step.Name(),
				"site", report.BaseURL,
			)
		}

		report.PerformedChecks = append(report.PerformedChecks, step.Name())
	}

	return nil
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
