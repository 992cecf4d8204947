package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/nao1215/iconaudit/internal/model"
)

// fakeStep records execution and optionally fails.
type fakeStep struct {
	name     string
	err      error
	executed bool
}

func (s *fakeStep) Name() string { return s.name }

func (s *fakeStep) Do(_ context.Context, _ *model.FaviconReport) error {
	s.executed = true
	return s.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestPipelineExecute tests step execution order and error handling.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes all steps in order", func(t *testing.T) {
		t.Parallel()

		first := &fakeStep{name: "first"}
		second := &fakeStep{name: "second"}

		p := New(WithLogger(quietLogger()))
		p.AddSteps(first, second)

		report := model.NewFaviconReport("https://example.com")
		if err := p.Execute(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !first.executed || !second.executed {
			t.Error("expected all steps to execute")
		}
		if len(report.PerformedChecks) != 2 {
			t.Fatalf("performed checks = %v, want 2 entries", report.PerformedChecks)
		}
		if report.PerformedChecks[0] != "first" || report.PerformedChecks[1] != "second" {
			t.Errorf("performed checks = %v, want [first second]", report.PerformedChecks)
		}
	})

	t.Run("stops at the first failure by default", func(t *testing.T) {
		t.Parallel()

		stepErr := errors.New("check failed")
		failing := &fakeStep{name: "failing", err: stepErr}
		after := &fakeStep{name: "after"}

		p := New(WithLogger(quietLogger()))
		p.AddSteps(failing, after)

		report := model.NewFaviconReport("https://example.com")
		err := p.Execute(context.Background(), report)
		if !errors.Is(err, stepErr) {
			t.Fatalf("expected the step error, got %v", err)
		}
		if after.executed {
			t.Error("expected execution to stop after the failure")
		}
		if !errors.Is(report.Error, stepErr) {
			t.Error("expected the error to be recorded on the report")
		}
	})

	t.Run("continues past failures when configured", func(t *testing.T) {
		t.Parallel()

		stepErr := errors.New("check failed")
		failing := &fakeStep{name: "failing", err: stepErr}
		after := &fakeStep{name: "after"}

		p := New(WithLogger(quietLogger()), WithContinueOnError(true))
		p.AddSteps(failing, after)

		report := model.NewFaviconReport("https://example.com")
		if err := p.Execute(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !after.executed {
			t.Error("expected the remaining step to execute")
		}
		if report.ErrorMessage != "check failed" {
			t.Errorf("error message = %q, want %q", report.ErrorMessage, "check failed")
		}
		if len(report.PerformedChecks) != 2 {
			t.Errorf("performed checks = %v, want both steps", report.PerformedChecks)
		}
	})

	t.Run("cancellation stops between steps", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		step := &fakeStep{name: "never"}
		p := New(WithLogger(quietLogger()))
		p.AddSteps(step)

		report := model.NewFaviconReport("https://example.com")
		err := p.Execute(ctx, report)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if step.executed {
			t.Error("expected no step to run after cancellation")
		}
	})

	t.Run("empty pipeline succeeds", func(t *testing.T) {
		t.Parallel()

		p := New(WithLogger(quietLogger()))
		report := model.NewFaviconReport("https://example.com")
		if err := p.Execute(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

// TestPipelineStepNames tests name listing.
func TestPipelineStepNames(t *testing.T) {
	t.Parallel()

	p := New(WithLogger(quietLogger()))
	p.AddSteps(&fakeStep{name: "a"}, &fakeStep{name: "b"})

	names := p.StepNames()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("StepNames() = %v, want [a b]", names)
	}
}
