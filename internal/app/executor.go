package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen/quote-scraper/internal/platform/logging"
)

// An export run moves through five steps:
//
//	validate  check the request before any page is requested
//	perform   crawl every page
//	verify    check the accumulated result
//	archive   write the output file
//	respond   summarize the run
//
// The filesystem is only touched in archive, so a failure at any page
// leaves no output behind.

// ExecutionStep names a step of a run.
type ExecutionStep string

const (
	StepValidate ExecutionStep = "validate"
	StepPerform  ExecutionStep = "perform"
	StepVerify   ExecutionStep = "verify"
	StepArchive  ExecutionStep = "archive"
	StepRespond  ExecutionStep = "respond"
)

// stepMessages is the user-facing prefix of a step's error.
var stepMessages = map[ExecutionStep]string{
	StepValidate: "invalid request",
	StepPerform:  "crawl",
	StepVerify:   "checking crawl result",
	StepArchive:  "writing output",
}

// ExecutionError records the step a run stopped at.
type ExecutionError struct {
	Step    ExecutionStep
	Message string
	Cause   error
}

func (e *ExecutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}

	return e.Message
}

func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

func newStepError(step ExecutionStep, cause error) error {
	return &ExecutionError{Step: step, Message: stepMessages[step], Cause: cause}
}

// Executor runs operations step by step, logging each transition.
type Executor struct {
	logger *slog.Logger
}

// NewExecutor creates an executor. Defaults logger to slog.Default() if nil.
func NewExecutor(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{logger: logger}
}

// Operation holds the step functions of a run. Nil steps are skipped.
// Archive is only reached when Verify succeeded.
type Operation[I, P, V, O any] struct {
	Name     string
	Validate func(ctx context.Context, input I) error
	Perform  func(ctx context.Context, input I) (P, error)
	Verify   func(ctx context.Context, input I, performed P) (V, error)
	Archive  func(ctx context.Context, input I, verified V) error
	Respond  func(ctx context.Context, input I, verified V) (O, error)
}

// runStep calls fn and converts its failure into an *ExecutionError.
func runStep(ctx context.Context, logger *slog.Logger, step ExecutionStep, fn func() error) error {
	logger.DebugContext(ctx, "step started", slog.String("step", string(step)))

	if err := fn(); err != nil {
		level := slog.LevelError
		if step == StepValidate {
			level = slog.LevelWarn
		}
		logger.Log(ctx, level, "step failed",
			slog.String("step", string(step)),
			slog.Any("error", err))

		return newStepError(step, err)
	}

	logger.DebugContext(ctx, "step done", slog.String("step", string(step)))

	return nil
}

// Execute runs op against input. A respond error is returned as is.
func Execute[I, P, V, O any](ctx context.Context, exec *Executor, op Operation[I, P, V, O], input I) (O, error) {
	var (
		zero      O
		performed P
		verified  V
	)

	logger := logging.FromContext(ctx)
	if exec != nil {
		logger = exec.logger
	}
	logger = logger.With(slog.String("operation", op.Name))
	start := time.Now()

	steps := []struct {
		step ExecutionStep
		fn   func() error
	}{
		{StepValidate, func() error {
			if op.Validate == nil {
				return nil
			}
			return op.Validate(ctx, input)
		}},
		{StepPerform, func() (err error) {
			if op.Perform == nil {
				return nil
			}
			performed, err = op.Perform(ctx, input)
			return err
		}},
		{StepVerify, func() (err error) {
			if op.Verify == nil {
				return nil
			}
			verified, err = op.Verify(ctx, input, performed)
			return err
		}},
		{StepArchive, func() error {
			if op.Archive == nil {
				return nil
			}
			return op.Archive(ctx, input, verified)
		}},
	}

	for _, s := range steps {
		if err := runStep(ctx, logger, s.step, s.fn); err != nil {
			return zero, err
		}
	}

	var result O
	if op.Respond != nil {
		var err error
		result, err = op.Respond(ctx, input, verified)
		if err != nil {
			logger.WarnContext(ctx, "building response failed", slog.Any("error", err))
			return zero, err
		}
	}

	logger.InfoContext(ctx, "operation completed", slog.Duration("duration", time.Since(start)))

	return result, nil
}

// IsExecutionError reports whether err stopped a run at some step.
func IsExecutionError(err error) bool {
	var execErr *ExecutionError

	return errors.As(err, &execErr)
}

// GetExecutionStep extracts the step from an execution error.
func GetExecutionStep(err error) (ExecutionStep, bool) {
	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		return execErr.Step, true
	}

	return "", false
}
