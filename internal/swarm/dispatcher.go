package swarm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"launchpad/internal/async"
	"launchpad/internal/logging"
	"launchpad/internal/observability"
)

var (
	// ErrNoTasks is returned when Run receives an empty task list.
	ErrNoTasks = errors.New("swarm: no tasks")
	// ErrDuplicateTask is returned when two tasks share a name or a name is empty.
	ErrDuplicateTask = errors.New("swarm: duplicate or empty task name")
	// ErrTaskTimeout marks a task that did not settle before its deadline.
	ErrTaskTimeout = errors.New("task timed out")
)

// DefaultTaskTimeout bounds a single task when Config.TaskTimeout is unset.
const DefaultTaskTimeout = 12 * time.Second

// Config controls a Dispatcher.
type Config struct {
	// Name labels metrics and spans, e.g. "event" or "promo".
	Name           string
	TaskTimeout    time.Duration
	MaxConcurrency int // 0 means every task starts at once
}

// Dispatcher fans a fixed list of tasks out concurrently and isolates their
// failures.
type Dispatcher struct {
	config  Config
	logger  logging.Logger
	metrics *observability.SwarmMetrics
	tracer  *observability.TracerProvider
}

// Option customises a Dispatcher.
type Option func(*Dispatcher)

func WithLogger(logger logging.Logger) Option {
	return func(d *Dispatcher) { d.logger = logging.OrNop(logger) }
}

func WithMetrics(metrics *observability.SwarmMetrics) Option {
	return func(d *Dispatcher) { d.metrics = metrics }
}

func WithTracer(tracer *observability.TracerProvider) Option {
	return func(d *Dispatcher) { d.tracer = tracer }
}

// NewDispatcher builds a dispatcher. Metrics default to nil (disabled) and
// tracing to a no-op provider.
func NewDispatcher(config Config, opts ...Option) *Dispatcher {
	if config.TaskTimeout <= 0 {
		config.TaskTimeout = DefaultTaskTimeout
	}
	if config.Name == "" {
		config.Name = "swarm"
	}
	d := &Dispatcher{
		config: config,
		logger: logging.NewComponentLogger("swarm"),
		tracer: observability.NoopTracer(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run executes tasks concurrently and waits for all of them. Every task
// yields exactly one outcome, in input order. The error return is reserved
// for invalid task lists, which are rejected before any work starts.
func (d *Dispatcher) Run(ctx context.Context, tasks []Task) (Outcomes, Diagnostics, error) {
	return d.RunObserved(ctx, tasks, nil)
}

// RunObserved is Run with progress notifications.
func (d *Dispatcher) RunObserved(ctx context.Context, tasks []Task, observer Observer) (Outcomes, Diagnostics, error) {
	if err := validateTasks(tasks); err != nil {
		return nil, NewDiagnostics(), err
	}
	if observer == nil {
		observer = nopObserver{}
	}

	ctx, span := d.tracer.StartSpan(ctx, observability.SpanSwarmRun,
		attribute.String(observability.AttrSwarm, d.config.Name),
		attribute.Int("launchpad.swarm.tasks", len(tasks)),
	)
	defer span.End()

	d.metrics.RunStarted(d.config.Name)
	defer d.metrics.RunFinished(d.config.Name)

	started := time.Now()
	outcomes := make(Outcomes, len(tasks))

	var group errgroup.Group
	if d.config.MaxConcurrency > 0 {
		group.SetLimit(d.config.MaxConcurrency)
	}
	for i, task := range tasks {
		group.Go(func() error {
			observer.TaskStarted(task.TaskName())
			outcomes[i] = d.runTask(ctx, task)
			observer.TaskFinished(outcomes[i])
			return nil
		})
	}
	_ = group.Wait()

	diagnostics := NewDiagnostics()
	for _, outcome := range outcomes {
		diagnostics.Timings[outcome.Name] = outcome.Duration.Milliseconds()
		if outcome.Err != nil {
			diagnostics.Errors = append(diagnostics.Errors, fmt.Sprintf("%s: %s", outcome.Name, describe(outcome.Err)))
		}
	}

	span.SetAttributes(attribute.Int("launchpad.swarm.failed", diagnostics.Failed()))
	d.logger.Info("Swarm %s finished %d tasks in %v (%d fell back)",
		d.config.Name, len(tasks), time.Since(started).Round(time.Millisecond), diagnostics.Failed())

	return outcomes, diagnostics, nil
}

type taskResult struct {
	value any
	err   error
}

// runTask races the work against the task deadline, so a task that ignores
// its context still cannot hold the run past TaskTimeout.
func (d *Dispatcher) runTask(parent context.Context, task Task) Outcome {
	name := task.TaskName()
	ctx, span := d.tracer.StartSpan(parent, observability.SpanSwarmTask,
		attribute.String(observability.AttrSwarm, d.config.Name),
		attribute.String(observability.AttrTaskName, name),
	)
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, d.config.TaskTimeout)
	defer cancel()

	done := make(chan taskResult, 1)
	start := time.Now()
	go func() {
		var result taskResult
		result.err = async.Capture(d.logger, name, func() error {
			value, err := task.Execute(ctx)
			result.value = value
			return err
		})
		done <- result
	}()

	var result taskResult
	select {
	case result = <-done:
	case <-ctx.Done():
		result.err = d.deadlineError(parent, ctx)
	}
	duration := time.Since(start)

	outcome := Outcome{Name: name, Value: result.value, Duration: duration, Err: result.err}
	status := "success"
	if outcome.Err != nil {
		status = "fallback"
		outcome.Value = task.FallbackValue()
		reason := failureReason(outcome.Err)
		d.metrics.IncTaskFailure(d.config.Name, name, reason)
		d.logger.Warn("Task %s/%s fell back after %v (%s): %v", d.config.Name, name, duration.Round(time.Millisecond), reason, outcome.Err)
		span.RecordError(outcome.Err)
		span.SetStatus(codes.Error, reason)
	} else {
		d.logger.Debug("Task %s/%s succeeded in %v", d.config.Name, name, duration.Round(time.Millisecond))
	}
	span.SetAttributes(attribute.String(observability.AttrStatus, status))
	d.metrics.ObserveTask(d.config.Name, name, status, duration)

	return outcome
}

func (d *Dispatcher) deadlineError(parent, taskCtx context.Context) error {
	if parent.Err() != nil {
		return fmt.Errorf("cancelled: %w", context.Cause(parent))
	}
	if errors.Is(taskCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %v", ErrTaskTimeout, d.config.TaskTimeout)
	}
	return taskCtx.Err()
}

func validateTasks(tasks []Task) error {
	if len(tasks) == 0 {
		return ErrNoTasks
	}
	seen := make(map[string]struct{}, len(tasks))
	for i, task := range tasks {
		if task == nil {
			return fmt.Errorf("swarm: task %d is nil", i)
		}
		name := task.TaskName()
		if name == "" {
			return fmt.Errorf("%w: task %d has no name", ErrDuplicateTask, i)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateTask, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

func describe(err error) string {
	var panicErr *async.PanicError
	if errors.As(err, &panicErr) {
		return fmt.Sprintf("panic: %v", panicErr.Value)
	}
	return err.Error()
}

func failureReason(err error) string {
	var panicErr *async.PanicError
	switch {
	case errors.Is(err, ErrTaskTimeout):
		return "timeout"
	case errors.As(err, &panicErr):
		return "panic"
	case errors.Is(err, ErrInvalidOutput):
		return "invalid"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	default:
		return "error"
	}
}
