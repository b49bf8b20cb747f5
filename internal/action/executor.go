package action

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/chrisedwards/slack-cli/internal/slack"
)

// DefaultDelay is the pause between consecutive remote actions.
const DefaultDelay = 10000 * time.Millisecond

// Performer is the action half of the remote channel service.
type Performer interface {
	PerformAction(ctx context.Context, method, channelID string) (slack.ActionResult, error)
}

// Printer receives the progress of a run. report.Printer implements it.
type Printer interface {
	Header()
	Row(ch slack.Channel)
	ListSummary(total, archived, private int)
	Banner(title string)
	Progress(ch slack.Channel)
	Outcome(ok bool, detail string)
	RunSummary(succeeded, failed int)
}

// Report is the outcome of one run.
type Report struct {
	Succeeded []slack.Channel
	Failed    []slack.Channel
	Total     int
	Archived  int
	Private   int
}

// HasFailures reports whether any action failed.
func (r *Report) HasFailures() bool {
	return len(r.Failed) > 0
}

// Executor walks a channel sequence once, in order, applying a mode.
type Executor struct {
	performer Performer
	printer   Printer
	sleeper   Sleeper
	logger    *slog.Logger
	dryRun    bool
	delay     time.Duration
}

// Option configures an Executor.
type Option func(*Executor)

// WithDryRun treats every action as successful without calling the service.
func WithDryRun(dryRun bool) Option {
	return func(e *Executor) {
		e.dryRun = dryRun
	}
}

// WithDelay sets the throttle pause between actions. Zero or negative
// disables throttling.
func WithDelay(d time.Duration) Option {
	return func(e *Executor) {
		e.delay = d
	}
}

// WithSleeper replaces the timer-based sleeper (for tests).
func WithSleeper(s Sleeper) Option {
	return func(e *Executor) {
		e.sleeper = s
	}
}

// WithLogger sets the logger for per-item diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// NewExecutor creates an Executor that acts through performer and reports
// through printer.
func NewExecutor(performer Performer, printer Printer, opts ...Option) *Executor {
	e := &Executor{
		performer: performer,
		printer:   printer,
		sleeper:   TimerSleeper{},
		logger:    slog.New(slog.DiscardHandler),
		delay:     DefaultDelay,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute consumes channels once and runs mode over them.
//
// A channel whose action is answered with "ok": false is recorded as failed
// and the run continues. A transport error, or cancellation of ctx while
// throttling, stops the run; the summary of the partial report is printed
// and the report is returned with the error.
func (e *Executor) Execute(ctx context.Context, mode Mode, channels iter.Seq[slack.Channel]) (*Report, error) {
	if mode == ModeList {
		return e.list(channels), nil
	}
	if !mode.Destructive() {
		return nil, fmt.Errorf("unknown mode %v", mode)
	}

	report := &Report{}
	e.printer.Banner(mode.Title())

	idx := 0
	for ch := range channels {
		if idx > 0 && e.delay > 0 {
			if err := e.sleeper.Sleep(ctx, e.delay); err != nil {
				e.printer.RunSummary(len(report.Succeeded), len(report.Failed))
				return report, fmt.Errorf("throttle interrupted: %w", err)
			}
		}
		idx++

		e.printer.Progress(ch)
		report.Total++

		result, err := e.perform(ctx, mode, ch)
		if err != nil {
			e.printer.RunSummary(len(report.Succeeded), len(report.Failed))
			return report, fmt.Errorf("%s %s: %w", mode, ch.ID, err)
		}

		if result.OK {
			report.Succeeded = append(report.Succeeded, ch)
		} else {
			e.logger.Warn("channel action failed", "mode", mode.String(), "channel", ch.ID, "error", result.Error)
			report.Failed = append(report.Failed, ch)
		}
		e.printer.Outcome(result.OK, result.Error)
	}

	e.printer.RunSummary(len(report.Succeeded), len(report.Failed))
	return report, nil
}

func (e *Executor) perform(ctx context.Context, mode Mode, ch slack.Channel) (slack.ActionResult, error) {
	if e.dryRun {
		e.logger.Debug("dry run, skipping action", "mode", mode.String(), "channel", ch.ID)
		return slack.ActionResult{OK: true}, nil
	}
	return e.performer.PerformAction(ctx, mode.Method(), ch.ID)
}

func (e *Executor) list(channels iter.Seq[slack.Channel]) *Report {
	report := &Report{}
	e.printer.Header()
	for ch := range channels {
		report.Total++
		if ch.IsArchived {
			report.Archived++
		}
		if ch.IsPrivate {
			report.Private++
		}
		e.printer.Row(ch)
	}
	e.printer.ListSummary(report.Total, report.Archived, report.Private)
	return report
}
