// ============================================================================
// boundary - Fehlergrenzen fuer mDW-Oberflaechen
// ============================================================================
//
// Package:     guard
// Description: Render boundary that traps panics of a wrapped view
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package guard

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/msto63/boundary/pkg/core/logging"
)

// State is the boundary state
type State int

const (
	// StateStable renders the wrapped content
	StateStable State = iota
	// StateFaulted renders the fallback view
	StateFaulted
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateStable:
		return "stable"
	case StateFaulted:
		return "faulted"
	default:
		return "unknown"
	}
}

// Viewer is anything that renders to a string. Every tea.Model is a Viewer.
type Viewer interface {
	View() string
}

// ViewFunc adapts a function to Viewer
type ViewFunc func() string

// View calls f
func (f ViewFunc) View() string {
	return f()
}

// Reporter is the external fault sink. Reports are fire-and-forget: the
// returned error is only logged and counted.
type Reporter interface {
	Report(ctx context.Context, f *Fault) error
}

// ReporterFunc adapts a function to Reporter
type ReporterFunc func(ctx context.Context, f *Fault) error

// Report calls fn
func (fn ReporterFunc) Report(ctx context.Context, f *Fault) error {
	return fn(ctx, f)
}

// Recorder receives boundary events for metrics
type Recorder interface {
	FaultRecorded(boundary string)
	RetryRecorded(boundary string)
	ReportFailed(boundary string)
}

// Guard wraps a Viewer and substitutes a fallback when it panics during
// View. Guard is not safe for concurrent use; it lives on the render loop.
type Guard struct {
	name     string
	content  Viewer
	fallback Viewer
	reporter Reporter
	recorder Recorder
	logger   *logging.Logger
	ctx      context.Context
	now      func() time.Time

	state  State
	faults int
	last   *Fault
}

// Option configures a Guard
type Option func(*Guard)

// WithName names the boundary in logs, reports and metrics
func WithName(name string) Option {
	return func(g *Guard) {
		g.name = name
	}
}

// WithFallback replaces the default fallback view
func WithFallback(v Viewer) Option {
	return func(g *Guard) {
		g.fallback = v
	}
}

// WithReporter sets the fault sink
func WithReporter(r Reporter) Option {
	return func(g *Guard) {
		g.reporter = r
	}
}

// WithMetrics sets the metrics recorder
func WithMetrics(r Recorder) Option {
	return func(g *Guard) {
		g.recorder = r
	}
}

// WithLogger sets the logger for the local diagnostic record
func WithLogger(l *logging.Logger) Option {
	return func(g *Guard) {
		g.logger = l
	}
}

// WithContext sets the context handed to the reporter
func WithContext(ctx context.Context) Option {
	return func(g *Guard) {
		g.ctx = ctx
	}
}

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(g *Guard) {
		g.now = now
	}
}

// New creates a Guard around content in StateStable
func New(content Viewer, opts ...Option) *Guard {
	g := &Guard{
		name:     "boundary",
		content:  content,
		fallback: DefaultFallback(),
		ctx:      context.Background(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = logging.New("guard")
	}
	g.logger = g.logger.With("boundary", g.name)
	return g
}

// View renders one pass. While stable it returns the content's output
// unchanged; a panic in the content switches to StateFaulted and returns the
// fallback instead. Panics from the fallback itself are not intercepted.
func (g *Guard) View() string {
	if g.state == StateFaulted {
		return g.fallback.View()
	}

	out, fault := g.renderContent()
	if fault == nil {
		return out
	}

	g.state = StateFaulted
	g.faults++
	fault.Attempt = g.faults
	g.last = fault
	g.notify(fault)

	return g.fallback.View()
}

// Retry moves a faulted boundary back to StateStable so the next View
// renders the content again. It reports whether the state changed.
func (g *Guard) Retry() bool {
	if g.state != StateFaulted {
		return false
	}
	g.state = StateStable
	g.logger.Info("retry requested", "attempt", g.faults)
	if g.recorder != nil {
		g.recorder.RetryRecorded(g.name)
	}
	return true
}

// State returns the current state
func (g *Guard) State() State {
	return g.state
}

// Faulted reports whether the fallback is showing
func (g *Guard) Faulted() bool {
	return g.state == StateFaulted
}

// LastFault returns the most recent fault, or nil
func (g *Guard) LastFault() *Fault {
	return g.last
}

// Faults returns how often the boundary entered StateFaulted
func (g *Guard) Faults() int {
	return g.faults
}

// Name returns the boundary name
func (g *Guard) Name() string {
	return g.name
}

func (g *Guard) renderContent() (out string, fault *Fault) {
	defer func() {
		if r := recover(); r != nil {
			fault = &Fault{
				ID:         uuid.NewString(),
				Boundary:   g.name,
				Err:        recoveredError(r),
				Stack:      debug.Stack(),
				OccurredAt: g.now(),
			}
		}
	}()
	return g.content.View(), nil
}

// notify writes the local diagnostic record and hands the fault to the
// reporter. Nothing raised here reaches the render path.
func (g *Guard) notify(f *Fault) {
	g.logger.Error("render fault intercepted",
		"fault_id", f.ID,
		"attempt", f.Attempt,
		"error", f.Err,
		"stack", string(f.Stack),
	)
	if g.recorder != nil {
		g.recorder.FaultRecorded(g.name)
	}

	if g.reporter == nil {
		return
	}
	if err := g.report(f); err != nil {
		g.logger.Debug("fault report failed", "fault_id", f.ID, "error", err)
		if g.recorder != nil {
			g.recorder.ReportFailed(g.name)
		}
	}
}

func (g *Guard) report(f *Fault) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reporter panicked: %v", r)
		}
	}()
	return g.reporter.Report(g.ctx, f)
}
