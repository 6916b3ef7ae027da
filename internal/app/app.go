// ============================================================================
// boundary - Fehlergrenzen fuer mDW-Oberflaechen
// ============================================================================
//
// Package:     app
// Description: Wires logger, reporters, metrics and health from the config
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package app

import (
	"context"
	"errors"
	"io"
	"time"

	bderror "github.com/msto63/boundary/foundation/core/error"
	"github.com/msto63/boundary/internal/guard"
	"github.com/msto63/boundary/internal/report"
	"github.com/msto63/boundary/pkg/core/config"
	"github.com/msto63/boundary/pkg/core/health"
	"github.com/msto63/boundary/pkg/core/logging"
	"github.com/msto63/boundary/pkg/core/metrics"
	"github.com/msto63/boundary/pkg/core/version"
)

// Options adjust wiring per command
type Options struct {
	// LogOutput receives log lines. Nil means stderr.
	LogOutput io.Writer

	// DisableReporter skips the remote fault sink even if configured
	DisableReporter bool
}

// App holds the collaborators shared by all commands
type App struct {
	Config   *config.Config
	Logger   *logging.Logger
	Metrics  *metrics.GuardMetrics
	Health   *health.Registry
	Reporter guard.Reporter

	journal       *report.Journal
	journalQueue  *report.Queue
	bayes         *report.Bayes
	throttle      *report.Throttle
	metricsServer *metrics.Server
}

// New wires the application from cfg
func New(cfg *config.Config, opts Options) (*App, error) {
	logCfg := logging.DefaultLoggerConfig(cfg.General.Name)
	logCfg.Level = cfg.General.LogLevel
	logCfg.Format = cfg.General.LogFormat
	logCfg.Output = opts.LogOutput

	a := &App{
		Config:  cfg,
		Logger:  logging.Wrap(logging.NewLogger(logCfg)),
		Metrics: metrics.NewGuardMetrics(),
		Health:  health.NewRegistry(cfg.General.Name, version.Platform),
	}

	reporters := []guard.Reporter{report.NewLog(a.Logger)}

	if cfg.Journal.Enabled {
		j, err := report.OpenJournal(report.JournalConfig{
			Path:    cfg.Journal.Path,
			Service: cfg.Reporter.ServiceName,
		})
		if err != nil {
			return nil, err
		}
		a.journal = j
		a.journalQueue = report.NewQueue(j, report.DefaultQueueSize, a.Logger)
		a.Health.Register(j.HealthCheck())
		reporters = append(reporters, a.journalQueue)

		if cfg.Journal.RetentionDays > 0 {
			retention := time.Duration(cfg.Journal.RetentionDays) * 24 * time.Hour
			if n, err := j.Prune(context.Background(), retention); err != nil {
				a.Logger.Warn("journal prune failed", "error", err)
			} else if n > 0 {
				a.Logger.Info("journal pruned", "removed", n)
			}
		}
	}

	if cfg.Reporter.Enabled && !opts.DisableReporter {
		b, err := report.NewBayes(report.BayesConfig{
			Address:     cfg.Reporter.Address,
			ServiceName: cfg.Reporter.ServiceName,
			BatchSize:   cfg.Reporter.BatchSize,
			FlushPeriod: cfg.Reporter.FlushPeriod.Duration,
			DialTimeout: cfg.Reporter.DialTimeout.Duration,
			Logger:      a.Logger,
		})
		if err != nil {
			a.Close()
			return nil, err
		}
		a.bayes = b
		a.Health.Register(b.HealthCheck())
		reporters = append(reporters, b)
	}

	a.throttle = report.NewThrottle(report.NewMulti(reporters...), cfg.Throttle.Window.Duration)
	a.Reporter = a.throttle
	return a, nil
}

// GuardOptions returns the options every boundary of the app shares
func (a *App) GuardOptions() []guard.Option {
	return []guard.Option{
		guard.WithReporter(a.Reporter),
		guard.WithMetrics(a.Metrics),
		guard.WithLogger(a.Logger),
	}
}

// Fallback returns the configured fallback texts
func (a *App) Fallback() guard.Fallback {
	return guard.Fallback{
		Message:    a.Config.Guard.FallbackMessage,
		RetryLabel: a.Config.Guard.RetryLabel,
	}
}

// Journal returns the fault journal, or nil when it is disabled
func (a *App) Journal() *report.Journal {
	return a.journal
}

// Suppressed returns how many reports the throttle held back
func (a *App) Suppressed() int {
	return a.throttle.Suppressed()
}

// Flush waits until queued journal writes are done and asks the fault sink
// reporter to send its buffer
func (a *App) Flush(ctx context.Context) error {
	if a.bayes != nil {
		a.bayes.Flush()
	}
	if a.journalQueue != nil {
		return a.journalQueue.Flush(ctx)
	}
	return nil
}

// StartMetrics serves /metrics and /healthz on addr
func (a *App) StartMetrics(addr string) error {
	if addr == "" {
		return nil
	}
	srv := metrics.NewServer(addr, metrics.NewRouter(a.Metrics, a.Health), a.Logger)
	if err := srv.Start(); err != nil {
		return bderror.Wrap(err, "failed to start metrics endpoint").
			WithCode(bderror.CodeServiceUnavailable).
			WithDetail("addr", addr)
	}
	a.metricsServer = srv
	return nil
}

// Close flushes the reporters and stops the metrics endpoint
func (a *App) Close() error {
	var errs []error
	if a.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		errs = append(errs, a.metricsServer.Shutdown(ctx))
		cancel()
		a.metricsServer = nil
	}
	if a.bayes != nil {
		errs = append(errs, a.bayes.Close())
		a.bayes = nil
	}
	if a.journalQueue != nil {
		errs = append(errs, a.journalQueue.Close())
		a.journalQueue = nil
	}
	if a.journal != nil {
		errs = append(errs, a.journal.Close())
		a.journal = nil
	}
	return errors.Join(errs...)
}
