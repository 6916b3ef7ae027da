// ============================================================================
// boundary - Fehlergrenzen fuer mDW-Oberflaechen
// ============================================================================
//
// Package:     report
// Description: Bayes sends render faults to the external fault sink
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package report

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	bderror "github.com/msto63/boundary/foundation/core/error"
	"github.com/msto63/boundary/internal/guard"
	bdgrpc "github.com/msto63/boundary/pkg/core/grpc"
	"github.com/msto63/boundary/pkg/core/health"
	"github.com/msto63/boundary/pkg/core/logging"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Bayes reports faults to the fault sink in batches. Report never blocks on
// the network: entries are buffered and flushed by a background worker.
type Bayes struct {
	// Configuration
	address     string
	serviceName string
	batchSize   int
	maxBuffered int
	flushPeriod time.Duration
	sendTimeout time.Duration
	logger      *logging.Logger

	// Connection
	conn      *grpc.ClientConn
	client    FaultSinkClient
	connected chan struct{}
	cancel    context.CancelFunc

	// Batching
	buffer   []Entry
	bufferMu sync.Mutex
	flushCh  chan struct{}
	stopCh   chan struct{}
	doneCh   chan struct{}
	closed   bool
	stopOnce sync.Once

	sent    atomic.Int64
	dropped atomic.Int64
	failed  atomic.Int64
}

// BayesConfig holds configuration for Bayes
type BayesConfig struct {
	Address     string        // Fault sink address (e.g., "localhost:9120")
	ServiceName string        // Name of the reporting application
	BatchSize   int           // Number of entries per batch (default: 50)
	MaxBuffered int           // Entries kept while the sink is slow (default: 10 * BatchSize)
	FlushPeriod time.Duration // How often to flush (default: 5s)
	DialTimeout time.Duration // How long to wait for the sink (default: 10s)
	SendTimeout time.Duration // Deadline of one batch call (default: 5s)
	Logger      *logging.Logger
	DialOptions []grpc.DialOption
}

// DefaultBayesConfig returns default configuration
func DefaultBayesConfig() BayesConfig {
	return BayesConfig{
		Address:     "localhost:9120",
		ServiceName: "boundary",
		BatchSize:   50,
		FlushPeriod: 5 * time.Second,
		DialTimeout: 10 * time.Second,
		SendTimeout: 5 * time.Second,
	}
}

// BayesStats counts entries by outcome
type BayesStats struct {
	Sent    int64
	Dropped int64
	Failed  int64
}

// NewBayes creates the reporter and starts connecting in the background
func NewBayes(cfg BayesConfig) (*Bayes, error) {
	defaults := DefaultBayesConfig()
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaults.BatchSize
	}
	if cfg.MaxBuffered <= 0 {
		cfg.MaxBuffered = 10 * cfg.BatchSize
	}
	if cfg.FlushPeriod <= 0 {
		cfg.FlushPeriod = defaults.FlushPeriod
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = defaults.DialTimeout
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = defaults.SendTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}
	logger := cfg.Logger.Named("bayes-reporter")

	clientCfg := bdgrpc.DefaultClientConfig(cfg.Address)
	clientCfg.Logger = logger
	conn, err := bdgrpc.NewClient(clientCfg, cfg.DialOptions...)
	if err != nil {
		return nil, bderror.Wrap(err, "failed to create fault sink client").
			WithCode(bderror.CodeConnectionFailed).
			WithDetail("address", cfg.Address)
	}

	ctx, cancel := context.WithCancel(context.Background())
	b := &Bayes{
		address:     cfg.Address,
		serviceName: cfg.ServiceName,
		batchSize:   cfg.BatchSize,
		maxBuffered: cfg.MaxBuffered,
		flushPeriod: cfg.FlushPeriod,
		sendTimeout: cfg.SendTimeout,
		logger:      logger,
		conn:        conn,
		connected:   make(chan struct{}),
		cancel:      cancel,
		buffer:      make([]Entry, 0, cfg.BatchSize),
		flushCh:     make(chan struct{}, 1),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}

	go b.connect(ctx, cfg.DialTimeout)
	go b.flushWorker()

	return b, nil
}

// connect waits for the sink. Until it succeeds every report is dropped.
func (b *Bayes) connect(ctx context.Context, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := bdgrpc.WaitReady(ctx, b.conn); err != nil {
		b.logger.Debug("fault sink unreachable, reports will be dropped", "address", b.address, "error", err)
		return
	}

	b.bufferMu.Lock()
	defer b.bufferMu.Unlock()
	if b.closed {
		return
	}
	b.client = NewFaultSinkClient(b.conn)
	close(b.connected)
	b.logger.Debug("fault sink connected", "address", b.address)
}

// Report queues the fault for the next batch. It returns an error when the
// fault was dropped.
func (b *Bayes) Report(_ context.Context, f *guard.Fault) error {
	entry := NewEntry(b.serviceName, f)

	b.bufferMu.Lock()
	if b.client == nil || b.closed {
		b.bufferMu.Unlock()
		b.dropped.Add(1)
		return bderror.New("fault sink not connected").
			WithCode(bderror.CodeServiceUnavailable).
			WithDetail("address", b.address).
			WithDetail("fault_id", f.ID)
	}
	if len(b.buffer) >= b.maxBuffered {
		b.bufferMu.Unlock()
		b.dropped.Add(1)
		return bderror.New("fault report buffer full").
			WithCode(bderror.CodeReportFailed).
			WithDetail("fault_id", f.ID)
	}
	b.buffer = append(b.buffer, entry)
	shouldFlush := len(b.buffer) >= b.batchSize
	b.bufferMu.Unlock()

	if shouldFlush {
		select {
		case b.flushCh <- struct{}{}:
		default:
		}
	}
	return nil
}

// flushWorker periodically flushes the buffer
func (b *Bayes) flushWorker() {
	defer close(b.doneCh)

	ticker := time.NewTicker(b.flushPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-b.stopCh:
			// Final flush
			b.flush()
			return
		case <-b.flushCh:
			b.flush()
		case <-ticker.C:
			b.flush()
		}
	}
}

// Flush asks the worker to send buffered entries now instead of waiting for
// a full batch or the next period
func (b *Bayes) Flush() {
	select {
	case b.flushCh <- struct{}{}:
	default:
	}
}

// flush sends buffered entries in batches of at most batchSize
func (b *Bayes) flush() {
	for {
		b.bufferMu.Lock()
		if len(b.buffer) == 0 || b.client == nil {
			b.bufferMu.Unlock()
			return
		}
		n := len(b.buffer)
		if n > b.batchSize {
			n = b.batchSize
		}
		entries := make([]Entry, n)
		copy(entries, b.buffer[:n])
		b.buffer = append(b.buffer[:0], b.buffer[n:]...)
		client := b.client
		b.bufferMu.Unlock()

		b.send(client, entries)
	}
}

func (b *Bayes) send(client FaultSinkClient, entries []Entry) {
	list := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(entries))}
	for _, e := range entries {
		s, err := e.Struct()
		if err != nil {
			b.failed.Add(1)
			b.logger.Debug("fault entry not encodable", "fault_id", e.ID, "error", err)
			continue
		}
		list.Values = append(list.Values, structpb.NewStructValue(s))
	}
	if len(list.Values) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.sendTimeout)
	defer cancel()

	resp, err := client.ReportBatch(ctx, list)
	if err != nil {
		// Entries are lost; the local log still holds them
		b.failed.Add(int64(len(list.Values)))
		b.logger.Debug("fault batch not delivered", "entries", len(list.Values), "error", err)
		return
	}
	b.sent.Add(int64(Accepted(resp)))
}

// Close flushes pending entries and closes the connection
func (b *Bayes) Close() error {
	b.stopOnce.Do(func() {
		b.cancel()
		close(b.stopCh)
	})
	<-b.doneCh // Wait for final flush

	b.bufferMu.Lock()
	defer b.bufferMu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	b.client = nil
	return b.conn.Close()
}

// IsEnabled returns whether the sink connection is established
func (b *Bayes) IsEnabled() bool {
	b.bufferMu.Lock()
	defer b.bufferMu.Unlock()
	return b.client != nil
}

// Connected is closed once the sink connection is established
func (b *Bayes) Connected() <-chan struct{} {
	return b.connected
}

// Stats returns the delivery counters
func (b *Bayes) Stats() BayesStats {
	return BayesStats{
		Sent:    b.sent.Load(),
		Dropped: b.dropped.Load(),
		Failed:  b.failed.Load(),
	}
}

// HealthCheck reports the sink connection. An unreachable sink only degrades
// the application.
func (b *Bayes) HealthCheck() health.Checker {
	return health.NewChecker("fault-sink", func(ctx context.Context) health.CheckResult {
		stats := b.Stats()
		details := map[string]interface{}{
			"address": b.address,
			"sent":    stats.Sent,
			"dropped": stats.Dropped,
			"failed":  stats.Failed,
		}
		if !b.IsEnabled() {
			return health.CheckResult{
				Status:  health.StatusDegraded,
				Message: "fault sink not connected",
				Details: details,
			}
		}
		if state := b.conn.GetState(); !bdgrpc.IsConnectionHealthy(b.conn) {
			return health.CheckResult{
				Status:  health.StatusDegraded,
				Message: "fault sink connection " + state.String(),
				Details: details,
			}
		}
		return health.CheckResult{Status: health.StatusHealthy, Details: details}
	})
}
