package report

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	bderror "github.com/msto63/boundary/foundation/core/error"
	"github.com/msto63/boundary/internal/guard"
	"github.com/msto63/boundary/pkg/core/health"
	"google.golang.org/protobuf/types/known/structpb"
)

// JournalFilter defines criteria for listing faults
type JournalFilter struct {
	Boundary  string
	Service   string
	StartTime time.Time
	Limit     int
}

// JournalStats summarises the journal
type JournalStats struct {
	Total      int64
	ByBoundary map[string]int64
	Oldest     time.Time
	Newest     time.Time
}

// Journal stores one row per fault in SQLite. It only keeps diagnostics;
// guard state is never written.
type Journal struct {
	db      *sql.DB
	mu      sync.RWMutex
	service string
}

// JournalConfig holds configuration for the journal
type JournalConfig struct {
	Path    string
	Service string
}

// DefaultJournalConfig returns default configuration
func DefaultJournalConfig() JournalConfig {
	return JournalConfig{
		Path:    "./data/faults.db",
		Service: "boundary",
	}
}

// OpenJournal opens (and creates) the journal database
func OpenJournal(cfg JournalConfig) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, journalError(err, "failed to create journal directory").WithDetail("path", cfg.Path)
	}

	// Open database with WAL mode
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, journalError(err, "failed to open journal").WithDetail("path", cfg.Path)
	}

	j := &Journal{db: db, service: cfg.Service}
	if err := j.initSchema(); err != nil {
		db.Close()
		return nil, journalError(err, "failed to initialize journal schema").WithDetail("path", cfg.Path)
	}
	return j, nil
}

// initSchema creates the faults table
func (j *Journal) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS faults (
		id TEXT PRIMARY KEY,
		occurred_at DATETIME NOT NULL,
		service TEXT NOT NULL,
		boundary TEXT NOT NULL,
		message TEXT NOT NULL,
		attempt INTEGER NOT NULL,
		stack TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_faults_occurred_at ON faults(occurred_at DESC);
	CREATE INDEX IF NOT EXISTS idx_faults_boundary ON faults(boundary);
	`
	_, err := j.db.Exec(schema)
	return err
}

// Report writes the fault as one row
func (j *Journal) Report(ctx context.Context, f *guard.Fault) error {
	return j.Insert(ctx, NewEntry(j.service, f))
}

// Insert writes one entry
func (j *Journal) Insert(ctx context.Context, e Entry) error {
	_, _, err := j.InsertBatch(ctx, []Entry{e})
	return err
}

// InsertBatch writes entries in one transaction and returns how many were
// accepted and rejected. Duplicate IDs are rejected.
func (j *Journal) InsertBatch(ctx context.Context, entries []Entry) (int, int, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, len(entries), journalError(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO faults (id, occurred_at, service, boundary, message, attempt, stack)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, len(entries), journalError(err, "failed to prepare statement")
	}
	defer stmt.Close()

	var accepted, rejected int
	for _, e := range entries {
		if e.ID == "" {
			rejected++
			continue
		}
		if e.OccurredAt.IsZero() {
			e.OccurredAt = time.Now()
		}
		if e.Service == "" {
			e.Service = j.service
		}
		if _, err := stmt.ExecContext(ctx, e.ID, e.OccurredAt.UTC(), e.Service, e.Boundary,
			e.Message, e.Attempt, e.Stack); err != nil {
			rejected++
		} else {
			accepted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, len(entries), journalError(err, "failed to commit transaction")
	}
	if accepted == 0 && rejected > 0 {
		return 0, rejected, bderror.New("no fault entry accepted").
			WithCode(bderror.CodeJournalError).
			WithDetail("rejected", rejected)
	}
	return accepted, rejected, nil
}

// ReportBatch implements FaultSinkServer so a journal can act as the sink
func (j *Journal) ReportBatch(ctx context.Context, in *structpb.ListValue) (*structpb.Struct, error) {
	entries := make([]Entry, 0, len(in.GetValues()))
	for _, v := range in.GetValues() {
		if s := v.GetStructValue(); s != nil {
			entries = append(entries, EntryFromStruct(s))
		}
	}

	accepted, rejected, err := j.InsertBatch(ctx, entries)
	if err != nil && accepted == 0 && rejected == 0 {
		return nil, err
	}
	rejected += len(in.GetValues()) - len(entries)

	return structpb.NewStruct(map[string]interface{}{
		"accepted": accepted,
		"rejected": rejected,
	})
}

// List returns faults, newest first
func (j *Journal) List(ctx context.Context, filter JournalFilter) ([]Entry, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	query := `SELECT id, occurred_at, service, boundary, message, attempt, stack FROM faults WHERE 1=1`
	var args []interface{}

	if filter.Boundary != "" {
		query += " AND boundary = ?"
		args = append(args, filter.Boundary)
	}
	if filter.Service != "" {
		query += " AND service = ?"
		args = append(args, filter.Service)
	}
	if !filter.StartTime.IsZero() {
		query += " AND occurred_at >= ?"
		args = append(args, filter.StartTime.UTC())
	}

	query += " ORDER BY occurred_at DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, journalError(err, "failed to query faults")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var stack sql.NullString
		if err := rows.Scan(&e.ID, &e.OccurredAt, &e.Service, &e.Boundary,
			&e.Message, &e.Attempt, &stack); err != nil {
			return nil, journalError(err, "failed to scan fault")
		}
		e.Stack = stack.String
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, journalError(err, "failed to read faults")
	}
	return entries, nil
}

// Stats returns fault counts
func (j *Journal) Stats(ctx context.Context) (*JournalStats, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	stats := &JournalStats{ByBoundary: make(map[string]int64)}

	rows, err := j.db.QueryContext(ctx, `SELECT boundary, COUNT(*) FROM faults GROUP BY boundary`)
	if err != nil {
		return nil, journalError(err, "failed to count faults")
	}
	defer rows.Close()

	for rows.Next() {
		var boundary string
		var count int64
		if err := rows.Scan(&boundary, &count); err != nil {
			return nil, journalError(err, "failed to scan fault count")
		}
		stats.ByBoundary[boundary] = count
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return nil, journalError(err, "failed to read fault counts")
	}

	if stats.Total > 0 {
		var oldest, newest string
		row := j.db.QueryRowContext(ctx, `SELECT MIN(occurred_at), MAX(occurred_at) FROM faults`)
		if err := row.Scan(&oldest, &newest); err == nil {
			stats.Oldest = parseSQLiteTime(oldest)
			stats.Newest = parseSQLiteTime(newest)
		}
	}
	return stats, nil
}

// Prune deletes faults older than the given duration
func (j *Journal) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	cutoff := time.Now().Add(-olderThan).UTC()
	result, err := j.db.ExecContext(ctx, `DELETE FROM faults WHERE occurred_at < ?`, cutoff)
	if err != nil {
		return 0, journalError(err, "failed to prune faults")
	}
	return result.RowsAffected()
}

// Close closes the database
func (j *Journal) Close() error {
	return j.db.Close()
}

// HealthCheck pings the database
func (j *Journal) HealthCheck() health.Checker {
	return health.NewChecker("fault-journal", func(ctx context.Context) health.CheckResult {
		if err := j.db.PingContext(ctx); err != nil {
			return health.CheckResult{Status: health.StatusUnhealthy, Message: err.Error()}
		}
		return health.CheckResult{Status: health.StatusHealthy}
	})
}

// sqliteTimeLayouts are the layouts go-sqlite3 uses for aggregated DATETIME
// values, which come back as text
var sqliteTimeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
}

func parseSQLiteTime(s string) time.Time {
	for _, layout := range sqliteTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func journalError(err error, msg string) *bderror.Error {
	return bderror.Wrap(err, msg).WithCode(bderror.CodeJournalError)
}
