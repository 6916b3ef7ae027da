package report

import (
	"context"

	bdlog "github.com/msto63/boundary/foundation/core/log"
	"github.com/msto63/boundary/internal/guard"
	"github.com/msto63/boundary/pkg/core/logging"
)

// Log reports faults through the structured logger. The guard already writes
// the error-level record, so this copy carries the error code and details at
// debug level under the fault id as correlation id.
type Log struct {
	logger *logging.Logger
}

// NewLog creates a Log reporter
func NewLog(logger *logging.Logger) *Log {
	return &Log{logger: logger.Named("fault-report")}
}

// Report logs the coded fault at debug level
func (l *Log) Report(_ context.Context, f *guard.Fault) error {
	err := f.AsError()
	fields := bdlog.Fields{
		"error_code":     err.Code().String(),
		"error_severity": err.Severity().String(),
	}
	for k, v := range err.Details() {
		fields["error_"+k] = v
	}
	l.logger.WithCorrelationID(f.ID).Debug("fault reported", fields, bdlog.Err(err))
	return nil
}
