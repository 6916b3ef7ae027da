package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/msto63/boundary/internal/guard"
)

// Multi fans a fault out to several reporters
type Multi []guard.Reporter

// NewMulti creates a Multi, skipping nil reporters
func NewMulti(reporters ...guard.Reporter) Multi {
	m := make(Multi, 0, len(reporters))
	for _, r := range reporters {
		if r != nil {
			m = append(m, r)
		}
	}
	return m
}

// Report calls every reporter, even after one failed, and joins the errors.
// A panicking reporter counts as failed.
func (m Multi) Report(ctx context.Context, f *guard.Fault) error {
	var errs []error
	for _, r := range m {
		if err := reportSafely(ctx, r, f); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func reportSafely(ctx context.Context, r guard.Reporter, f *guard.Fault) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("reporter %T panicked: %v", r, p)
		}
	}()
	return r.Report(ctx, f)
}
