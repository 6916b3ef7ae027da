package report

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/msto63/boundary/internal/guard"
	"github.com/msto63/boundary/pkg/core/logging"
)

var errTest = errors.New("This is a test error!")

func testFault(id, boundary string, attempt int) *guard.Fault {
	return &guard.Fault{
		ID:         id,
		Boundary:   boundary,
		Err:        errTest,
		Stack:      []byte("goroutine 1 [running]:\nmain.main()"),
		OccurredAt: time.Date(2026, 10, 19, 12, 0, attempt, 0, time.UTC),
		Attempt:    attempt,
	}
}

type recordingReporter struct {
	faults []*guard.Fault
	err    error
}

func (r *recordingReporter) Report(_ context.Context, f *guard.Fault) error {
	r.faults = append(r.faults, f)
	return r.err
}

func TestLog_Report(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		written bool
	}{
		{"debug level", "debug", true},
		{"info level", "info", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			cfg := logging.DefaultLoggerConfig("test")
			cfg.Level = tt.level
			cfg.Output = buf
			l := NewLog(logging.Wrap(logging.NewLogger(cfg)))

			if err := l.Report(context.Background(), testFault("f-1", "injector", 1)); err != nil {
				t.Fatalf("Report() error = %v", err)
			}

			out := buf.String()
			if !tt.written {
				if out != "" {
					t.Errorf("log output at %s level = %q, want none", tt.level, out)
				}
				return
			}
			for _, want := range []string{"RENDER_FAULT", "f-1", "injector", "This is a test error!", `"level":"debug"`} {
				if !strings.Contains(out, want) {
					t.Errorf("log output misses %q: %s", want, out)
				}
			}
			if strings.Contains(out, `"level":"error"`) {
				t.Errorf("reporter copy logged at error level: %s", out)
			}
		})
	}
}

func TestMulti_CallsEveryReporter(t *testing.T) {
	first := &recordingReporter{err: errors.New("first failed")}
	second := &recordingReporter{}
	panicking := guard.ReporterFunc(func(context.Context, *guard.Fault) error {
		panic("boom")
	})
	third := &recordingReporter{}

	m := NewMulti(first, nil, second, panicking, third)
	if len(m) != 4 {
		t.Fatalf("len(Multi) = %d, want 4 (nil skipped)", len(m))
	}

	err := m.Report(context.Background(), testFault("f-1", "b", 1))
	if err == nil {
		t.Fatal("expected joined error")
	}
	if !strings.Contains(err.Error(), "first failed") || !strings.Contains(err.Error(), "panicked") {
		t.Errorf("joined error = %v", err)
	}
	for i, r := range []*recordingReporter{first, second, third} {
		if len(r.faults) != 1 {
			t.Errorf("reporter %d called %d times, want 1", i, len(r.faults))
		}
	}
}

func TestMulti_Empty(t *testing.T) {
	if err := NewMulti().Report(context.Background(), testFault("f-1", "b", 1)); err != nil {
		t.Errorf("empty Multi error = %v", err)
	}
}

func TestThrottle(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		window    time.Duration
		steps     []time.Duration // clock advance before each report
		boundary  []string
		forwarded int
	}{
		{"disabled forwards everything", 0, []time.Duration{0, 0, 0}, []string{"a", "a", "a"}, 3},
		{"repeat inside window suppressed", time.Second, []time.Duration{0, 100 * time.Millisecond, 100 * time.Millisecond}, []string{"a", "a", "a"}, 1},
		{"repeat after window forwarded", time.Second, []time.Duration{0, 2 * time.Second}, []string{"a", "a"}, 2},
		{"different boundaries forwarded", time.Second, []time.Duration{0, 0}, []string{"a", "b"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := &recordingReporter{}
			th := NewThrottle(next, tt.window)
			clock := now
			th.now = func() time.Time { return clock }

			for i, step := range tt.steps {
				clock = clock.Add(step)
				th.Report(context.Background(), testFault("f", tt.boundary[i], i+1))
			}

			if len(next.faults) != tt.forwarded {
				t.Errorf("forwarded = %d, want %d", len(next.faults), tt.forwarded)
			}
			if got := th.Suppressed(); got != len(tt.steps)-tt.forwarded {
				t.Errorf("Suppressed() = %d, want %d", got, len(tt.steps)-tt.forwarded)
			}
		})
	}
}

func TestEntry_StructRoundTrip(t *testing.T) {
	f := testFault("f-9", "episodes", 3)
	e := NewEntry("boundary", f)

	s, err := e.Struct()
	if err != nil {
		t.Fatalf("Struct() error = %v", err)
	}
	got := EntryFromStruct(s)
	if got.ID != "f-9" || got.Boundary != "episodes" || got.Attempt != 3 || got.Service != "boundary" {
		t.Errorf("EntryFromStruct() = %+v", got)
	}
	if got.Message != "This is a test error!" {
		t.Errorf("Message = %q", got.Message)
	}
	if !got.OccurredAt.Equal(f.OccurredAt) {
		t.Errorf("OccurredAt = %v, want %v", got.OccurredAt, f.OccurredAt)
	}
}

func TestEntry_StackTruncatedAndSanitised(t *testing.T) {
	f := testFault("f-1", "b", 1)
	f.Stack = bytes.Repeat([]byte("x"), maxStackBytes+100)
	f.Err = errors.New("bad \xff utf8")

	e := NewEntry("svc", f)
	if len(e.Stack) != maxStackBytes {
		t.Errorf("len(Stack) = %d, want %d", len(e.Stack), maxStackBytes)
	}
	if _, err := e.Struct(); err != nil {
		t.Errorf("Struct() with invalid UTF-8 error = %v", err)
	}
}
