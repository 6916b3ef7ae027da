package report

import (
	"strings"
	"time"

	"github.com/msto63/boundary/internal/guard"
	"github.com/msto63/boundary/pkg/core/version"
	"google.golang.org/protobuf/types/known/structpb"
)

// maxStackBytes caps the stack carried in a report entry
const maxStackBytes = 8 * 1024

// Entry is the wire and journal form of a fault
type Entry struct {
	ID         string    `json:"id"`
	Service    string    `json:"service"`
	Boundary   string    `json:"boundary"`
	Message    string    `json:"message"`
	Stack      string    `json:"stack,omitempty"`
	Attempt    int       `json:"attempt"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEntry converts a fault reported by service into an Entry
func NewEntry(service string, f *guard.Fault) Entry {
	stack := string(f.Stack)
	if len(stack) > maxStackBytes {
		stack = stack[:maxStackBytes]
	}
	return Entry{
		ID:         f.ID,
		Service:    service,
		Boundary:   f.Boundary,
		Message:    f.Message(),
		Stack:      stack,
		Attempt:    f.Attempt,
		OccurredAt: f.OccurredAt,
	}
}

// Struct encodes the entry as a protobuf Struct
func (e Entry) Struct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"schema":      version.ReportSchema,
		"id":          e.ID,
		"service":     valid(e.Service),
		"boundary":    valid(e.Boundary),
		"message":     valid(e.Message),
		"stack":       valid(e.Stack),
		"attempt":     e.Attempt,
		"occurred_at": e.OccurredAt.UTC().Format(time.RFC3339Nano),
	})
}

// EntryFromStruct decodes an entry encoded by Entry.Struct
func EntryFromStruct(s *structpb.Struct) Entry {
	fields := s.GetFields()
	e := Entry{
		ID:       fields["id"].GetStringValue(),
		Service:  fields["service"].GetStringValue(),
		Boundary: fields["boundary"].GetStringValue(),
		Message:  fields["message"].GetStringValue(),
		Stack:    fields["stack"].GetStringValue(),
		Attempt:  int(fields["attempt"].GetNumberValue()),
	}
	if ts, err := time.Parse(time.RFC3339Nano, fields["occurred_at"].GetStringValue()); err == nil {
		e.OccurredAt = ts
	}
	return e
}

// valid replaces invalid UTF-8, which structpb rejects
func valid(s string) string {
	return strings.ToValidUTF8(s, "�")
}
