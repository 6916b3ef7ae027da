package faultinject

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func recoverView(m tea.Model) (out string, recovered interface{}) {
	defer func() {
		recovered = recover()
	}()
	return m.View(), nil
}

func TestInjector_ViewPanics(t *testing.T) {
	custom := errors.New("custom")
	tests := []struct {
		name string
		inj  Injector
		want error
	}{
		{"default", New(), ErrTestFault},
		{"custom", Injector{Err: custom}, custom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, r := recoverView(tt.inj)
			err, ok := r.(error)
			if !ok {
				t.Fatalf("panic value %v is not an error", r)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("panic value = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestInjector_UpdateAndInitAreNoops(t *testing.T) {
	inj := New()
	if cmd := inj.Init(); cmd != nil {
		t.Error("Init() returned a command")
	}
	m, cmd := inj.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("Update() returned a command")
	}
	if _, ok := m.(Injector); !ok {
		t.Errorf("Update() returned %T, want Injector", m)
	}
}

func TestErrTestFault_Message(t *testing.T) {
	if ErrTestFault.Error() != "This is a test error!" {
		t.Errorf("ErrTestFault = %q", ErrTestFault.Error())
	}
}

func TestStatic_View(t *testing.T) {
	s := NewStatic("Hello")
	if got, r := recoverView(s); r != nil || got != "Hello" {
		t.Errorf("View() = %q, panic %v", got, r)
	}
	m, _ := s.Update(tea.WindowSizeMsg{Width: 10, Height: 5})
	if m.View() != "Hello" {
		t.Error("Update changed the static text")
	}
}
