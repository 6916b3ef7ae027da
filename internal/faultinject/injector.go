// ============================================================================
// boundary - Fehlergrenzen fuer mDW-Oberflaechen
// ============================================================================
//
// Package:     faultinject
// Description: Deliberately failing views for exercising render boundaries
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package faultinject

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrTestFault is the panic value of every Injector render
var ErrTestFault = errors.New("This is a test error!")

// Injector is a tea.Model whose View always panics with ErrTestFault
type Injector struct {
	// Err overrides the panic value. Nil means ErrTestFault.
	Err error
}

// New creates an Injector panicking with ErrTestFault
func New() Injector {
	return Injector{}
}

// Init implements tea.Model
func (i Injector) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (i Injector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return i, nil
}

// View implements tea.Model and never returns
func (i Injector) View() string {
	if i.Err != nil {
		panic(i.Err)
	}
	panic(ErrTestFault)
}

// Static is a tea.Model that renders a fixed text
type Static struct {
	Text string
}

// NewStatic creates a Static rendering text
func NewStatic(text string) Static {
	return Static{Text: text}
}

// Init implements tea.Model
func (s Static) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (s Static) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return s, nil
}

// View implements tea.Model
func (s Static) View() string {
	return s.Text
}
