// ============================================================================
// boundary - Fehlergrenzen fuer mDW-Oberflaechen
// ============================================================================
//
// Package:     tui
// Description: Bubbletea adapter for render boundaries and the demo page
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/msto63/boundary/internal/guard"
)

// Boundary guards the View of a child model. While faulted it swallows all
// messages except retry; a retry mounts a fresh child.
type Boundary struct {
	mount func() tea.Model
	child tea.Model
	guard *guard.Guard
	keys  BoundaryKeyMap
}

// NewBoundary mounts the first child and wraps its View in a Guard
func NewBoundary(mount func() tea.Model, opts ...guard.Option) *Boundary {
	b := &Boundary{
		mount: mount,
		child: mount(),
		keys:  DefaultBoundaryKeyMap(),
	}
	b.guard = guard.New(guard.ViewFunc(func() string {
		return b.child.View()
	}), opts...)
	return b
}

// Init implements tea.Model
func (b *Boundary) Init() tea.Cmd {
	return b.child.Init()
}

// Update implements tea.Model
func (b *Boundary) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	b.keys.Retry.SetEnabled(b.guard.Faulted())

	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, b.keys.Retry) {
		return b, b.retry()
	}

	if b.guard.Faulted() {
		return b, nil
	}

	var cmd tea.Cmd
	b.child, cmd = b.child.Update(msg)
	return b, cmd
}

// View implements tea.Model through the Guard
func (b *Boundary) View() string {
	return b.guard.View()
}

// retry re-mounts the child if the boundary is faulted and returns the
// child's Init command
func (b *Boundary) retry() tea.Cmd {
	if !b.guard.Retry() {
		return nil
	}
	b.child = b.mount()
	b.keys.Retry.SetEnabled(false)
	return b.child.Init()
}

// Faulted reports whether the fallback is showing
func (b *Boundary) Faulted() bool {
	return b.guard.Faulted()
}

// Guard returns the underlying guard
func (b *Boundary) Guard() *guard.Guard {
	return b.guard
}

// Child returns the mounted child
func (b *Boundary) Child() tea.Model {
	return b.child
}
