package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/msto63/boundary/internal/episodes"
	"github.com/msto63/boundary/internal/faultinject"
	"github.com/msto63/boundary/internal/guard"
)

// Boundary names used on the page
const (
	EpisodesBoundary = "episodes"
	InjectorBoundary = "injector"
)

const defaultTableHeight = 10

// PageConfig configures the demo page
type PageConfig struct {
	Title    string
	Catalog  *episodes.Catalog
	Fallback guard.Fallback

	// Inject mounts the fault injector from the start
	Inject bool

	// GuardOptions are applied to every boundary on the page, typically
	// the reporter, metrics and logger
	GuardOptions []guard.Option
}

// Page is the top-level model: a guarded episode list and a guarded slot
// the fault injector can be toggled into
type Page struct {
	title    string
	catalog  *episodes.Catalog
	fallback guard.Fallback
	opts     []guard.Option

	episodes *Boundary
	slot     *Boundary

	keys     PageKeyMap
	help     help.Model
	height   int
	quitting bool
}

// NewPage creates the page
func NewPage(cfg PageConfig) *Page {
	if cfg.Catalog == nil {
		cfg.Catalog = episodes.Default()
	}
	if cfg.Fallback.Message == "" {
		cfg.Fallback = guard.DefaultFallback()
	}
	if cfg.Title == "" {
		cfg.Title = cfg.Catalog.Title
	}

	p := &Page{
		title:    cfg.Title,
		catalog:  cfg.Catalog,
		fallback: cfg.Fallback,
		opts:     cfg.GuardOptions,
		keys:     DefaultPageKeyMap(),
		help:     help.New(),
		height:   defaultTableHeight,
	}
	p.episodes = p.newBoundary(EpisodesBoundary, func() tea.Model {
		return episodes.NewModel(p.catalog, p.height)
	})
	if cfg.Inject {
		p.slot = p.newInjectorSlot()
	}
	return p
}

func (p *Page) newBoundary(name string, mount func() tea.Model) *Boundary {
	opts := append([]guard.Option{}, p.opts...)
	opts = append(opts,
		guard.WithName(name),
		guard.WithFallback(NewFallbackView(p.fallback)),
	)
	return NewBoundary(mount, opts...)
}

func (p *Page) newInjectorSlot() *Boundary {
	return p.newBoundary(InjectorBoundary, func() tea.Model {
		return faultinject.New()
	})
}

// Init implements tea.Model
func (p *Page) Init() tea.Cmd {
	if p.slot != nil {
		return tea.Batch(p.episodes.Init(), p.slot.Init())
	}
	return p.episodes.Init()
}

// Update implements tea.Model
func (p *Page) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.help.Width = msg.Width
		p.height = episodes.TableHeight(msg.Height)
		return p, p.broadcast(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Quit):
			p.quitting = true
			return p, tea.Quit
		case key.Matches(msg, p.keys.Inject):
			return p, p.ToggleInjector()
		}
		if target := p.faultedBoundary(); target != nil {
			retry := p.keys.Retry
			retry.SetEnabled(true)
			if key.Matches(msg, retry) {
				_, cmd := target.Update(msg)
				return p, cmd
			}
		}
		_, cmd := p.episodes.Update(msg)
		return p, cmd
	}

	return p, p.broadcast(msg)
}

// broadcast sends msg to every boundary on the page
func (p *Page) broadcast(msg tea.Msg) tea.Cmd {
	_, cmd := p.episodes.Update(msg)
	if p.slot == nil {
		return cmd
	}
	_, slotCmd := p.slot.Update(msg)
	return tea.Batch(cmd, slotCmd)
}

// faultedBoundary returns the boundary the retry key goes to: a faulted
// slot first, then a faulted episode list, or nil. Every other key goes to
// the episode list.
func (p *Page) faultedBoundary() *Boundary {
	if p.slot != nil && p.slot.Faulted() {
		return p.slot
	}
	if p.episodes.Faulted() {
		return p.episodes
	}
	return nil
}

// ToggleInjector mounts or removes the fault injector
func (p *Page) ToggleInjector() tea.Cmd {
	if p.slot != nil {
		p.slot = nil
		return nil
	}
	p.slot = p.newInjectorSlot()
	return p.slot.Init()
}

// Injecting reports whether the fault injector is mounted
func (p *Page) Injecting() bool {
	return p.slot != nil
}

// Episodes returns the episode boundary
func (p *Page) Episodes() *Boundary {
	return p.episodes
}

// Slot returns the injector boundary, or nil
func (p *Page) Slot() *Boundary {
	return p.slot
}

// View implements tea.Model
func (p *Page) View() string {
	if p.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(RenderTitle(p.title))
	b.WriteString("\n")
	b.WriteString(p.episodes.View())
	b.WriteString("\n")

	faulted := p.episodes.Faulted()
	if p.slot != nil {
		b.WriteString(BoxStyle.Render(p.slot.View()))
		b.WriteString("\n")
		faulted = faulted || p.slot.Faulted()
	} else {
		b.WriteString(SubtitleStyle.Render("fault injector off"))
		b.WriteString("\n")
	}

	keys := p.keys
	keys.Retry.SetEnabled(faulted)
	b.WriteString(RenderHelp(p.help.View(keys)))

	return b.String()
}
