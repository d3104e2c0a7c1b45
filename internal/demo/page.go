package demo

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/modalhost/pkg/focus"
	"github.com/marcus/modalhost/pkg/modal"
	"github.com/marcus/modalhost/pkg/mouse"
)

// Trigger is a page button that opens a dialog. Open runs inside a tea.Cmd,
// blocks until the dialog settles and returns the text for the status line.
type Trigger struct {
	ID    string
	Label string
	Open  func(ctx context.Context) string
}

// ResultMsg carries a trigger's outcome back to the page.
type ResultMsg struct {
	Trigger string
	Status  string
}

// DefaultTriggers returns the triggers of the demo page.
func DefaultTriggers() []Trigger {
	return []Trigger{
		{ID: "subscribe", Label: "Subscribe", Open: openEmail},
		{ID: "pick", Label: "Pick a color", Open: openPicker},
		{ID: "terms", Label: "Read terms", Open: openTerms},
	}
}

// Colors offered by the demo picker.
var Colors = []string{
	"Amber", "Azure", "Crimson", "Emerald", "Indigo",
	"Ivory", "Magenta", "Olive", "Saffron", "Teal",
}

func openEmail(ctx context.Context) string {
	res, ok, err := modal.OpenWithRender(EmailForm).Await(ctx)
	return describe("subscribe", res.Email, ok, err)
}

func openPicker(ctx context.Context) string {
	color, ok, err := modal.OpenWithRender(Picker("Pick a color", Colors)).Await(ctx)
	return describe("pick", color, ok, err)
}

func openTerms(ctx context.Context) string {
	accepted, ok, err := modal.OpenWithRender(Terms(DefaultTerms, 6)).Await(ctx)
	return describe("terms", fmt.Sprint(accepted), ok, err)
}

func describe(name, value string, ok bool, err error) string {
	switch {
	case err != nil:
		return fmt.Sprintf("%s: %v", name, err)
	case !ok:
		return name + ": cancelled"
	}
	return fmt.Sprintf("%s: %s", name, value)
}

var (
	pageTitle  = lipgloss.NewStyle().Bold(true).Foreground(modal.Primary)
	pageStatus = lipgloss.NewStyle().Foreground(modal.Info)
	pageHelp   = modal.MutedText
)

const (
	pageMargin = 2
	// rows of the background layout
	rowTitle   = 0
	rowButtons = 2
	rowStatus  = 4
	rowHelp    = 6
)

// Page is a bubbletea model with a row of trigger buttons and a modal host
// drawn on top. Every message goes to the host first.
type Page struct {
	title    string
	host     *modal.Host
	focus    *focus.Manager
	triggers []Trigger
	hits     *mouse.HitMap
	ctx      context.Context

	status        string
	width, height int
}

// NewPage creates a page. The first trigger starts focused.
func NewPage(ctx context.Context, title string, triggers []Trigger, opts ...modal.HostOption) *Page {
	ids := make([]string, len(triggers))
	for i, t := range triggers {
		ids[i] = t.ID
	}
	fm := focus.NewManager(ids...)
	fm.Next()

	return &Page{
		title:    title,
		host:     modal.NewHost(fm, opts...),
		focus:    fm,
		triggers: triggers,
		hits:     mouse.NewHitMap(),
		ctx:      ctx,
		width:    80,
		height:   24,
	}
}

// Host returns the page's modal host.
func (p *Page) Host() *modal.Host { return p.host }

// Focus returns the page's focus manager.
func (p *Page) Focus() *focus.Manager { return p.focus }

// Status returns the status line text.
func (p *Page) Status() string { return p.status }

func (p *Page) Init() tea.Cmd { return nil }

func (p *Page) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	hostCmd, handled := p.host.Update(msg)
	if handled {
		return p, hostCmd
	}

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width, p.height = msg.Width, msg.Height

	case ResultMsg:
		p.status = msg.Status

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			cmd = tea.Quit
		case "tab", "right", "l":
			p.focus.Next()
		case "shift+tab", "left", "h":
			p.focus.Prev()
		case "enter", " ":
			cmd = p.activate(p.focus.Current())
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if r := p.hits.Test(msg.X, msg.Y); r != nil {
				p.focus.Focus(r.ID)
				cmd = p.activate(r.ID)
			}
		}
	}
	return p, tea.Batch(hostCmd, cmd)
}

// activate starts the trigger registered under id.
func (p *Page) activate(id string) tea.Cmd {
	for _, t := range p.triggers {
		if t.ID != id || t.Open == nil {
			continue
		}
		p.status = "waiting for " + strings.ToLower(t.Label) + "..."
		open, ctx := t.Open, p.ctx
		return func() tea.Msg {
			return ResultMsg{Trigger: id, Status: open(ctx)}
		}
	}
	return nil
}

func (p *Page) View() string {
	p.hits.Clear()

	lines := make([]string, rowHelp+1)
	pad := strings.Repeat(" ", pageMargin)
	lines[rowTitle] = pad + pageTitle.Render(p.title)

	var row []string
	x := pageMargin
	for i, t := range p.triggers {
		style := modal.Button
		if p.focus.Current() == t.ID {
			style = modal.ButtonFocused
		}
		b := style.Render(t.Label)
		if i > 0 {
			row = append(row, pad)
			x += pageMargin
		}
		row = append(row, b)
		w := lipgloss.Width(b)
		p.hits.AddRect(t.ID, x, rowButtons, w, 1, nil)
		x += w
	}
	lines[rowButtons] = pad + strings.Join(row, "")

	if p.status != "" {
		lines[rowStatus] = pad + pageStatus.Render(p.status)
	}
	lines[rowHelp] = pad + pageHelp.Render("tab move · enter open · q quit")

	return p.host.View(strings.Join(lines, "\n"), p.width, p.height)
}
