// Package tui is the interactive terminal front end. Every change goes
// through client.Session, so what is drawn always reflects the store.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/client"
	"taskdeck/internal/domain/models"
)

type view int

const (
	viewProjects view = iota
	viewTasks
)

// opResultMsg reports a finished server round trip
type opResultMsg struct {
	status string
	err    error
}

type searchResultMsg struct {
	results *models.SearchResults
	err     error
}

type selectedProjectMsg struct{ id string }

type backToProjectsMsg struct{}

// App is the root bubbletea model
type App struct {
	ctx     context.Context
	session *client.Session
	keys    keyMap
	styles  styles

	current  view
	projects *projectListView
	tasks    *taskListView

	status    string
	statusErr bool
	width     int
	height    int
}

// NewApp creates the root model. ctx bounds every server call it makes.
func NewApp(ctx context.Context, session *client.Session) *App {
	k := defaultKeyMap()
	s := newStyles()
	return &App{
		ctx:      ctx,
		session:  session,
		keys:     k,
		styles:   s,
		current:  viewProjects,
		projects: newProjectListView(ctx, session, k, s),
	}
}

func (a *App) Init() tea.Cmd {
	return a.projects.load(1)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if key.Matches(msg, a.keys.Quit) && !a.capturingInput() {
			return a, tea.Quit
		}
		a.status = ""

	case opResultMsg:
		a.setStatus(msg.status, msg.err)
		return a, nil

	case selectedProjectMsg:
		a.current = viewTasks
		a.tasks = newTaskListView(a.ctx, a.session, msg.id, a.keys, a.styles)
		return a, nil

	case backToProjectsMsg:
		a.current = viewProjects
		a.tasks = nil
		return a, nil
	}

	switch a.current {
	case viewTasks:
		return a, a.tasks.Update(msg)
	default:
		return a, a.projects.Update(msg)
	}
}

func (a *App) View() string {
	width := contentWidth(a.width)

	var body, help string
	switch a.current {
	case viewTasks:
		body = a.tasks.View(width)
		help = a.tasks.help()
	default:
		body = a.projects.View(width)
		help = a.projects.help()
	}

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n")
	if a.status != "" {
		if a.statusErr {
			b.WriteString(a.styles.Error.Render(a.status))
		} else {
			b.WriteString(a.styles.Status.Render(a.status))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Width(width).Render(help))

	return centerView(b.String(), a.width, a.height)
}

func (a *App) capturingInput() bool {
	if a.current == viewTasks {
		return a.tasks.mode != taskBrowse
	}
	return a.projects.mode != projectBrowse
}

func (a *App) setStatus(status string, err error) {
	if err != nil {
		a.status = err.Error()
		a.statusErr = true
		return
	}
	a.status = status
	a.statusErr = false
}

// runOp runs fn off the update loop and reports how it went
func runOp(status string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return opResultMsg{status: status, err: fn()}
	}
}

func helpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val > maxVal {
		val = maxVal
	}
	if val < minVal {
		val = minVal
	}
	return val
}
