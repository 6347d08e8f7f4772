package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/client"
	"taskdeck/internal/client/state"
	"taskdeck/internal/domain/models"
)

type projectMode int

const (
	projectBrowse projectMode = iota
	projectCreate
	projectRename
	projectConfirmDelete
	projectSearch
	projectTag
)

// projectListView shows one page of the user's projects
type projectListView struct {
	ctx     context.Context
	session *client.Session
	keys    keyMap
	styles  styles

	mode    projectMode
	cursor  int
	input   textinput.Model
	target  models.Project
	results *models.SearchResults
}

func newProjectListView(ctx context.Context, session *client.Session, k keyMap, s styles) *projectListView {
	input := textinput.New()
	input.CharLimit = 200
	input.Prompt = "> "
	input.Cursor.SetMode(cursor.CursorStatic)

	return &projectListView{
		ctx:     ctx,
		session: session,
		keys:    k,
		styles:  s,
		input:   input,
	}
}

func (v *projectListView) load(page int) tea.Cmd {
	return runOp("", func() error {
		return v.session.LoadPage(v.ctx, page)
	})
}

func (v *projectListView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case searchResultMsg:
		if msg.err != nil {
			return func() tea.Msg { return opResultMsg{err: msg.err} }
		}
		v.results = msg.results
		return nil
	case tea.KeyMsg:
		switch v.mode {
		case projectBrowse:
			return v.handleBrowse(msg)
		case projectConfirmDelete:
			return v.handleConfirm(msg)
		default:
			return v.handleInput(msg)
		}
	}
	return nil
}

func (v *projectListView) handleBrowse(msg tea.KeyMsg) tea.Cmd {
	st := v.session.Store().State()
	v.cursor = clamp(v.cursor, 0, len(st.Projects)-1)

	switch {
	case key.Matches(msg, v.keys.Up):
		v.cursor = clamp(v.cursor-1, 0, len(st.Projects)-1)
	case key.Matches(msg, v.keys.Down):
		v.cursor = clamp(v.cursor+1, 0, len(st.Projects)-1)

	case key.Matches(msg, v.keys.Select):
		if len(st.Projects) == 0 {
			return nil
		}
		id := st.Projects[v.cursor].ID
		v.session.SelectProject(id)
		return func() tea.Msg { return selectedProjectMsg{id: id} }

	case key.Matches(msg, v.keys.New):
		return v.prompt(projectCreate, "Name #tag #tag", "")

	case key.Matches(msg, v.keys.Edit):
		if len(st.Projects) == 0 {
			return nil
		}
		v.target = st.Projects[v.cursor]
		return v.prompt(projectRename, "Name #tag #tag", formatProjectInput(v.target))

	case key.Matches(msg, v.keys.Delete):
		if len(st.Projects) == 0 {
			return nil
		}
		v.target = st.Projects[v.cursor]
		if state.NeedsDeleteConfirmation(v.target) {
			v.mode = projectConfirmDelete
			return nil
		}
		return v.deleteTarget()

	case key.Matches(msg, v.keys.NextPage):
		if st.CurrentPage < st.TotalPages {
			v.cursor = 0
			return v.load(st.CurrentPage + 1)
		}
	case key.Matches(msg, v.keys.PrevPage):
		if st.CurrentPage > 1 {
			v.cursor = 0
			return v.load(st.CurrentPage - 1)
		}

	case key.Matches(msg, v.keys.Search):
		return v.prompt(projectSearch, "Search projects and tasks", "")
	case key.Matches(msg, v.keys.Tag):
		return v.prompt(projectTag, "Tag", "")

	case key.Matches(msg, v.keys.Reload):
		v.results = nil
		return v.load(st.CurrentPage)
	}
	return nil
}

func (v *projectListView) handleConfirm(msg tea.KeyMsg) tea.Cmd {
	v.mode = projectBrowse
	if key.Matches(msg, v.keys.Confirm) {
		return v.deleteTarget()
	}
	return nil
}

func (v *projectListView) handleInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, v.keys.Cancel):
		v.closePrompt()
		return nil
	case key.Matches(msg, v.keys.Submit):
		value := strings.TrimSpace(v.input.Value())
		mode := v.mode
		v.closePrompt()
		if value == "" {
			return nil
		}
		return v.submit(mode, value)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return cmd
}

func (v *projectListView) submit(mode projectMode, value string) tea.Cmd {
	ctx, session := v.ctx, v.session

	switch mode {
	case projectCreate:
		name, tags := parseProjectInput(value)
		return runOp("Project created", func() error {
			_, err := session.CreateProject(ctx, name, tags)
			return err
		})

	case projectRename:
		id := v.target.ID
		name, tags := parseProjectInput(value)
		return runOp("Project updated", func() error {
			return session.UpdateProject(ctx, id, name, &tags)
		})

	case projectSearch:
		v.results = nil
		return func() tea.Msg {
			results, err := session.Search(ctx, value)
			return searchResultMsg{results: results, err: err}
		}

	case projectTag:
		v.cursor = 0
		return runOp(fmt.Sprintf("Projects tagged %q (r to reload)", value), func() error {
			return session.ProjectsByTag(ctx, value)
		})
	}
	return nil
}

func (v *projectListView) deleteTarget() tea.Cmd {
	ctx, session, id := v.ctx, v.session, v.target.ID
	return runOp("Project deleted", func() error {
		return session.DeleteProject(ctx, id)
	})
}

func (v *projectListView) prompt(mode projectMode, placeholder, value string) tea.Cmd {
	v.mode = mode
	v.input.Placeholder = placeholder
	v.input.SetValue(value)
	v.input.CursorEnd()
	return v.input.Focus()
}

func (v *projectListView) closePrompt() {
	v.mode = projectBrowse
	v.input.Blur()
	v.input.Reset()
}

func (v *projectListView) help() string {
	switch v.mode {
	case projectBrowse:
		return helpLine(v.keys.projectHelp())
	case projectConfirmDelete:
		return helpLine([]key.Binding{v.keys.Confirm})
	default:
		return helpLine(v.keys.inputHelp())
	}
}

func (v *projectListView) View(width int) string {
	st := v.session.Store().State()
	s := v.styles

	var b strings.Builder
	b.WriteString(s.Title.Render("Projects"))
	b.WriteString(s.TitleMuted.Render(fmt.Sprintf("  page %d/%d", st.CurrentPage, max(st.TotalPages, 1))))
	b.WriteString("\n\n")

	if len(st.Projects) == 0 {
		b.WriteString(s.TitleMuted.Render("No projects yet. Press n to create one."))
		b.WriteString("\n")
	}

	sel := clamp(v.cursor, 0, len(st.Projects)-1)
	for i, p := range st.Projects {
		line := fmt.Sprintf("%s  %d/%d open", p.Name, p.UnresolvedCount(), len(p.Tasks))
		if len(p.Tags) > 0 {
			line += "  " + s.Tag.Render(formatTags(p.Tags))
		}
		switch {
		case i == sel && v.mode == projectBrowse:
			b.WriteString(s.Selected.Render("> " + line))
		case p.ID == st.CurrentProjectID:
			b.WriteString(s.Current.Render("• " + line))
		default:
			b.WriteString(s.Item.Render("  " + line))
		}
		b.WriteString("\n")
	}

	switch v.mode {
	case projectConfirmDelete:
		b.WriteString("\n")
		b.WriteString(s.Warn.Render(fmt.Sprintf("Delete %q with %d unresolved tasks? (y/n)", v.target.Name, v.target.UnresolvedCount())))
		b.WriteString("\n")
	case projectCreate, projectRename, projectSearch, projectTag:
		b.WriteString("\n")
		b.WriteString(s.Input.Render(v.input.View()))
		b.WriteString("\n")
	}

	if v.results != nil {
		b.WriteString("\n")
		b.WriteString(renderResults(v.results, s))
	}

	return s.Pane.Width(width - 2).Render(strings.TrimRight(b.String(), "\n"))
}

func renderResults(r *models.SearchResults, s styles) string {
	var b strings.Builder
	b.WriteString(s.Title.Render("Search results"))
	b.WriteString("\n")

	if len(r.ByProjectName) == 0 && len(r.ByTaskContent) == 0 {
		b.WriteString(s.TitleMuted.Render("Nothing matched."))
		b.WriteString("\n")
		return b.String()
	}

	for _, p := range r.ByProjectName {
		b.WriteString(s.Item.Render("  " + p.Name + " " + s.Tag.Render(formatTags(p.Tags))))
		b.WriteString("\n")
	}
	for _, p := range r.ByTaskContent {
		for _, t := range p.Tasks {
			b.WriteString(s.Item.Render(fmt.Sprintf("  %s: %s", p.Name, t.Content)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// parseProjectInput splits "Launch plan #work #q3" into a name and tags
func parseProjectInput(s string) (string, []string) {
	var name []string
	tags := []string{}
	for _, field := range strings.Fields(s) {
		if tag, ok := strings.CutPrefix(field, "#"); ok {
			if tag != "" {
				tags = append(tags, tag)
			}
			continue
		}
		name = append(name, field)
	}
	return strings.Join(name, " "), tags
}

func formatProjectInput(p models.Project) string {
	if len(p.Tags) == 0 {
		return p.Name
	}
	return p.Name + " " + formatTags(p.Tags)
}

func formatTags(tags []string) string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = "#" + t
	}
	return strings.Join(out, " ")
}
