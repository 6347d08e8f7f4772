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

type taskMode int

const (
	taskBrowse taskMode = iota
	taskAdd
	taskEdit
)

// taskListView shows the current project's tasks under the active filter
type taskListView struct {
	ctx       context.Context
	session   *client.Session
	projectID string
	keys      keyMap
	styles    styles

	mode      taskMode
	cursor    int
	input     textinput.Model
	editingID string
}

func newTaskListView(ctx context.Context, session *client.Session, projectID string, k keyMap, s styles) *taskListView {
	input := textinput.New()
	input.CharLimit = 500
	input.Prompt = "> "
	input.Cursor.SetMode(cursor.CursorStatic)

	return &taskListView{
		ctx:       ctx,
		session:   session,
		projectID: projectID,
		keys:      k,
		styles:    s,
		input:     input,
	}
}

// visible returns the project and its tasks under the current filter
func (v *taskListView) visible() (models.Project, []models.Task, state.Filter) {
	st := v.session.Store().State()
	project, _ := st.Project(v.projectID)
	return project, state.FilterTasks(project.Tasks, st.TasksFilter), st.TasksFilter
}

func (v *taskListView) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if v.mode != taskBrowse {
		return v.handleInput(keyMsg)
	}
	return v.handleBrowse(keyMsg)
}

func (v *taskListView) handleBrowse(msg tea.KeyMsg) tea.Cmd {
	ctx, session, projectID := v.ctx, v.session, v.projectID
	_, tasks, filter := v.visible()
	v.cursor = clamp(v.cursor, 0, len(tasks)-1)

	switch {
	case key.Matches(msg, v.keys.Cancel):
		return func() tea.Msg { return backToProjectsMsg{} }

	case key.Matches(msg, v.keys.Up):
		v.cursor = clamp(v.cursor-1, 0, len(tasks)-1)
	case key.Matches(msg, v.keys.Down):
		v.cursor = clamp(v.cursor+1, 0, len(tasks)-1)

	case key.Matches(msg, v.keys.Select):
		if len(tasks) == 0 {
			return nil
		}
		id := tasks[v.cursor].ID
		return runOp("", func() error {
			return session.ToggleTask(ctx, projectID, id)
		})

	case key.Matches(msg, v.keys.New):
		v.mode = taskAdd
		v.input.Placeholder = "What needs to be done?"
		v.input.SetValue("")
		return v.input.Focus()

	case key.Matches(msg, v.keys.Edit):
		if len(tasks) == 0 {
			return nil
		}
		t := tasks[v.cursor]
		session.BeginEdit(projectID, t.ID)
		v.mode = taskEdit
		v.editingID = t.ID
		v.input.Placeholder = ""
		v.input.SetValue(t.Content)
		v.input.CursorEnd()
		return v.input.Focus()

	case key.Matches(msg, v.keys.Delete):
		if len(tasks) == 0 {
			return nil
		}
		id := tasks[v.cursor].ID
		return runOp("Task deleted", func() error {
			return session.DeleteTask(ctx, projectID, id)
		})

	case key.Matches(msg, v.keys.Filter):
		session.SetFilter(filter.Next())
		v.cursor = 0

	case key.Matches(msg, v.keys.MarkAll):
		return runOp("All tasks resolved", func() error {
			return session.MarkAllResolved(ctx, projectID)
		})

	case key.Matches(msg, v.keys.Clear):
		return runOp("Completed tasks cleared", func() error {
			return session.ClearCompleted(ctx, projectID)
		})
	}
	return nil
}

func (v *taskListView) handleInput(msg tea.KeyMsg) tea.Cmd {
	ctx, session, projectID := v.ctx, v.session, v.projectID

	switch {
	case key.Matches(msg, v.keys.Cancel):
		if v.mode == taskEdit {
			session.CancelEdit(projectID, v.editingID)
		}
		v.closeInput()
		return nil

	case key.Matches(msg, v.keys.Submit):
		content := strings.TrimSpace(v.input.Value())
		mode, id := v.mode, v.editingID
		v.closeInput()

		if content == "" {
			if mode == taskEdit {
				session.CancelEdit(projectID, id)
			}
			return nil
		}
		if mode == taskEdit {
			return runOp("Task updated", func() error {
				return session.EditTask(ctx, projectID, id, content)
			})
		}
		return runOp("Task added", func() error {
			_, err := session.AddTask(ctx, projectID, content)
			return err
		})
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return cmd
}

func (v *taskListView) closeInput() {
	v.mode = taskBrowse
	v.editingID = ""
	v.input.Blur()
	v.input.Reset()
}

func (v *taskListView) help() string {
	if v.mode != taskBrowse {
		return helpLine(v.keys.inputHelp())
	}
	return helpLine(v.keys.taskHelp())
}

func (v *taskListView) View(width int) string {
	project, tasks, filter := v.visible()
	s := v.styles

	var b strings.Builder
	b.WriteString(s.Title.Render(project.Name))
	b.WriteString(s.TitleMuted.Render(fmt.Sprintf("  %d open  filter: %s", project.UnresolvedCount(), filter)))
	if len(project.Tags) > 0 {
		b.WriteString("  " + s.Tag.Render(formatTags(project.Tags)))
	}
	b.WriteString("\n\n")

	if len(tasks) == 0 {
		b.WriteString(s.TitleMuted.Render("No tasks here."))
		b.WriteString("\n")
	}

	sel := clamp(v.cursor, 0, len(tasks)-1)
	for i, t := range tasks {
		if t.Editing && v.mode == taskEdit {
			b.WriteString(s.Input.Render(v.input.View()))
			b.WriteString("\n")
			continue
		}

		box := "[ ] "
		content := s.Item.Render(t.Content)
		if t.Resolved {
			box = "[x] "
			content = s.Resolved.Render(t.Content)
		}
		if i == sel && v.mode == taskBrowse {
			b.WriteString(s.Selected.Render("> " + box + t.Content))
		} else {
			b.WriteString("  " + box + content)
		}
		b.WriteString("\n")
	}

	if v.mode == taskAdd {
		b.WriteString("\n")
		b.WriteString(s.Input.Render(v.input.View()))
		b.WriteString("\n")
	}

	return s.PaneFocused.Width(width - 2).Render(strings.TrimRight(b.String(), "\n"))
}
