package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pomo/internal/config"
	"pomo/internal/storage"
)

// taskInputMode tracks what the text input is being used for.
type taskInputMode int

const (
	taskInputNone taskInputMode = iota
	taskInputAdd
	taskInputEdit
)

// TaskPane shows the task list under the timer and handles task edits.
// Mutations go straight through the gateway; the single-threaded update
// loop makes that safe.
type TaskPane struct {
	gateway *storage.Gateway
	styles  *Styles

	cursor       int
	inputMode    taskInputMode
	input        textinput.Model
	editingID    string
	activeTaskID string
	width        int
	height       int

	keys      TaskKeyMap
	inputKeys InputKeyMap
}

// NewTaskPane creates the task pane.
func NewTaskPane(gateway *storage.Gateway, styles *Styles, keyCfg *config.KeysConfig) *TaskPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	ti := textinput.New()
	ti.Placeholder = "Task name"
	ti.CharLimit = 120
	ti.Width = 40

	return &TaskPane{
		gateway:   gateway,
		styles:    styles,
		input:     ti,
		keys:      NewTaskKeyMap(keyCfg),
		inputKeys: NewInputKeyMap(keyCfg),
	}
}

// SetSize sets the pane dimensions.
func (p *TaskPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = max(10, width-4)
}

// SetActiveTask marks which task is attached to the timer.
func (p *TaskPane) SetActiveTask(id string) {
	p.activeTaskID = id
}

// IsEditing reports whether the text input is open.
func (p *TaskPane) IsEditing() bool {
	return p.inputMode != taskInputNone
}

func (p *TaskPane) tasks() []storage.Task {
	return p.gateway.Tasks().Tasks
}

func (p *TaskPane) clampCursor() {
	if n := len(p.tasks()); p.cursor >= n {
		p.cursor = n - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func (p *TaskPane) selected() *storage.Task {
	tasks := p.tasks()
	if len(tasks) == 0 || p.cursor < 0 || p.cursor >= len(tasks) {
		return nil
	}
	return &tasks[p.cursor]
}

// Update handles key messages for the task list.
func (p *TaskPane) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if p.inputMode != taskInputNone {
			var cmd tea.Cmd
			p.input, cmd = p.input.Update(msg)
			return cmd
		}
		return nil
	}

	if p.inputMode != taskInputNone {
		return p.updateInput(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, p.keys.Add):
		p.inputMode = taskInputAdd
		p.input.SetValue("")
		return p.input.Focus()

	case key.Matches(keyMsg, p.keys.Edit):
		task := p.selected()
		if task == nil {
			return nil
		}
		p.inputMode = taskInputEdit
		p.editingID = task.ID
		p.input.SetValue(task.Name)
		return p.input.Focus()

	case key.Matches(keyMsg, p.keys.Toggle):
		task := p.selected()
		if task == nil {
			return nil
		}
		if _, err := p.gateway.Tasks().ToggleComplete(task.ID); err == nil {
			p.gateway.MarkDirty(storage.EntityTasks)
		}
		return nil

	case key.Matches(keyMsg, p.keys.Delete):
		task := p.selected()
		if task == nil {
			return nil
		}
		id := task.ID
		if err := p.gateway.Tasks().Delete(id); err != nil {
			return nil
		}
		p.gateway.MarkDirty(storage.EntityTasks)
		p.clampCursor()
		return func() tea.Msg { return taskDeletedMsg{id: id} }

	case key.Matches(keyMsg, p.keys.ClearDone):
		if removed := p.gateway.Tasks().ClearCompleted(); removed > 0 {
			p.gateway.MarkDirty(storage.EntityTasks)
			p.clampCursor()
		}
		return nil

	case key.Matches(keyMsg, p.keys.Pick):
		task := p.selected()
		if task == nil {
			return nil
		}
		// Picking the active task again clears the association.
		if task.ID == p.activeTaskID {
			return func() tea.Msg { return taskPickedMsg{} }
		}
		id, name := task.ID, task.Name
		return func() tea.Msg { return taskPickedMsg{id: id, name: name} }

	case key.Matches(keyMsg, p.keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
		return nil

	case key.Matches(keyMsg, p.keys.Down):
		if p.cursor < len(p.tasks())-1 {
			p.cursor++
		}
		return nil
	}

	return nil
}

func (p *TaskPane) updateInput(keyMsg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(keyMsg, p.inputKeys.Confirm):
		name := strings.TrimSpace(p.input.Value())
		mode := p.inputMode
		p.inputMode = taskInputNone
		p.input.Blur()
		if name == "" {
			return nil
		}
		switch mode {
		case taskInputAdd:
			if _, err := p.gateway.Tasks().Add(name, time.Now()); err == nil {
				p.gateway.MarkDirty(storage.EntityTasks)
				p.cursor = len(p.tasks()) - 1
			}
		case taskInputEdit:
			if err := p.gateway.Tasks().Rename(p.editingID, name); err == nil {
				p.gateway.MarkDirty(storage.EntityTasks)
			}
		}
		return nil

	case key.Matches(keyMsg, p.inputKeys.Cancel):
		p.inputMode = taskInputNone
		p.input.Blur()
		return nil
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(keyMsg)
	return cmd
}

// View renders the task list.
func (p *TaskPane) View() string {
	var b strings.Builder

	b.WriteString(p.styles.PaneTitleStyle.Render("Tasks"))
	b.WriteString("\n")

	tasks := p.tasks()
	if len(tasks) == 0 && p.inputMode == taskInputNone {
		b.WriteString(p.styles.StatLabelStyle.Render("No tasks. Press 'a' to add one."))
		b.WriteString("\n")
	}

	maxRows := p.height - 4
	if maxRows < 3 {
		maxRows = 3
	}
	start := 0
	if p.cursor >= maxRows {
		start = p.cursor - maxRows + 1
	}

	for i := start; i < len(tasks) && i < start+maxRows; i++ {
		task := tasks[i]

		checkbox := p.styles.TaskCheckboxPending
		nameStyle := p.styles.TaskPendingStyle
		if task.Completed {
			checkbox = p.styles.TaskCheckboxDone
			nameStyle = p.styles.TaskDoneStyle
		}
		if task.ID == p.activeTaskID {
			nameStyle = p.styles.TaskActiveStyle
		}

		line := fmt.Sprintf("%s %s", checkbox, nameStyle.Render(task.Name))
		if task.PomodorosSpent > 0 {
			line += p.styles.StatLabelStyle.Render(fmt.Sprintf("  🍅%d", task.PomodorosSpent))
		}

		if i == p.cursor && p.inputMode == taskInputNone {
			b.WriteString(p.styles.TaskSelectedStyle.Render("> "))
		} else {
			b.WriteString("  ")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if p.inputMode != taskInputNone {
		prompt := "add> "
		if p.inputMode == taskInputEdit {
			prompt = "edit> "
		}
		b.WriteString("\n")
		b.WriteString(p.styles.InputPromptStyle.Render(prompt))
		b.WriteString(p.input.View())
		b.WriteString("\n")
	}

	return b.String()
}
