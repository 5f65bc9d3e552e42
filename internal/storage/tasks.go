package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxTaskNameLen = 120

// Add creates a task with the given name and returns it. Names are
// trimmed and must be non-empty.
func (ts *TaskStore) Add(name string, now time.Time) (*Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("task name must not be empty")
	}
	if len(name) > maxTaskNameLen {
		name = name[:maxTaskNameLen]
	}

	task := Task{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now.UTC(),
	}
	ts.Tasks = append(ts.Tasks, task)
	return &ts.Tasks[len(ts.Tasks)-1], nil
}

// Get returns the task with the given id.
func (ts *TaskStore) Get(id string) (*Task, error) {
	for i := range ts.Tasks {
		if ts.Tasks[i].ID == id {
			return &ts.Tasks[i], nil
		}
	}
	return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
}

// Rename changes a task's name, with the same trimming rules as Add.
func (ts *TaskStore) Rename(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("task name must not be empty")
	}
	if len(name) > maxTaskNameLen {
		name = name[:maxTaskNameLen]
	}

	task, err := ts.Get(id)
	if err != nil {
		return err
	}
	task.Name = name
	return nil
}

// Delete removes a task. The session history keeps any references to the
// deleted id; only the live task list changes.
func (ts *TaskStore) Delete(id string) error {
	for i := range ts.Tasks {
		if ts.Tasks[i].ID == id {
			ts.Tasks = append(ts.Tasks[:i], ts.Tasks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("task %s: %w", id, ErrNotFound)
}

// ToggleComplete flips a task's completed flag and returns the new value.
func (ts *TaskStore) ToggleComplete(id string) (bool, error) {
	task, err := ts.Get(id)
	if err != nil {
		return false, err
	}
	task.Completed = !task.Completed
	return task.Completed, nil
}

// IncrementPomodoros bumps a task's completed-work counter. Missing ids
// are ignored so a completion racing a delete stays harmless.
func (ts *TaskStore) IncrementPomodoros(id string) {
	if task, err := ts.Get(id); err == nil {
		task.PomodorosSpent++
	}
}

// ClearCompleted removes all completed tasks and returns how many were
// removed.
func (ts *TaskStore) ClearCompleted() int {
	kept := ts.Tasks[:0]
	removed := 0
	for _, t := range ts.Tasks {
		if t.Completed {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	ts.Tasks = kept
	return removed
}
