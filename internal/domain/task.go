// Package domain contains the core entities of the timer: the interval clock
// and the task queue layered on top of it. Nothing here depends on a
// terminal, a clock source or any other infrastructure.
package domain

import (
	"errors"
	"strings"
	"time"
)

// Common domain errors.
var (
	ErrEmptyTaskContent    = errors.New("task content cannot be empty")
	ErrInvalidPreset       = errors.New("invalid preset")
	ErrInvalidIntervalKind = errors.New("invalid interval kind")
	ErrInvalidTaskList     = errors.New("invalid task list")
)

// Task is a unit of work waiting in, worked on from, or finished out of the queue.
type Task struct {
	ID          string     `json:"id"`
	Content     string     `json:"content"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// NewTask creates a task with a fresh identity. The content is stored as
// given; it is rejected only if it is blank.
func NewTask(content string) (Task, error) {
	if err := validateTaskContent(content); err != nil {
		return Task{}, err
	}
	return Task{
		ID:        generateID(),
		Content:   content,
		CreatedAt: time.Now(),
	}, nil
}

func validateTaskContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyTaskContent
	}
	return nil
}

// IsCompleted returns true once the task has been moved to the completed list.
func (t Task) IsCompleted() bool {
	return t.CompletedAt != nil
}

// TaskList names one of the two reorderable lists of the queue.
type TaskList string

const (
	ListActive    TaskList = "active"
	ListCompleted TaskList = "completed"
)

// ParseTaskList checks if a string names a reorderable list.
func ParseTaskList(s string) (TaskList, error) {
	switch TaskList(s) {
	case ListActive, ListCompleted:
		return TaskList(s), nil
	}
	return "", ErrInvalidTaskList
}
