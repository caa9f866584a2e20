package domain

import (
	"task-list/internal/repository/sqlite"
)

// TaskMapper handles conversion between domain and database Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain Task to a database Task.
func (m *TaskMapper) ToDatabase(domainTask Task) sqlite.Task {
	return sqlite.Task{
		ID:    domainTask.ID,
		Title: domainTask.Title,
	}
}

// FromDatabase converts a database Task to a domain Task.
func (m *TaskMapper) FromDatabase(dbTask sqlite.Task) Task {
	return Task{
		ID:    dbTask.ID,
		Title: dbTask.Title,
	}
}

// MergeFromDatabase copies the persisted fields of dbTask onto an existing
// domain Task, keeping the caller's pointer identity.
func (m *TaskMapper) MergeFromDatabase(dst *Task, dbTask sqlite.Task) {
	dst.ID = dbTask.ID
	dst.Title = dbTask.Title
}
