package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"task-list/internal/repository/sqlite"
)

func TestTaskMapper_ToDatabase(t *testing.T) {
	mapper := NewTaskMapper()

	result := mapper.ToDatabase(Task{ID: 1, Title: "Test Task"})

	assert.Equal(t, sqlite.Task{ID: 1, Title: "Test Task"}, result)
}

func TestTaskMapper_FromDatabase(t *testing.T) {
	mapper := NewTaskMapper()

	result := mapper.FromDatabase(sqlite.Task{ID: 1, Title: "Test Task"})

	assert.Equal(t, Task{ID: 1, Title: "Test Task"}, result)
}

func TestTaskMapper_MergeFromDatabase(t *testing.T) {
	mapper := NewTaskMapper()
	existing := &Task{ID: 3, Title: "stale"}
	alias := existing

	mapper.MergeFromDatabase(existing, sqlite.Task{ID: 3, Title: "fresh"})

	assert.Same(t, alias, existing)
	assert.Equal(t, "fresh", alias.Title)
	assert.Equal(t, int64(3), alias.ID)
}
