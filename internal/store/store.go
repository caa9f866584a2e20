// Package store provides TaskStore, the unit of work that owns every task
// loaded from or written to the database during a session.
package store

import (
	"context"
	"fmt"
	"strconv"

	"task-list/internal/domain"
	"task-list/internal/errors"
	"task-list/internal/logging"
	"task-list/internal/repository/sqlite"
)

type changeKind int

const (
	changeInsert changeKind = iota
	changeUpdate
	changeDelete
)

func (k changeKind) String() string {
	switch k {
	case changeInsert:
		return "create"
	case changeUpdate:
		return "edit"
	case changeDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// change is a pending mutation together with what is needed to undo it in memory
type change struct {
	kind      changeKind
	task      *domain.Task
	prevTitle string
}

func (c change) describe() string {
	if c.kind == changeInsert {
		return "create task"
	}
	return fmt.Sprintf("%s task %d", c.kind, c.task.ID)
}

// TaskStore keeps one working set of tasks over a repository. Tasks it
// returns are managed: the same pointer is handed out for the same row until
// the row is deleted, and callers pass those pointers back to Edit and
// Delete. Every mutating call flushes immediately.
//
// A TaskStore is not safe for concurrent use.
type TaskStore struct {
	repo    sqlite.Repository
	mapper  *domain.TaskMapper
	managed map[int64]*domain.Task
	pending []change
}

// New creates a TaskStore over an open repository. The store takes ownership
// of the repository and closes it in Close.
func New(repo sqlite.Repository) *TaskStore {
	return &TaskStore{
		repo:    repo,
		mapper:  domain.NewTaskMapper(),
		managed: make(map[int64]*domain.Task),
	}
}

// Close releases the working set and closes the underlying repository
func (s *TaskStore) Close() error {
	s.managed = make(map[int64]*domain.Task)
	s.pending = nil
	return s.repo.Close()
}

// FetchAll returns every persisted task in id order. Rows already in the
// working set come back as the same pointers with their titles refreshed.
// On failure no tasks are returned and the working set is left as it was.
func (s *TaskStore) FetchAll(ctx context.Context) ([]*domain.Task, error) {
	rows, err := s.repo.ListTasks(ctx)
	if err != nil {
		logging.Debugf("fetch tasks failed: %v", err)
		return nil, errors.NewFetchError(err)
	}

	tasks := make([]*domain.Task, 0, len(rows))
	seen := make(map[int64]struct{}, len(rows))
	for _, row := range rows {
		task, ok := s.managed[row.ID]
		if ok {
			s.mapper.MergeFromDatabase(task, *row)
		} else {
			t := s.mapper.FromDatabase(*row)
			task = &t
			s.managed[task.ID] = task
		}
		seen[task.ID] = struct{}{}
		tasks = append(tasks, task)
	}

	// Rows deleted behind our back leave the working set.
	for id := range s.managed {
		if _, ok := seen[id]; !ok {
			delete(s.managed, id)
		}
	}

	logging.Debugf("fetched %d tasks", len(tasks))
	return tasks, nil
}

// Create persists a new task with the given title and returns it with its
// assigned ID. The store does not validate the title.
func (s *TaskStore) Create(ctx context.Context, title string) (*domain.Task, error) {
	task := domain.NewTask(title)
	s.pending = append(s.pending, change{kind: changeInsert, task: task})

	if err := s.Flush(ctx); err != nil {
		return nil, err
	}
	return task, nil
}

// Edit sets the title of a managed task and persists it. The caller's
// pointer sees the new title straight away; if the write fails the previous
// title is put back.
func (s *TaskStore) Edit(ctx context.Context, newTitle string, task *domain.Task) error {
	if err := s.checkManaged(task); err != nil {
		return err
	}

	s.pending = append(s.pending, change{kind: changeUpdate, task: task, prevTitle: task.Title})
	task.Title = newTitle

	return s.Flush(ctx)
}

// Delete removes a managed task and persists the removal. On failure the
// task stays managed and can be used again.
func (s *TaskStore) Delete(ctx context.Context, task *domain.Task) error {
	if err := s.checkManaged(task); err != nil {
		return err
	}

	delete(s.managed, task.ID)
	s.pending = append(s.pending, change{kind: changeDelete, task: task})

	return s.Flush(ctx)
}

// HasChanges reports whether there are changes that have not been flushed
func (s *TaskStore) HasChanges() bool {
	return len(s.pending) > 0
}

// Flush writes all pending changes in a single transaction. If anything
// fails the transaction is rolled back, the working set is restored to its
// state before the changes and a commit error is returned.
func (s *TaskStore) Flush(ctx context.Context) error {
	if !s.HasChanges() {
		return nil
	}

	changes := s.pending
	s.pending = nil
	operation := describeChanges(changes)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.revert(changes)
		logging.Debugf("flush %s: begin failed: %v", operation, err)
		return errors.NewCommitError(operation, err)
	}

	for _, c := range changes {
		if err := s.apply(ctx, tx, c); err != nil {
			return s.abort(tx, changes, operation, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return s.abort(tx, changes, operation, err)
	}

	for _, c := range changes {
		if c.kind == changeInsert {
			s.managed[c.task.ID] = c.task
		}
	}

	logging.Debugf("flushed %s", operation)
	return nil
}

func (s *TaskStore) apply(ctx context.Context, tx sqlite.Tx, c change) error {
	switch c.kind {
	case changeInsert:
		row := s.mapper.ToDatabase(*c.task)
		if err := tx.CreateTask(ctx, &row); err != nil {
			return err
		}
		c.task.ID = row.ID
		return nil
	case changeUpdate:
		row := s.mapper.ToDatabase(*c.task)
		return tx.UpdateTask(ctx, &row)
	case changeDelete:
		return tx.DeleteTask(ctx, c.task.ID)
	default:
		return fmt.Errorf("unknown change kind %d", c.kind)
	}
}

func (s *TaskStore) abort(tx sqlite.Tx, changes []change, operation string, cause error) error {
	if err := tx.Rollback(); err != nil {
		logging.Errorf("rollback %s: %v", operation, err)
	}
	s.revert(changes)
	logging.Debugf("flush %s rolled back: %v", operation, cause)
	return errors.NewCommitError(operation, cause)
}

// revert undoes changes in memory, newest first
func (s *TaskStore) revert(changes []change) {
	for i := len(changes) - 1; i >= 0; i-- {
		c := changes[i]
		switch c.kind {
		case changeInsert:
			c.task.ID = 0
		case changeUpdate:
			c.task.Title = c.prevTitle
		case changeDelete:
			s.managed[c.task.ID] = c.task
		}
	}
}

func (s *TaskStore) checkManaged(task *domain.Task) error {
	if task == nil {
		return errors.NewNotFoundError("task", "<nil>")
	}
	if managed, ok := s.managed[task.ID]; !ok || managed != task {
		return errors.NewNotFoundError("task", strconv.FormatInt(task.ID, 10))
	}
	return nil
}

func describeChanges(changes []change) string {
	if len(changes) == 1 {
		return changes[0].describe()
	}
	return fmt.Sprintf("%d changes", len(changes))
}
