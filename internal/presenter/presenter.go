// Package presenter holds the ordered, in-memory view of the task list that
// the CLI and the terminal screen render.
package presenter

import (
	"context"
	"strconv"

	"task-list/internal/domain"
	"task-list/internal/errors"
	"task-list/internal/logging"
	"task-list/internal/validation"
)

// TaskStore is the persistence the presenter drives
type TaskStore interface {
	FetchAll(ctx context.Context) ([]*domain.Task, error)
	Create(ctx context.Context, title string) (*domain.Task, error)
	Edit(ctx context.Context, newTitle string, task *domain.Task) error
	Delete(ctx context.Context, task *domain.Task) error
}

// TaskListPresenter mirrors the store's tasks in display order. The mirror
// only changes after the store reports success, so a failed operation leaves
// the rows on screen as they were.
type TaskListPresenter struct {
	store     TaskStore
	validator *validation.TaskValidator
	tasks     []*domain.Task
}

// New creates a presenter over store. Titles are checked with validator
// before they reach the store.
func New(store TaskStore, validator *validation.TaskValidator) *TaskListPresenter {
	if validator == nil {
		validator = validation.NewTaskValidator()
	}
	return &TaskListPresenter{
		store:     store,
		validator: validator,
		tasks:     []*domain.Task{},
	}
}

// Load replaces the mirror with the store's current tasks. If the fetch
// fails the previous mirror is kept and the error is returned for display.
func (p *TaskListPresenter) Load(ctx context.Context) error {
	tasks, err := p.store.FetchAll(ctx)
	if err != nil {
		logging.Debugf("load tasks: %v", err)
		return err
	}
	p.tasks = tasks
	return nil
}

// Tasks returns the mirror in display order
func (p *TaskListPresenter) Tasks() []*domain.Task {
	out := make([]*domain.Task, len(p.tasks))
	copy(out, p.tasks)
	return out
}

// Len returns the number of rows
func (p *TaskListPresenter) Len() int {
	return len(p.tasks)
}

// TaskAt returns the task shown at index
func (p *TaskListPresenter) TaskAt(index int) (*domain.Task, error) {
	if index < 0 || index >= len(p.tasks) {
		return nil, errors.NewInvalidInputError("index", index, "no task at this position")
	}
	return p.tasks[index], nil
}

// IndexOf returns the row of the task with the given id, or -1
func (p *TaskListPresenter) IndexOf(id int64) int {
	for i, task := range p.tasks {
		if task.ID == id {
			return i
		}
	}
	return -1
}

// Add creates a task and appends it to the mirror
func (p *TaskListPresenter) Add(ctx context.Context, title string) (*domain.Task, error) {
	validTitle, err := p.validator.GetValidTitle(title)
	if err != nil {
		return nil, err
	}

	task, err := p.store.Create(ctx, validTitle)
	if err != nil {
		return nil, err
	}

	p.tasks = append(p.tasks, task)
	return task, nil
}

// Edit retitles the task at index
func (p *TaskListPresenter) Edit(ctx context.Context, index int, title string) (*domain.Task, error) {
	task, err := p.TaskAt(index)
	if err != nil {
		return nil, err
	}

	validTitle, err := p.validator.GetValidTitle(title)
	if err != nil {
		return nil, err
	}

	// The mirror shares the pointer, so a successful edit is already visible.
	if err := p.store.Edit(ctx, validTitle, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes the task at index from the store and the mirror
func (p *TaskListPresenter) Delete(ctx context.Context, index int) (*domain.Task, error) {
	task, err := p.TaskAt(index)
	if err != nil {
		return nil, err
	}

	if err := p.store.Delete(ctx, task); err != nil {
		return nil, err
	}

	p.tasks = append(p.tasks[:index:index], p.tasks[index+1:]...)
	return task, nil
}

// EditByID retitles the task with the given id
func (p *TaskListPresenter) EditByID(ctx context.Context, id int64, title string) (*domain.Task, error) {
	index, err := p.indexOrNotFound(id)
	if err != nil {
		return nil, err
	}
	return p.Edit(ctx, index, title)
}

// DeleteByID removes the task with the given id
func (p *TaskListPresenter) DeleteByID(ctx context.Context, id int64) (*domain.Task, error) {
	index, err := p.indexOrNotFound(id)
	if err != nil {
		return nil, err
	}
	return p.Delete(ctx, index)
}

func (p *TaskListPresenter) indexOrNotFound(id int64) (int, error) {
	if err := p.validator.ValidateTaskID(id); err != nil {
		return -1, err
	}
	index := p.IndexOf(id)
	if index < 0 {
		return -1, errors.NewNotFoundError("task", strconv.FormatInt(id, 10))
	}
	return index, nil
}
