package store

import (
	"context"
	stderrors "errors"

	"task-list/internal/repository/sqlite"
)

var errInjected = stderrors.New("injected failure")

// faultyRepository wraps a real repository and fails selected operations
type faultyRepository struct {
	sqlite.Repository

	failList   bool
	failBegin  bool
	failCommit bool
	failUpdate bool
	failDelete bool
	closed     bool
}

func (r *faultyRepository) ListTasks(ctx context.Context) ([]*sqlite.Task, error) {
	if r.failList {
		return nil, errInjected
	}
	return r.Repository.ListTasks(ctx)
}

func (r *faultyRepository) BeginTx(ctx context.Context) (sqlite.Tx, error) {
	if r.failBegin {
		return nil, errInjected
	}
	tx, err := r.Repository.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	return &faultyTx{Tx: tx, repo: r}, nil
}

func (r *faultyRepository) Close() error {
	r.closed = true
	return r.Repository.Close()
}

type faultyTx struct {
	sqlite.Tx
	repo *faultyRepository
}

func (t *faultyTx) UpdateTask(ctx context.Context, task *sqlite.Task) error {
	if t.repo.failUpdate {
		return errInjected
	}
	return t.Tx.UpdateTask(ctx, task)
}

func (t *faultyTx) DeleteTask(ctx context.Context, id int64) error {
	if t.repo.failDelete {
		return errInjected
	}
	return t.Tx.DeleteTask(ctx, id)
}

// Commit fails without committing so the following Rollback discards the work
func (t *faultyTx) Commit() error {
	if t.repo.failCommit {
		return errInjected
	}
	return t.Tx.Commit()
}
