package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"task-list/internal/errors"
	"task-list/internal/repository/sqlite/migrations"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// Supported database/sql driver names
const (
	// DriverPureGo is the modernc.org/sqlite driver, no cgo required
	DriverPureGo = "sqlite"
	// DriverCGO is the github.com/mattn/go-sqlite3 driver
	DriverCGO = "sqlite3"
)

// Options tunes how the repository talks to the database
type Options struct {
	Driver       string
	QueryTimeout time.Duration
	WriteTimeout time.Duration
}

// DefaultOptions returns the options used by New
func DefaultOptions() Options {
	return Options{
		Driver:       DriverPureGo,
		QueryTimeout: 10 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

// TaskWriter groups the mutating task operations shared by the repository and its transactions
type TaskWriter interface {
	CreateTask(ctx context.Context, task *Task) error
	UpdateTask(ctx context.Context, task *Task) error
	DeleteTask(ctx context.Context, id int64) error
}

// Tx is a unit of work against the tasks table
type Tx interface {
	TaskWriter
	Commit() error
	Rollback() error
}

// Repository is the task store's view of the database: whole-table reads,
// and writes that only happen inside a transaction
type Repository interface {
	// ListTasks returns every task in insertion order
	ListTasks(ctx context.Context) ([]*Task, error)

	// BeginTx starts a transaction bounded by the configured write timeout
	BeginTx(ctx context.Context) (Tx, error)

	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db   *sql.DB
	opts Options
}

// New creates a new SQLite repository instance with default options
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(dbPath, DefaultOptions())
}

// NewWithOptions opens the database, runs migrations and checks that the
// tasks schema is usable. A schema mismatch is reported here rather than on
// first use.
func NewWithOptions(dbPath string, opts Options) (*SQLiteRepository, error) {
	if opts.Driver == "" {
		opts.Driver = DriverPureGo
	}
	if opts.Driver != DriverPureGo && opts.Driver != DriverCGO {
		return nil, errors.NewInvalidInputError("driver", opts.Driver, fmt.Sprintf("must be %q or %q", DriverPureGo, DriverCGO))
	}

	db, err := sql.Open(opts.Driver, dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// One connection: SQLite has a single writer, and every connection to
	// ":memory:" would otherwise see its own empty database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("connect to database", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("apply pragmas", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	if err := verifySchema(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("verify schema", err)
	}

	return &SQLiteRepository{db: db, opts: opts}, nil
}

// verifySchema fails if the tasks table does not have the columns the scanner expects
func verifySchema(db *sql.DB) error {
	rows, err := db.Query("SELECT id, title FROM tasks LIMIT 0")
	if err != nil {
		return fmt.Errorf("tasks table is not usable: %w", err)
	}
	return rows.Close()
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// ListTasks retrieves all tasks in insertion order
func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]*Task, error) {
	ctx, cancel := withTimeout(ctx, r.opts.QueryTimeout)
	defer cancel()

	query := `SELECT id, title FROM tasks ORDER BY id ASC`
	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks")
}

// BeginTx starts a transaction. The transaction is aborted by the driver if
// it is still open when the write timeout elapses.
func (r *SQLiteRepository) BeginTx(ctx context.Context) (Tx, error) {
	ctx, cancel := withTimeout(ctx, r.opts.WriteTimeout)
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		cancel()
		return nil, HandleDatabaseError("begin transaction", err)
	}
	return &sqliteTx{tx: tx, cancel: cancel}, nil
}

type sqliteTx struct {
	tx     *sql.Tx
	cancel context.CancelFunc
}

func (t *sqliteTx) CreateTask(ctx context.Context, task *Task) error {
	return createTask(ctx, t.tx, task)
}

func (t *sqliteTx) UpdateTask(ctx context.Context, task *Task) error {
	return updateTask(ctx, t.tx, task)
}

func (t *sqliteTx) DeleteTask(ctx context.Context, id int64) error {
	return deleteTask(ctx, t.tx, id)
}

func (t *sqliteTx) Commit() error {
	defer t.cancel()
	if err := t.tx.Commit(); err != nil {
		return HandleDatabaseError("commit transaction", err)
	}
	return nil
}

func (t *sqliteTx) Rollback() error {
	defer t.cancel()
	if err := t.tx.Rollback(); err != nil && err != sql.ErrTxDone {
		return HandleDatabaseError("rollback transaction", err)
	}
	return nil
}

func createTask(ctx context.Context, db Execer, task *Task) error {
	query := `INSERT INTO tasks (title) VALUES (?)`
	id, err := ExecuteWithLastInsertID(ctx, db, query, task.Title)
	if err != nil {
		return err
	}
	task.ID = id
	return nil
}

func updateTask(ctx context.Context, db Execer, task *Task) error {
	query := `UPDATE tasks SET title = ? WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, db, query, "task", fmt.Sprintf("%d", task.ID), task.Title, task.ID)
}

func deleteTask(ctx context.Context, db Execer, id int64) error {
	query := `DELETE FROM tasks WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, db, query, "task", fmt.Sprintf("%d", id), id)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
