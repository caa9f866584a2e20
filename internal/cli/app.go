package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"task-list/internal/config"
	"task-list/internal/errors"
	"task-list/internal/presenter"
	"task-list/internal/store"
	"task-list/internal/validation"
)

// App represents the main CLI application
type App struct {
	presenter    *presenter.TaskListPresenter
	config       *config.Config
	out          io.Writer
	errorHandler *ErrorHandler
	registry     *CommandRegistry
}

// NewApp creates a new CLI application over an open task store
func NewApp(taskStore presenter.TaskStore, cfg *config.Config, out io.Writer) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if out == nil {
		out = os.Stdout
	}

	app := &App{
		presenter:    presenter.New(taskStore, validation.NewTaskValidatorWithConfig(cfg)),
		config:       cfg,
		out:          out,
		errorHandler: NewErrorHandler(),
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// OpenStore creates the repository described by cfg and wraps it in a TaskStore
func OpenStore(cfg *config.Config) (*store.TaskStore, error) {
	repo, err := config.CreateRepository(cfg)
	if err != nil {
		return nil, err
	}
	return store.New(repo), nil
}

// Presenter returns the presenter shared by the commands and the list screen
func (a *App) Presenter() *presenter.TaskListPresenter {
	return a.presenter
}

// Run executes the CLI application with the given arguments
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%s", a.registry.GetUsage())
	}

	commandName := args[0]
	commandArgs := args[1:]

	return a.registry.Execute(ctx, commandName, commandArgs)
}

// parseTaskID parses a task id argument
func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, errors.NewInvalidInputError("id", arg, "must be a number")
	}
	return id, nil
}
