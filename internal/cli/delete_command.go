package cli

import (
	"context"
	"fmt"

	"task-list/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	return c.deleteTask(ctx, args)
}

// deleteTask removes the task whose id is the single argument
func (c *DeleteCommand) deleteTask(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return c.app.errorHandler.Handle("delete task", errors.NewInvalidInputError("id", args, "exactly one task id is required"))
	}

	id, err := parseTaskID(args[0])
	if err != nil {
		return c.app.errorHandler.Handle("delete task", err)
	}

	if err := c.app.presenter.Load(ctx); err != nil {
		return c.app.errorHandler.Handle("delete task", err)
	}

	task, err := c.app.presenter.DeleteByID(ctx, id)
	if err != nil {
		return c.app.errorHandler.Handle("delete task", err)
	}

	fmt.Fprintf(c.app.out, "Deleted task %d: %s\n", task.ID, task.Title)
	return nil
}
