package cli

import (
	"context"
	"fmt"
	"strings"

	"task-list/internal/errors"
)

// EditCommand handles the edit command
type EditCommand struct {
	app *App
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{app: app}
}

// Execute runs the edit command: the first argument is the task id, the
// rest form the new title
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return c.app.errorHandler.Handle("edit task", errors.NewInvalidInputError("id", "", "a task id is required"))
	}

	id, err := parseTaskID(args[0])
	if err != nil {
		return c.app.errorHandler.Handle("edit task", err)
	}
	title := strings.Join(args[1:], " ")

	if err := c.app.presenter.Load(ctx); err != nil {
		return c.app.errorHandler.Handle("edit task", err)
	}

	task, err := c.app.presenter.EditByID(ctx, id, title)
	if err != nil {
		return c.app.errorHandler.Handle("edit task", err)
	}

	fmt.Fprintf(c.app.out, "Updated task %d: %s\n", task.ID, task.Title)
	return nil
}
