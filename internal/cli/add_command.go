package cli

import (
	"context"
	"fmt"
	"strings"
)

// AddCommand handles the add command
type AddCommand struct {
	app *App
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app}
}

// Execute runs the add command. All arguments form the title.
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	title := strings.Join(args, " ")

	task, err := c.app.presenter.Add(ctx, title)
	if err != nil {
		return c.app.errorHandler.Handle("add task", err)
	}

	fmt.Fprintf(c.app.out, "Added task %d: %s\n", task.ID, task.Title)
	return nil
}
