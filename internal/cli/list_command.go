package cli

import (
	"context"
	"fmt"

	"task-list/internal/config"
	"task-list/internal/domain"
)

// ListCommand handles the list command
type ListCommand struct {
	app *App
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	if err := c.app.presenter.Load(ctx); err != nil {
		return c.app.errorHandler.Handle("list tasks", err)
	}
	return c.printTasks(c.app.presenter.Tasks())
}

// printTasks prints one line per task in display order
func (c *ListCommand) printTasks(tasks []*domain.Task) error {
	if len(tasks) == 0 {
		fmt.Fprintln(c.app.out, "No tasks found")
		return nil
	}

	for i, task := range tasks {
		switch c.app.config.Display.ListFormat {
		case config.ListFormatNumbered:
			fmt.Fprintf(c.app.out, "%d. %s\n", i+1, task.Title)
		default:
			fmt.Fprintf(c.app.out, "%4d  %s\n", task.ID, task.Title)
		}
	}
	return nil
}
