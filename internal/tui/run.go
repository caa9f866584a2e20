package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"task-list/internal/presenter"
)

// Run shows the list screen until the user quits or ctx is cancelled
func Run(ctx context.Context, p *presenter.TaskListPresenter, title string, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	}, opts...)

	program := tea.NewProgram(New(ctx, p, title), opts...)
	_, err := program.Run()
	return err
}
