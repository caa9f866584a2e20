package presenter

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-list/internal/domain"
	"task-list/internal/errors"
	"task-list/internal/repository/sqlite"
	"task-list/internal/store"
	"task-list/internal/validation"
)

func setupPresenter(t *testing.T) (*TaskListPresenter, *store.TaskStore) {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)

	s := store.New(repo)
	t.Cleanup(func() { s.Close() })
	return New(s, validation.NewTaskValidator()), s
}

func rowTitles(p *TaskListPresenter) []string {
	var out []string
	for _, task := range p.Tasks() {
		out = append(out, task.Title)
	}
	return out
}

// stubStore records calls and fails on demand
type stubStore struct {
	tasks   []*domain.Task
	err     error
	created int
	edited  int
	deleted int
}

func (s *stubStore) FetchAll(ctx context.Context) ([]*domain.Task, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.tasks, nil
}

func (s *stubStore) Create(ctx context.Context, title string) (*domain.Task, error) {
	s.created++
	if s.err != nil {
		return nil, s.err
	}
	task := &domain.Task{ID: int64(len(s.tasks) + 1), Title: title}
	s.tasks = append(s.tasks, task)
	return task, nil
}

func (s *stubStore) Edit(ctx context.Context, newTitle string, task *domain.Task) error {
	s.edited++
	if s.err != nil {
		return s.err
	}
	task.Title = newTitle
	return nil
}

func (s *stubStore) Delete(ctx context.Context, task *domain.Task) error {
	s.deleted++
	return s.err
}

func TestPresenter_LoadEmpty(t *testing.T) {
	p, _ := setupPresenter(t)

	require.NoError(t, p.Load(context.Background()))
	assert.Equal(t, 0, p.Len())
	assert.Empty(t, p.Tasks())
}

func TestPresenter_AddEditDelete(t *testing.T) {
	p, s := setupPresenter(t)
	ctx := context.Background()
	require.NoError(t, p.Load(ctx))

	first, err := p.Add(ctx, "Task 1")
	require.NoError(t, err)
	_, err = p.Add(ctx, "  Task 2  ")
	require.NoError(t, err)
	assert.Equal(t, []string{"Task 1", "Task 2"}, rowTitles(p))

	edited, err := p.Edit(ctx, 0, "Task 1 (done)")
	require.NoError(t, err)
	assert.Same(t, first, edited)

	deleted, err := p.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Task 2", deleted.Title)
	assert.Equal(t, []string{"Task 1 (done)"}, rowTitles(p))

	// The mirror matches a fresh read from the store.
	fetched, err := s.FetchAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, p.Tasks(), fetched)
}

func TestPresenter_EmptyTitleNeverReachesStore(t *testing.T) {
	stub := &stubStore{tasks: []*domain.Task{{ID: 1, Title: "Keep"}}}
	p := New(stub, nil)
	ctx := context.Background()
	require.NoError(t, p.Load(ctx))

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := p.Add(ctx, title)
		assert.True(t, validation.IsValidationError(err), "add %q", title)

		_, err = p.Edit(ctx, 0, title)
		assert.True(t, validation.IsValidationError(err), "edit %q", title)
	}

	assert.Zero(t, stub.created)
	assert.Zero(t, stub.edited)
	assert.Equal(t, []string{"Keep"}, rowTitles(p))
}

func TestPresenter_LoadFailureKeepsMirror(t *testing.T) {
	stub := &stubStore{tasks: []*domain.Task{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}}}
	p := New(stub, nil)
	ctx := context.Background()
	require.NoError(t, p.Load(ctx))

	stub.err = errors.NewFetchError(stderrors.New("disk gone"))
	err := p.Load(ctx)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeFetch))
	assert.Equal(t, []string{"A", "B"}, rowTitles(p))
}

func TestPresenter_StoreFailureKeepsMirror(t *testing.T) {
	stub := &stubStore{tasks: []*domain.Task{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}}}
	p := New(stub, nil)
	ctx := context.Background()
	require.NoError(t, p.Load(ctx))

	stub.err = errors.NewCommitError("test", stderrors.New("locked"))

	_, err := p.Add(ctx, "C")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeCommit))

	_, err = p.Delete(ctx, 0)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeCommit))

	assert.Equal(t, []string{"A", "B"}, rowTitles(p))
	assert.Equal(t, 1, stub.created)
	assert.Equal(t, 1, stub.deleted)
}

func TestPresenter_IndexOutOfRange(t *testing.T) {
	stub := &stubStore{tasks: []*domain.Task{{ID: 1, Title: "Only"}}}
	p := New(stub, nil)
	ctx := context.Background()
	require.NoError(t, p.Load(ctx))

	for _, index := range []int{-1, 1, 5} {
		_, err := p.Edit(ctx, index, "X")
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))

		_, err = p.Delete(ctx, index)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
	}
	assert.Zero(t, stub.edited)
	assert.Zero(t, stub.deleted)
}

func TestPresenter_ByID(t *testing.T) {
	p, _ := setupPresenter(t)
	ctx := context.Background()
	require.NoError(t, p.Load(ctx))

	a, err := p.Add(ctx, "Alpha")
	require.NoError(t, err)
	b, err := p.Add(ctx, "Beta")
	require.NoError(t, err)

	assert.Equal(t, 0, p.IndexOf(a.ID))
	assert.Equal(t, 1, p.IndexOf(b.ID))
	assert.Equal(t, -1, p.IndexOf(999))

	_, err = p.EditByID(ctx, b.ID, "Beta 2")
	require.NoError(t, err)
	assert.Equal(t, "Beta 2", b.Title)

	_, err = p.DeleteByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Beta 2"}, rowTitles(p))

	_, err = p.DeleteByID(ctx, 999)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	_, err = p.EditByID(ctx, 0, "Zero")
	assert.True(t, validation.IsValidationError(err))
}

func TestPresenter_TasksReturnsCopy(t *testing.T) {
	stub := &stubStore{tasks: []*domain.Task{{ID: 1, Title: "A"}}}
	p := New(stub, nil)
	require.NoError(t, p.Load(context.Background()))

	rows := p.Tasks()
	rows[0] = &domain.Task{ID: 9, Title: "Z"}
	assert.Equal(t, []string{"A"}, rowTitles(p))
}
