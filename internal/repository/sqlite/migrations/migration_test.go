package migrations

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLoadMigrations(t *testing.T) {
	migrations, err := LoadMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	first := migrations[0]
	assert.Equal(t, 1, first.Version)
	assert.Equal(t, "create_tasks", first.Name)
	assert.Contains(t, first.Up, "CREATE TABLE IF NOT EXISTS tasks")
	assert.Contains(t, first.Down, "DROP TABLE IF EXISTS tasks")

	for i := 1; i < len(migrations); i++ {
		assert.Less(t, migrations[i-1].Version, migrations[i].Version, "migrations must be sorted by version")
	}
}

func TestRunMigrations_CreatesTasksTable(t *testing.T) {
	db := openMemoryDB(t)

	require.NoError(t, RunMigrations(db))

	_, err := db.Exec("INSERT INTO tasks (title) VALUES ('Buy milk')")
	require.NoError(t, err)

	var title string
	require.NoError(t, db.QueryRow("SELECT title FROM tasks WHERE id = 1").Scan(&title))
	assert.Equal(t, "Buy milk", title)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db := openMemoryDB(t)

	require.NoError(t, RunMigrations(db))
	_, err := db.Exec("INSERT INTO tasks (title) VALUES ('keep me')")
	require.NoError(t, err)

	require.NoError(t, RunMigrations(db), "second run should skip applied migrations")

	var applied, tasks int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&applied))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM tasks").Scan(&tasks))

	migrations, err := LoadMigrations()
	require.NoError(t, err)
	assert.Equal(t, len(migrations), applied)
	assert.Equal(t, 1, tasks)
}

func TestRunMigrations_TitleIsRequired(t *testing.T) {
	db := openMemoryDB(t)
	require.NoError(t, RunMigrations(db))

	_, err := db.Exec("INSERT INTO tasks (title) VALUES (NULL)")
	assert.Error(t, err, "title column must be NOT NULL")
}

func TestExtractVersionAndName(t *testing.T) {
	tests := []struct {
		filename string
		version  int
		name     string
	}{
		{"000001_create_tasks.up.sql", 1, "create_tasks"},
		{"000012_add_index.up.sql", 12, "add_index"},
		{"readme.up.sql", 0, "readme"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.version, extractVersion(tt.filename))
			assert.Equal(t, tt.name, extractName(tt.filename))
		})
	}
}
