package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"task-list/internal/config"
	"task-list/internal/logging"
	"task-list/internal/store"
	"task-list/internal/tui"
)

// needsStore marks commands that open the task database before running
const needsStore = "needs-store"

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	config *config.Config
	store  *store.TaskStore
	app    *App
	out    io.Writer
}

// NewRootCommand creates the root cobra command with global flags.
// Command output is written to out.
func NewRootCommand(cfg *config.Config, out io.Writer) *RootCommand {
	root := &RootCommand{
		config: cfg,
		out:    out,
	}

	root.cmd = &cobra.Command{
		Use:   "tl",
		Short: "A small command-line task list",
		Long: `Task List (tl) keeps a list of tasks in a local SQLite database.

EXAMPLES:
  tl add "Buy milk"                        # Add a task
  tl list                                  # List all tasks in the order they were added
  tl edit 3 "Buy oat milk"                 # Change the title of task 3
  tl delete 3                              # Delete task 3
  tl ui                                    # Open the interactive list screen

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > config file > defaults

  The config file is read from TL_CONFIG, or <database dir>/config.yaml if it exists.

  Database Configuration:
    TL_DB_DIR                              Database directory (default: ~/.tl)
    TL_DB_FILENAME                         Database filename (default: tasks.db)
    TL_DB_DRIVER                           SQL driver, sqlite or sqlite3 (default: sqlite)
    TL_DB_QUERY_TIMEOUT                    Query timeout (default: 10s)
    TL_DB_WRITE_TIMEOUT                    Write timeout (default: 5s)
    TL_DB_DIR_PERMISSIONS                  Octal permissions for a new database dir (default: 755)

  Validation Configuration:
    TL_VALIDATION_TITLE_MAX                Max task title length (default: 255)

  Display Configuration:
    TL_DISPLAY_TITLE                       List screen title (default: Task List)
    TL_LIST_FORMAT                         List format, plain or numbered (default: plain)

  Application Configuration:
    TL_APP_TIMEOUT                         Application timeout (default: 60s)
    TL_APP_VERBOSE                         Enable verbose output (default: false)
    TL_DEBUG                               Print debug logging to stderr`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Apply configuration overrides from flags before any command runs
			if err := root.getConfigFromFlags(); err != nil {
				return err
			}
			if cmd.Annotations[needsStore] == "" {
				return nil
			}
			return root.openStore(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return root.closeStore()
		},
	}
	root.cmd.SetOut(out)

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command. The store is closed even when the command fails.
func (r *RootCommand) Execute() error {
	err := r.cmd.Execute()
	if closeErr := r.closeStore(); err == nil {
		err = closeErr
	}
	return err
}

// SetArgs sets the arguments used by Execute instead of os.Args
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Database configuration
	flags.String("db-dir", "", "Database directory (overrides TL_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides TL_DB_FILENAME)")
	flags.String("db-driver", "", "SQL driver, sqlite or sqlite3 (overrides TL_DB_DRIVER)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides TL_DB_QUERY_TIMEOUT)")
	flags.Duration("db-write-timeout", 0, "Database write timeout (overrides TL_DB_WRITE_TIMEOUT)")

	// Validation configuration
	flags.Int("title-max-length", 0, "Maximum task title length (overrides TL_VALIDATION_TITLE_MAX)")

	// Display configuration
	flags.String("display-title", "", "List screen title (overrides TL_DISPLAY_TITLE)")
	flags.String("list-format", "", "List format, plain or numbered (overrides TL_LIST_FORMAT)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Application timeout (overrides TL_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides TL_APP_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	storeAnnotation := map[string]string{needsStore: "true"}

	listCmd := &cobra.Command{
		Use:         "list",
		Short:       "List all tasks",
		Long:        "List all tasks in the order they were added.",
		Args:        cobra.NoArgs,
		Annotations: storeAnnotation,
		RunE:        r.runTaskCommand,
	}

	addCmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a task",
		Long: `Add a task. All arguments are joined with spaces to form the title.

Examples:
  tl add Buy milk
  tl add "Call the plumber"`,
		Args:        cobra.MinimumNArgs(1),
		Annotations: storeAnnotation,
		RunE:        r.runTaskCommand,
	}

	editCmd := &cobra.Command{
		Use:   "edit [id] [title]",
		Short: "Change the title of a task",
		Long: `Change the title of a task. The remaining arguments form the new title.

Example:
  tl edit 3 Buy oat milk`,
		Args:        cobra.MinimumNArgs(2),
		Annotations: storeAnnotation,
		RunE:        r.runTaskCommand,
	}

	deleteCmd := &cobra.Command{
		Use:         "delete [id]",
		Short:       "Delete a task",
		Long:        "Delete a task. This cannot be undone.",
		Args:        cobra.ExactArgs(1),
		Annotations: storeAnnotation,
		RunE:        r.runTaskCommand,
	}

	uiCmd := &cobra.Command{
		Use:         "ui",
		Short:       "Open the interactive list screen",
		Long:        "Open a full-screen list of tasks. The key bindings are listed at the bottom of the screen; press ? for all of them.",
		Args:        cobra.NoArgs,
		Annotations: storeAnnotation,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The screen stays open until the user quits, so only cancellation bounds it.
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			return tui.Run(ctx, r.app.Presenter(), r.config.Display.Title)
		},
	}

	r.cmd.AddCommand(
		listCmd,
		addCmd,
		editCmd,
		deleteCmd,
		uiCmd,
	)
}

// runTaskCommand hands a store-backed subcommand to the app's command registry
func (r *RootCommand) runTaskCommand(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
	defer cancel()

	return r.app.Run(ctx, append([]string{cmd.Name()}, args...))
}

func (r *RootCommand) openStore(cmd *cobra.Command) error {
	if r.store != nil {
		return nil
	}

	if r.config.Application.Verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "Using database %s\n", r.config.GetDatabasePath())
	}

	taskStore, err := OpenStore(r.config)
	if err != nil {
		return err
	}
	r.store = taskStore
	r.app = NewApp(taskStore, r.config, r.out)
	return nil
}

func (r *RootCommand) closeStore() error {
	if r.store == nil {
		return nil
	}
	err := r.store.Close()
	r.store = nil
	r.app = nil
	if err != nil {
		logging.Errorf("close database: %v", err)
	}
	return err
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// getConfigFromFlags updates the configuration with flags set on the command line
func (r *RootCommand) getConfigFromFlags() error {
	if r.config == nil {
		return fmt.Errorf("configuration not initialized")
	}

	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	// Database configuration
	if flags.Changed("db-dir") {
		v, _ := flags.GetString("db-dir")
		overrides.DBDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		overrides.DBFilename = &v
	}
	if flags.Changed("db-driver") {
		v, _ := flags.GetString("db-driver")
		overrides.DBDriver = &v
	}
	if flags.Changed("db-query-timeout") {
		v, _ := flags.GetDuration("db-query-timeout")
		overrides.DBQueryTimeout = &v
	}
	if flags.Changed("db-write-timeout") {
		v, _ := flags.GetDuration("db-write-timeout")
		overrides.DBWriteTimeout = &v
	}

	// Validation configuration
	if flags.Changed("title-max-length") {
		v, _ := flags.GetInt("title-max-length")
		overrides.TitleMaxLength = &v
	}

	// Display configuration
	if flags.Changed("display-title") {
		v, _ := flags.GetString("display-title")
		overrides.DisplayTitle = &v
	}
	if flags.Changed("list-format") {
		v, _ := flags.GetString("list-format")
		overrides.ListFormat = &v
	}

	// Application configuration
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}

	return r.config.ApplyOverrides(overrides)
}
