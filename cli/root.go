// Package cli is the moxie command line: schema management and note
// lookup/creation against the database named by --db-url.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"moxie/config"
	"moxie/database"

	"github.com/spf13/cobra"
)

// errNotFound makes the command exit with status 1 without printing anything.
var errNotFound = errors.New("not found")

type options struct {
	cfg     *config.Config
	dbURL   string
	verbose bool
	logger  *slog.Logger
}

// NewRootCommand builds the moxie command tree.
func NewRootCommand(cfg *config.Config) *cobra.Command {
	o := &options{cfg: cfg, logger: slog.Default()}

	rootCmd := &cobra.Command{
		Use:   "moxie",
		Short: "Store and look up moxie notes",
		Long: `Moxie keeps notes (recipes, how-tos, gists) in a relational database.
The schema is either created directly or managed through versioned migrations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			o.logger = setupLogger(cmd.ErrOrStderr(), o.cfg, o.verbose)
			slog.SetDefault(o.logger)
		},
	}

	rootCmd.PersistentFlags().StringVar(&o.dbURL, "db-url", cfg.DatabaseURL, "URL of DB to use")
	rootCmd.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(
		newCreateSchemaCmd(o),
		newUpgradeSchemaCmd(o),
		newDowngradeSchemaCmd(o),
		newSchemaVersionCmd(o),
		newFindAllCmd(o),
		newFindByIDCmd(o),
		newCreateCmd(o),
		newServeCmd(o),
	)
	return rootCmd
}

// Execute runs the command line and returns the process exit status.
func Execute(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCommand(cfg)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errNotFound) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func (o *options) openProvider(ctx context.Context, createSchema bool) (*database.Provider, error) {
	return database.NewProvider(ctx, o.dbURL,
		database.WithCreateSchema(createSchema),
		database.WithLogger(o.logger),
	)
}

func setupLogger(w io.Writer, cfg *config.Config, verbose bool) *slog.Logger {
	var handler slog.Handler

	level := logLevel(cfg.LogLevel)
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: verbose && cfg.Env == "development",
	}

	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
