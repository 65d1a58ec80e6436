// Package cli implements the command line interface of the ledger.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/envelope-zero/ledger/internal/config"
	"github.com/envelope-zero/ledger/pkg/database"
	"github.com/envelope-zero/ledger/pkg/ledger"
	"github.com/envelope-zero/ledger/pkg/store"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// App is the command line application.
type App struct {
	rootCmd *cobra.Command
	cfg     config.Config
}

// New creates the command line application. Without a subcommand, the
// API server is started.
func New(cfg config.Config) *App {
	app := &App{cfg: cfg}

	rootCmd := &cobra.Command{
		Use:           "ledger",
		Short:         "Envelope budgeting ledger",
		Long:          "Allocate income to budgets, authorize expenses against them and carry what is left into the next month.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          app.serve,
	}

	rootCmd.AddCommand(
		app.serveCommand(),
		app.exportCommand(),
		app.importCommand(),
		app.importCSVCommand(),
		app.summaryCommand(),
	)

	app.rootCmd = rootCmd
	return app
}

// Execute runs the application with the arguments of the process.
func (app *App) Execute() error {
	return app.rootCmd.Execute()
}

// SetArgs sets the arguments, replacing the ones of the process.
func (app *App) SetArgs(args []string) {
	app.rootCmd.SetArgs(args)
}

// SetOutput sets where command output is written. The default is stdout.
func (app *App) SetOutput(w io.Writer) {
	app.rootCmd.SetOut(w)
}

// openLedger connects to the database and returns the ledger working on
// it together with the function that closes the connection.
func (app *App) openLedger() (*ledger.Ledger, func(), error) {
	if dir := filepath.Dir(app.cfg.DBPath); dir != "" {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, nil, fmt.Errorf("could not create data directory: %w", err)
		}
	}

	db, err := database.Connect(app.cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}

	closeDB := func() {
		sqlDB, err := db.DB()
		if err != nil {
			log.Error().Err(err).Msg("Database")
			return
		}

		if err := sqlDB.Close(); err != nil {
			log.Error().Err(err).Msg("Database")
		}
	}

	log.Debug().Str("path", app.cfg.DBPath).Msg("Database")
	return ledger.New(store.NewGorm(db)), closeDB, nil
}
