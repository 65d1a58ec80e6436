package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/envelope-zero/ledger/pkg/ledger"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func (app *App) exportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a backup of all data as JSON",
		Args:  cobra.NoArgs,
		RunE:  app.export,
	}

	cmd.Flags().StringP("output", "o", "", "File to write the backup to (default: stdout)")
	return cmd
}

func (app *App) importCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace all data with a JSON backup",
		Args:  cobra.NoArgs,
		RunE:  app.importBackup,
	}

	cmd.Flags().StringP("input", "i", "", "Backup file to import")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func (app *App) export(cmd *cobra.Command, _ []string) error {
	output, _ := cmd.Flags().GetString("output")

	l, closeDB, err := app.openLedger()
	if err != nil {
		return err
	}
	defer closeDB()

	backup, err := l.Export(cmd.Context())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("could not create backup file: %w", err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(backup); err != nil {
		return fmt.Errorf("could not write backup: %w", err)
	}

	log.Info().Str("file", output).Int("envelopes", len(backup.Envelopes)).Int("expenses", len(backup.Expenses)).Msg("Export")
	return nil
}

func (app *App) importBackup(cmd *cobra.Command, _ []string) error {
	input, _ := cmd.Flags().GetString("input")

	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("could not open backup file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("could not read backup file: %w", err)
	}

	var backup ledger.Backup
	if err := json.Unmarshal(data, &backup); err != nil {
		return &ledger.InvalidBackupFormatError{Reason: err.Error()}
	}

	l, closeDB, err := app.openLedger()
	if err != nil {
		return err
	}
	defer closeDB()

	if err := l.Import(cmd.Context(), backup); err != nil {
		return err
	}

	log.Info().Str("file", input).Msg("Import")
	return nil
}
