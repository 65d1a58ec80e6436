package cli

import (
	"fmt"
	"os"

	"github.com/envelope-zero/ledger/pkg/httputil"
	"github.com/envelope-zero/ledger/pkg/importer"
	"github.com/spf13/cobra"
)

func (app *App) importCSVCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-csv",
		Short: "Book a bank statement in the YNAB import CSV format",
		Long:  "Inflows are booked as incomes, outflows as expenses of the category. Rows that exceed the remaining budget are listed and skipped.",
		Args:  cobra.NoArgs,
		RunE:  app.importCSV,
	}

	cmd.Flags().StringP("input", "i", "", "CSV file to import")
	cmd.Flags().StringP("category", "c", "", "ID of the category to book outflows on")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func (app *App) importCSV(cmd *cobra.Command, _ []string) error {
	input, _ := cmd.Flags().GetString("input")
	category, _ := cmd.Flags().GetString("category")

	categoryID, err := httputil.UUIDFromString(category)
	if err != nil {
		return err
	}

	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("could not open statement: %w", err)
	}
	defer f.Close()

	rows, err := importer.Parse(f)
	if err != nil {
		return err
	}

	l, closeDB, err := app.openLedger()
	if err != nil {
		return err
	}
	defer closeDB()

	result, err := importer.Book(cmd.Context(), l, rows, categoryID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d incomes and %d expenses booked\n", len(result.Incomes), len(result.Expenses))
	for _, r := range result.Rejected {
		fmt.Fprintf(out, "line %d rejected (%s): %s\n", r.Row.Line, r.Code, r.Error)
	}

	return nil
}
