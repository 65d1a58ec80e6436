package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/envelope-zero/ledger/internal/types"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

func (app *App) summaryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the figures of a month",
		Args:  cobra.NoArgs,
		RunE:  app.summary,
	}

	cmd.Flags().StringP("period", "p", "", "Month to summarize, YYYY-MM (default: current month)")
	return cmd
}

func (app *App) summary(cmd *cobra.Command, _ []string) error {
	raw, _ := cmd.Flags().GetString("period")

	period := types.PeriodOf(time.Now())
	if raw != "" {
		var err error
		period, err = types.ParsePeriod(raw)
		if err != nil {
			return err
		}
	}

	l, closeDB, err := app.openLedger()
	if err != nil {
		return err
	}
	defer closeDB()

	s, err := l.DashboardSummary(cmd.Context(), period)
	if err != nil {
		return err
	}

	tag, err := language.Parse(app.cfg.CurrencyLocale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	p := message.NewPrinter(tag)

	amount := func(d decimal.Decimal) string {
		return p.Sprint(number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(2)))
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "Period\t%s\t\n", s.Period)
	fmt.Fprintf(w, "Income\t%s\t\n", amount(s.TotalIncome))
	fmt.Fprintf(w, "Expenses\t%s\t\n", amount(s.TotalExpense))
	fmt.Fprintf(w, "Budgeted\t%s\t\n", amount(s.TotalBudget))
	fmt.Fprintf(w, "Remaining\t%s\t\n", amount(s.TotalRemaining))
	fmt.Fprintf(w, "Saved\t%s\t\n", amount(s.SavedAmount))
	fmt.Fprintf(w, "Budget used\t%s%%\t\n", p.Sprint(number.Decimal(s.BudgetUtilization.InexactFloat64(), number.MaxFractionDigits(1))))
	fmt.Fprintf(w, "Over budget\t%d\t\n", s.OverBudgetCount)

	return w.Flush()
}
