package cli

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/alharthy/mizania/internal/domain/summary"
	"github.com/alharthy/mizania/internal/i18n"
	"github.com/alharthy/mizania/pkg/money"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the monthly income and expense summary",
	RunE:  runSummary,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all income and expense entries (recurring templates are kept)",
	RunE:  runClear,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(clearCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	result := a.svc.Summary(cmd.Context(), nil)
	printSummary(os.Stdout, result, a.messages)
	return nil
}

func runClear(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.svc.Clear(cmd.Context()); err != nil {
		return err
	}
	fmt.Println(a.messages.EntriesCleared)
	return nil
}

// printSummary renders a summary with localized labels and month names.
// Months with no activity on either side are skipped.
func printSummary(w io.Writer, s summary.MonthlySummary, msg i18n.Messages) {
	fmt.Fprintf(w, "%s\n\n", msg.SummaryTitle)

	for m := 0; m < 12; m++ {
		if s.IncomeByMonth[m].IsZero() && s.ExpensesByMonth[m].IsZero() {
			continue
		}
		fmt.Fprintf(w, "  %-12s +%-14s -%-14s = %s\n",
			msg.Months[m],
			money.Format(s.IncomeByMonth[m]),
			money.Format(s.ExpensesByMonth[m]),
			money.Format(s.NetByMonth[m]))
	}

	if len(s.ExpensesByCategory) > 0 {
		fmt.Fprintln(w)
		categories := make([]string, 0, len(s.ExpensesByCategory))
		for cat := range s.ExpensesByCategory {
			categories = append(categories, cat)
		}
		sort.Strings(categories)
		for _, cat := range categories {
			fmt.Fprintf(w, "  %-20s %s\n", cat, money.Format(s.ExpensesByCategory[cat]))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s: %s\n", msg.TotalIncome, money.Format(s.TotalIncome))
	fmt.Fprintf(w, "  %s: %s\n", msg.TotalExpenses, money.Format(s.TotalExpenses))
	fmt.Fprintf(w, "  %s: %s\n", msg.NetBalance, money.Format(s.NetBalance))
	fmt.Fprintf(w, "  %s: %s%%\n", msg.SavingsRate, s.SavingsRate.StringFixed(1))

	if s.Skipped > 0 {
		fmt.Fprintf(w, "\n  (%d rows skipped)\n", s.Skipped)
	}
}
