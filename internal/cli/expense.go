package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alharthy/mizania/internal/domain/transaction"
	"github.com/alharthy/mizania/pkg/money"
	"github.com/spf13/cobra"
)

var (
	flagAmount   string
	flagVendor   string
	flagCategory string
	flagDate     string
	flagReceipt  string
)

var expenseCmd = &cobra.Command{
	Use:   "expense",
	Short: "Manage expense entries",
}

var expenseAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an expense entry",
	RunE:  runExpenseAdd,
}

var incomeCmd = &cobra.Command{
	Use:   "income",
	Short: "Manage income entries",
}

var incomeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an income entry",
	RunE:  runIncomeAdd,
}

func init() {
	for _, c := range []*cobra.Command{expenseAddCmd, incomeAddCmd} {
		c.Flags().StringVarP(&flagAmount, "amount", "a", "", "Amount in OMR, e.g. 12.500")
		c.Flags().StringVarP(&flagVendor, "vendor", "v", "", "Vendor or source name")
		c.Flags().StringVarP(&flagCategory, "category", "c", "", "Category (suggested from vendor when omitted)")
		c.Flags().StringVar(&flagDate, "date", "", "Date as YYYY-MM-DD (default today)")
		_ = c.MarkFlagRequired("amount")
	}
	expenseAddCmd.Flags().StringVar(&flagReceipt, "receipt", "", "Path to a receipt file to attach")

	expenseCmd.AddCommand(expenseAddCmd)
	incomeCmd.AddCommand(incomeAddCmd)
	rootCmd.AddCommand(expenseCmd)
	rootCmd.AddCommand(incomeCmd)
}

func buildEntry() (transaction.Transaction, error) {
	amount, err := money.Parse(flagAmount)
	if err != nil {
		return transaction.Transaction{}, err
	}
	tx := transaction.Transaction{
		Amount:   amount,
		Vendor:   flagVendor,
		Category: flagCategory,
	}
	if flagDate != "" {
		d, err := time.Parse("2006-01-02", flagDate)
		if err != nil {
			return transaction.Transaction{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", flagDate)
		}
		tx.Date = d.UTC()
	}
	return tx, nil
}

func runExpenseAdd(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	tx, err := buildEntry()
	if err != nil {
		return err
	}

	if flagReceipt != "" {
		f, err := os.Open(flagReceipt)
		if err != nil {
			return fmt.Errorf("failed to open receipt: %w", err)
		}
		ref, err := a.svc.AttachReceipt(cmd.Context(), filepath.Base(flagReceipt), "application/octet-stream", f)
		f.Close()
		if err != nil {
			return err
		}
		tx.ReceiptRef = ref
	}

	saved, err := a.svc.AddExpense(cmd.Context(), tx)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s %s (%s)\n", a.messages.EntrySaved, saved.Vendor, money.Format(saved.Amount), saved.Category)
	return nil
}

func runIncomeAdd(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	tx, err := buildEntry()
	if err != nil {
		return err
	}
	saved, err := a.svc.AddIncome(cmd.Context(), tx)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s %s (%s)\n", a.messages.EntrySaved, saved.Vendor, money.Format(saved.Amount), saved.Category)
	return nil
}
