package cli

import (
	"fmt"
	"strconv"

	"github.com/alharthy/mizania/internal/domain/transaction"
	"github.com/alharthy/mizania/pkg/money"
	"github.com/spf13/cobra"
)

var (
	flagRecurringName     string
	flagRecurringCategory string
	flagRecurringAmount   string
)

var recurringCmd = &cobra.Command{
	Use:   "recurring",
	Short: "Manage recurring monthly expense templates",
}

var recurringListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recurring templates",
	RunE:  runRecurringList,
}

var recurringAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a recurring template",
	RunE:  runRecurringAdd,
}

var recurringUpdateCmd = &cobra.Command{
	Use:   "update <position>",
	Short: "Replace the template at a position (see list)",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecurringUpdate,
}

var recurringDeleteCmd = &cobra.Command{
	Use:   "delete <position>",
	Short: "Delete the template at a position (see list)",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecurringDelete,
}

func init() {
	for _, c := range []*cobra.Command{recurringAddCmd, recurringUpdateCmd} {
		c.Flags().StringVarP(&flagRecurringName, "name", "n", "", "Template name, e.g. Rent")
		c.Flags().StringVarP(&flagRecurringCategory, "category", "c", "", "Category")
		c.Flags().StringVarP(&flagRecurringAmount, "amount", "a", "", "Monthly amount in OMR")
		_ = c.MarkFlagRequired("name")
		_ = c.MarkFlagRequired("amount")
	}

	recurringCmd.AddCommand(recurringListCmd, recurringAddCmd, recurringUpdateCmd, recurringDeleteCmd)
	rootCmd.AddCommand(recurringCmd)
}

func buildTemplate() (transaction.RecurringTemplate, error) {
	amount, err := money.Parse(flagRecurringAmount)
	if err != nil {
		return transaction.RecurringTemplate{}, err
	}
	return transaction.RecurringTemplate{
		Name:          flagRecurringName,
		Category:      flagRecurringCategory,
		MonthlyAmount: amount,
	}, nil
}

func parsePosition(arg string) (int, error) {
	pos, err := strconv.Atoi(arg)
	if err != nil || pos < 1 {
		return 0, fmt.Errorf("invalid position %q, want a number starting at 1", arg)
	}
	return pos - 1, nil
}

func runRecurringList(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	templates := a.svc.Recurring(cmd.Context())
	if len(templates) == 0 {
		fmt.Println("No recurring templates.")
		return nil
	}
	for i, t := range templates {
		fmt.Printf("%2d. %-20s %-15s %s/month\n", i+1, t.Name, t.Category, money.Format(t.MonthlyAmount))
	}
	return nil
}

func runRecurringAdd(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	tpl, err := buildTemplate()
	if err != nil {
		return err
	}
	saved, err := a.svc.AddRecurring(cmd.Context(), tpl)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s %s/month\n", a.messages.EntrySaved, saved.Name, money.Format(saved.MonthlyAmount))
	return nil
}

func runRecurringUpdate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	pos, err := parsePosition(args[0])
	if err != nil {
		return err
	}
	tpl, err := buildTemplate()
	if err != nil {
		return err
	}
	return a.svc.UpdateRecurring(cmd.Context(), pos, tpl)
}

func runRecurringDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	pos, err := parsePosition(args[0])
	if err != nil {
		return err
	}
	return a.svc.DeleteRecurring(cmd.Context(), pos)
}
