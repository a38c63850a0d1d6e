package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alharthy/mizania/internal/domain/sms"
	"github.com/alharthy/mizania/pkg/money"
	"github.com/spf13/cobra"
)

var smsCmd = &cobra.Command{
	Use:   "sms <message>",
	Short: "Capture a bank SMS notification as a transaction",
	Long:  "Parses a bank notification message, extracts the amount, vendor and date, and saves the entry under the SMS category.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSMS,
}

func init() {
	rootCmd.AddCommand(smsCmd)
}

func runSMS(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	message := strings.Join(args, " ")
	tx, err := a.svc.CaptureSMS(cmd.Context(), message)
	if err != nil {
		if errors.Is(err, sms.ErrNoAmount) || errors.Is(err, sms.ErrEmptyMessage) {
			return errors.New(a.messages.NoDataDetected)
		}
		return err
	}

	fmt.Printf("%s: %s %s %s on %s\n",
		a.messages.EntrySaved,
		tx.Kind, money.Format(tx.Amount), tx.Vendor,
		tx.Date.Format("2006-01-02"))
	return nil
}
