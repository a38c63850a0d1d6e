package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alharthy/mizania/internal/domain/spreadsheet"
	"github.com/alharthy/mizania/internal/domain/summary"
	"github.com/spf13/cobra"
)

var (
	flagImportCSV    bool
	flagImportIncome bool
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a spreadsheet and show the merged summary",
	Long:  "Reads an xlsx workbook (or a CSV with --csv) and shows the monthly summary with the imported rows merged in. Imported rows are not saved.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export all entries to an xlsx workbook",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

func init() {
	importCmd.Flags().BoolVar(&flagImportCSV, "csv", false, "Treat the file as CSV instead of xlsx")
	importCmd.Flags().BoolVar(&flagImportIncome, "income", false, "CSV rows are income (default expenses)")
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	useCSV := flagImportCSV || strings.HasSuffix(strings.ToLower(args[0]), ".csv")

	overlay, err := importOverlay(a, cmd, f, useCSV)
	if err != nil {
		if errors.Is(err, spreadsheet.ErrMissingSheets) {
			return errors.New(a.messages.MissingSheets)
		}
		return err
	}

	result := a.svc.Summary(cmd.Context(), overlay)
	printSummary(os.Stdout, result, a.messages)
	return nil
}

func importOverlay(a *app, cmd *cobra.Command, f *os.File, useCSV bool) (*summary.Overlay, error) {
	if useCSV {
		return a.svc.ImportCSV(cmd.Context(), f, flagImportIncome)
	}
	return a.svc.ImportWorkbook(cmd.Context(), f)
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	name := spreadsheet.DefaultExportName
	if len(args) == 1 {
		name = args[0]
	}

	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if err := a.svc.Export(cmd.Context(), f); err != nil {
		return err
	}
	fmt.Println("Exported to", name)
	return nil
}
