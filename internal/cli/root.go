// Package cli wires the cobra command tree for the mizania binary.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alharthy/mizania/internal/budget"
	"github.com/alharthy/mizania/internal/i18n"
	"github.com/alharthy/mizania/internal/store"
	"github.com/alharthy/mizania/pkg/config"
	"github.com/alharthy/mizania/pkg/storage"
	"github.com/spf13/cobra"
)

var (
	flagDataDir string
	flagBackend string
	flagLocale  string
)

var rootCmd = &cobra.Command{
	Use:   "mizania",
	Short: "Personal budget tracker for Omani bank accounts",
	Long:  "Track income and expenses in OMR: capture bank SMS messages, import and export spreadsheets, and review monthly summaries.",
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Data directory (default $HOME/.mizania)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "Store backend: file, sqlite or memory")
	rootCmd.PersistentFlags().StringVar(&flagLocale, "locale", "", "Output locale: en or ar")
}

// app bundles everything a command needs.
type app struct {
	svc      *budget.Service
	store    store.Store
	messages i18n.Messages
}

func (a *app) close() {
	_ = a.store.Close()
}

// newApp builds the service from config plus any flag overrides.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagDataDir != "" {
		cfg.Store.DataDir = flagDataDir
	}
	if flagBackend != "" {
		cfg.Store.Backend = flagBackend
	}
	if flagLocale != "" {
		cfg.Locale = flagLocale
	}

	var st store.Store
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		st, err = store.OpenSQLite(cfg.Store.SQLitePath())
	case config.BackendMemory:
		st = store.NewMemory()
	default:
		st, err = store.NewFileStore(cfg.Store.DataDir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	receipts, err := storage.NewLocalStorage(cfg.Store.ReceiptDir)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	var handler slog.Handler
	if cfg.LogJSON {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})
	}
	logger := slog.New(handler)

	return &app{
		svc:      budget.NewService(st, receipts, logger),
		store:    st,
		messages: i18n.For(cfg.Locale),
	}, nil
}
