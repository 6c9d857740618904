package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/stacks/internal/adapter"
	"github.com/mmcdole/stacks/internal/adapter/source/rest"
	"github.com/mmcdole/stacks/internal/domain"
	"github.com/mmcdole/stacks/internal/service"
	"github.com/mmcdole/stacks/internal/store"
	"github.com/mmcdole/stacks/internal/tui"
	"github.com/mmcdole/stacks/internal/validation"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

var (
	cfgFile string
	apiURL  string
)

var rootCmd = &cobra.Command{
	Use:   "stacks",
	Short: "Terminal dashboard for a small library's books, members and loans",
	Long: `Stacks is a terminal dashboard for a library management backend.
It lists books, members and loans, creates and edits them, and records
loans and returns against the backend's REST API.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.config/stacks/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "backend API base URL, e.g. http://localhost:3000/api")

	rootCmd.AddCommand(probeCmd, mockCmd, versionCmd, configCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies flag overrides
func loadConfig() (*adapter.Config, *slog.Logger, error) {
	cfg, err := adapter.LoadConfig(viper.New(), cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}

	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// newLibraryService wires the REST client behind the validating service
func newLibraryService(cfg *adapter.Config, logger *slog.Logger) *service.LibraryService {
	client := rest.NewClient(cfg.API.BaseURL, cfg.API.Timeout, logger)
	return service.NewLibraryService(client, validation.New(), logger)
}

func runTUI() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stacks needs an interactive terminal; use 'stacks probe' for scripted checks")
	}

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	logger.Info("starting stacks", "version", Version, "api", cfg.API.BaseURL)

	prefs, err := store.NewPreferenceStore(cfg.Store.Path, domain.ParseTheme(cfg.UI.Theme))
	if err != nil {
		return fmt.Errorf("failed to open preference store: %w", err)
	}
	defer prefs.Close()

	start, err := tui.ParseSection(cfg.UI.DefaultSection)
	if err != nil {
		logger.Warn("ignoring default section", "error", err)
	}

	model := tui.NewModel(newLibraryService(cfg, logger), prefs, start, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
