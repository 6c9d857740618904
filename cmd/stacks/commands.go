package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/stacks/internal/adapter"
	"github.com/mmcdole/stacks/internal/adapter/mockserver"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check whether the backend API is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		svc := newLibraryService(cfg, logger)
		if err := svc.Probe(cmd.Context()); err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Disconnected (%s)\n", cfg.API.BaseURL)
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Connected (%s)\n", cfg.API.BaseURL)
		return nil
	},
}

var (
	mockAddr string
	mockSeed bool
)

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Serve an in-memory library backend for demos and development",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, err := loadConfig()
		if err != nil {
			return err
		}

		backend := mockserver.New(logger)
		if mockSeed {
			backend.Seed()
		}

		srv := &http.Server{
			Addr:              mockAddr,
			Handler:           backend,
			ReadHeaderTimeout: 5 * time.Second,
		}

		go func() {
			<-cmd.Context().Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(ctx)
		}()

		fmt.Fprintf(cmd.OutOrStdout(), "Mock backend listening on %s (API at /api)\n", mockAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("mock server: %w", err)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "stacks %s\n", Version)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the current configuration to the default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := viper.New()
		cfg, err := adapter.LoadConfig(v, cfgFile)
		if err != nil {
			return err
		}
		if apiURL != "" {
			cfg.API.BaseURL = apiURL
		}
		if err := adapter.SaveConfig(v, cfg); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Configuration written")
		return nil
	},
}

func init() {
	mockCmd.Flags().StringVar(&mockAddr, "addr", ":3000", "listen address")
	mockCmd.Flags().BoolVar(&mockSeed, "seed", true, "start with sample books, members and loans")

	configCmd.AddCommand(configInitCmd)
}
