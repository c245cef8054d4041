package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vasil-yosifov/ocs-provisioning-mcp-server/internal/config"
	"github.com/vasil-yosifov/ocs-provisioning-mcp-server/internal/logging"
	"github.com/vasil-yosifov/ocs-provisioning-mcp-server/internal/mcp"
	"github.com/vasil-yosifov/ocs-provisioning-mcp-server/internal/ocs"
	"github.com/vasil-yosifov/ocs-provisioning-mcp-server/internal/prompts"
	"github.com/vasil-yosifov/ocs-provisioning-mcp-server/internal/tools"
)

// Version information (set at build time with -ldflags)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:     "ocs-mcp",
	Short:   "MCP server exposing OCS provisioning operations as tools",
	Long:    `ocs-mcp is a Model Context Protocol server that fronts an Online Charging System provisioning API, exposing subscriber, subscription, balance, usage and account history operations as tools for LLM agents`,
	Version: Version,
	Run: func(cmd *cobra.Command, args []string) {
		runServer()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ocs-mcp %s\n", Version)
		if BuildTime != "unknown" {
			fmt.Printf("Built: %s\n", BuildTime)
		}
		if GitCommit != "unknown" {
			fmt.Printf("Commit: %s\n", GitCommit)
		}
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServer() {
	// Baseline logger for early startup logs
	logging.Init(logging.Config{
		Format:    "auto",
		Level:     "info",
		Component: "ocs-mcp",
	})

	settings, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Re-initialize logging with configuration-driven settings
	logging.Init(logging.Config{
		Format:    settings.LogFormat,
		Level:     settings.LogLevel,
		Component: "ocs-mcp",
	})

	log.Info().
		Str("version", Version).
		Str("ocsBaseUrl", settings.OCSBaseURL).
		Dur("timeout", settings.Timeout).
		Msg("Starting OCS provisioning MCP server")

	client, err := ocs.NewClient(ocs.ClientConfig{
		BaseURL: settings.OCSBaseURL,
		APIKey:  settings.OCSAPIKey,
		Timeout: settings.Timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create OCS client")
	}
	defer client.Close()

	executor := tools.NewExecutor(tools.ExecutorConfig{Client: client})
	server := mcp.NewServer(settings.ListenAddr, executor, prompts.NewProvider())

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
	case err := <-errCh:
		log.Fatal().Err(err).Msg("MCP server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
	log.Info().Msg("Server stopped")
}
