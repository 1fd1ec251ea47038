// Package main implements the automark CLI, a multi-agent marketing
// campaign generator: a manager plans, three specialists produce content,
// the manager evaluates and integrates, and everything lands in a durable
// campaign context file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"automark/internal/config"
	"automark/internal/memory"
	"automark/internal/workspace"
)

var version = "dev"

var (
	workspaceFlag string
	configFlag    string
	verboseFlag   bool
)

var rootCmd = &cobra.Command{
	Use:          "automark",
	Short:        "Multi-agent marketing campaign generator",
	Long:         "automark runs a manager-led team of specialist agents that turn a campaign brief into copy, audience analysis, outreach templates and an integrated campaign plan.",
	Version:      version,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&workspaceFlag, "workspace", ".", "Path to workspace root")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(contextCmd)
	rootCmd.AddCommand(memoryCmd)
}

// setup resolves the workspace and loads configuration, shared by every
// subcommand.
func setup() (*workspace.Workspace, *config.Config, *zap.Logger, error) {
	ws, err := workspace.Resolve(workspaceFlag)
	if err != nil {
		return nil, nil, nil, err
	}
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := buildLogger(cfg.Logging, verboseFlag)
	if err != nil {
		return nil, nil, nil, err
	}
	return ws, cfg, logger, nil
}

func buildLogger(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logging.level: %w", err)
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// openMemory opens the campaign memory when it is enabled. The mock provider
// uses a local embedding so no network is needed.
func openMemory(ws *workspace.Workspace, cfg *config.Config, logger *zap.Logger) (*memory.Memory, error) {
	if !cfg.Memory.Enabled {
		return nil, nil
	}
	var embed = memory.OpenAIEmbedding(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.Memory.EmbeddingModel)
	if cfg.LLM.Provider == "mock" {
		embed = memory.HashEmbedding(256)
	}
	return memory.Open(ws.MemoryDir, embed, logger)
}
