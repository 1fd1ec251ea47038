package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"automark/internal/agents"
	"automark/internal/audit"
	"automark/internal/bus"
	"automark/internal/config"
	"automark/internal/contextstore"
	"automark/internal/dataset"
	"automark/internal/llm"
	"automark/internal/manager"
	"automark/internal/notify"
	"automark/internal/report"
	"automark/internal/workflow"
)

var (
	briefFlag       string
	revisionsFlag   int
	dataFileFlag    string
	contextFileFlag string
	jsonOutputFlag  string
	jsonOnlyFlag    bool
	notifyFlag      bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a campaign for a brief",
	Long: `Run the full campaign workflow for a brief.

Examples:
  automark run --brief "Promote eco-friendly water bottle"
  automark run --brief "Launch new fitness app" --revisions 2
  automark run --brief "Promote eco-friendly water bottle" --json-output campaign.json`,
	RunE: runCampaign,
}

func init() {
	runCmd.Flags().StringVar(&briefFlag, "brief", "", "Campaign brief describing what to promote")
	runCmd.Flags().IntVar(&revisionsFlag, "revisions", 1, "Maximum number of revision cycles")
	runCmd.Flags().StringVar(&dataFileFlag, "data-file", "", "Path to marketing dataset CSV (default: data/marketing_data.csv)")
	runCmd.Flags().StringVar(&contextFileFlag, "context-file", "", "Path to context file (default: campaign_context.json)")
	runCmd.Flags().StringVar(&jsonOutputFlag, "json-output", "", "Save JSON output to file")
	runCmd.Flags().BoolVar(&jsonOnlyFlag, "json-only", false, "Output only JSON (no human-readable output)")
	runCmd.Flags().BoolVar(&notifyFlag, "notify", false, "Send a system notification when the campaign finishes")
	_ = runCmd.MarkFlagRequired("brief")
}

func runCampaign(cmd *cobra.Command, _ []string) error {
	if strings.TrimSpace(briefFlag) == "" {
		return fmt.Errorf("--brief must not be empty")
	}
	if revisionsFlag < 0 {
		return fmt.Errorf("--revisions must not be negative")
	}

	ws, cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()
	if err := ws.EnsureDirs(); err != nil {
		return err
	}

	contextPath := ws.ContextFile
	if contextFileFlag != "" {
		if contextPath, err = ws.ResolvePath(contextFileFlag); err != nil {
			return err
		}
	}
	dataPath := ws.DataFile
	if dataFileFlag != "" {
		if dataPath, err = ws.ResolvePath(dataFileFlag); err != nil {
			return err
		}
	}

	data := dataset.Load(dataPath)
	if data == nil {
		logger.Warn("data file not found, continuing without dataset",
			zap.String("path", dataPath))
	}

	completer, err := buildCompleter(cfg)
	if err != nil {
		return err
	}
	mem, err := openMemory(ws, cfg, logger)
	if err != nil {
		logger.Warn("campaign memory unavailable", zap.Error(err))
	}

	store := contextstore.New(contextPath, logger)
	msgBus := bus.New()
	runner := workflow.NewRunner(workflow.Deps{
		Store:      store,
		Manager:    manager.New(completer, logger),
		Copywriter: agents.NewCopywriter(store, completer, msgBus, logger),
		Analyst:    agents.NewAnalyst(store, completer, data, msgBus, logger),
		Outreach:   agents.NewOutreach(store, completer, msgBus, logger),
		Bus:        msgBus,
		Audit:      audit.NewLogger(ws.AuditDBPath),
		Memory:     mem,
		Logger:     logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := runner.ExecuteCampaign(ctx, briefFlag, revisionsFlag)
	notifier := &notify.Notifier{Enabled: notifyFlag}
	if err != nil {
		title, message := notify.FormatCampaignFailed(store.Snapshot().CampaignID, err)
		_ = notifier.Send(title, message)
		return err
	}
	final := result.Report

	if !jsonOnlyFlag {
		fmt.Fprint(cmd.OutOrStdout(), report.Render(final))
	}
	if jsonOutputFlag != "" {
		outPath, err := ws.ResolvePath(jsonOutputFlag)
		if err != nil {
			return err
		}
		if err := report.WriteCondensed(final, outPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nJSON output saved to: %s\n", outPath)
	} else {
		encoded, err := report.EncodeCondensed(final)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nJSON OUTPUT:\n%s\n", encoded)
	}

	stats := msgBus.Statistics()
	logger.Debug("message bus statistics",
		zap.Int("total_messages", stats.TotalMessages),
		zap.Int("pending_requests", stats.PendingRequests),
		zap.Any("by_type", stats.ByType),
		zap.Any("by_agent", stats.ByAgent))

	title, message := notify.FormatCampaignComplete(result.CampaignID, result.Rounds, result.Degraded)
	_ = notifier.Send(title, message)
	return nil
}

func buildCompleter(cfg *config.Config) (llm.Completer, error) {
	switch cfg.LLM.Provider {
	case "mock":
		return &llm.Mock{}, nil
	default:
		return llm.NewClient(llm.ClientConfig{
			APIKey:  cfg.LLM.APIKey,
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
			Timeout: cfg.LLM.Timeout(),
		})
	}
}
