package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"evwatch/internal/bootstrap"
	"evwatch/internal/platform/config"
)

func main() {
	// A .env next to the binary is the quickest way to point at a non-local
	// backend; missing files are fine.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath, baseURL string

	root := &cobra.Command{
		Use:           "evwatch",
		Short:         "EV charging anomaly monitoring dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")
	root.PersistentFlags().StringVar(&baseURL, "base-url", "", "detection backend base URL override")

	root.AddCommand(newTUICmd(&configPath, &baseURL))
	root.AddCommand(newAnalyzeCmd(&configPath, &baseURL))
	root.AddCommand(newLogsCmd(&configPath, &baseURL))
	return root
}

func loadApp(configPath, baseURL string) (*bootstrap.App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return bootstrap.New(cfg)
}

func newTUICmd(configPath, baseURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the evwatch terminal dashboard",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*configPath, *baseURL)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}

func newAnalyzeCmd(configPath, baseURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <file.csv>",
		Short: "Upload a CSV of charging sessions for anomaly analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*configPath, *baseURL)
			if err != nil {
				return err
			}
			out, err := app.MonitorCLI.Analyze(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d sessions, %d anomalies\n",
				out.Filename, out.TotalSessions, out.AnomaliesFound)
			for _, s := range out.Sessions {
				label := s.Category.Label()
				if label == "" {
					label = "clean"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%.0f%%\n",
					s.SessionID, s.ChargerID, label, s.Status, s.Score*100)
			}
			return nil
		},
	}
}

func newLogsCmd(configPath, baseURL *string) *cobra.Command {
	logs := &cobra.Command{Use: "logs", Short: "Charger log operations"}

	logs.AddCommand(&cobra.Command{
		Use:   "fetch",
		Short: "Fetch the archived anomaly batch from the backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*configPath, *baseURL)
			if err != nil {
				return err
			}
			out, err := app.LogsCLI.Fetch(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d sessions\t%d anomalies\n",
				out.Entry.ID, out.Entry.Timestamp, out.Entry.SessionCount, out.Entry.AnomalyCount)
			return nil
		},
	})

	return logs
}
