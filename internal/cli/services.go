package cli

import (
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/farolia/farol/internal/app"
	"github.com/farolia/farol/internal/config"
	"github.com/farolia/farol/internal/logging"
	"github.com/farolia/farol/internal/observability"
)

// loadBackend builds the same services the HTTP server uses, logging to stderr.
func loadBackend(cmd *cobra.Command) (*app.Backend, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	metrics := observability.NewMetrics(cfg.MetricsNamespace, prometheus.NewRegistry())

	backend, err := app.NewBackend(cmd.Context(), cfg, metrics, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, err
	}
	return backend, logger, nil
}

func newSpeakCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "speak <texto>",
		Short: "Generate an mp3 for a text",
		Long:  "Run the speech service locally: apply the pronunciation rules, call the configured provider and store the mp3.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, logger, err := loadBackend(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()
			defer backend.Close()

			artifact, err := backend.Services.Speech.Generate(cmd.Context(), []string{strings.Join(args, " ")})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), artifact.Path)
			return nil
		},
	}
}

func newScreenshotCmd() *cobra.Command {
	var describe bool

	cmd := &cobra.Command{
		Use:   "screenshot <url>",
		Short: "Capture a full-page screenshot",
		Long:  "Run the screenshot service locally with headless Chrome. With --describe the capture is also described in pt-BR.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, logger, err := loadBackend(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()
			defer backend.Close()

			if !describe {
				artifact, err := backend.Services.Screenshots.Capture(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), artifact.Path)
				return nil
			}

			artifact, description, err := backend.Services.Screenshots.CaptureAndDescribe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), artifact.Path)
			fmt.Fprintln(cmd.OutOrStdout(), description)
			return nil
		},
	}

	cmd.Flags().BoolVar(&describe, "describe", false, "Describe the captured screen with Gemini")

	return cmd
}
