package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"aiupstart.com/snapcode/internal/llm"
	"aiupstart.com/snapcode/internal/server"
	"aiupstart.com/snapcode/internal/utils"
)

// NewServeCommand creates the "serve" command running the generation service.
func NewServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the generation service",
		Long: `Run the HTTP generation service. It answers POST /generate with the code
produced by the configured OpenAI model and exposes Prometheus metrics on /metrics.

OPENAI_API_KEY must be set (environment, .env file or config).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Server.OpenAIAPIKey == "" {
				return newCLIError(ExitConfig, "OPENAI_API_KEY not set")
			}
			if addr == "" {
				addr = cfg.Server.ListenAddr
			}

			llmClient := llm.NewOpenAIClient(
				cfg.Server.OpenAIAPIKey,
				cfg.Server.OpenAIBaseURL,
				cfg.Server.Model,
				cfg.Server.MaxTokens,
				cfg.Server.Temperature,
			)
			srv := server.New(llmClient, cfg.Server.AllowedOrigins)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			utils.Logger.Info().Str("module", "cli").Str("model", cfg.Server.Model).Msg("starting generation service")
			return srv.Run(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	return cmd
}
