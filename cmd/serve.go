package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/klemjul/marachat/internal/app"
	"github.com/klemjul/marachat/internal/config"
	"github.com/klemjul/marachat/internal/llm"
	"github.com/klemjul/marachat/internal/logging"
	"github.com/klemjul/marachat/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func ServeCommand(app app.App) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the /api/chat completion endpoint.",
		Args:  cobra.NoArgs,
		Example: `
marachat serve --provider openai --model gpt-4.1-mini
MARA_PROVIDER=ollama MARA_MODEL=llama3 marachat serve --addr :9000
	`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd, app)
		},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return validateProvider()
		},
	}

	serveCmd.Flags().String("addr", config.DEFAULT_ADDR,
		fmt.Sprintf("Address to listen on. (env: %s)", config.GetEnvWithPrefix(config.ENV_ADDR)))
	viper.BindPFlag(config.ENV_ADDR, serveCmd.Flags().Lookup("addr"))

	return serveCmd
}

func serve(cmd *cobra.Command, app app.App) error {
	logging.Setup(viper.GetString(config.ENV_LOG_LEVEL), os.Stdout)

	provider := viper.GetString(config.ENV_PROVIDER)
	model := viper.GetString(config.ENV_MODEL)
	client, err := app.LLM().NewClient(llm.LLMProvider(provider), llm.LLMClientOptions{Model: model})
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %v", err)
	}
	slog.Info("Using LLM provider", "provider", provider, "model", model)

	handler := server.NewRouter(server.NewChatHandler(client, server.ChatHandlerOptions{
		SystemPrompt:      viper.GetString(config.ENV_SYSTEM_PROMPT),
		HistoryTokenLimit: viper.GetInt(config.ENV_HISTORY_TOKEN_LIMIT),
	}))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Server().Run(ctx, viper.GetString(config.ENV_ADDR), handler); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
