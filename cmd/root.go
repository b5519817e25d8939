package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/klemjul/marachat/internal/app"
	"github.com/klemjul/marachat/internal/chat"
	"github.com/klemjul/marachat/internal/config"
	"github.com/klemjul/marachat/internal/llm"
	"github.com/klemjul/marachat/internal/logging"
	"github.com/klemjul/marachat/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const CHAT_TITLE = "A Simple Chatbot"

func RootCommand(app app.App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "marachat",
		Short: "Chat with Mara, your AI friend, in the terminal.",
		Args:  cobra.NoArgs,
		Example: `
marachat   # Open the chat, talking to the provider directly
marachat --endpoint http://localhost:8080/api/chat   # Open the chat through a running "marachat serve"
marachat -m "오늘 재미난 일이 있었어!"   # Send a single message and print the reply
	`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app)
		},
		PreRunE:       validate,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.Flags().SortFlags = false
	rootCmd.PersistentFlags().SortFlags = false

	rootCmd.PersistentFlags().String("provider", "",
		fmt.Sprintf("LLM provider to use: %v. (env: %s)", llm.LLMProviders, config.GetEnvWithPrefix(config.ENV_PROVIDER)))
	rootCmd.PersistentFlags().String("model", "",
		fmt.Sprintf("LLM model to use, depends on the provider. (env: %s)", config.GetEnvWithPrefix(config.ENV_MODEL)))
	rootCmd.PersistentFlags().String("system-prompt", config.DEFAULT_SYSTEM_PROMPT,
		fmt.Sprintf("Instructions sent as system prompt with every request. (env: %s)", config.GetEnvWithPrefix(config.ENV_SYSTEM_PROMPT)))
	rootCmd.PersistentFlags().Int("history-token-limit", config.DEFAULT_HISTORY_TOKEN_LIMIT,
		fmt.Sprintf("Estimated token budget for the history sent to the provider, 0 for no limit. (env: %s)", config.GetEnvWithPrefix(config.ENV_HISTORY_TOKEN_LIMIT)))
	rootCmd.Flags().String("endpoint", "",
		fmt.Sprintf("Completion endpoint to post the conversation to, e.g. %s. When empty the provider is called directly. (env: %s)", "http://localhost:8080/api/chat", config.GetEnvWithPrefix(config.ENV_ENDPOINT)))
	rootCmd.Flags().String("greeting", chat.DEFAULT_GREETING,
		fmt.Sprintf("First message of every conversation. (env: %s)", config.GetEnvWithPrefix(config.ENV_GREETING)))
	rootCmd.Flags().StringP("message", "m", "", "Send a single message, print the reply and exit.")

	viper.BindPFlag(config.ENV_PROVIDER, rootCmd.PersistentFlags().Lookup("provider"))
	viper.BindPFlag(config.ENV_MODEL, rootCmd.PersistentFlags().Lookup("model"))
	viper.BindPFlag(config.ENV_SYSTEM_PROMPT, rootCmd.PersistentFlags().Lookup("system-prompt"))
	viper.BindPFlag(config.ENV_HISTORY_TOKEN_LIMIT, rootCmd.PersistentFlags().Lookup("history-token-limit"))
	viper.BindPFlag(config.ENV_ENDPOINT, rootCmd.Flags().Lookup("endpoint"))
	viper.BindPFlag(config.ENV_GREETING, rootCmd.Flags().Lookup("greeting"))
	viper.SetDefault(config.ENV_LOG_LEVEL, config.DEFAULT_LOG_LEVEL)

	viper.SetEnvPrefix(config.ENV_PREFIX)
	viper.AutomaticEnv()

	rootCmd.AddCommand(ServeCommand(app))

	return rootCmd
}

func validate(cmd *cobra.Command, args []string) error {
	message, err := cmd.Flags().GetString("message")
	if err == nil && cmd.Flags().Changed("message") && strings.TrimSpace(message) == "" {
		return fmt.Errorf("message must not be empty")
	}

	if viper.GetString(config.ENV_ENDPOINT) != "" {
		return nil
	}
	return validateProvider()
}

func validateProvider() error {
	provider := viper.GetString(config.ENV_PROVIDER)
	if !slices.Contains(llm.LLMProviders, llm.LLMProvider(provider)) {
		return fmt.Errorf("invalid provider '%s'. Valid providers are: %v", provider, llm.LLMProviders)
	}

	model := viper.GetString(config.ENV_MODEL)
	if model == "" {
		return fmt.Errorf("model must be specified '%s'", model)
	}

	return nil
}

func run(cmd *cobra.Command, app app.App) error {
	closeLog, err := setupFileLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	transport, err := newTransport(app)
	if err != nil {
		return err
	}

	controller := chat.NewController(transport,
		chat.WithGreeting(viper.GetString(config.ENV_GREETING)),
		chat.WithLogger(slog.Default()),
	)
	slog.Info("Conversation started", "session_id", controller.ID(), "endpoint", viper.GetString(config.ENV_ENDPOINT))

	message, _ := cmd.Flags().GetString("message")
	if message != "" {
		return sendOnce(cmd, app, controller, strings.TrimSpace(message))
	}

	TUIModel := app.TUI().InitialModel(ui.InitialModelOptions{
		Title:        CHAT_TITLE,
		Conversation: controller,
		Context:      cmd.Context(),
	})
	if _, err := app.TUI().Run(TUIModel); err != nil {
		return fmt.Errorf("error running chat: %v", err)
	}
	return nil
}

func newTransport(app app.App) (chat.Transport, error) {
	if endpoint := viper.GetString(config.ENV_ENDPOINT); endpoint != "" {
		return app.Transport().NewHTTP(endpoint), nil
	}

	client, err := app.LLM().NewClient(llm.LLMProvider(viper.GetString(config.ENV_PROVIDER)), llm.LLMClientOptions{
		Model: viper.GetString(config.ENV_MODEL),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %v", err)
	}
	return app.Transport().NewDirect(
		client,
		viper.GetString(config.ENV_SYSTEM_PROMPT),
		viper.GetInt(config.ENV_HISTORY_TOKEN_LIMIT),
	), nil
}

func sendOnce(cmd *cobra.Command, app app.App, controller *chat.Controller, message string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	reply, err := controller.Submit(ctx, chat.NewUserMessage(message))
	if err != nil {
		return fmt.Errorf("failed to generate response: %w", err)
	}
	if reply == nil {
		return nil
	}

	formattedRes, err := app.Format().FormatMarkdown(reply.Text())
	if err != nil {
		return fmt.Errorf("failed to format response: %v", err)
	}
	cmd.OutOrStdout().Write([]byte(formattedRes))
	return nil
}

// setupFileLogger sends logs to MARA_LOG_FILE, or discards them: the terminal
// belongs to the chat.
func setupFileLogger() (func(), error) {
	path := viper.GetString(config.ENV_LOG_FILE)
	if path == "" {
		logging.Setup(viper.GetString(config.ENV_LOG_LEVEL), io.Discard)
		return func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("could not open log file: %w", err)
	}
	logging.Setup(viper.GetString(config.ENV_LOG_LEVEL), f)
	return func() { _ = f.Close() }, nil
}
