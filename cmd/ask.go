package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/masjidlabs/minbar/internal/app"
	"github.com/masjidlabs/minbar/internal/config"
	"github.com/masjidlabs/minbar/internal/log"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question from the terminal",
	Long: `Ask composes an answer exactly like the webhook does: schedule lookup
first, then the knowledge base, then Gemini if GEMINI_API_KEY is set.
Useful for trying out the corpus without sending a WhatsApp message.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	// One-shot run; no point watching for file changes.
	cfg.Watch = false

	logger := log.NewWithWriter(os.Stderr, log.Config{Level: logLevel()})

	a, err := app.Setup(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil {
			logger.Warn("shutdown error", "error", closeErr)
		}
	}()

	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return fmt.Errorf("question is empty")
	}

	fmt.Println(a.Composer.Compose(ctx, question))
	return nil
}
