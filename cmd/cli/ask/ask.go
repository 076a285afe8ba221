package ask

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mlahtinen/tutorloop/internal/tutor"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "tutor",
	Title: "Tutoring operations",
}

func init() {
	Ask.Flags().String("topic", "", "topic the question relates to")
	Ask.Flags().String("model", string(tutor.ModelDeepSeek), "primary model answering the question")
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func providers() map[tutor.Model]tutor.ProviderConfig {
	hfBaseURL := getenv("TUTORLOOP_HF_BASE_URL", "https://router.huggingface.co/v1")
	hfToken := os.Getenv("HF_TOKEN")
	return map[tutor.Model]tutor.ProviderConfig{
		tutor.ModelDeepSeek: {
			BaseURL:  hfBaseURL,
			APIKey:   hfToken,
			Upstream: "deepseek-ai/DeepSeek-V3.1:fireworks-ai",
		},
		tutor.ModelGPT: {
			BaseURL:  hfBaseURL,
			APIKey:   hfToken,
			Upstream: "openai/gpt-oss-120b:fireworks-ai",
		},
		tutor.ModelMistral: {
			BaseURL:  hfBaseURL,
			APIKey:   hfToken,
			Upstream: "dphn/Dolphin-Mistral-24B-Venice-Edition:featherless-ai",
		},
		tutor.ModelGemini: {
			BaseURL:  getenv("TUTORLOOP_GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai"),
			APIKey:   os.Getenv("GEMINI_API_KEY"),
			Upstream: "gemini-2.5-flash",
		},
	}
}

// Ask runs the fact-checked question workflow once from the command line.
var Ask = &cobra.Command{ //nolint:exhaustruct // rest are defaults
	Use:     "ask [question]",
	GroupID: "tutor",
	Short:   "Ask a fact-checked question",
	Long:    `Answers the question with the primary model, fact-checks the answer with two peer models, and prints the revised answer`,
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))

		topic, err := cmd.Flags().GetString("topic")
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "invalid topic flag: %v\n", err)
			return
		}
		model, err := cmd.Flags().GetString("model")
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "invalid model flag: %v\n", err)
			return
		}
		question := strings.Join(args, " ")

		gateway := tutor.NewClient(providers(), 2*time.Minute, logger)
		orchestrator := tutor.NewOrchestrator(gateway, logger)

		result, err := orchestrator.AskQuestion(ctx, topic, question, tutor.Model(model))
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "ask error: %v\n", err)
			return
		}

		fmt.Printf("Initial answer (%s):\n%s\n\n", result.Model, result.Initial)
		for _, check := range result.FactChecks {
			fmt.Printf("Fact check (%s):\n%s\n\n", check.Model, check.Check)
		}
		fmt.Printf("Revised answer (%s):\n%s\n", result.Model, result.Revised)
	},
}
