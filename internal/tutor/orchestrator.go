package tutor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mlahtinen/tutorloop/internal/errors"
)

// ValidationError reports a missing required input. It is detected before any
// model call so no network cost is incurred.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required input: %s", e.Field)
}

// FactCheck pairs a checking model with the critique it produced.
type FactCheck struct {
	Model Model  `json:"model"`
	Check string `json:"check"`
}

// StartResult is the outcome of starting a new topic. The wire name of the
// explanation is "output" for compatibility with the existing frontend.
type StartResult struct {
	Model  Model  `json:"model"`
	Output string `json:"output"`
}

// AskResult is the outcome of a fact-checked question: the primary model's
// first answer, the two peer critiques in peer-selection order, and the
// revised answer.
type AskResult struct {
	Model      Model       `json:"model"`
	Initial    string      `json:"initial"`
	FactChecks []FactCheck `json:"factChecks"`
	Revised    string      `json:"revised"`
}

// HintResult is the outcome of a Socratic hint request.
type HintResult struct {
	Model Model  `json:"model"`
	Hint  string `json:"hint"`
}

// Orchestrator composes the prompt builders and the model gateway into the
// three tutoring workflows. It holds no mutable state, so concurrent requests
// never interfere with each other's model selection.
type Orchestrator struct {
	gateway Gateway
	logger  *slog.Logger
}

func NewOrchestrator(gateway Gateway, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		gateway: gateway,
		logger:  logger.With("source", "tutor.Orchestrator"),
	}
}

// StartTopic asks the primary model for an opening explanation of the topic.
func (o *Orchestrator) StartTopic(ctx context.Context, topic string, primary Model) (*StartResult, error) {
	if topic == "" {
		return nil, &ValidationError{Field: "topic"}
	}
	if primary == "" {
		return nil, &ValidationError{Field: "model"}
	}

	prompt := BuildStartingPrompt(StartingPromptParams{Topic: topic}) //nolint:exhaustruct // defaults apply
	output, err := o.gateway.Invoke(ctx, primary, prompt)
	if err != nil {
		return nil, errors.Wrap(err, "start topic", slog.String("model", string(primary)))
	}

	return &StartResult{Model: primary, Output: output}, nil
}

// AskQuestion runs the fact-checked question pipeline:
//
//  1. The primary model answers the question.
//  2. The two circular-adjacent peers critique the answer concurrently.
//  3. The primary model revises its answer using the combined critiques.
//
// The pipeline is strictly all-or-nothing: if any model call fails, the whole
// workflow fails and no unverified answer is returned.
func (o *Orchestrator) AskQuestion(ctx context.Context, topic, question string, primary Model) (*AskResult, error) {
	if question == "" {
		return nil, &ValidationError{Field: "question"}
	}
	if primary == "" {
		return nil, &ValidationError{Field: "model"}
	}

	initial, err := o.gateway.Invoke(ctx, primary, BuildQuestionPrompt(topic, question))
	if err != nil {
		return nil, errors.Wrap(err, "initial answer", slog.String("model", string(primary)))
	}

	left, right := FactCheckPeers(primary)
	factChecks, err := o.fanOutFactChecks(ctx, topic, initial, left, right)
	if err != nil {
		return nil, errors.Wrap(err, "fact checks", slog.String("model", string(primary)))
	}

	revisionPrompt := BuildRevisionPrompt(RevisionPromptParams{ //nolint:exhaustruct // default revision level applies
		Topic:          topic,
		OriginalOutput: initial,
		Feedback:       combineFeedback(factChecks),
	})
	revised, err := o.gateway.Invoke(ctx, primary, revisionPrompt)
	if err != nil {
		return nil, errors.Wrap(err, "revised answer", slog.String("model", string(primary)))
	}

	return &AskResult{
		Model:      primary,
		Initial:    initial,
		FactChecks: factChecks,
		Revised:    revised,
	}, nil
}

// GetHint asks the primary model for Socratic guiding questions on the topic.
func (o *Orchestrator) GetHint(ctx context.Context, topic string, primary Model) (*HintResult, error) {
	if topic == "" {
		return nil, &ValidationError{Field: "topic"}
	}
	if primary == "" {
		return nil, &ValidationError{Field: "model"}
	}

	prompt := BuildSocraticPrompt(SocraticPromptParams{Topic: topic}) //nolint:exhaustruct // defaults apply
	hint, err := o.gateway.Invoke(ctx, primary, prompt)
	if err != nil {
		return nil, errors.Wrap(err, "get hint", slog.String("model", string(primary)))
	}

	return &HintResult{Model: primary, Hint: hint}, nil
}

// fanOutFactChecks invokes the two peers concurrently and waits for both.
// Each call writes into its own tagged slot, so the returned critiques keep
// the left/right peer order no matter which call resolves first.
func (o *Orchestrator) fanOutFactChecks(
	ctx context.Context,
	topic string,
	initial string,
	left Model,
	right Model,
) ([]FactCheck, error) {
	prompt := BuildFactCheckPrompt(FactCheckPromptParams{ //nolint:exhaustruct // default detail level applies
		Topic:          topic,
		OriginalOutput: initial,
	})

	peers := [2]Model{left, right}
	var (
		wg     sync.WaitGroup
		checks [2]string
		errs   [2]error
	)
	for i, peer := range peers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			checks[i], errs[i] = o.gateway.Invoke(ctx, peer, prompt)
		}()
	}
	wg.Wait()

	if err := errors.Join(errs[0], errs[1]); err != nil {
		return nil, err
	}

	return []FactCheck{
		{Model: left, Check: checks[0]},
		{Model: right, Check: checks[1]},
	}, nil
}

// combineFeedback concatenates the critiques into one feedback block, each
// prefixed with the checking model and separated by blank lines, preserving
// the peer order.
func combineFeedback(factChecks []FactCheck) string {
	parts := make([]string, len(factChecks))
	for i, check := range factChecks {
		parts[i] = fmt.Sprintf("%s %s", check.Model, check.Check)
	}
	return strings.Join(parts, "\n\n")
}
