package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mlahtinen/tutorloop/internal/contexthelpers"
	"github.com/mlahtinen/tutorloop/internal/errors"
	"github.com/mlahtinen/tutorloop/internal/tutor"
)

type startTopicRequest struct {
	Topic string `json:"topic"`
	Model string `json:"model"`
}

// startTopic asks the chosen model for an opening explanation and records the
// conversation under a per-user chat session for the topic.
func (app *application) startTopic(w http.ResponseWriter, r *http.Request) {
	var req startTopicRequest
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	result, err := app.orchestrator.StartTopic(r.Context(), req.Topic, tutor.Model(req.Model))
	if err != nil {
		app.tutorError(w, r, err)
		return
	}

	userID := contexthelpers.AuthenticatedUserID(r.Context())
	app.persist(r.Context(), userID, req.Topic, func(ctx context.Context, sessionID int64) error {
		_, err := app.messages.Insert(ctx, userID, sessionID, result.Output, false)
		return err
	})

	app.writeJSON(w, http.StatusOK, result)
}

type askQuestionRequest struct {
	Topic    string `json:"topic"`
	Question string `json:"question"`
	Model    string `json:"model"`
}

// askQuestion runs the fact-checked answer pipeline and records the question
// together with the revised answer.
func (app *application) askQuestion(w http.ResponseWriter, r *http.Request) {
	var req askQuestionRequest
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	result, err := app.orchestrator.AskQuestion(r.Context(), req.Topic, req.Question, tutor.Model(req.Model))
	if err != nil {
		app.tutorError(w, r, err)
		return
	}

	userID := contexthelpers.AuthenticatedUserID(r.Context())
	app.persist(r.Context(), userID, req.Topic, func(ctx context.Context, sessionID int64) error {
		if _, err := app.messages.Insert(ctx, userID, sessionID, req.Question, true); err != nil {
			return err
		}
		_, err := app.messages.Insert(ctx, userID, sessionID, result.Revised, false)
		return err
	})

	app.writeJSON(w, http.StatusOK, result)
}

type hintRequest struct {
	Topic string `json:"topic"`
	Model string `json:"model"`
}

// hint asks the chosen model for Socratic guiding questions on the topic.
func (app *application) hint(w http.ResponseWriter, r *http.Request) {
	var req hintRequest
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	result, err := app.orchestrator.GetHint(r.Context(), req.Topic, tutor.Model(req.Model))
	if err != nil {
		app.tutorError(w, r, err)
		return
	}

	userID := contexthelpers.AuthenticatedUserID(r.Context())
	app.persist(r.Context(), userID, req.Topic, func(ctx context.Context, sessionID int64) error {
		_, err := app.messages.Insert(ctx, userID, sessionID, result.Hint, false)
		return err
	})

	app.writeJSON(w, http.StatusOK, result)
}

// persist ensures the chat session for the topic and runs record against it.
// The tutoring response has already been produced at this point, so storage
// failures are logged but never turned into request failures.
func (app *application) persist(
	ctx context.Context,
	userID int64,
	topic string,
	record func(ctx context.Context, sessionID int64) error,
) {
	// Chat sessions are keyed by topic, so a question asked without one is
	// answered but not recorded.
	if topic == "" {
		app.logger.Debug("skipping persistence without topic", "user_id", userID)
		return
	}

	session, err := app.chatSessions.Ensure(ctx, userID, topic)
	if err != nil {
		app.logger.LogAttrs(ctx, slog.LevelError, "ensure chat session",
			slog.Int64("user_id", userID), errors.SlogError(err))
		return
	}
	if err = record(ctx, session.ID); err != nil {
		app.logger.LogAttrs(ctx, slog.LevelError, "record chat messages",
			slog.Int64("session_id", session.ID), errors.SlogError(err))
	}
}
