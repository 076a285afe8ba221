package main

import (
	"net/http"
	"strconv"

	"github.com/mlahtinen/tutorloop/internal/contexthelpers"
	"github.com/mlahtinen/tutorloop/internal/errors"
	"github.com/mlahtinen/tutorloop/internal/models"
	"github.com/mlahtinen/tutorloop/internal/repositories"
)

func (app *application) listSessions(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.AuthenticatedUserID(r.Context())

	sessions, err := app.chatSessions.ListByUser(r.Context(), userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	if sessions == nil {
		sessions = []models.Session{}
	}

	app.writeJSON(w, http.StatusOK, map[string]any{"sessions": sessions})
}

// getSession returns one chat session with its full message history. Sessions
// are scoped to the authenticated user, so asking for someone else's session
// looks the same as asking for one that does not exist.
func (app *application) getSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := strconv.ParseInt(r.PathValue("sessionID"), 10, 64)
	if err != nil {
		app.notFound(w, r)
		return
	}
	userID := contexthelpers.AuthenticatedUserID(r.Context())

	session, err := app.chatSessions.Get(r.Context(), sessionID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}

	messages, err := app.messages.ListBySession(r.Context(), sessionID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}

	app.writeJSON(w, http.StatusOK, map[string]any{
		"session":  session,
		"messages": messages,
	})
}
