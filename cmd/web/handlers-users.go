package main

import (
	"net/http"
	"strconv"

	"github.com/justinas/nosurf"
	"github.com/mlahtinen/tutorloop/internal/contexthelpers"
	"github.com/mlahtinen/tutorloop/internal/errors"
	"github.com/mlahtinen/tutorloop/internal/models"
	"github.com/mlahtinen/tutorloop/internal/repositories"
)

// csrfToken hands out the token mutating requests must echo back in the
// X-CSRF-Token header.
func (app *application) csrfToken(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, http.StatusOK, map[string]string{"csrfToken": nosurf.Token(r)})
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (app *application) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		app.writeError(w, http.StatusBadRequest, "username, email, and password are required")
		return
	}

	id, err := app.users.Create(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateUsername) || errors.Is(err, repositories.ErrDuplicateEmail) {
			app.writeError(w, http.StatusConflict, err.Error())
			return
		}
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, http.StatusCreated, map[string]any{
		"id":      id,
		"message": "registration successful",
	})
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// login verifies the credentials and rotates the session token before binding
// the user ID to the session.
func (app *application) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	user, err := app.users.Authenticate(r.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidCredentials) {
			app.writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		app.serverError(w, r, err)
		return
	}

	// Renew the token to mitigate session fixation attacks.
	if err = app.sessionManager.RenewToken(r.Context()); err != nil {
		app.serverError(w, r, err)
		return
	}
	app.sessionManager.Put(r.Context(), string(userIDSessionKey), user.ID)

	app.writeJSON(w, http.StatusOK, map[string]any{
		"user":    user,
		"message": "login successful",
	})
}

func (app *application) logout(w http.ResponseWriter, r *http.Request) {
	if err := app.sessionManager.RenewToken(r.Context()); err != nil {
		app.serverError(w, r, err)
		return
	}
	app.sessionManager.Remove(r.Context(), string(userIDSessionKey))

	app.writeJSON(w, http.StatusOK, map[string]string{"message": "logout successful"})
}

// pathUserID parses the {id} path segment and checks it against the
// authenticated user, so one user can never read or write another's
// preferences.
func (app *application) pathUserID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	if id != contexthelpers.AuthenticatedUserID(r.Context()) {
		return 0, false
	}
	return id, true
}

func (app *application) getPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.pathUserID(r)
	if !ok {
		app.notFound(w, r)
		return
	}

	preferences, err := app.preferences.Get(r.Context(), userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, http.StatusOK, preferences)
}

type updatePreferencesRequest struct {
	Visual             bool `json:"visual"`
	ADHD               bool `json:"adhd"`
	DueDates           bool `json:"due_dates"`
	OnboardingComplete bool `json:"onboarding_complete"`
}

func (app *application) updatePreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.pathUserID(r)
	if !ok {
		app.notFound(w, r)
		return
	}

	var req updatePreferencesRequest
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	preferences := models.Preferences{
		UserID:             userID,
		Visual:             req.Visual,
		ADHD:               req.ADHD,
		DueDates:           req.DueDates,
		OnboardingComplete: req.OnboardingComplete,
	}
	if err := app.preferences.Upsert(r.Context(), preferences); err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, http.StatusOK, preferences)
}
