package main

import (
	"net/http"

	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	// The dynamic chain loads the login session and CSRF protection; the
	// protected chain additionally requires an authenticated user.
	dynamic := alice.New(app.sessionManager.LoadAndSave, noSurf, app.authenticate)
	protected := dynamic.Append(app.requireAuthentication)

	mux.HandleFunc("GET /api/healthy", app.healthy)
	mux.Handle("GET /api/csrf", dynamic.ThenFunc(app.csrfToken))

	mux.Handle("POST /api/register", dynamic.ThenFunc(app.register))
	mux.Handle("POST /api/login", dynamic.ThenFunc(app.login))
	mux.Handle("POST /api/logout", protected.ThenFunc(app.logout))

	mux.Handle("GET /api/user/{id}/preferences", protected.ThenFunc(app.getPreferences))
	mux.Handle("PUT /api/user/{id}/preferences", protected.ThenFunc(app.updatePreferences))

	mux.Handle("GET /api/sessions", protected.ThenFunc(app.listSessions))
	mux.Handle("GET /api/sessions/{sessionID}", protected.ThenFunc(app.getSession))

	mux.Handle("POST /api/startTopic", protected.ThenFunc(app.startTopic))
	mux.Handle("POST /api/askQuestion", protected.ThenFunc(app.askQuestion))
	mux.Handle("POST /api/hint", protected.ThenFunc(app.hint))

	return app.recoverPanic(app.logRequest(secureHeaders(mux)))
}
