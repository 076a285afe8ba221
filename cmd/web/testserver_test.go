package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/justinas/nosurf"
	"github.com/mlahtinen/tutorloop/internal/errors"
	"github.com/mlahtinen/tutorloop/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitForReady calls the specified endpoint until it gets a HTTP 200 Success
// response or until the context is cancelled or the 1-second timeout is reached.
func waitForReady(ctx context.Context, endpoint string) error {
	timeout := 1 * time.Second
	client := http.Client{}
	startTime := time.Now()
	var (
		err  error
		req  *http.Request
		resp *http.Response
	)
	for {
		if req, err = http.NewRequestWithContext(
			ctx,
			http.MethodGet,
			endpoint,
			nil,
		); err != nil {
			return errors.Wrap(err, "create request")
		}

		if resp, err = client.Do(req); err == nil {
			if resp.StatusCode == http.StatusOK {
				if err = resp.Body.Close(); err != nil {
					return errors.Wrap(err, "close response body")
				}
				return nil
			}
			if err = resp.Body.Close(); err != nil {
				return errors.Wrap(err, "close response body")
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			if time.Since(startTime) >= timeout {
				return errors.New("timeout waiting for endpoint to be ready")
			}
			time.Sleep(250 * time.Millisecond)
		}
	}
}

// newProviderStub serves an OpenAI-compatible chat-completion endpoint that
// answers every request with a completion naming the upstream model, so tests
// can tell which backend a response came from.
func newProviderStub(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/chat/completions", r.URL.Path)

		var chatRequest struct {
			Model string `json:"model"`
		}
		err := json.NewDecoder(r.Body).Decode(&chatRequest)
		require.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-123",
			"object": "chat.completion",
			"model":  chatRequest.Model,
			"choices": []map[string]any{
				{"message": map[string]any{
					"role":    "assistant",
					"content": fmt.Sprintf("completion from %s", chatRequest.Model),
				}},
			},
		})
		require.NoError(t, err)
	}))
	t.Cleanup(server.Close)
	return server
}

// testLookupEnv points the server at a free port, an in-memory database, and
// the given provider stub.
func testLookupEnv(providerURL string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		switch key {
		case "TUTORLOOP_ADDR":
			return "localhost:0", true
		case "TUTORLOOP_PPROF_PORT":
			return ":0", true
		case "TUTORLOOP_SQLITE_URL":
			return ":memory:", true
		case "TUTORLOOP_HF_BASE_URL", "TUTORLOOP_GEMINI_BASE_URL":
			return providerURL + "/v1", true
		case "HF_TOKEN", "GEMINI_API_KEY":
			return "test-key", true
		default:
			return "", false
		}
	}
}

type testServer struct {
	url       string
	client    http.Client
	csrfToken string
}

// startTestServer starts the test server, waits for it to be ready, and returns the server URL for testing.
func startTestServer(t *testing.T, w io.Writer, lookupEnv func(string) (string, bool)) *testServer {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	// We need to grab the dynamically allocated port from the log output.
	addrCh := make(chan string, 1)
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(w, &slog.HandlerOptions{ //nolint:exhaustruct // rest are defaults
		AddSource: false,
		Level:     slog.LevelDebug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == "Addr" {
				addrCh <- a.Value.String()
			}
			return a
		},
	})))

	// Start the server and wait for it to be ready.
	go func() {
		if err := run(ctx, logger, lookupEnv); err != nil {
			cancel()
			assert.NoError(t, err)
		}
	}()
	select {
	case <-ctx.Done():
		t.Fatal("server failed to start")
		return nil
	case addr := <-addrCh:
		serverURL := fmt.Sprintf("http://%s", addr)
		if err := waitForReady(ctx, fmt.Sprintf("%s/api/healthy", serverURL)); err != nil {
			require.NoError(t, err)
		}
		jar, err := cookiejar.New(nil)
		require.NoError(t, err)
		return &testServer{
			url:       serverURL,
			client:    http.Client{Jar: jar}, //nolint:exhaustruct // rest are defaults
			csrfToken: "",
		}
	}
}

// Get fetches a URL and returns the response.
func (s *testServer) Get(t *testing.T, urlPath string) *http.Response {
	t.Helper()
	resp, err := s.client.Get(s.url + urlPath)
	require.NoError(t, err)
	return resp
}

// PostJSON sends a JSON body to the given path with the CSRF token attached
// and returns the response.
func (s *testServer) PostJSON(t *testing.T, method, urlPath string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(method, s.url+urlPath, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(nosurf.HeaderName, s.csrfToken)
	resp, err := s.client.Do(req)
	require.NoError(t, err)
	return resp
}

// DecodeJSON decodes and closes the response body.
func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	err := json.NewDecoder(resp.Body).Decode(v)
	require.NoError(t, err)
	err = resp.Body.Close()
	require.NoError(t, err)
}

// RefreshCSRFToken fetches a fresh CSRF token for subsequent mutating requests.
func (s *testServer) RefreshCSRFToken(t *testing.T) {
	t.Helper()
	resp := s.Get(t, "/api/csrf")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		CSRFToken string `json:"csrfToken"`
	}
	decodeJSON(t, resp, &body)
	require.NotEmpty(t, body.CSRFToken)
	s.csrfToken = body.CSRFToken
}

// Register creates an account for the given user.
func (s *testServer) Register(t *testing.T, username, email, password string) {
	t.Helper()
	resp := s.PostJSON(t, http.MethodPost, "/api/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	err := resp.Body.Close()
	require.NoError(t, err)
}

// Login authenticates the user and refreshes the CSRF token, which rotates
// together with the session on login.
func (s *testServer) Login(t *testing.T, login, password string) int64 {
	t.Helper()
	resp := s.PostJSON(t, http.MethodPost, "/api/login", map[string]string{
		"login":    login,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		User struct {
			ID int64 `json:"id"`
		} `json:"user"`
	}
	decodeJSON(t, resp, &body)
	require.NotZero(t, body.User.ID)

	s.RefreshCSRFToken(t)
	return body.User.ID
}
