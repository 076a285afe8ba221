package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/joho/godotenv"
	"github.com/mlahtinen/tutorloop/internal/envstruct"
	"github.com/mlahtinen/tutorloop/internal/errors"
	"github.com/mlahtinen/tutorloop/internal/logging"
	"github.com/mlahtinen/tutorloop/internal/pprofserver"
	"github.com/mlahtinen/tutorloop/internal/repositories"
	"github.com/mlahtinen/tutorloop/internal/sqlite"
	"github.com/mlahtinen/tutorloop/internal/tutor"
)

type application struct {
	logger         *slog.Logger
	sessionManager *scs.SessionManager
	orchestrator   *tutor.Orchestrator
	users          *repositories.UserRepository
	chatSessions   *repositories.SessionRepository
	messages       *repositories.MessageRepository
	preferences    *repositories.PreferenceRepository
}

type configuration struct {
	// Addr is the address the HTTP server listens on.
	Addr string `env:"TUTORLOOP_ADDR" envDefault:"localhost:4000"`
	// PprofPort is the localhost port for the pprof server.
	PprofPort string `env:"TUTORLOOP_PPROF_PORT" envDefault:":6060"`
	// SqliteURL is the path to the SQLite database file or ":memory:".
	SqliteURL string `env:"TUTORLOOP_SQLITE_URL" envDefault:"./tutorloop.sqlite"`
	// InvokeTimeout bounds a single model call, parsed with time.ParseDuration.
	InvokeTimeout string `env:"TUTORLOOP_INVOKE_TIMEOUT" envDefault:"2m"`
	// HFToken authenticates against the Hugging Face inference router, which
	// fronts the deepseek, gpt, and mistral backends.
	HFToken   string `env:"HF_TOKEN"`
	HFBaseURL string `env:"TUTORLOOP_HF_BASE_URL" envDefault:"https://router.huggingface.co/v1"`
	// GeminiAPIKey authenticates against Google's OpenAI-compatible endpoint.
	GeminiAPIKey  string `env:"GEMINI_API_KEY"`
	GeminiBaseURL string `env:"TUTORLOOP_GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta/openai"`
}

// providers maps the model catalog to the configured upstream backends.
func (c configuration) providers() map[tutor.Model]tutor.ProviderConfig {
	return map[tutor.Model]tutor.ProviderConfig{
		tutor.ModelDeepSeek: {
			BaseURL:  c.HFBaseURL,
			APIKey:   c.HFToken,
			Upstream: "deepseek-ai/DeepSeek-V3.1:fireworks-ai",
		},
		tutor.ModelGPT: {
			BaseURL:  c.HFBaseURL,
			APIKey:   c.HFToken,
			Upstream: "openai/gpt-oss-120b:fireworks-ai",
		},
		tutor.ModelMistral: {
			BaseURL:  c.HFBaseURL,
			APIKey:   c.HFToken,
			Upstream: "dphn/Dolphin-Mistral-24B-Venice-Edition:featherless-ai",
		},
		tutor.ModelGemini: {
			BaseURL:  c.GeminiBaseURL,
			APIKey:   c.GeminiAPIKey,
			Upstream: "gemini-2.5-flash",
		},
	}
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var config configuration
	if err := envstruct.Populate(&config, lookupEnv); err != nil {
		return errors.Wrap(err, "parse configuration")
	}

	invokeTimeout, err := time.ParseDuration(config.InvokeTimeout)
	if err != nil {
		return errors.Wrap(err, "parse invoke timeout", slog.String("timeout", config.InvokeTimeout))
	}

	// Initialise pprof listening on localhost so that it's not open to the world.
	pprofserver.Launch(config.PprofPort, logger)

	db, err := sqlite.NewDatabase(ctx, config.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "connect to database", slog.String("url", config.SqliteURL))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to database")

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(db.ReadWrite.DB, 24*time.Hour)
	sessionManager.Lifetime = 12 * time.Hour

	gateway := tutor.NewClient(config.providers(), invokeTimeout, logger)

	app := application{
		logger:         logger,
		sessionManager: sessionManager,
		orchestrator:   tutor.NewOrchestrator(gateway, logger),
		users:          repositories.NewUserRepository(db, logger),
		chatSessions:   repositories.NewSessionRepository(db, logger),
		messages:       repositories.NewMessageRepository(db, logger),
		preferences:    repositories.NewPreferenceRepository(db, logger),
	}

	return app.configureAndStartServer(ctx, config.Addr)
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{ //nolint:exhaustruct // rest are defaults
		Level:     slog.LevelDebug,
		AddSource: true,
	}))
	logger := slog.New(loggerHandler)

	// The .env file is optional, e.g., in production the environment comes
	// from the process manager.
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", errors.SlogError(err))
	}

	if err := run(context.Background(), logger, os.LookupEnv); err != nil {
		logger.Error(err.Error(), errors.SlogError(err))
		os.Exit(1)
	}
}
