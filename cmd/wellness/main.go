package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/llms/openai"
	"golang.org/x/oauth2"

	adapthttp "wellness/internal/adapter/http"
	"wellness/internal/adapter/postgres"
	"wellness/internal/app"
	"wellness/internal/filewatch"
)

func main() {
	log := logrus.New()
	if env("LOG_FORMAT", "text") == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	addr := env("ADDR", ":8080")

	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := postgres.Open(connStr)
	if err != nil {
		log.WithError(err).Fatal("db open")
	}
	defer func() { _ = db.Close() }()

	sessionRepo := postgres.NewSessionRepo(db)

	weightSvc := app.NewWeightService(db, db)
	mealSvc := app.NewMealService(db, db)
	birthdaySvc := app.NewBirthdayService(db)
	appointmentSvc := app.NewAppointmentService(db)
	authSvc := app.NewAuthService(db, sessionRepo)

	assistantSvc := loadAssistant(log)
	oidcCfg := loadOIDC(log)

	h := adapthttp.New(weightSvc, mealSvc, birthdaySvc, appointmentSvc, assistantSvc, authSvc, oidcCfg, log).Handler()
	log.WithField("addr", addr).Info("listening")
	if err := http.ListenAndServe(addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// loadAssistant builds the AI assistant when OPENAI_API_KEY is set, and
// keeps its system prompt in sync with the ASSISTANT_PROMPT file if one
// is configured. Returns nil when the assistant is disabled.
func loadAssistant(log *logrus.Logger) *app.AssistantService {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Info("OPENAI_API_KEY not set, assistant disabled")
		return nil
	}

	opts := []openai.Option{openai.WithToken(apiKey)}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		opts = append(opts, openai.WithModel(model))
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		log.WithError(err).Fatal("assistant init")
	}

	var prompt string
	promptPath := os.Getenv("ASSISTANT_PROMPT")
	if promptPath != "" {
		data, err := os.ReadFile(promptPath)
		if err != nil {
			log.WithError(err).Fatal("reading assistant prompt")
		}
		prompt = string(data)
	}

	svc := app.NewAssistantService(llm, prompt)

	if promptPath != "" {
		watcher, err := filewatch.NewPromptWatcher(promptPath, svc.SetPrompt, log)
		if err != nil {
			log.WithError(err).Fatal("prompt watcher")
		}
		go watcher.Watch()
	}
	return svc
}

func loadOIDC(log *logrus.Logger) adapthttp.OIDCConfig {
	issuer := os.Getenv("OIDC_ISSUER")
	clientID := os.Getenv("OIDC_CLIENT_ID")
	if issuer == "" || clientID == "" {
		return adapthttp.OIDCConfig{}
	}

	provider, err := oidc.NewProvider(context.Background(), issuer)
	if err != nil {
		log.WithError(err).Fatal("oidc provider")
	}
	return adapthttp.OIDCConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: os.Getenv("OIDC_CLIENT_SECRET"),
			RedirectURL:  env("OIDC_REDIRECT_URL", "http://localhost:8080/api/auth/sso/callback"),
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
