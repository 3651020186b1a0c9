package adapthttp

import (
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"wellness/internal/app"
)

// OIDCConfig carries the optional SSO login configuration.
type OIDCConfig struct {
	Enabled      bool
	OAuth2Config *oauth2.Config
	Provider     *oidc.Provider
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	weight       *app.WeightService
	meals        *app.MealService
	birthdays    *app.BirthdayService
	appointments *app.AppointmentService
	assistant    *app.AssistantService
	auth         *app.AuthService
	oidc         OIDCConfig
	log          *logrus.Logger
}

// New creates a Server wired to the given application services. assistant
// may be nil when no LLM is configured.
func New(
	weight *app.WeightService,
	meals *app.MealService,
	birthdays *app.BirthdayService,
	appointments *app.AppointmentService,
	assistant *app.AssistantService,
	auth *app.AuthService,
	oidcCfg OIDCConfig,
	log *logrus.Logger,
) *Server {
	if log == nil {
		log = logrus.New()
	}
	return &Server{
		weight:       weight,
		meals:        meals,
		birthdays:    birthdays,
		appointments: appointments,
		assistant:    assistant,
		auth:         auth,
		oidc:         oidcCfg,
		log:          log,
	}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	api.HandleFunc("/config", s.handleConfig)

	api.HandleFunc("/auth/register", s.handleRegister)
	api.HandleFunc("/auth/login", s.handleLogin)
	api.HandleFunc("/auth/logout", s.handleLogout)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback)

	authed := http.NewServeMux()
	authed.HandleFunc("/weight", s.handleWeight)
	authed.HandleFunc("/weight/history", s.handleWeightHistory)

	authed.HandleFunc("/meals", s.handleMeals)
	authed.HandleFunc("/grocery", s.handleGrocery)
	authed.HandleFunc("/grocery/from-meals", s.handleGroceryFromMeals)

	authed.HandleFunc("/birthdays", s.handleBirthdays)
	authed.HandleFunc("/birthdays/upcoming", s.handleBirthdaysUpcoming)

	authed.HandleFunc("/appointments", s.handleAppointments)

	authed.HandleFunc("/assistant/chat", s.handleAssistantChat)
	authed.HandleFunc("/assistant/mealplan", s.handleAssistantMealPlan)

	api.Handle("/", s.authMiddleware(authed))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))

	return s.loggingMiddleware(root)
}
