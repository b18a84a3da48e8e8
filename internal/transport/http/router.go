package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/go-verify-api/internal/config"
	"github.com/go-verify-api/internal/transport/http/handler"
	appmiddleware "github.com/go-verify-api/internal/transport/http/middleware"
)

// Deps holds everything the router needs.
type Deps struct {
	Verifications handler.VerificationService
	TokenVerifier appmiddleware.TokenVerifier
	Gatherer      prometheus.Gatherer
	HealthChecks  map[string]handler.HealthCheck
	Logger        *slog.Logger
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10 on issuance, which triggers outbound email/SMS.
	issueRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	healthH := handler.NewHealthHandler(deps.HealthChecks)
	verifyH := handler.NewVerificationHandler(deps.Verifications, deps.Logger)

	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health-check/{action}", healthH.Ping)

		r.With(issueRL.Limit).Post("/verifications/email", verifyH.IssueEmail)
		r.With(issueRL.Limit).Post("/verifications/mobile", verifyH.IssueMobile)

		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.Auth(deps.TokenVerifier))

			r.Post("/verifications/email/validate", verifyH.ValidateEmail)
			r.Post("/verifications/mobile/validate", verifyH.ValidateMobile)
			r.Get("/verify-email", verifyH.VerifyEmailLink)
		})
	})

	return r
}
