package http

import (
	"context"
	"net/http"

	"github.com/cp-portal/internal/application/account"
	"github.com/cp-portal/internal/application/calendar"
	"github.com/cp-portal/internal/application/chat"
	"github.com/cp-portal/internal/application/info"
	"github.com/cp-portal/internal/application/link"
	"github.com/cp-portal/internal/application/profile"
	"github.com/cp-portal/internal/application/session"
	"github.com/cp-portal/internal/application/verification"
	"github.com/cp-portal/internal/config"
	"github.com/cp-portal/internal/domain"
	"github.com/cp-portal/internal/transport/http/handler"
	appmiddleware "github.com/cp-portal/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router. Background work started
// here stops when ctx is cancelled.
func NewRouter(ctx context.Context, cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.Tokens)

	// 5 requests/second, burst of 10 per client IP.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)
	go func() {
		<-ctx.Done()
		sensitiveRL.Stop()
	}()

	codes := verification.NewCodes(deps.Accounts, cfg.VerificationCodeTTL)
	accountSvc := account.NewService(account.ServiceDeps{
		Accounts: deps.Accounts,
		Codes:    codes,
		Mailer:   deps.Mailer,
		Activity: deps.Activity,
	})
	sessionSvc := session.NewService(session.ServiceDeps{
		Accounts: deps.Accounts,
		Tokens:   deps.Tokens,
	})
	linkSvc := link.NewService(link.ServiceDeps{
		Links:           deps.Links,
		Profiles:        deps.Profiles,
		Activity:        deps.Activity,
		ChallengePrefix: cfg.ChallengePrefix,
	})
	profileSvc := profile.NewService(deps.Accounts, deps.Ratings)
	calendarSvc := calendar.NewService(deps.Events)
	infoSvc := info.NewService(deps.Info)
	chatSvc := chat.NewService(deps.Model, chat.NewRetriever(deps.Objects, cfg.KnowledgeBaseKey))

	healthH := handler.NewHealthHandler(deps.Readiness)
	accountH := handler.NewAccountHandler(accountSvc)
	sessionH := handler.NewSessionHandler(sessionSvc)
	linkH := handler.NewLinkHandler(linkSvc)
	profileH := handler.NewProfileHandler(profileSvc)
	eventH := handler.NewEventHandler(calendarSvc)
	infoH := handler.NewInfoHandler(infoSvc)
	chatH := handler.NewChatHandler(chatSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)
		r.Get("/events", eventH.List)
		r.Get("/info", infoH.List)

		r.Group(func(r chi.Router) {
			r.Use(sensitiveRL.Limit)

			r.Post("/accounts", accountH.Register)
			r.Post("/accounts/confirm", accountH.Confirm)
			r.Post("/accounts/resend", accountH.Resend)
			r.Post("/sessions/login", sessionH.Login)
		})

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/profile", profileH.Get)
			r.Post("/links/codeforces/init", linkH.Initiate)
			r.Post("/links/codeforces/verify", linkH.Verify)
			r.With(sensitiveRL.Limit).Post("/chat", chatH.Chat)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

				r.Post("/accounts/{id}/rating-history", profileH.RecordRatingChange)
				r.Post("/events", eventH.Create)
				r.Post("/info", infoH.Create)
				r.Put("/chat/knowledge", chatH.ReplaceKnowledge)
			})
		})
	})

	return r
}
