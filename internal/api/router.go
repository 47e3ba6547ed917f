package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/meet89coder/AthleteAnalyticsBackend/internal/analytics"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/api/handlers"
	apimw "github.com/meet89coder/AthleteAnalyticsBackend/internal/api/middleware"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/audit"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/auth"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/config"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/models"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/queue"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/team"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/tenant"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/user"
)

// Deps carries everything the router wires together.
type Deps struct {
	Config    *config.Config
	Pool      *pgxpool.Pool
	Redis     *redis.Client
	Codec     *auth.TokenCodec
	Users     *user.Service
	Tenants   *tenant.Service
	Teams     *team.Service
	Resolver  *team.PermissionResolver
	Analytics *analytics.Service
	Audit     *audit.Service
	Jobs      *queue.Client
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(apimw.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimw.CORS)
	r.Use(apimw.Metrics)

	limiter := apimw.NewRateLimiter(d.Config.RateLimit.RPS, d.Config.RateLimit.Burst)
	loginLimiter := apimw.NewRateLimiter(d.Config.RateLimit.AdminRPS, d.Config.RateLimit.AdminBurst)
	r.Use(limiter.Handler)

	authMW := auth.NewMiddleware(d.Codec)
	adminOnly := auth.RequireRoles(models.RoleAdmin)

	authHandler := handlers.NewAuthHandler(d.Users, d.Codec, d.Audit)
	userHandler := handlers.NewUserHandler(d.Users, d.Teams, d.Audit)
	tenantHandler := handlers.NewTenantHandler(d.Tenants, d.Audit)
	teamHandler := handlers.NewTeamHandler(d.Teams, d.Tenants, d.Resolver, d.Audit, d.Jobs)
	analyticsHandler := handlers.NewAnalyticsHandler(d.Analytics, d.Teams, d.Tenants)
	adminHandler := handlers.NewAdminHandler(d.Audit)
	healthHandler := handlers.NewHealthHandler(d.Pool, d.Redis)

	r.Get("/healthz", healthHandler.Liveness)
	r.Get("/readyz", healthHandler.Readiness)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(loginLimiter.Handler).Post("/login", authHandler.Login)
			r.Group(func(r chi.Router) {
				r.Use(authMW.Authenticate)
				r.Post("/logout", authHandler.Logout)
				r.Get("/me", authHandler.Me)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(authMW.Authenticate)
			r.With(adminOnly).Post("/", userHandler.Create)
			r.With(adminOnly).Get("/", userHandler.List)
			r.Get("/by-tenant-unique-id/{tuid}", userHandler.GetByTenantUID)
			r.Route("/{id}", func(r chi.Router) {
				r.With(auth.RequireOwnershipOrAdmin).Get("/", userHandler.Get)
				r.With(auth.RequireOwnershipOrAdmin).Put("/", userHandler.Update)
				r.With(auth.RequireOwnershipOrAdmin).Patch("/password", userHandler.ChangePassword)
				r.With(auth.RequireOwnershipOrAdmin).Get("/teams", userHandler.Teams)
				r.With(adminOnly).Patch("/role", userHandler.UpdateRole)
				r.With(adminOnly).Delete("/", userHandler.Delete)
			})
		})

		r.Route("/tenants", func(r chi.Router) {
			r.Use(authMW.Authenticate)
			r.Get("/", tenantHandler.List)
			r.Get("/{id}", tenantHandler.Get)
			r.With(adminOnly).Post("/", tenantHandler.Create)
			r.With(adminOnly).Put("/{id}", tenantHandler.Update)
			r.With(adminOnly).Patch("/{id}/status", tenantHandler.UpdateStatus)
			r.With(adminOnly).Delete("/{id}", tenantHandler.Delete)
		})

		r.Route("/teams", func(r chi.Router) {
			r.Use(authMW.Authenticate)
			r.Get("/", teamHandler.List)
			r.Get("/search", teamHandler.List)
			r.Post("/", teamHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", teamHandler.Get)
				r.Get("/complete", teamHandler.Complete)
				r.Put("/", teamHandler.Update)
				r.With(adminOnly).Delete("/", teamHandler.Delete)
				r.Get("/dashboard", teamHandler.Dashboard)

				r.Route("/members", func(r chi.Router) {
					r.Get("/", teamHandler.ListMembers)
					r.Post("/", teamHandler.AddMembers)
					r.Patch("/{userID}/role", teamHandler.UpdateMemberRole)
					r.Delete("/{userID}", teamHandler.RemoveMember)
				})

				r.Route("/games", func(r chi.Router) {
					r.Get("/", teamHandler.ListGames)
					r.Post("/", teamHandler.AddGame)
					r.Put("/{gameID}", teamHandler.UpdateGame)
					r.Delete("/{gameID}", teamHandler.DeleteGame)
				})

				r.Route("/activities", func(r chi.Router) {
					r.Get("/", teamHandler.ListActivities)
					r.Post("/", teamHandler.AddActivity)
					r.Delete("/{activityID}", teamHandler.DeleteActivity)
				})

				r.Route("/schedules", func(r chi.Router) {
					r.Get("/", teamHandler.ListSchedules)
					r.Post("/", teamHandler.AddSchedule)
					r.Put("/{scheduleID}", teamHandler.UpdateSchedule)
					r.Delete("/{scheduleID}", teamHandler.DeleteSchedule)
				})
			})
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Use(authMW.Authenticate)
			r.Get("/users/{userID}/teams", analyticsHandler.UserTeams)
			r.With(adminOnly).Get("/tenants/{tenantID}/teams/analytics", analyticsHandler.TenantTeamsAnalytics)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authMW.Authenticate)
			r.Use(adminOnly)
			r.Get("/audit", adminHandler.AuditLogs)
		})
	})

	return r
}
