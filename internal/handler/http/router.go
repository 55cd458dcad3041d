package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/peopleops/hrms-backend-go/internal/config"
	"github.com/peopleops/hrms-backend-go/internal/handler/http/middleware"
	"github.com/peopleops/hrms-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	payrollHandler PayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", attendanceHandler.ClockIn)
				r.Post("/clock-out", attendanceHandler.ClockOut)
				r.Get("/", attendanceHandler.List)
				r.Get("/summary/{employeeID}", attendanceHandler.Summary)

				// Record correction, admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Put("/{id}", attendanceHandler.Update)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", leaveHandler.Apply)
				r.Get("/", leaveHandler.List)
				r.Get("/balance", leaveHandler.Balance)
				r.Get("/{id}", leaveHandler.Get)
				r.Post("/{id}/cancel", leaveHandler.Cancel)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireLeaveApprover)
					r.Patch("/{id}/decision", leaveHandler.Decide)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/", payrollHandler.List)
				r.Get("/{id}", payrollHandler.Get)
				r.Get("/{id}/payslip", payrollHandler.Payslip)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePayrollProcessor)
					r.Post("/", payrollHandler.Process)
					r.Patch("/{id}/status", payrollHandler.UpdateStatus)
					r.Get("/summary", payrollHandler.Summary)
				})
			})
		})
	})
	return r
}
