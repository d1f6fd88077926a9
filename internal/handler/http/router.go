package http

import (
	"log/slog"
	"os"

	"github.com/gajihub/hr-backend-go/internal/handler/http/middleware"
	"github.com/gajihub/hr-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	verifier jwt.Verifier,
	timecardHandler TimecardHandler,
	leaveHandler LeaveHandler,
	claimHandler ClaimHandler,
	advanceHandler AdvanceHandler,
	payrollHandler PayrollHandler,
	holidayHandler HolidayHandler,
	notificationHandler NotificationHandler,
	companyHandler CompanyHandler,
	scheduleHandler ScheduleHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "gajihub-core"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
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
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Every surface requires an authenticated employee token.
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(verifier.JWTAuth()))
			r.Use(middleware.AuthRequired(verifier.JWTAuth()))

			r.Route("/company", func(r chi.Router) {
				r.Get("/", companyHandler.Get)
				r.Get("/leave-types", companyHandler.ListLeaveTypes)
				r.Get("/claim-categories", companyHandler.ListClaimCategories)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/seed-defaults", companyHandler.SeedDefaults)
				})
			})

			r.Route("/timecards", func(r chi.Router) {
				r.Post("/clock", timecardHandler.Clock)
				r.Get("/today", timecardHandler.Today)
				r.Get("/history", timecardHandler.History)

				r.Group(func(r chi.Router) {
					r.Use(middleware.ApproverOnly)
					r.Get("/pending", timecardHandler.TeamPending)
					r.Post("/{id}/approve", timecardHandler.Approve)
					r.Post("/{id}/reject", timecardHandler.Reject)
					r.Post("/{id}/override", timecardHandler.Override)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", leaveHandler.Submit)
				r.Get("/my", leaveHandler.MyRequests)
				r.Post("/{id}/cancel", leaveHandler.Cancel)
				r.Get("/balances/my", leaveHandler.MyBalances)

				r.Group(func(r chi.Router) {
					r.Use(middleware.ApproverOnly)
					r.Get("/pending", leaveHandler.TeamPending)
					r.Post("/{id}/approve", leaveHandler.Approve)
					r.Post("/{id}/reject", leaveHandler.Reject)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/balances/open-year", leaveHandler.OpenYear)
				})
			})

			r.Route("/claims", func(r chi.Router) {
				r.Post("/", claimHandler.Submit)
				r.Get("/my", claimHandler.MyClaims)
				r.Delete("/{id}", claimHandler.Delete)

				r.Group(func(r chi.Router) {
					r.Use(middleware.ApproverOnly)
					r.Get("/pending", claimHandler.TeamPending)
					r.Post("/{id}/approve", claimHandler.Approve)
					r.Post("/{id}/reject", claimHandler.Reject)
					r.Post("/{id}/revert", claimHandler.Revert)
					r.Post("/bulk-approve", claimHandler.BulkApprove)
				})
			})

			r.Route("/advances", func(r chi.Router) {
				r.Get("/", advanceHandler.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", advanceHandler.Record)
					r.Post("/{id}/cancel", advanceHandler.Cancel)
					r.Get("/deductions", advanceHandler.MonthlyDeduction)
				})
			})

			r.Route("/payroll-items", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/", payrollHandler.Link)
				r.Get("/", payrollHandler.ListMonth)
				r.Get("/{id}", payrollHandler.Get)
				r.Delete("/{id}", payrollHandler.Unlink)
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", holidayHandler.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", holidayHandler.Create)
					r.Delete("/{id}", holidayHandler.Delete)
				})
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Get("/my", scheduleHandler.MyShifts)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.ListMine)
				r.Post("/{id}/read", notificationHandler.MarkRead)
				r.Post("/read-all", notificationHandler.MarkAllRead)
				r.Get("/stream", notificationHandler.Stream)
			})
		})
	})
	return r
}
