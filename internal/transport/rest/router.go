package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/ulasan/company-review/internal/application"
	"github.com/ulasan/company-review/internal/auth"
	"github.com/ulasan/company-review/internal/claim"
	"github.com/ulasan/company-review/internal/company"
	"github.com/ulasan/company-review/internal/companytype"
	"github.com/ulasan/company-review/internal/job"
	"github.com/ulasan/company-review/internal/review"
	"github.com/ulasan/company-review/internal/transport/middleware"
	"github.com/ulasan/company-review/internal/transport/swagger"
	"github.com/ulasan/company-review/internal/user"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth        *auth.Handler
	Resolver    *auth.Resolver
	User        *user.Handler
	Company     *company.Handler
	CompanyType *companytype.Handler
	Job         *job.Handler
	Review      *review.Handler
	Application *application.Handler
	Claim       *claim.Handler
}

// RegisterAllRoutes wires the full API surface under /api/v1, plus the
// swagger UI and the static uploads route.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, uploadsDir string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.TraceContext)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	// Uploaded files (resumes, evidence, company images).
	router.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", h.Auth.Register)
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Public directory surface.
		r.Get("/companies", h.Company.ListCompanies)
		r.Get("/companies/{id}", h.Company.GetCompany)
		r.Get("/companies/{id}/full", h.Company.GetFullProfile)
		r.Get("/companies/{companyId}/jobs", h.Job.ListByCompany)
		r.Get("/jobs/{id}", h.Job.GetJob)
		r.Get("/types", h.CompanyType.GetTypes)
		r.Get("/reviews", h.Review.ListRecent)
		r.Get("/reviews/by-company/{companyId}", h.Review.ListByCompany)

		// Authenticated surface.
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/users/me", h.User.Me)
			pr.Get("/users/dashboard", h.User.Dashboard)
			pr.Get("/users/claims", h.Claim.MyClaims)

			pr.Get("/reviews/my", h.Review.ListMine)
			pr.Post("/reviews", h.Review.CreateReview)
			pr.Put("/reviews/{id}", h.Review.UpdateReview)
			pr.Delete("/reviews/{id}", h.Review.DeleteReview)

			pr.Post("/jobs/{id}/apply", h.Application.Apply)
			pr.Post("/companies/{id}/claim", h.Claim.Submit)

			// Ownership-gated hiring surface.
			pr.Group(func(or chi.Router) {
				or.Use(auth.RequireOwnerOrAdmin(h.Resolver, auth.ResourceCompany, "companyId"))
				or.Post("/companies/{companyId}/jobs", h.Job.CreateJob)
			})
			pr.Group(func(or chi.Router) {
				or.Use(auth.RequireOwnerOrAdmin(h.Resolver, auth.ResourceCompany, "id"))
				or.Put("/companies/{id}", h.Company.UpdateCompany)
			})
			pr.Group(func(or chi.Router) {
				or.Use(auth.RequireOwnerOrAdmin(h.Resolver, auth.ResourceJob, "id"))
				or.Put("/jobs/{id}", h.Job.UpdateJob)
				or.Delete("/jobs/{id}", h.Job.DeleteJob)
			})
			pr.Group(func(or chi.Router) {
				or.Use(auth.RequireOwnerOrAdmin(h.Resolver, auth.ResourceJob, "jobId"))
				or.Get("/jobs/{jobId}/applications", h.Application.ListForJob)
			})
			pr.Group(func(or chi.Router) {
				or.Use(auth.RequireOwnerOrAdmin(h.Resolver, auth.ResourceApplication, "id"))
				or.Get("/applications/{id}", h.Application.GetApplication)
				or.Put("/applications/{id}/review", h.Application.Review)
			})

			// Admin surface.
			pr.Group(func(ar chi.Router) {
				ar.Use(auth.RequireAdmin(h.Resolver))

				ar.Post("/companies", h.Company.CreateCompany)
				ar.Post("/companies/upload", h.Company.UploadImage)
				ar.Delete("/companies/{id}", h.Company.DeleteCompany)

				ar.Post("/types", h.CompanyType.CreateType)
				ar.Delete("/types/{id}", h.CompanyType.DeleteType)

				ar.Get("/roles", h.User.ListRoles)
				ar.Get("/roles/{id}", h.User.GetRole)
				ar.Post("/roles", h.User.CreateRole)
				ar.Put("/roles/{id}", h.User.UpdateRole)
				ar.Delete("/roles/{id}", h.User.DeleteRole)

				ar.Put("/users/{id}/role", h.User.AssignRole)

				ar.Route("/admin", func(adm chi.Router) {
					adm.Get("/users", h.User.ListUsers)
					adm.Get("/companies", h.Company.ListCompaniesWithStats)

					adm.Get("/reviews", h.Review.AdminList)
					adm.Put("/reviews/{id}", h.Review.AdminUpdate)
					adm.Delete("/reviews/{id}", h.Review.AdminDelete)
					adm.Put("/reviews/{id}/approve", h.Review.SetApproval)

					adm.Get("/company-claims", h.Claim.ListClaims)
					adm.Put("/company-claims/{id}/review", h.Claim.Review)
				})
			})
		})
	})
}
