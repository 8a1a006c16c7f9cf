package routes

import (
	"github.com/go-chi/chi/v5"

	"kras-kickers/volunteers/internal/api"
	"kras-kickers/volunteers/internal/middleware"
)

// Verification mail is limited to a burst of 3 and then one every 20 seconds per IP.
const (
	verifyRatePerSecond = 0.05
	verifyBurst         = 3
	limiterTableSize    = 10000
)

// RegisterAPIRoutes registers all API v1 routes and handlers.
// Fine-grained authorization (champion scoping) happens in the services.
func RegisterAPIRoutes(r chi.Router, handlers *api.Handlers, verifyLimiter *middleware.RateLimiter) {

	r.Route("/api/v1", func(v1 chi.Router) {

		// Public
		v1.Get("/opportunities", handlers.ListOpportunities())
		v1.Get("/opportunities/{id}", handlers.GetOpportunity())
		v1.Get("/check", handlers.CheckVolunteer())
		v1.Get("/session", handlers.GetSession())
		v1.Post("/session/logout", handlers.Logout())

		v1.Route("/verify", func(verify chi.Router) {
			verify.With(verifyLimiter.Middleware).Post("/email", handlers.RequestEmailVerification())
			verify.Get("/email/activate", handlers.ActivateEmail())
			verify.With(verifyLimiter.Middleware).Post("/admin", handlers.RequestAdminVerification())
			verify.Get("/admin/activate", handlers.ActivateAdmin())
		})

		// Submission checks the email capability against the submitted address
		v1.Post("/applications", handlers.SubmitApplication())

		// Verified group (admin or champion)
		v1.Group(func(verified chi.Router) {
			verified.Use(middleware.IsVerifiedMiddleware())

			verified.Get("/applications", handlers.ListApplications())
			verified.Get("/applications/{id}", handlers.GetApplication())
			verified.Post("/applications/{id}/status", handlers.TransitionStatus())
			verified.Post("/applications/{id}/notes", handlers.AddNote())
			verified.Get("/opportunities/{id}/applicants", handlers.ListApplicants())

			// Admin-only group
			verified.Group(func(admin chi.Router) {
				admin.Use(middleware.IsAdminMiddleware())

				admin.Get("/opportunities/closed", handlers.ListClosedOpportunities())
				admin.Post("/opportunities", handlers.CreateOpportunity())
				admin.Put("/opportunities/{id}", handlers.UpdateOpportunity())
				admin.Delete("/opportunities/{id}", handlers.DeleteOpportunity())
				admin.Post("/opportunities/{id}/close", handlers.CloseOpportunity())
				admin.Post("/opportunities/{id}/reopen", handlers.ReopenOpportunity())
				admin.Post("/opportunities/{id}/image", handlers.UploadOpportunityImage())

				admin.Get("/opportunities/{id}/champions", handlers.ListChampions())
				admin.Post("/opportunities/{id}/champions", handlers.AssignChampion())
				admin.Delete("/opportunities/{id}/champions/{appId}", handlers.UnassignChampion())
			})
		})
	})
}
