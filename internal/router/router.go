package router

import (
	"github.com/go-chi/chi/v5"
	chi_middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/kanbo-dev/kanbo/internal/middleware"
	"github.com/kanbo-dev/kanbo/internal/middleware/metrics"
	"github.com/kanbo-dev/kanbo/internal/setup"
)

// New wires every route onto a chi router. Read endpoints under /v1 use
// optional auth so anonymous visitors can browse public boards; mutations
// resolve permissions in the service layer, which is why most of them sit
// behind OptionalAuth rather than NeedAuth.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chi_middleware.Recoverer)
	r.Use(chi_middleware.Compress(5))
	r.Use(metrics.Middleware)
	r.Use(mw.SecurityHeaders(deps.Config.Public.SecureCookies))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
			r.Post("/logout", h.Logout)
			r.With(authMw.NeedAuth()).Get("/me", h.Me)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Use(authMw.NeedAuth())
			r.Patch("/", h.UpdateProfile)
			r.Post("/avatar", h.UploadAvatar)
		})
		r.Get("/users/{user}/avatar", h.GetAvatar)

		r.Route("/boards", func(r chi.Router) {
			r.Use(authMw.OptionalAuth())
			r.Get("/", h.GetBoards)
			r.With(authMw.NeedAuth()).Post("/", h.CreateBoard)

			r.Route("/{board}", func(r chi.Router) {
				r.Get("/", h.GetBoard)
				r.Patch("/", h.UpdateBoard)
				r.Delete("/", h.DeleteBoard)

				r.Get("/members", h.GetMembers)
				r.Post("/members", h.AddMember)
				r.Patch("/members/{user}", h.ChangeMemberRole)
				r.Delete("/members/{user}", h.RemoveMember)

				r.Get("/labels", h.GetLabels)
				r.Post("/labels", h.CreateLabel)

				r.Post("/lists", h.CreateList)
			})
		})

		r.Route("/lists/{list}", func(r chi.Router) {
			r.Use(authMw.OptionalAuth())
			r.Patch("/", h.UpdateList)
			r.Delete("/", h.DeleteList)
			r.Post("/cards", h.CreateCard)
		})

		r.Route("/cards/{card}", func(r chi.Router) {
			r.Use(authMw.OptionalAuth())
			r.Get("/", h.GetCard)
			r.Patch("/", h.UpdateCard)
			r.Delete("/", h.DeleteCard)

			r.Put("/members/{user}", h.AssignCardMember)
			r.Delete("/members/{user}", h.UnassignCardMember)
			r.Put("/labels/{label}", h.AttachLabel)
			r.Delete("/labels/{label}", h.DetachLabel)

			r.Get("/comments", h.GetComments)
			r.Post("/comments", h.CreateComment)

			r.Post("/checklists", h.CreateChecklist)
		})

		r.With(authMw.OptionalAuth()).Delete("/comments/{comment}", h.DeleteComment)

		r.Route("/checklists/{checklist}", func(r chi.Router) {
			r.Use(authMw.OptionalAuth())
			r.Patch("/", h.UpdateChecklist)
			r.Delete("/", h.DeleteChecklist)
			r.Post("/items", h.CreateChecklistItem)
		})

		r.Route("/items/{item}", func(r chi.Router) {
			r.Use(authMw.OptionalAuth())
			r.Patch("/", h.UpdateChecklistItem)
			r.Delete("/", h.DeleteChecklistItem)
		})

		r.Route("/labels/{label}", func(r chi.Router) {
			r.Use(authMw.OptionalAuth())
			r.Patch("/", h.UpdateLabel)
			r.Delete("/", h.DeleteLabel)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authMw.AdminOnly())
			r.Get("/users", h.GetUsers)
			r.Patch("/users/{user}/role", h.SetGlobalRole)
			r.Delete("/users/{user}", h.DeleteUser)
		})
	})

	return r
}
