package handlers

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/vaughan-dsouza/postboard/internal/auth"
	mw "github.com/vaughan-dsouza/postboard/internal/middleware"
)

// Routes assembles the full route map: the JSON API under /api and the
// browser views at the root. Both sit behind one resolve pass; only the
// gate middleware differs per surface.
func Routes(h *Handler, rv *auth.Resolver) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(mw.Resolve(rv))

	// ---- JSON API ----
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", h.Auth.SignUp)
		r.Post("/auth/login", h.Auth.Login)
		r.Post("/auth/logout", h.Auth.Logout)

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAuthAPI)

			r.Get("/auth/me", h.Auth.Me)
			r.Get("/posts", h.Posts.List)
			r.Post("/posts", h.Posts.Create)
			r.Get("/posts/{id}", h.Posts.GetByID)
			r.Put("/posts/{id}", h.Posts.Update)

			r.Group(func(r chi.Router) {
				r.Use(mw.RequireAdminAPI)

				r.Get("/admin/posts", h.Posts.List)
				r.Delete("/posts/{id}", h.Posts.Delete)
				r.Delete("/admin/posts", h.Posts.DeleteAll)
			})
		})
	})

	// ---- Browser views ----
	r.Get("/", h.Views.Home)
	r.Get("/signup", h.Views.SignUpForm)
	r.Post("/signup", h.Views.SignUp)
	r.Get("/login", h.Views.LoginForm)
	r.Post("/login", h.Views.Login)
	r.Post("/logout", h.Views.Logout)

	r.Group(func(r chi.Router) {
		r.Use(mw.RequireAuthView)

		r.Get("/dashboard", h.Views.Dashboard)
		r.Get("/create-post", h.Views.CreatePostForm)
		r.Post("/posts", h.Views.CreatePost)
		r.Get("/edit-post/{id}", h.Views.EditPostForm)
		r.Post("/posts/{id}", h.Views.UpdatePost)

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAdminView)

			r.Get("/admin", h.Views.Admin)
			r.Post("/posts/{id}/delete", h.Views.DeletePost)
			r.Post("/admin/posts/delete", h.Views.DeleteAllPosts)
		})
	})

	r.NotFound(h.Views.NotFound)

	return r
}
