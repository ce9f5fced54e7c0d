package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rigelk42/fast-api/internal/config"
	"github.com/rigelk42/fast-api/internal/handler"
	"github.com/rigelk42/fast-api/internal/middleware"
	"github.com/rigelk42/fast-api/internal/model"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	Todo    *handler.TodoHandler
	Admin   *handler.AdminHandler
	Book    *handler.BookHandler
	Catalog *handler.CatalogHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/register", h.Auth.Register)
			auth.Post("/login", h.Auth.Login)
			auth.With(authMiddleware.RequireAuth).Get("/me", h.Auth.Me)
		})

		api.With(authMiddleware.RequireAuth).Put("/users/password", h.Auth.ChangePassword)

		api.Route("/todos", func(todos chi.Router) {
			todos.Use(authMiddleware.RequireAuth)
			todos.Get("/", h.Todo.List)
			todos.Post("/", h.Todo.Create)
			todos.Get("/{id}", h.Todo.Get)
			todos.Put("/{id}", h.Todo.Update)
			todos.Delete("/{id}", h.Todo.Delete)
		})

		api.Route("/admin", func(admin chi.Router) {
			admin.Use(authMiddleware.RequireAuth, authMiddleware.RequireRole(model.RoleAdmin))
			admin.Get("/todo", h.Admin.ListAll)
			admin.Delete("/todo/{id}", h.Admin.Delete)
		})

		api.Route("/books", func(books chi.Router) {
			books.Get("/", h.Book.List)
			books.Get("/published", h.Book.Published)
			books.Post("/", h.Book.Create)
			books.Get("/{id}", h.Book.Get)
			books.Put("/{id}", h.Book.Update)
			books.Delete("/{id}", h.Book.Delete)
		})

		api.Route("/catalog", func(catalog chi.Router) {
			catalog.Get("/", h.Catalog.List)
			catalog.Post("/", h.Catalog.Create)
			catalog.Get("/by-author/{author}", h.Catalog.ByAuthor)
			catalog.Get("/{title}", h.Catalog.Get)
			catalog.Put("/{title}", h.Catalog.Update)
			catalog.Delete("/{title}", h.Catalog.Delete)
		})
	})

	return r
}
