package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/rudimedia/site-api/internal/auth"
	"github.com/rudimedia/site-api/internal/metrics"
	"github.com/rudimedia/site-api/internal/middleware"
)

// maxBodyBytes limits all request bodies, sized for image uploads.
const maxBodyBytes = 10 << 20

// logBodyAllowlist names the JSON fields that may appear verbatim in debug
// logs. Everything else (passwords, tokens, visitor messages, post bodies)
// is redacted.
var logBodyAllowlist = []string{
	"id", "username", "is_active", "title", "excerpt", "slug",
	"tags", "published", "author", "name", "email", "status",
	"token_type", "created_at", "updated_at", "level",
}

// NewRouter creates the Chi router with all routes and middleware.
func (s *Server) NewRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(metrics.Middleware)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.allowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.HTTPLogging(s.logger, logBodyAllowlist))
	r.Use(middleware.MaxBodySize(maxBodyBytes))

	// Public endpoints
	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	r.Get("/uploads/{file}", s.handleServeUpload)

	r.Route("/api", func(r chi.Router) {
		r.Get("/blog/posts", s.handleListPosts)
		r.Get("/blog/posts/slug/{slug}", s.handleGetPostBySlug)
		r.Get("/blog/posts/{postID}", s.handleGetPost)

		// The contact form is the one unauthenticated write; rate-limit it.
		r.With(httprate.LimitByIP(5, time.Minute)).
			Post("/contact", s.handleSubmitContact)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", s.handleLogin)

			// Everything else behind the access guard
			r.Group(func(r chi.Router) {
				r.Use(auth.Middleware(s.guard))

				r.Get("/me", s.handleWhoami)
				r.Get("/posts", s.handleListAllPosts)
				r.Post("/posts", s.handleCreatePost)
				r.Put("/posts/{postID}", s.handleUpdatePost)
				r.Delete("/posts/{postID}", s.handleDeletePost)
				r.Get("/contacts", s.handleListContacts)
				r.Post("/uploads", s.handleUpload)
				r.Post("/loglevel", s.handleSetLogLevel)
			})
		})
	})

	return r
}

func (s *Server) allowedOrigins() []string {
	if len(s.corsOrigins) == 0 {
		return []string{"*"}
	}
	return s.corsOrigins
}
