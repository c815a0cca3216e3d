package api

import (
	"net/http"
	"time"
	"wastetrack/internal/api/handler"
	"wastetrack/internal/api/middleware"
	"wastetrack/internal/app/service"
	"wastetrack/internal/session"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(
	authService *service.AuthService,
	requestService *service.RequestService,
	sessions session.Store,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
	}))

	// Session cookie resolution for every request; guards sit on the
	// protected route groups.
	r.Use(middleware.SessionAuthenticator(sessions))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(apiRouter chi.Router) {
		authHandler := handler.NewAuthHandler(authService)
		authHandler.RegisterRoutes(apiRouter)

		requestHandler := handler.NewRequestHandler(requestService)
		requestHandler.RegisterRoutes(apiRouter)
	})

	return r
}
