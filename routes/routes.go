package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Jeff92400/Carambole-tournament-management-sub001/docs" // Registers the OpenAPI document
	"github.com/Jeff92400/Carambole-tournament-management-sub001/handlers"
	"github.com/Jeff92400/Carambole-tournament-management-sub001/middleware"
)

type Options struct {
	JWTSecret          []byte
	CORSAllowedOrigins []string
	MetricsHandler     http.Handler
}

func SetupRoutes(
	router chi.Router,
	opts Options,
	tournamentHandler *handlers.TournamentHandler,
	progressionHandler *handlers.ProgressionHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/health", handlers.HealthHandler)
	if opts.MetricsHandler != nil {
		router.Handle("/metrics", opts.MetricsHandler)
	}
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Get("/poules/layout", handlers.PouleLayoutHandler)

	authenticate := middleware.Authenticate(opts.JWTSecret)
	organizers := middleware.Authorize(middleware.RoleOrganizer, middleware.RoleAdmin)

	router.Route("/tournaments", func(r chi.Router) {
		// Public read routes
		r.Get("/{tournamentID}", tournamentHandler.GetByIDHandler)
		r.Get("/{tournamentID}/state", progressionHandler.GetStateHandler)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Get("/", tournamentHandler.ListHandler)

			r.Group(func(r chi.Router) {
				r.Use(organizers)

				r.Post("/", tournamentHandler.CreateHandler)
				r.Put("/{tournamentID}/poule-results", progressionHandler.ReplacePouleResultsHandler)
				r.Post("/{tournamentID}/generate", progressionHandler.GenerateHandler)
				r.Post("/{tournamentID}/matches/{matchID}/result", progressionHandler.RecordMatchResultHandler)
				r.Post("/{tournamentID}/finalize", progressionHandler.FinalizeHandler)
			})
		})
	})
}
