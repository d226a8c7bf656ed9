package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Dosada05/group-stage/handlers"
	"github.com/Dosada05/group-stage/middleware"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Team       *handlers.TeamHandler
	Match      *handlers.MatchHandler
	Tournament *handlers.TournamentHandler
	WebSocket  *handlers.WebSocketHandler
}

// SetupRoutes mounts the public read API and the organizer-only mutations on router.
func SetupRoutes(router chi.Router, h Handlers, jwtSecret string, allowedOrigins []string) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	organizerOnly := func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))
		r.Use(middleware.Authorize(middleware.RoleOrganizer))
	}

	router.Post("/auth/login", h.Auth.Login)
	router.Get("/ws", h.WebSocket.ServeWs)

	router.Route("/teams", func(r chi.Router) {
		r.Get("/", h.Team.ListTeams)
		r.Get("/{teamName}/players", h.Team.ListPlayers)

		r.Group(func(r chi.Router) {
			organizerOnly(r)
			r.Post("/", h.Team.CreateTeam)
			r.Delete("/{teamName}", h.Team.DeleteTeam)
			r.Post("/{teamName}/players", h.Team.AddPlayer)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/", h.Match.ListMatches)
		r.Get("/{matchID}", h.Match.GetMatch)

		r.Group(func(r chi.Router) {
			organizerOnly(r)
			r.Put("/{matchID}/score", h.Match.SetScore)
			r.Post("/{matchID}/goals", h.Match.AddGoal)
		})
	})

	router.Get("/standings", h.Tournament.Standings)
	router.Get("/top-scorers", h.Tournament.TopScorers)

	router.Group(func(r chi.Router) {
		organizerOnly(r)
		r.Post("/tournament", h.Tournament.CreateTournament)
		r.Post("/reports", h.Tournament.ExportReport)
	})
}
