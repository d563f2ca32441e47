// Command server is the Rowdy Cup scoreboard API: tournament, round, match,
// and roster management for organizers, live match-play scores for
// spectators.
package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/rowdycup/scoreboard/internal/config"
	"github.com/rowdycup/scoreboard/internal/database"
	"github.com/rowdycup/scoreboard/internal/handlers"
	"github.com/rowdycup/scoreboard/internal/middleware"
	"github.com/rowdycup/scoreboard/internal/scoring"
	"github.com/rowdycup/scoreboard/internal/store"
	"github.com/rowdycup/scoreboard/internal/websocket"
)

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET is required")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// The scoring service runs the whole recompute pipeline; handlers never
	// touch derived fields directly.
	svc := scoring.NewService(store.NewGorm(db))

	// Hub fans score changes out to spectators watching a tournament.
	hub := websocket.NewHub()
	go hub.Run()

	app := fiber.New(fiber.Config{
		AppName: "Rowdy Cup Scoreboard",
	})
	app.Use(logger.New())
	app.Use(cors.New())

	// Public routes: health, login, and the spectator read surface.
	app.Get("/health", handlers.HealthCheck)
	app.Post("/api/login", handlers.Login(cfg, db))

	app.Get("/api/v1/tournaments/active", handlers.GetActiveTournament(db))
	app.Get("/api/v1/tournaments/history", handlers.ListTournamentHistory(db))
	app.Get("/api/v1/tournaments/:id/standings", handlers.GetStandings(db))
	app.Get("/api/v1/rounds", handlers.ListRounds(db))
	app.Get("/api/v1/matches", handlers.ListMatches(db))
	app.Get("/api/v1/matches/:id", handlers.GetMatch(db))
	app.Get("/api/v1/players", handlers.ListPlayers(db))
	app.Get("/api/v1/players/career-stats", handlers.GetCareerStats(db))
	app.Get("/api/v1/courses", handlers.ListCourses(db))

	// Live-update channel for spectators.
	app.Get("/api/ws/:tournamentId", websocket.Upgrade(), websocket.Handler(hub))

	// Authenticated routes.
	authed := app.Group("/api", middleware.Auth(cfg, db))
	authed.Post("/change-password", handlers.ChangePassword(db))

	// Score entry is open to any logged-in user (scorers in the field).
	authed.Post("/v1/matches/:id/scores", handlers.SubmitHoleScore(db, svc, hub))

	// Everything that mutates structure is admin-only.
	admin := authed.Group("/v1", middleware.RequireAdmin())
	admin.Post("/tournaments", handlers.CreateTournament(db))
	admin.Put("/tournaments/:id/activate", handlers.SetActiveTournament(db))
	admin.Put("/tournaments/:id/conclude", handlers.ConcludeTournament(db))
	admin.Post("/rounds", handlers.CreateRound(db))
	admin.Put("/rounds/:id", handlers.UpdateRound(db))
	admin.Delete("/rounds/:id", handlers.DeleteRound(db))
	admin.Post("/matches", handlers.CreateMatch(db))
	admin.Put("/matches/:id/result", handlers.OverrideMatchResult(db, svc, hub))
	admin.Put("/matches/:id/unlock", handlers.UnlockMatch(db, svc, hub))
	admin.Post("/players", handlers.CreatePlayer(db))
	admin.Put("/players/:id", handlers.UpdatePlayer(db))
	admin.Post("/courses", handlers.CreateCourse(db))
	admin.Post("/users", handlers.CreateUser(db))
	admin.Post("/admin/reconcile", handlers.Reconcile(svc))

	log.Printf("Starting server on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
