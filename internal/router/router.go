package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/cartacaixa/filmlog/internal/config"
	"github.com/cartacaixa/filmlog/internal/handler"
	"github.com/cartacaixa/filmlog/internal/middleware"
)

// Handlers groups every handler the router wires up.
type Handlers struct {
	Auth    *handler.AuthHandler
	Films   *handler.FilmHandler
	Actors  *handler.ActorHandler
	Oscars  *handler.OscarHandler
	Install *handler.InstallHandler
}

// Register wires all routes onto the Echo instance.  The access policy is
// uniform across resources: reads require a valid token, mutations
// additionally require the admin flag.  The Redis-backed rate limiter covers
// everything under /api; the response cache covers the token-free read
// surface through per-route wrapping of listing handlers.
func Register(e *echo.Echo, h Handlers, cfg config.Config, rdb *redis.Client) {
	// Unauthenticated surface.
	e.GET("/healthz", handler.Health)
	e.GET("/install", h.Install.Install)

	api := e.Group("/api", middleware.RateLimit(config.LoadRateLimitConfig(), rdb))
	api.GET("", handler.Index)

	// Auth endpoints.  Login, registration and token verification are open;
	// the rest sit behind the token gate, with admin-only user management.
	auth := api.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/registro", h.Auth.Registro)
	auth.POST("/verificaToken", h.Auth.VerificaToken)

	token := middleware.RequireToken(cfg.JWTSecret)
	admin := middleware.RequireAdmin()
	cache := middleware.ResponseCache(config.LoadCacheConfig(), rdb)

	auth.POST("/criaAdm", h.Auth.CriaAdm, token, admin)
	auth.DELETE("/deletaUser/:id", h.Auth.DeletaUser, token, admin)
	auth.PUT("/alteraDados/:id", h.Auth.AlteraDados, token) // self-or-admin, checked in the handler

	// Films.  Reads for any authenticated user, mutations for admins.
	films := api.Group("/films", token)
	films.GET("", h.Films.List, cache)
	films.GET("/melhores", h.Films.Melhores, cache)
	films.GET("/:id", h.Films.Get)
	films.POST("", h.Films.Create, admin)
	films.PUT("/:id", h.Films.Update, admin)
	films.DELETE("/:id", h.Films.Delete, admin)

	// Actors.
	actors := api.Group("/actors", token)
	actors.GET("", h.Actors.List, cache)
	actors.GET("/:id", h.Actors.Get)
	actors.POST("", h.Actors.Create, admin)
	actors.PUT("/:id", h.Actors.Update, admin)
	actors.DELETE("/:id", h.Actors.Delete, admin)
	actors.POST("/:actorId/films/:filmId", h.Actors.LinkFilm, admin)

	// Oscars.
	oscars := api.Group("/oscars", token)
	oscars.GET("", h.Oscars.List, cache)
	oscars.GET("/:id", h.Oscars.Get)
	oscars.POST("", h.Oscars.Create, admin)
	oscars.PUT("/:id", h.Oscars.Update, admin)
	oscars.DELETE("/:id", h.Oscars.Delete, admin)
	oscars.POST("/:oscarId/films/:filmId", h.Oscars.LinkFilm, admin)
	oscars.POST("/:oscarId/actors/:actorId", h.Oscars.LinkActor, admin)
}
