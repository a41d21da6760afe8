package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/cartacaixa/filmlog/internal/config"
	"github.com/cartacaixa/filmlog/internal/database"
	"github.com/cartacaixa/filmlog/internal/handler"
	"github.com/cartacaixa/filmlog/internal/queue"
	"github.com/cartacaixa/filmlog/internal/repository"
	"github.com/cartacaixa/filmlog/internal/router"
)

func main() {
	// Load .env when present; in production the variables come from the
	// environment directly and a missing file is not an error.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database open failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema bootstrap failed: %v", err)
	}
	cancel()

	// Optional Redis tier; nil disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable: response cache and rate limiting disabled")
	}

	// Background consumer writes association events to logs/catalog.log.
	go func() {
		if err := queue.StartLinkConsumer(); err != nil {
			log.Printf("link consumer stopped: %v", err)
		}
	}()

	films := repository.NewFilmRepo(db)
	actors := repository.NewActorRepo(db)
	oscars := repository.NewOscarRepo(db)
	users := repository.NewUserRepo(db)

	e := echo.New()
	router.Register(e, router.Handlers{
		Auth:    handler.NewAuthHandler(cfg, users),
		Films:   handler.NewFilmHandler(films),
		Actors:  handler.NewActorHandler(actors),
		Oscars:  handler.NewOscarHandler(oscars),
		Install: handler.NewInstallHandler(cfg, films, actors, oscars, users),
	}, cfg, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
