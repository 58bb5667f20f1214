package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/prasantparajuli/climate-solutions/internal/auth"
	"github.com/prasantparajuli/climate-solutions/internal/config"
	"github.com/prasantparajuli/climate-solutions/internal/database"
	"github.com/prasantparajuli/climate-solutions/internal/handler"
	"github.com/prasantparajuli/climate-solutions/internal/middleware"
	"github.com/prasantparajuli/climate-solutions/internal/queue"
	"github.com/prasantparajuli/climate-solutions/internal/repository"
	"github.com/prasantparajuli/climate-solutions/internal/router"
	"github.com/prasantparajuli/climate-solutions/internal/view"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("credential store initialization failed: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	projects := repository.NewProjectRepo(db)
	authSvc := auth.NewService(users, cfg.BcryptCost)
	binder := auth.NewBinder(config.LoadSessionConfig())

	renderer, err := view.NewRenderer()
	if err != nil {
		log.Fatalf("parse templates: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.HTTPErrorHandler = handler.HTTPErrorHandler
	e.Use(echomw.Logger(), echomw.Recover())
	e.Use(middleware.LoadSession(binder))
	e.StaticFS("/public", view.StaticFS())

	// nil Redis client disables the limiter rather than failing startup.
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), config.NewRedisClient())

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(authSvc, binder), limiter)
	router.RegisterProjects(e, handler.NewProjectHandler(projects))

	go queue.StartLoginConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
