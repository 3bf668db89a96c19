package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/benbeisheim/duckboard-backend/internal/config"
	"github.com/benbeisheim/duckboard-backend/internal/controller"
	"github.com/benbeisheim/duckboard-backend/internal/middleware"
	"github.com/benbeisheim/duckboard-backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.ClientOrigin,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Client-ID",
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		AllowCredentials: true,
	}))
	app.Use(middleware.RequestLogger(log.Logger))

	// Initialize services
	sessions := service.NewSessionManager(service.Defaults{
		FEN:           cfg.DefaultFEN,
		Duration:      cfg.AnimationDuration,
		FrameInterval: cfg.FrameInterval,
		Logger:        log.Logger,
	})
	boardService := service.NewBoardService(sessions)

	// Initialize controllers
	boardController := controller.NewBoardController(boardService, log.Logger)
	wsController := controller.NewWebSocketController(boardService, log.Logger)

	// Set up WebSocket routes
	app.Use("/ws/*", middleware.EnsureClientID())
	app.Get("/ws/board/:boardId", middleware.WebSocketUpgrade(), websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         []string{cfg.ClientOrigin},
	}))

	// Set up REST routes
	api := app.Group("/api", middleware.EnsureClientID())
	boardController.Register(api.Group("/board"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Msg("starting duckboard server")
		return app.Listen(":" + cfg.Port)
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		sessions.CloseAll()
		return app.ShutdownWithTimeout(5 * time.Second)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
