package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/benbeisheim/legalmoves-backend/internal/config"
	"github.com/benbeisheim/legalmoves-backend/internal/controller"
	"github.com/benbeisheim/legalmoves-backend/internal/middleware"
	"github.com/benbeisheim/legalmoves-backend/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "path to YAML config file")
	flag.Parse()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	log = log.Level(cfg.Level())

	app := fiber.New(fiber.Config{
		AppName:               "legalmoves",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins(),
		AllowHeaders: "Origin, Content-Type, Accept, " + middleware.RequestIDHeader,
		AllowMethods: "GET, OPTIONS",
	}))

	// Initialize services
	moveService := service.NewMoveService(log,
		service.WithMoveType(cfg.IncludeMoveType),
		service.WithOppositeCheck(cfg.AllowOppositeCheck),
	)
	sessions := service.NewSessionManager(log)

	// Initialize controllers
	standardController := controller.NewStandardController(moveService)
	wsController := controller.NewWebSocketController(moveService, sessions, log)

	// Set up WebSocket routes
	app.Use("/ws", middleware.WebSocketUpgrade())
	app.Get("/ws/standard", websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         cfg.CORSOrigins,
	}))

	// Set up REST routes
	standardController.Register(app)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listenErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("Starting server")
		listenErr <- app.Listen(cfg.Addr())
	}()

	select {
	case err := <-listenErr:
		log.Fatal().Err(err).Msg("Server stopped")
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down")
	sessions.CloseAll()
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error().Err(err).Msg("Shutdown did not complete")
	}
}
