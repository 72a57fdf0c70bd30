package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
	"github.com/veljkom/meetlite-api/internal/config"
	"github.com/veljkom/meetlite-api/internal/database"
	"github.com/veljkom/meetlite-api/internal/handlers"
	"github.com/veljkom/meetlite-api/internal/logging"
	authmw "github.com/veljkom/meetlite-api/internal/middleware"
	"github.com/veljkom/meetlite-api/internal/services"
	"github.com/veljkom/meetlite-api/internal/telemetry"
	"github.com/veljkom/meetlite-api/internal/video"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New("meetlite-api", cfg.Env)

	ctx := context.Background()

	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	telemetry.Init()

	sessionService := services.NewSessionService(cfg.JWTSecret, cfg.SessionExpiry)
	userService := services.NewUserService(db)
	meetingService := services.NewMeetingService(cfg.BaseURL)
	emailService := services.NewEmailService(cfg.SMTP)
	tokenIssuer := video.NewKitTokenIssuer(cfg.Video)

	authHandler := handlers.NewAuthHandler(cfg, userService, sessionService, log)
	userHandler := handlers.NewUserHandler(userService)
	meetingHandler := handlers.NewMeetingHandler(meetingService, emailService, log)
	roomHandler := handlers.NewRoomHandler(cfg, tokenIssuer, log)
	pageHandler := handlers.NewPageHandler()

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())
	app.Use(authmw.RequestLogger(log))
	app.Use(authmw.Metrics())

	// OAuth endpoints stay open; the flow has to be reachable before a
	// session exists.
	auth := app.Group("/api/auth")
	auth.Get("/:provider/consent", authHandler.Consent)
	auth.Get("/:provider/callback", authHandler.Callback)
	auth.Post("/logout", authHandler.Logout)

	// Guarded surface: pages and the user API. The guard redirects
	// browsers instead of failing API-style, matching how visitors
	// actually reach these routes.
	guarded := app.Group("")
	guarded.Use(authmw.Guard(sessionService))
	guarded.Get("/", pageHandler.Home)
	guarded.Get(authmw.LoginPath, pageHandler.Login)
	guarded.Get("/video-meeting/:roomId", roomHandler.Show)
	guarded.Get("/api/user/:id", userHandler.Get)
	guarded.Put("/api/user/:id", userHandler.Update)
	guarded.Delete("/api/user/:id", userHandler.Delete)

	// Meeting actions are a JSON surface and use bearer-style auth.
	meetings := app.Group("/api/v1/meetings")
	meetings.Use(authmw.Auth(sessionService))
	meetings.Post("/instant", meetingHandler.Instant)
	meetings.Post("/later", meetingHandler.Later)
	meetings.Post("/join", meetingHandler.Join)
	meetings.Post("/share", meetingHandler.Share)

	app.Get("/api/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	app.Get("/metrics", func(c *drift.Context) {
		telemetry.Handler().ServeHTTP(c.Response, c.Request)
	})

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.WithField("addr", addr).Info("server starting")
		if err := app.Run(addr); err != nil {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
}
