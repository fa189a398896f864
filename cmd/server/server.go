package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
	"github.com/vibevent/vibevent-api/internal/config"
	"github.com/vibevent/vibevent-api/internal/constants"
	"github.com/vibevent/vibevent-api/internal/database"
	"github.com/vibevent/vibevent-api/internal/handlers"
	"github.com/vibevent/vibevent-api/internal/middleware"
	"github.com/vibevent/vibevent-api/internal/realtime"
	"github.com/vibevent/vibevent-api/internal/repository"
	"github.com/vibevent/vibevent-api/internal/services"
)

const shutdownTimeout = 10 * time.Second

func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsRelease() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func migrate(*cli.Context) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	if err := database.Connect(cfg); err != nil {
		return err
	}
	return database.Migrate()
}

func serve(cctx *cli.Context) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		return err
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := realtime.NewHub(logger)
	var pusher realtime.Pusher = hub
	if cfg.PushRelayEnabled {
		client, err := realtime.NewRedisClient(ctx, cfg.RedisAddr(), cfg.RedisPassword)
		if err != nil {
			return err
		}
		defer client.Close()
		relay := realtime.NewRedisRelay(client, cfg.PushRelayChannel, hub, logger)
		if err := relay.Start(ctx); err != nil {
			return err
		}
		defer relay.Close()
		pusher = relay
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORSOrigins))

	// Setup session middleware with Redis
	if cfg.SessionEnabled {
		store, err := redisStore.NewStore(
			10,    // Redis pool size
			"tcp", // network type
			cfg.RedisAddr(),
			cfg.RedisPassword,
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return fmt.Errorf("failed to create Redis store: %w", err)
		}
		store.Options(sessions.Options{
			Path:     "/",
			MaxAge:   86400 * 7, // 7 days
			HttpOnly: true,
			Secure:   cfg.IsRelease(),
			SameSite: http.SameSiteLaxMode,
		})
		r.Use(sessions.Sessions(constants.SessionCookieName, store))
	}

	db := database.GetDB()
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	notifier := services.NewNotifier(repository.NewNotificationRepository(db), pusher, logger)

	userRepo := repository.NewUserRepository(db)
	clubRepo := repository.NewClubRepository(db)
	eventRepo := repository.NewEventRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	achievementRepo := repository.NewAchievementRepository(db)

	h := handlers.Handlers{
		Users:       handlers.NewUserHandler(services.NewUserService(userRepo, tokens)),
		Clubs:       handlers.NewClubHandler(services.NewClubService(clubRepo, tokens)),
		Events:      handlers.NewEventHandler(services.NewEventService(eventRepo, clubRepo, userRepo, notifier, logger)),
		RSVPs:       handlers.NewRSVPHandler(services.NewRSVPService(repository.NewRSVPRepository(db), eventRepo, userRepo, notifier)),
		Attendances: handlers.NewAttendanceHandler(services.NewAttendanceService(attendanceRepo, eventRepo, userRepo, notifier)),
		Achievements: handlers.NewAchievementHandler(
			services.NewAchievementService(achievementRepo, userRepo, clubRepo, notifier, logger),
		),
		ClubAchievements: handlers.NewClubAchievementHandler(
			services.NewClubAchievementService(repository.NewClubAchievementRepository(db), clubRepo, achievementRepo, notifier),
		),
		UserAchievements: handlers.NewUserAchievementHandler(
			services.NewUserAchievementService(repository.NewUserAchievementRepository(db), userRepo, achievementRepo, notifier),
		),
		Notifications: handlers.NewNotificationHandler(
			services.NewNotificationService(repository.NewNotificationRepository(db), notifier),
		),
		Awards: handlers.NewAwardHandler(
			services.NewAwardService(eventRepo, attendanceRepo, repository.NewAwardRepository(db), notifier, logger),
		),
	}

	gateway := realtime.NewGateway(hub, realtime.GatewayOptions{
		MessagesPerSecond: cfg.WSMessagesPerSecond,
		Burst:             cfg.WSBurst,
		CheckOrigin:       allowOrigins(cfg.CORSOrigins),
		Identity:          middleware.WebSocketIdentity(tokens),
		RequireIdentity:   cfg.WSRequireAuth,
	}, logger)

	r.GET("/health", handlers.NewHealthHandler(database.Ping, hub).Health)
	r.GET("/ws", gateway.ServeWS)
	handlers.RegisterRoutes(r.Group("/api"), h, middleware.RequireAuth(tokens))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server_starting", "addr", srv.Addr, "mode", cfg.GinMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("server_stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// allowOrigins admits websocket upgrades from the configured CORS origins
// and from clients that send no Origin header.
func allowOrigins(origins []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(origins, origin) || slices.Contains(origins, "*")
	}
}
