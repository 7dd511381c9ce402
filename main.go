package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fakhrymubarak/city-dashboard/internal/config"
	"github.com/fakhrymubarak/city-dashboard/internal/database"
	"github.com/fakhrymubarak/city-dashboard/internal/handler"
	"github.com/fakhrymubarak/city-dashboard/internal/middleware"
	"github.com/fakhrymubarak/city-dashboard/internal/redis"
	"github.com/fakhrymubarak/city-dashboard/internal/repository"
	"github.com/fakhrymubarak/city-dashboard/internal/routes"
	"github.com/fakhrymubarak/city-dashboard/internal/service"
	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// upstreams holds provider endpoints and credentials.
type upstreams struct {
	OpenWeatherMapURL string
	OpenWeatherMapKey string
	AccuWeatherURL    string
	AccuWeatherKey    string
	TimezoneDBURL     string
	TimezoneDBKey     string
	FlagTemplate      string
}

func upstreamsFromConfig() upstreams {
	return upstreams{
		OpenWeatherMapURL: config.GetOpenWeatherApiUrl(),
		OpenWeatherMapKey: config.GetOpenWeatherMapAPIKey(),
		AccuWeatherURL:    config.GetAccuWeatherApiUrl(),
		AccuWeatherKey:    config.GetAccuWeatherAPIKey(),
		TimezoneDBURL:     config.GetTimezoneDBApiUrl(),
		TimezoneDBKey:     config.GetTimezoneDBAPIKey(),
		FlagTemplate:      config.GetFlagURLTemplate(),
	}
}

// buildRouter wires repositories, services and handlers into the HTTP router.
func buildRouter(db *gorm.DB, redisClient *redisv9.Client, httpClient *http.Client, up upstreams, mailer service.Sender) http.Handler {
	weatherService := service.NewWeatherService(
		repository.NewWeatherRepository(up.OpenWeatherMapURL, up.OpenWeatherMapKey, httpClient),
		repository.NewForecastRepository(up.AccuWeatherURL, up.AccuWeatherKey, httpClient),
		repository.NewTimezoneRepository(up.TimezoneDBURL, up.TimezoneDBKey, httpClient),
		up.FlagTemplate,
	)
	authService := service.NewAuthService(
		repository.NewUserRepository(db),
		repository.NewSessionRepository(redisClient, config.GetSessionTTL()),
	)
	taskService := service.NewTaskService(repository.NewTaskRepository(db))
	emailService := service.NewEmailService(mailer, config.GetEmailUser())

	cookieName := config.GetSessionCookieName()
	authHandler := handler.NewAuthHandler(authService, cookieName, config.GetSessionTTL())
	authHandler.SecureCookie = config.GetSecureCookie()
	router := routes.SetupRoutes(routes.Handlers{
		Weather: handler.NewWeatherHandler(weatherService),
		Auth:    authHandler,
		Tasks:   handler.NewTaskHandler(taskService),
		QR:      handler.NewQRHandler(service.NewQRService()),
		Email:   handler.NewEmailHandler(emailService),
		Health: handler.NewHealthHandler(map[string]handler.HealthCheck{
			"redis": func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			},
			"database": func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
		}),
		RequireSession: middleware.RequireSession(authService, cookieName),
		StaticDir:      config.GetStaticDir(),
	})

	return middleware.CORS(config.GetCORSAllowedOrigins())(router)
}

// newMailer returns nil when SMTP is not configured; /send-email then fails with 500.
func newMailer() service.Sender {
	client, err := service.NewSMTPClient(config.GetSMTPHost(), config.GetSMTPPort(), config.GetEmailUser(), config.GetEmailPassword())
	if err != nil {
		config.GetLogger().Warnw("SMTP client disabled", "error", err)
		return nil
	}
	return client
}

func newServer(h http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + config.GetServerPort(),
		Handler:           h,
		ReadHeaderTimeout: config.GetServerTimeout("read_header_timeout"),
		ReadTimeout:       config.GetServerTimeout("read_timeout"),
		WriteTimeout:      config.GetServerTimeout("write_timeout"),
		IdleTimeout:       config.GetServerTimeout("idle_timeout"),
	}
}

func main() {
	logger := config.GetLogger()
	defer func() { _ = logger.Sync() }()

	db, err := database.Open(config.GetDatabaseDriver(), config.GetDatabaseDSN())
	if err != nil {
		logger.Fatalw("Failed to open database", "error", err)
	}
	defer func() { _ = database.Close(db) }()

	redisClient, err := redis.Connect(context.Background(), config.GetRedisAddr())
	if err != nil {
		logger.Fatalw("Failed to connect to Redis", "error", err)
	}
	defer func() { _ = redisClient.Close() }()

	httpClient := repository.NewHTTPClient(config.GetUpstreamTimeout())
	server := newServer(buildRouter(db, redisClient, httpClient, upstreamsFromConfig(), newMailer()))

	go func() {
		logger.Infow("City dashboard server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("Server error", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Infow("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), config.GetServerTimeout("shutdown_timeout"))
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorw("Server shutdown failed", "error", err)
	}
	httpClient.CloseIdleConnections()
	logger.Infow("Server stopped")
}
