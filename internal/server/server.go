package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"example.com/travlapes/backend/internal/auth"
	"example.com/travlapes/backend/internal/config"
	"example.com/travlapes/backend/internal/handlers"
	"example.com/travlapes/backend/internal/recommend"
	"example.com/travlapes/backend/internal/repository"
	"example.com/travlapes/backend/internal/weather"
)

// New собирает HTTP-сервер Echo с роутами и зависимостями.
func New(cfg config.Config, logger *slog.Logger, db *pgxpool.Pool) *echo.Echo {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)
	destinationRepo := repository.NewDestinationRepository(db)

	weatherClient := weather.NewClient(cfg.Weather.ForecastURL, cfg.Weather.ArchiveURL, cfg.Weather.Timezone, cfg.Weather.Timeout)
	selector := recommend.NewSelector(recommend.DefaultTables())
	scheduler := recommend.NewScheduler(weatherClient, weather.SeasonForDate)

	authHandler := handlers.NewAuthHandler(userRepo, tokenRepo, tokenManager)
	destinationHandler := handlers.NewDestinationHandler(destinationRepo)
	placesHandler := handlers.NewPlacesHandler(destinationRepo, selector, scheduler)

	registerRoutes(
		e,
		authHandler,
		destinationHandler,
		placesHandler,
		auth.JWTMiddleware(tokenManager),
		rateLimiter(cfg.Auth.RateLimitPerMinute, cfg.Auth.RateLimitBurst),
		userRateLimiter(cfg.Places.RateLimitPerMinute, cfg.Places.RateLimitBurst),
	)

	return e
}

// NewHTTPServer создает net/http сервер с заданными таймаутами.
func NewHTTPServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote_ip", v.RemoteIP),
				slog.Duration("latency", v.Latency),
			}

			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}

			msg := "request completed"
			if v.Status >= http.StatusInternalServerError {
				logger.LogAttrs(c.Request().Context(), slog.LevelError, msg, attrs...)
				return nil
			}

			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, msg, attrs...)
			return nil
		},
	})
}

func rateLimiter(perMinute, burst int) echo.MiddlewareFunc {
	return middleware.RateLimiter(limiterStore(perMinute, burst))
}

// userRateLimiter считает лимит по аутентифицированному пользователю,
// а не по IP; запросы без пользователя в контексте падают обратно на IP.
func userRateLimiter(perMinute, burst int) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: limiterStore(perMinute, burst),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			if userID, ok := auth.UserIDFromContext(c); ok {
				return userID.String(), nil
			}
			return c.RealIP(), nil
		},
	})
}

func limiterStore(perMinute, burst int) middleware.RateLimiterStore {
	return middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(perMinute) / 60.0),
		Burst:     burst,
		ExpiresIn: time.Minute,
	})
}
