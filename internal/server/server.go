// Package server assembles the HTTP application: repositories, services,
// handlers and middleware.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/khairunnisaa/palmcode-api/internal/handler"
	"github.com/khairunnisaa/palmcode-api/internal/middleware"
	"github.com/khairunnisaa/palmcode-api/internal/repository"
	"github.com/khairunnisaa/palmcode-api/internal/service"
	"github.com/khairunnisaa/palmcode-api/pkg/storage"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

const serviceName = "surf-booking"

// Deps are the long-lived resources the application runs on. Publisher and
// TokenCache may be nil.
type Deps struct {
	DB            *gorm.DB
	Disk          *storage.LocalDisk
	StoragePrefix string
	Publisher     service.EventPublisher
	TokenCache    service.TokenCache
	Registry      *prometheus.Registry
}

type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

func New(d Deps) *echo.Echo {
	// Repositories
	memberRepo := repository.NewMemberRepository(d.DB)
	countryRepo := repository.NewCountryRepository(d.DB)
	bookingRepo := repository.NewBookingRepository(d.DB)
	verificationRepo := repository.NewIdVerificationRepository(d.DB)
	userRepo := repository.NewUserRepository(d.DB)
	tokenRepo := repository.NewTokenRepository(d.DB)

	// Services
	memberSvc := service.NewMemberService(memberRepo, bookingRepo, verificationRepo, d.Publisher)
	countrySvc := service.NewCountryService(countryRepo, d.Publisher)
	bookingSvc := service.NewBookingService(bookingRepo, memberRepo, countryRepo, verificationRepo, d.Disk, d.Publisher)
	authSvc := service.NewAuthService(userRepo, tokenRepo, d.TokenCache)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(middleware.RequestLogger(slog.Default()))
	e.Use(echoMw.Recover())

	if d.Registry != nil {
		metrics := middleware.NewMetrics(d.Registry)
		e.Use(metrics.Middleware())
		e.GET("/metrics", metrics.Handler())
	}

	e.GET("/health", health(d))

	prefix := d.StoragePrefix
	if prefix == "" {
		prefix = "/storage"
	}
	e.Static(prefix, d.Disk.Root())

	api := e.Group("/api")
	handler.NewAuthHandler(authSvc).RegisterRoutes(api)

	protected := api.Group("", middleware.BearerAuth(authSvc))
	handler.NewMemberHandler(memberSvc).RegisterRoutes(protected)
	handler.NewCountryHandler(countrySvc).RegisterRoutes(protected)
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(protected)

	return e
}

func health(d Deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		status := map[string]string{"status": "ok", "service": serviceName, "database": "ok"}
		code := http.StatusOK

		if err := ping(ctx, d.DB); err != nil {
			status["database"] = err.Error()
			status["status"] = "degraded"
			code = http.StatusServiceUnavailable
		}
		if hc, ok := d.TokenCache.(healthChecker); ok {
			status["cache"] = "ok"
			if err := hc.HealthCheck(ctx); err != nil {
				// Token lookups fall back to the database.
				status["cache"] = err.Error()
				status["status"] = "degraded"
			}
		}
		return c.JSON(code, status)
	}
}

func ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
