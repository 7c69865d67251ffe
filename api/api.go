// Package api wires the fleet pages, middleware and health checks into a gin
// engine.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/heptiolabs/healthcheck"

	"taxiservice/api/handler"
	"taxiservice/config"
	"taxiservice/pkg/logger"
	"taxiservice/service"
)

const readinessTimeout = 2 * time.Second

// Pinger is the storage readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Options struct {
	Config   config.Config
	Services service.IServiceManager
	Storage  Pinger
	Log      logger.ILogger
}

func New(opts Options) (*gin.Engine, error) {
	if opts.Config.LoggerLevel == logger.LevelDebug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	zapLogger := opts.Log.Zap()
	r.Use(ginzap.Ginzap(zapLogger, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(zapLogger, true))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	health := healthcheck.NewHandler()
	health.AddLivenessCheck("goroutine-threshold", healthcheck.GoroutineCountCheck(1000))
	health.AddReadinessCheck("storage", healthcheck.Timeout(func() error {
		return opts.Storage.Ping(context.Background())
	}, readinessTimeout))
	r.GET("/live", gin.WrapF(health.LiveEndpoint))
	r.GET("/ready", gin.WrapF(health.ReadyEndpoint))

	h := handler.New(opts.Services, handler.Options{
		CookieName:   opts.Config.SessionCookieName,
		CookieSecure: opts.Config.SessionCookieSecure,
		SessionTTL:   opts.Config.SessionTTL,
		PageSize:     opts.Config.PageSize,
	}, opts.Log)

	r.NoRoute(h.NotFound)

	r.GET(handler.LoginPath, h.LoginPage)
	r.POST(handler.LoginPath, h.Login)
	r.POST("/accounts/logout/", h.Logout)

	auth := r.Group("/", h.AuthRequired())
	{
		auth.GET("/", h.Index)

		auth.GET("/manufacturers/", h.ManufacturerList)
		auth.GET("/manufacturers/create", h.ManufacturerCreatePage)
		auth.POST("/manufacturers/create", h.ManufacturerCreate)
		auth.GET("/manufacturers/:id/update", h.ManufacturerUpdatePage)
		auth.POST("/manufacturers/:id/update", h.ManufacturerUpdate)
		auth.GET("/manufacturers/:id/delete", h.ManufacturerDeletePage)
		auth.POST("/manufacturers/:id/delete", h.ManufacturerDelete)

		auth.GET("/cars/", h.CarList)
		auth.GET("/cars/create", h.CarCreatePage)
		auth.POST("/cars/create", h.CarCreate)
		auth.GET("/cars/:id/", h.CarDetail)
		auth.GET("/cars/:id/update", h.CarUpdatePage)
		auth.POST("/cars/:id/update", h.CarUpdate)
		auth.GET("/cars/:id/delete", h.CarDeletePage)
		auth.POST("/cars/:id/delete", h.CarDelete)
		auth.POST("/cars/:id/toggle-assign", h.CarToggleAssign)

		auth.GET("/drivers/", h.DriverList)
		auth.GET("/drivers/create", h.DriverCreatePage)
		auth.POST("/drivers/create", h.DriverCreate)
		auth.GET("/drivers/:id/", h.DriverDetail)
		auth.GET("/drivers/:id/license-update", h.DriverLicenseUpdatePage)
		auth.POST("/drivers/:id/license-update", h.DriverLicenseUpdate)
		auth.GET("/drivers/:id/delete", h.DriverDeletePage)
		auth.POST("/drivers/:id/delete", h.DriverDelete)
	}

	return r, nil
}

// NewServer wraps the engine with the listen address and timeouts.
func NewServer(cfg config.Config, engine http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
