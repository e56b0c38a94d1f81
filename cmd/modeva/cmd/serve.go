package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Modeva-Ecommerce/modeva-storefront/cache"
	"github.com/Modeva-Ecommerce/modeva-storefront/catalog"
	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/jobs"
	"github.com/Modeva-Ecommerce/modeva-storefront/metrics"
	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/routes/cms_routes"
	"github.com/Modeva-Ecommerce/modeva-storefront/routes/ecommerce_routes"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
)

const shutdownTimeout = 15 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the storefront API server",
		Example: `  modeva serve
  MODEVA_SERVER_PORT=9000 modeva serve --config prod.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd.Context())
		},
	}
}

func runServer(ctx context.Context) error {
	cfg, log, err := connectDB()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	defer config.CloseDB()

	if err := config.ConnectRedis(cfg); err != nil {
		if cfg.RateLimit.Backend == "redis" {
			return err
		}
		log.Warn("redis unavailable, visitor history kept in memory", zap.Error(err))
	} else {
		defer config.CloseRedis()
	}

	services.InitCatalog(catalog.NewGormRepository(config.CatalogGorm))
	if config.RedisClient != nil {
		services.InitVisitorHistory(services.RedisHistoryStorage(config.RedisClient, cfg.History.TTL))
	} else {
		services.InitVisitorHistory(services.MemoryHistoryStorage())
	}
	services.InitViewCounter(services.NewPgxViewCounter(config.CatalogDB))
	cache.SetTTL(cfg.Cache.CategoryTTL)
	if !cache.Products.Configure(cfg.Cache.ProductEntries, cfg.Cache.ProductTTL) {
		log.Warn("product cache already in use, keeping its default shape")
	}

	var limiter middleware.Limiter
	if cfg.RateLimit.Backend == "redis" {
		limiter = middleware.NewRedisLimiter(config.RedisClient, cfg.RateLimit.Limit, cfg.RateLimit.Window)
	} else {
		limiter = middleware.NewMemoryLimiter(cfg.RateLimit.Limit, cfg.RateLimit.Window)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      newRouter(cfg, limiter, log),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	var sched *jobs.Scheduler
	if cfg.Jobs.Enabled {
		sched, err = jobs.NewScheduler(log,
			jobs.ExpirePendingOrders(config.CatalogGorm, cfg.Jobs.ExpireOrdersSpec, cfg.Jobs.PendingOrderMaxAge),
			jobs.WarmCaches(config.CatalogGorm, cfg.Jobs.WarmCacheSpec),
		)
		if err != nil {
			return err
		}
		sched.Start()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("🚀 server listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "listen")
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	if sched != nil {
		<-sched.Stop().Done()
	}
	services.WaitForViews()
	return nil
}

func newRouter(cfg *config.Config, limiter middleware.Limiter, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestLog(log),
		middleware.Metrics(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.Server.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID", "X-Requested-With"},
			ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	router.GET("/healthz", healthz)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	ecommerce_routes.SetupStorefrontRoutes(api, cfg.IsProduction())
	cms_routes.SetupAdminRoutes(api, limiter)
	return router
}

func healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := config.PingDB(ctx); err != nil {
		metrics.HealthzUp.Set(0)
		zap.L().Warn("[healthz] database check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "database unavailable"))
		return
	}
	metrics.HealthzUp.Set(1)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "ok", nil))
}
