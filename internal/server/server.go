package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/retailhub/pos-api/internal/catalog"
	catalogdomain "github.com/retailhub/pos-api/internal/catalog/domain"
	"github.com/retailhub/pos-api/internal/config"
	"github.com/retailhub/pos-api/internal/observability"
	obslogger "github.com/retailhub/pos-api/internal/observability/logger"
	obsmetrics "github.com/retailhub/pos-api/internal/observability/metrics"
	obstracing "github.com/retailhub/pos-api/internal/observability/tracing"
	"github.com/retailhub/pos-api/internal/purchase"
	purchasedomain "github.com/retailhub/pos-api/internal/purchase/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	catalog.Module,
	purchase.Module,
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

// NewEngine assembles the middleware pipeline. Order matters: recovery
// first, then correlation/logging, tracing, metrics, CORS, and the
// error mapper closest to the handlers.
func NewEngine(cfg config.Config, obsCfg observability.Config, m *obsmetrics.Metrics) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(m))
	r.Use(corsMiddleware(cfg))
	r.Use(ErrorHandlingMiddleware(obsCfg.Debug()))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			_ = ctx
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	db          *gorm.DB
	log         *zap.Logger
	catalogSvc  catalogdomain.Service
	purchaseSvc purchasedomain.Service
	obsMetrics  *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	DB          *gorm.DB
	Log         *zap.Logger
	CatalogSvc  catalogdomain.Service
	PurchaseSvc purchasedomain.Service
	ObsMetrics  *obsmetrics.Metrics
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		db:          p.DB,
		log:         p.Log.Named("server"),
		catalogSvc:  p.CatalogSvc,
		purchaseSvc: p.PurchaseSvc,
		obsMetrics:  p.ObsMetrics,
	}

	svc.registerRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerRoutes() {
	s.engine.GET("/", s.Root)
	s.engine.GET("/health", s.Health)
	s.engine.GET("/health/detailed", s.DetailedHealth)

	api := s.engine.Group("/api")
	{
		api.GET("/products/search/:barcode", s.SearchProduct)
		api.GET("/products", s.ListProducts)
		api.POST("/purchase", s.CreatePurchase)
	}
}
