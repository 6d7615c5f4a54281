// Package api 组装 HTTP 引擎：全局中间件、业务路由、指标与文档路由.
package api

import (
	"github.com/gin-gonic/gin"

	appcache "github.com/yeisme/filevault/pkg/cache"
	"github.com/yeisme/filevault/pkg/configs"
	"github.com/yeisme/filevault/pkg/internal/handle"
	"github.com/yeisme/filevault/pkg/internal/router"
	"github.com/yeisme/filevault/pkg/metrics"
	"github.com/yeisme/filevault/pkg/middleware"
)

// Options 引擎依赖.
type Options struct {
	Config  *configs.AppConfig
	Handler *handle.Handler
	// Gate 校验 X-Token 并解析出用户 ID
	Gate middleware.SessionResolver
	// Cache 为 nil 时 /stats 不缓存
	Cache *appcache.Cache
}

// NewEngine 创建挂载全部中间件与路由的 gin 引擎.
func NewEngine(opts Options) *gin.Engine {
	cfg := opts.Config
	e := gin.New()

	e.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.GinLoggerMiddleware(),
		middleware.TracingMiddleware(),
		middleware.PrometheusMiddleware(),
		middleware.CORSMiddleware(cfg.Server, cfg.Auth),
		middleware.RateLimitMiddleware(cfg.RateLimit),
		middleware.CircuitBreakerMiddleware(cfg.CircuitBreaker),
		middleware.GzipMiddleware(),
	)

	ro := router.Options{
		Session: middleware.SessionMiddleware(opts.Gate, cfg.Auth.TokenHeader),
	}
	if opts.Cache != nil {
		ro.StatsCache = middleware.CacheMiddleware(middleware.DefaultCacheConfig(opts.Cache))
	}

	router.Register(e, opts.Handler, ro)
	router.RegisterSwaggerRoute(e, cfg.Server)
	metrics.RegisterRoutes(cfg.Metrics, e)

	return e
}
