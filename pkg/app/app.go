// Package app 提供应用程序的初始化和运行：配置、日志、可观测性、存储、服务装配与 HTTP 生命周期.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yeisme/filevault/pkg/api"
	appcache "github.com/yeisme/filevault/pkg/cache"
	"github.com/yeisme/filevault/pkg/configs"
	"github.com/yeisme/filevault/pkg/internal/handle"
	"github.com/yeisme/filevault/pkg/internal/jobs"
	"github.com/yeisme/filevault/pkg/internal/service"
	"github.com/yeisme/filevault/pkg/internal/storage"
	"github.com/yeisme/filevault/pkg/log"
	"github.com/yeisme/filevault/pkg/metrics"
	"github.com/yeisme/filevault/pkg/rule"
	"github.com/yeisme/filevault/pkg/scheduler"
	"github.com/yeisme/filevault/pkg/tracing"
)

const shutdownTimeout = 10 * time.Second

// App 持有运行期资源.
type App struct {
	Engine *gin.Engine

	config    *configs.AppConfig
	storage   *storage.Manager
	scheduler *scheduler.Scheduler
	worker    *service.EventWorker
	logger    zerolog.Logger
}

// NewApp 加载配置并装配所有组件. 返回的 App 需调用 Close 释放资源.
func NewApp(ctx context.Context, configPath string) (*App, error) {
	if err := configs.InitConfig(configPath); err != nil {
		return nil, fmt.Errorf("init config: %w", err)
	}

	return Setup(ctx, configs.GetConfig())
}

// Setup 基于已加载的配置重建日志、校验配置并装配组件.
func Setup(ctx context.Context, cfg *configs.AppConfig) (*App, error) {
	log.Configure(cfg.Log, cfg.Server.Debug)

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return New(ctx, cfg)
}

// New 按给定配置装配组件.
func New(ctx context.Context, cfg *configs.AppConfig) (*App, error) {
	logger := log.Component("app")

	if err := tracing.InitTracer(cfg.Tracing); err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	if err := metrics.InitMetrics(cfg.Metrics); err != nil {
		return nil, fmt.Errorf("init metrics: %w", err)
	}

	mgr, err := storage.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	l := log.Logger()
	gin.DefaultWriter = log.NewGinWriter(l, zerolog.InfoLevel)
	gin.DefaultErrorWriter = log.NewGinWriter(l, zerolog.ErrorLevel)

	// 服务装配
	opts := []service.RegistryOption{service.WithOwnerOnlyPublish(cfg.Files.OwnerOnlyPublish())}
	if mgr.MQ != nil {
		opts = append(opts, service.WithEvents(service.NewMQEvents(mgr.MQ.Publisher(), cfg.Events.File)))
	}

	gate := service.NewSessionGate(mgr.KV, cfg.Auth)
	users := service.NewUserService(mgr.Docs, cfg.Auth)
	registry := service.NewFileRegistry(mgr.Docs, mgr.Content, opts...)

	sched, err := scheduler.NewScheduler()
	if err != nil {
		_ = mgr.Close(ctx)
		return nil, fmt.Errorf("init scheduler: %w", err)
	}

	reconciler := service.NewContentReconciler(mgr.Docs, mgr.Content, cfg.Jobs.ReconcileBatch)
	if err := jobs.RegisterCronJobs(sched, cfg.Jobs, reconciler); err != nil {
		_ = mgr.Close(ctx)
		return nil, fmt.Errorf("register jobs: %w", err)
	}

	h := handle.New(handle.Deps{
		Registry:    registry,
		Content:     service.NewContentAccessor(registry, mgr.Content, cfg.Files.PublicRead),
		Users:       users,
		Auth:        service.NewAuthService(gate, users),
		Stats:       service.NewStatsService(mgr.Docs, mgr.KV),
		Health:      mgr,
		Scheduler:   sched,
		TokenHeader: cfg.Auth.TokenHeader,
	})

	engine := api.NewEngine(api.Options{
		Config:  cfg,
		Handler: h,
		Gate:    gate,
		Cache:   appcache.NewCache(mgr.KV),
	})

	logger.Info().
		Str("publish_scope", string(cfg.Files.PublishScope)).
		Bool("public_read", cfg.Files.PublicRead).
		Bool("events", mgr.MQ != nil).
		Msg("file access policy")

	return &App{
		Engine:    engine,
		config:    cfg,
		storage:   mgr,
		scheduler: sched,
		worker:    service.NewEventWorker(mgr.Content),
		logger:    logger,
	}, nil
}

// ValidateConfig 校验启动所需的配置段.
func ValidateConfig(cfg *configs.AppConfig) error {
	sections := map[string]any{
		"server":  cfg.Server,
		"auth":    cfg.Auth,
		"files":   cfg.Files,
		"kv":      cfg.KV,
		"content": cfg.Content,
	}

	if cfg.DB.Type != configs.SQLite {
		sections["db"] = cfg.DB
	}

	if cfg.Jobs.Enabled {
		sections["jobs"] = cfg.Jobs
	}

	if cfg.Events.Enabled {
		sections["mq"] = cfg.MQ
	}

	if cfg.Tracing.Enabled {
		sections["tracing"] = cfg.Tracing
	}

	if cfg.RateLimit.Enabled {
		sections["rate_limit"] = cfg.RateLimit
	}

	if cfg.CircuitBreaker.Enabled {
		sections["circuit_breaker"] = cfg.CircuitBreaker
	}

	var errs []error

	for name, s := range sections {
		if err := rule.ValidateStruct(s); err != nil {
			errs = append(errs, fmt.Errorf("invalid %s config: %s", name, rule.Errors(err).String()))
		}
	}

	return errors.Join(errs...)
}

// Run 启动调度器与 HTTP 服务，ctx 取消后优雅关闭.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.config.Server.Addr(),
		Handler:           a.Engine,
		ReadHeaderTimeout: a.config.Server.GetTimeoutDuration(),
		ReadTimeout:       a.config.Server.GetTimeoutDuration(),
		WriteTimeout:      a.config.Server.GetTimeoutDuration(),
	}

	a.scheduler.Start()

	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", srv.Addr).Msg("http server listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}

		return nil
	case <-ctx.Done():
	}

	a.logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// RunWorker 订阅文件事件并处理，直到 ctx 取消. 需要启用 events.
func (a *App) RunWorker(ctx context.Context) error {
	if a.storage.MQ == nil {
		return errors.New("worker requires events.enabled=true")
	}

	router, err := a.storage.MQ.NewRouter()
	if err != nil {
		return fmt.Errorf("create router: %w", err)
	}

	a.worker.Register(router, a.storage.MQ.Subscriber())

	a.logger.Info().Str("mq", string(a.storage.MQ.Type())).Msg("event worker started")

	return router.Run(ctx)
}

// Close 停止调度器并释放存储资源.
func (a *App) Close(ctx context.Context) error {
	var errs []error

	if a.scheduler != nil {
		errs = append(errs, a.scheduler.Stop())
	}

	if a.storage != nil {
		errs = append(errs, a.storage.Close(ctx))
	}

	errs = append(errs, tracing.ShutdownTracer(ctx))

	return errors.Join(errs...)
}
