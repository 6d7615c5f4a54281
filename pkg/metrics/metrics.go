// Package metrics 提供监控指标功能.
// 支持Prometheus标准，收集 HTTP、文件记录与内容访问相关指标.
//
// Example:
//
//	import "github.com/yeisme/filevault/pkg/metrics"
//
//	err := metrics.InitMetrics(config.Metrics)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	metrics.FilesCreated.WithLabelValues("image").Inc()
package metrics

import (
	"net/http"
	_ "net/http/pprof" // 自动注册pprof端点
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yeisme/filevault/pkg/configs"
)

const namespace = "filevault"

// 内容读取结果标签.
const (
	ResultOK       = "ok"
	ResultMissing  = "missing"
	ResultInternal = "internal"
)

// 全局指标变量.
var (
	// RequestCounter HTTP请求计数器.
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// RequestDuration HTTP请求持续时间.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// FilesCreated 按类型统计新建的文件记录.
	FilesCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_created_total",
			Help:      "Number of file records created, by type",
		},
		[]string{"type"},
	)

	// ContentFetch 内容读取结果，missing 与 internal 对外均表现为 404.
	ContentFetch = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_fetch_total",
			Help:      "Content retrieval attempts, by result",
		},
		[]string{"result"},
	)

	// ContentMissing 最近一次巡检发现内容缺失的记录数.
	ContentMissing = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "content_missing",
			Help:      "Records whose content was missing at the last reconcile run",
		},
	)

	// registry Prometheus注册表.
	registry = prometheus.NewRegistry()
	initOnce sync.Once
)

// InitMetrics 初始化Metrics，重复调用只注册一次.
func InitMetrics(config configs.MetricsConfig) error {
	if !config.Enabled {
		return nil
	}

	initOnce.Do(func() {
		if config.RuntimeMetrics {
			registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
		}

		registry.MustRegister(RequestCounter, RequestDuration, FilesCreated, ContentFetch, ContentMissing)
	})

	return nil
}

// RegisterRoutes 在引擎上挂载 /metrics 与可选的 pprof.
func RegisterRoutes(config configs.MetricsConfig, engine *gin.Engine) {
	if !config.Enabled {
		return
	}

	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	if config.Pprof {
		engine.GET("/debug/pprof/*any", gin.WrapH(http.DefaultServeMux))
	}
}

// GetRegistry 获取Prometheus注册表.
func GetRegistry() *prometheus.Registry {
	return registry
}

// Registerer 启用时返回注册表，否则返回 nil，供可选组件判断是否挂载指标.
func Registerer(config configs.MetricsConfig) prometheus.Registerer {
	if !config.Enabled {
		return nil
	}

	return registry
}
