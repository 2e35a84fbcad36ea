// Package metrics 提供 Prometheus 指标收集
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 指标收集器
type Metrics struct {
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge
	cacheHitsTotal       *prometheus.CounterVec
	cacheMissesTotal     *prometheus.CounterVec
	searchesTotal        *prometheus.CounterVec
	searchDuration       *prometheus.HistogramVec
	searchCandidates     *prometheus.HistogramVec
	stockNightsTotal     *prometheus.CounterVec
	stockReservesTotal   *prometheus.CounterVec
	minPriceSyncsTotal   *prometheus.CounterVec
	auditsTotal          *prometheus.CounterVec
}

var defaultMetrics *Metrics

// Init 初始化指标收集器
// 收集器注册到默认 Registry，重复初始化返回已有实例
func Init(namespace string) *Metrics {
	if defaultMetrics != nil {
		return defaultMetrics
	}
	if namespace == "" {
		namespace = "hotel_marketplace"
	}

	m := &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		httpRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),
		cacheHitsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_hits_total",
				Help:      "Total number of cache hits",
			},
			[]string{"cache"},
		),
		cacheMissesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_misses_total",
				Help:      "Total number of cache misses",
			},
			[]string{"cache"},
		),
		searchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "searches_total",
				Help:      "Total number of availability searches",
			},
			[]string{"mode"},
		),
		searchDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_stage_duration_seconds",
				Help:      "Search pipeline stage duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"stage"},
		),
		searchCandidates: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_candidates",
				Help:      "Number of candidates entering each search stage",
				Buckets:   []float64{1, 5, 10, 50, 100, 500, 1000, 2000},
			},
			[]string{"stage"},
		),
		stockNightsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stock_nights_total",
				Help:      "Total number of stock nights written",
			},
			[]string{"source"},
		),
		stockReservesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stock_reserves_total",
				Help:      "Total number of stock reserve/release operations",
			},
			[]string{"operation", "result"},
		),
		minPriceSyncsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "min_price_syncs_total",
				Help:      "Total number of hotel min price recomputations",
			},
			[]string{"result"},
		),
		auditsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "audits_total",
				Help:      "Total number of audit decisions",
			},
			[]string{"target", "action"},
		),
	}

	defaultMetrics = m
	return m
}

// GetMetrics 获取默认指标收集器
func GetMetrics() *Metrics {
	if defaultMetrics == nil {
		return Init("")
	}
	return defaultMetrics
}

// Middleware 返回 Gin 中间件
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 跳过 metrics 端点本身
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		m.httpRequestsInFlight.Inc()

		c.Next()

		m.httpRequestsInFlight.Dec()
		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}

		m.httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(duration)
	}
}

// Handler 返回 Prometheus HTTP 处理器
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// RecordCacheHit 记录缓存命中
func (m *Metrics) RecordCacheHit(cache string) {
	m.cacheHitsTotal.WithLabelValues(cache).Inc()
}

// RecordCacheMiss 记录缓存未命中
func (m *Metrics) RecordCacheMiss(cache string) {
	m.cacheMissesTotal.WithLabelValues(cache).Inc()
}

// RecordSearch 记录一次检索请求
// mode 取值 "dated"（带入住日期）或 "attribute"（仅属性筛选）
func (m *Metrics) RecordSearch(mode string) {
	m.searchesTotal.WithLabelValues(mode).Inc()
}

// RecordSearchStage 记录检索流水线各阶段耗时和候选数量
func (m *Metrics) RecordSearchStage(stage string, candidates int, duration time.Duration) {
	m.searchDuration.WithLabelValues(stage).Observe(duration.Seconds())
	m.searchCandidates.WithLabelValues(stage).Observe(float64(candidates))
}

// RecordStockNights 记录库存夜写入数量
// source 取值 "room_create" 或 "horizon_job"
func (m *Metrics) RecordStockNights(source string, nights int) {
	m.stockNightsTotal.WithLabelValues(source).Add(float64(nights))
}

// RecordStockReserve 记录预订占用/释放操作
func (m *Metrics) RecordStockReserve(operation, result string) {
	m.stockReservesTotal.WithLabelValues(operation, result).Inc()
}

// RecordMinPriceSync 记录酒店起价重算
func (m *Metrics) RecordMinPriceSync(result string) {
	m.minPriceSyncsTotal.WithLabelValues(result).Inc()
}

// RecordAudit 记录审核操作
// target 取值 "hotel" 或 "room"，action 取值 "approve" 或 "reject"
func (m *Metrics) RecordAudit(target, action string) {
	m.auditsTotal.WithLabelValues(target, action).Inc()
}

// RecordCacheHitGlobal 全局记录缓存命中
func RecordCacheHitGlobal(cache string) {
	GetMetrics().RecordCacheHit(cache)
}

// RecordCacheMissGlobal 全局记录缓存未命中
func RecordCacheMissGlobal(cache string) {
	GetMetrics().RecordCacheMiss(cache)
}
