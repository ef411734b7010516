package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusMiddleware регистрирует базовые HTTP-метрики для Gin.
// Маршрут /metrics добавляется отдельно методом RegisterMetricsEndpoint.
// Использование:
//   mw := middleware.NewPrometheusMiddleware("hexworld")
//   r.Use(mw.Handler())
//   mw.RegisterMetricsEndpoint(r)
//
// Метрики:
// * http_requests_total{method,path,status} — counter
// * http_request_duration_seconds{method,path,status} — histogram
// * http_requests_inflight — gauge
// * http_request_errors_total{method,path,status} — counter (4xx/5xx)

type PrometheusMiddleware struct {
	reqTotal    *prometheus.CounterVec
	reqDuration *prometheus.HistogramVec
	reqInflight prometheus.Gauge
	reqErrors   *prometheus.CounterVec
}

// NewPrometheusMiddleware создаёт middleware и регистрирует метрики в дефолтном
// регистре. Повторная регистрация (например, при нескольких серверах в одном
// процессе) переиспользует уже существующие коллекторы.
func NewPrometheusMiddleware(service string) *PrometheusMiddleware {
	pm := &PrometheusMiddleware{
		reqTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: service,
			Name:      "http_requests_total",
			Help:      "Общее число обработанных HTTP-запросов.",
		}, []string{"method", "path", "status"}),
		reqDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: service,
			Name:      "http_request_duration_seconds",
			Help:      "Длительность HTTP-запросов.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}, []string{"method", "path", "status"}),
		reqInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: service,
			Name:      "http_requests_inflight",
			Help:      "Текущее количество обрабатываемых HTTP-запросов.",
		}),
		reqErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: service,
			Name:      "http_request_errors_total",
			Help:      "Общее число запросов, завершившихся ошибкой (4xx/5xx).",
		}, []string{"method", "path", "status"}),
	}

	if err := prometheus.Register(pm.reqTotal); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			pm.reqTotal = are.ExistingCollector.(*prometheus.CounterVec)
		}
	}
	if err := prometheus.Register(pm.reqDuration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			pm.reqDuration = are.ExistingCollector.(*prometheus.HistogramVec)
		}
	}
	if err := prometheus.Register(pm.reqInflight); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			pm.reqInflight = are.ExistingCollector.(prometheus.Gauge)
		}
	}
	if err := prometheus.Register(pm.reqErrors); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			pm.reqErrors = are.ExistingCollector.(*prometheus.CounterVec)
		}
	}

	return pm
}

// Handler возвращает gin.HandlerFunc, которую нужно добавить через router.Use().
func (pm *PrometheusMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		pm.reqInflight.Inc()
		c.Next()
		pm.reqInflight.Dec()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path // для не-матченных маршрутов
		}
		method := c.Request.Method

		pm.reqTotal.WithLabelValues(method, path, status).Inc()
		pm.reqDuration.WithLabelValues(method, path, status).Observe(duration)

		if c.Writer.Status() >= 400 {
			pm.reqErrors.WithLabelValues(method, path, status).Inc()
		}
	}
}

// RegisterMetricsEndpoint добавляет GET /metrics в указанный router.
func (pm *PrometheusMiddleware) RegisterMetricsEndpoint(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
