package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/annel0/hex-world/internal/logging"
)

// TraceIDKey — ключ контекста gin, под которым хранится идентификатор трассировки
const TraceIDKey = "trace_id"

// slowRequestThreshold — запросы дольше этого порога логируются как медленные
const slowRequestThreshold = 500 * time.Millisecond

// RequestLogger снабжает каждый HTTP-запрос идентификатором трассировки и
// пишет сводную строку по завершении. Идентификатор берётся из активного
// OpenTelemetry-спана, а при его отсутствии генерируется локально.
type RequestLogger struct{}

func NewRequestLogger() *RequestLogger { return &RequestLogger{} }

func (rl *RequestLogger) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := requestTraceID(c)
		c.Set(TraceIDKey, traceID)

		start := time.Now()
		c.Next()

		method := c.Request.Method
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path // для не-матченных маршрутов
		}
		status := c.Writer.Status()
		latency := time.Since(start)

		switch {
		case status >= 500:
			logging.Error("[HTTP] %s %s %d %s ip=%s trace=%s",
				method, path, status, latency, c.ClientIP(), traceID)
		case status >= 400:
			logging.Warn("[HTTP] %s %s %d %s ip=%s trace=%s",
				method, path, status, latency, c.ClientIP(), traceID)
		case latency > slowRequestThreshold:
			logging.Warn("[HTTP] %s %s %d %s (медленный запрос) ip=%s trace=%s",
				method, path, status, latency, c.ClientIP(), traceID)
		default:
			logging.Info("[HTTP] %s %s %d %s ip=%s trace=%s",
				method, path, status, latency, c.ClientIP(), traceID)
		}
	}
}

// requestTraceID извлекает идентификатор трассировки из активного спана
// или генерирует новый, если трассировка не инициализирована
func requestTraceID(c *gin.Context) string {
	span := trace.SpanFromContext(c.Request.Context())
	if span.SpanContext().IsValid() {
		return span.SpanContext().TraceID().String()
	}
	return uuid.NewString()
}
