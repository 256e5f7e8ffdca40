package middlewares

import (
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/Rajeshwar-203/fitness-ai-backend/apperrors"
	"github.com/Rajeshwar-203/fitness-ai-backend/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Middleware carries the shared dependencies of the request pipeline.
type Middleware struct {
	log     *zap.Logger
	metrics *metrics.Metrics
	debug   bool
}

func New(log *zap.Logger, m *metrics.Metrics, debug bool) *Middleware {
	return &Middleware{log: log, metrics: m, debug: debug}
}

// RequestID reuses X-Request-ID when the caller sent one.
func (m *Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

func (m *Middleware) Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		latency := time.Since(start)
		status := c.Writer.Status()
		m.metrics.ObserveHTTP(c.Request.Method, route, strconv.Itoa(status), latency)

		if route == "/healthz" || route == "/metrics" {
			return
		}

		fields := []zap.Field{
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("ip", c.ClientIP()),
			zap.Int("status", status),
			zap.Duration("latency", latency),
		}
		if email := c.GetString("email"); email != "" {
			fields = append(fields, zap.String("email", email))
		}

		switch {
		case status >= 500:
			m.log.Error("server error", append(fields, zap.String("error", c.Errors.String()))...)
		case status >= 400:
			m.log.Warn("client error", append(fields, zap.String("error", c.Errors.String()))...)
		default:
			m.log.Info("request completed", fields...)
		}
	}
}

func (m *Middleware) Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				m.log.Error("panic recovered",
					zap.String("request_id", c.GetString("request_id")),
					zap.Any("error", err),
					zap.String("stack", string(debug.Stack())),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
					"code":  apperrors.CodeInternal,
				})
			}
		}()
		c.Next()
	}
}

// ErrorHandler renders the last error a handler attached with c.Error.
func (m *Middleware) ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		appErr := apperrors.From(c.Errors.Last().Err)
		if appErr.Code == apperrors.CodeInternal {
			m.log.Error("request failed",
				zap.String("request_id", c.GetString("request_id")),
				zap.String("message", appErr.Message),
				zap.Error(appErr.Cause),
			)
		}

		body := gin.H{"error": appErr.Message, "code": appErr.Code}
		if m.debug {
			details := appErr.Details
			if details == "" && appErr.Cause != nil {
				details = appErr.Cause.Error()
			}
			if details != "" {
				body["details"] = details
			}
		}
		c.AbortWithStatusJSON(appErr.StatusCode(), body)
	}
}
