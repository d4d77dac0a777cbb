package server

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/r9s-ai/langgate/internal/logx"
	"github.com/r9s-ai/langgate/internal/requestid"
)

func requestIDMiddleware(headerKey string) gin.HandlerFunc {
	headerKey = requestid.ResolveHeaderKey(headerKey)
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(headerKey))
		if id == "" {
			id = requestid.Gen()
		}
		c.Header(headerKey, id)
		c.Set(headerKey, id)
		c.Next()
	}
}

type accessLogRecord struct {
	RequestID string
	UserAgent string
	BytesOut  int
}

func (r accessLogRecord) Fields() map[string]any {
	out := make(map[string]any, 3)
	if strings.TrimSpace(r.RequestID) != "" {
		out["request_id"] = r.RequestID
	}
	if strings.TrimSpace(r.UserAgent) != "" {
		out["user_agent"] = r.UserAgent
	}
	if r.BytesOut >= 0 {
		out["bytes_out"] = r.BytesOut
	}
	return out
}

func requestLoggerWithColor(l *log.Logger, color bool, requestIDHeaderKey string, accessFormatter *logx.AccessLogFormatter) gin.HandlerFunc {
	requestIDHeaderKey = requestid.ResolveHeaderKey(requestIDHeaderKey)
	if l == nil {
		l = log.New(os.Stdout, "", log.LstdFlags)
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)
		fields := accessLogRecord{
			RequestID: c.GetString(requestIDHeaderKey),
			UserAgent: c.GetHeader("User-Agent"),
			BytesOut:  c.Writer.Size(),
		}.Fields()

		ts := time.Now()
		if accessFormatter != nil {
			l.Println(accessFormatter.Format(ts, status, latency, c.ClientIP(), c.Request.Method, c.Request.URL.Path, fields, color))
			return
		}
		l.Println(logx.FormatRequestLineWithColor(ts, status, latency, c.ClientIP(), c.Request.Method, c.Request.URL.Path, fields, color))
	}
}

// corsMiddleware allows any origin to read the public endpoints and answers
// preflight requests directly.
func corsMiddleware(requestIDHeaderKey string) gin.HandlerFunc {
	allowHeaders := "Content-Type, " + requestIDHeaderKey
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Expose-Headers", requestIDHeaderKey)
		if c.Request.Method == http.MethodOptions {
			h.Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")
			h.Set("Access-Control-Allow-Headers", allowHeaders)
			h.Set("Access-Control-Max-Age", "86400")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
