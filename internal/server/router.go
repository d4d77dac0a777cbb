package server

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/r9s-ai/langgate/internal/config"
	"github.com/r9s-ai/langgate/internal/logx"
	"github.com/r9s-ai/langgate/internal/requestid"
)

func NewRouter(
	cfg *config.Config,
	st *state,
	accessLogger *log.Logger,
	accessLoggerColor bool,
	requestIDHeaderKey string,
	accessFormatter *logx.AccessLogFormatter,
) *gin.Engine {
	resolvedRequestIDHeaderKey := requestid.ResolveHeaderKey(requestIDHeaderKey)
	r := gin.New()
	r.Use(requestIDMiddleware(resolvedRequestIDHeaderKey))
	if cfg.Logging.AccessLog {
		r.Use(requestLoggerWithColor(accessLogger, accessLoggerColor, resolvedRequestIDHeaderKey, accessFormatter))
	}
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(resolvedRequestIDHeaderKey))

	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", st.indexHTML)
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/languages", func(c *gin.Context) {
		c.JSON(http.StatusOK, st.reg)
	})

	return r
}
