package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/netutil"

	"github.com/r9s-ai/langgate/assets"
	"github.com/r9s-ai/langgate/internal/config"
	"github.com/r9s-ai/langgate/internal/logx"
	"github.com/r9s-ai/langgate/internal/requestid"
	"github.com/r9s-ai/langgate/pkg/registry"
)

const shutdownTimeout = 5 * time.Second

// Run binds cfg.Server.Listen and serves reg until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config, reg *registry.Registry, source string) error {
	ln, err := net.Listen("tcp", cfg.Server.Listen)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Server.Listen, err)
	}
	return Serve(ctx, cfg, reg, source, ln)
}

// Serve is Run on an existing listener. The listener is closed on return.
func Serve(ctx context.Context, cfg *config.Config, reg *registry.Registry, source string, ln net.Listener) error {
	if cfg == nil || reg == nil || ln == nil {
		return errors.New("serve: nil config/registry/listener")
	}
	gin.SetMode(gin.ReleaseMode)

	accessLogger, accessClose, accessColor, err := openAccessLogger(cfg)
	if err != nil {
		_ = ln.Close()
		return fmt.Errorf("init access log: %w", err)
	}
	if accessClose != nil {
		defer func() { _ = accessClose.Close() }()
	}

	accessFormat, err := logx.ResolveAccessLogFormat(cfg.Logging.AccessLogFormat, cfg.Logging.AccessLogFormatPreset)
	if err != nil {
		_ = ln.Close()
		return fmt.Errorf("resolve access log format: %w", err)
	}
	accessFormatter, err := logx.CompileAccessLogFormat(accessFormat)
	if err != nil {
		_ = ln.Close()
		return fmt.Errorf("compile access_log_format: %w", err)
	}

	engine := NewRouter(cfg, newState(reg, assets.IndexHTML), accessLogger, accessColor, requestid.DefaultHeaderKey, accessFormatter)

	if cfg.Server.MaxConns > 0 {
		ln = netutil.LimitListener(ln, cfg.Server.MaxConns)
	}
	srv := &http.Server{
		Handler:           engine,
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeoutMs) * time.Millisecond,
		ReadHeaderTimeout: time.Duration(cfg.Server.ReadTimeoutMs) * time.Millisecond,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeoutMs) * time.Millisecond,
	}

	counts := reg.Counts()
	log.Printf(
		"langgate listening on %s registry=%q grammar=%d speller=%d hyphenation=%d tts=%d voices=%d",
		ln.Addr(), source, counts.Grammar, counts.Speller, counts.Hyphenation, counts.TTS, counts.Voices,
	)
	return serve(ctx, srv, ln)
}

func serve(ctx context.Context, srv *http.Server, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("run: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Printf("langgate shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		<-errCh
		return nil
	}
}

func openAccessLogger(cfg *config.Config) (*log.Logger, io.Closer, bool, error) {
	if cfg == nil || !cfg.Logging.AccessLog {
		return nil, nil, false, nil
	}

	path := strings.TrimSpace(cfg.Logging.AccessLogPath)
	if path == "" {
		return log.New(os.Stdout, "", 0), nil, logx.ColorEnabled(), nil
	}

	dir := filepath.Dir(path)
	if strings.TrimSpace(dir) != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, nil, false, err
		}
	}
	// #nosec G304 -- access_log_path comes from trusted config/env.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, false, err
	}
	return log.New(f, "", 0), f, false, nil
}
