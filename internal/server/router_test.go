package server

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/r9s-ai/langgate/assets"
	"github.com/r9s-ai/langgate/internal/config"
	"github.com/r9s-ai/langgate/internal/logx"
	"github.com/r9s-ai/langgate/pkg/docpage"
	"github.com/r9s-ai/langgate/pkg/registry"
)

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.Default()
	if err != nil {
		t.Fatalf("Default err=%v", err)
	}
	return reg
}

func testConfig(t *testing.T, accessLog bool) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load err=%v", err)
	}
	cfg.Logging.AccessLog = accessLog
	return cfg
}

func newTestRouter(t *testing.T, out *bytes.Buffer, formatter *logx.AccessLogFormatter) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	var l *log.Logger
	if out != nil {
		l = log.New(out, "", 0)
	}
	return NewRouter(testConfig(t, out != nil), newState(testRegistry(t), assets.IndexHTML), l, false, "", formatter)
}

func doGet(r http.Handler, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := doGet(newTestRouter(t, nil, nil), "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != `{"status":"ok"}` {
		t.Fatalf("body=%s", w.Body.String())
	}
}

func TestLanguages_DumpsRegistry(t *testing.T) {
	w := doGet(newTestRouter(t, nil, nil), "/languages", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var got registry.Registry
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	want := testRegistry(t)
	if got.Counts() != want.Counts() {
		t.Fatalf("counts=%+v want=%+v", got.Counts(), want.Counts())
	}
	if got.Global.TTSPort != want.Global.TTSPort {
		t.Fatalf("tts_port=%d want=%d", got.Global.TTSPort, want.Global.TTSPort)
	}
	var raw map[string]map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode raw: %v", err)
	}
	for _, c := range []string{"grammar", "speller", "hyphenation", "tts"} {
		if b := raw["available"][c]; len(b) == 0 || b[0] != '{' {
			t.Fatalf("available.%s should be an object, got %s", c, b)
		}
	}
}

func TestIndex_ServesRenderedPage(t *testing.T) {
	w := doGet(newTestRouter(t, nil, nil), "/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content-type=%q", ct)
	}
	body := w.Body.String()
	if body != docpage.Render(assets.IndexHTML, testRegistry(t)) {
		t.Fatalf("served page differs from rendered page")
	}
	if !strings.Contains(body, `href="/grammar/se"`) || !strings.Contains(body, `href="/tts/se/biret"`) {
		t.Fatalf("page lacks generated links")
	}
}

func TestRequestID_EchoedOrGenerated(t *testing.T) {
	r := newTestRouter(t, nil, nil)
	w := doGet(r, "/health", http.Header{"X-Request-Id": []string{"rid-42"}})
	if got := w.Header().Get("X-Request-Id"); got != "rid-42" {
		t.Fatalf("request id not echoed: %q", got)
	}
	w = doGet(r, "/health", nil)
	if got := w.Header().Get("X-Request-Id"); len(got) != 28 {
		t.Fatalf("generated request id=%q", got)
	}
}

func TestCORS(t *testing.T) {
	r := newTestRouter(t, nil, nil)
	w := doGet(r, "/languages", http.Header{"Origin": []string{"https://example.org"}})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow-origin=%q", got)
	}

	req := httptest.NewRequest(http.MethodOptions, "/languages", nil)
	req.Header.Set("Origin", "https://example.org")
	req.Header.Set("Access-Control-Request-Method", "GET")
	pw := httptest.NewRecorder()
	r.ServeHTTP(pw, req)
	if pw.Code != http.StatusNoContent {
		t.Fatalf("preflight status=%d", pw.Code)
	}
	if !strings.Contains(pw.Header().Get("Access-Control-Allow-Methods"), "GET") {
		t.Fatalf("allow-methods=%q", pw.Header().Get("Access-Control-Allow-Methods"))
	}
}

func TestUnknownPath(t *testing.T) {
	if w := doGet(newTestRouter(t, nil, nil), "/grammar/se", nil); w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestAccessLog_DefaultLine(t *testing.T) {
	var out bytes.Buffer
	r := newTestRouter(t, &out, nil)
	doGet(r, "/health", http.Header{"X-Request-Id": []string{"rid-1"}, "User-Agent": []string{"curl/8"}})

	line := out.String()
	for _, want := range []string{"| 200 |", "GET /health", "request_id=rid-1", "user_agent=curl/8"} {
		if !strings.Contains(line, want) {
			t.Fatalf("access log missing %q: %q", want, line)
		}
	}
}

func TestAccessLog_CompiledFormat(t *testing.T) {
	f, err := logx.CompileAccessLogFormat("$method $path $status rid=$request_id")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	var out bytes.Buffer
	r := newTestRouter(t, &out, f)
	doGet(r, "/health", http.Header{"X-Request-Id": []string{"rid-7"}})

	if got := strings.TrimSpace(out.String()); got != "GET /health 200 rid=rid-7" {
		t.Fatalf("access log=%q", got)
	}
}
