package logx

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
)

const (
	colorReset  = "\x1b[0m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
	colorRed    = "\x1b[31m"
	colorCyan   = "\x1b[36m"
)

// ColorEnabled reports whether stdout is a terminal and NO_COLOR is unset.
func ColorEnabled() bool {
	return IsTerminal(os.Stdout) && strings.TrimSpace(os.Getenv("NO_COLOR")) == ""
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func ColorizeStatusWith(status int, color bool) string {
	s := fmt.Sprintf("%d", status)
	if !color {
		return s
	}
	switch {
	case status >= 500:
		return colorRed + s + colorReset
	case status >= 400:
		return colorYellow + s + colorReset
	case status >= 300:
		return colorCyan + s + colorReset
	default:
		return colorGreen + s + colorReset
	}
}

// FormatRequestLineWithColor is the default access log line used when no
// access_log_format is configured. Fields are appended as sorted key=value.
func FormatRequestLineWithColor(
	ts time.Time,
	status int,
	latency time.Duration,
	clientIP string,
	method string,
	path string,
	fields map[string]any,
	color bool,
) string {
	var b strings.Builder
	b.WriteString(ts.Format("2006/01/02 - 15:04:05"))
	b.WriteString(" | ")
	b.WriteString(ColorizeStatusWith(status, color))
	b.WriteString(" | ")
	b.WriteString(latency.String())
	b.WriteString(" | ")
	b.WriteString(strings.TrimSpace(clientIP))
	b.WriteString(" | ")
	b.WriteString(strings.TrimSpace(method))
	b.WriteByte(' ')
	b.WriteString(path)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	first := true
	for _, k := range keys {
		v := strings.TrimSpace(fmt.Sprintf("%v", fields[k]))
		if v == "" || v == "<nil>" {
			continue
		}
		if first {
			b.WriteString(" |")
			first = false
		}
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(v)
	}
	return b.String()
}
