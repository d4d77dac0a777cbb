// Package artifacts writes the generated reverse-proxy configuration to disk.
package artifacts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/r9s-ai/langgate/pkg/proxyconf"
	"github.com/r9s-ai/langgate/pkg/registry"
	"github.com/r9s-ai/langgate/pkg/routes"
)

// WriteError reports a failed directory creation or file write. It is fatal
// for the generate invocation that hit it.
type WriteError struct {
	Op   string
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	if e == nil || e.Err == nil {
		return ""
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Result describes a successful Write.
type Result struct {
	Dir           string
	LocationsPath string
	HeadersPath   string
	Locations     int
}

func (r Result) String() string {
	return fmt.Sprintf("wrote %s and %s (%d locations)", r.LocationsPath, r.HeadersPath, r.Locations)
}

// Write renders reg and writes locations.conf and proxy-headers.conf into dir,
// creating dir when absent. Each file is replaced atomically.
func Write(dir string, reg *registry.Registry) (Result, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return Result{}, &WriteError{Op: "mkdir", Path: dir, Err: fmt.Errorf("output directory is empty")}
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return Result{}, &WriteError{Op: "mkdir", Path: dir, Err: err}
	}

	rs := routes.Compile(reg)
	res := Result{
		Dir:           dir,
		LocationsPath: filepath.Join(dir, proxyconf.LocationsFile),
		HeadersPath:   filepath.Join(dir, proxyconf.HeadersFile),
		Locations:     len(rs),
	}
	if err := writeFileAtomic(res.LocationsPath, []byte(proxyconf.RenderLocations(rs))); err != nil {
		return Result{}, err
	}
	if err := writeFileAtomic(res.HeadersPath, []byte(proxyconf.ProxyHeaders())); err != nil {
		return Result{}, err
	}
	return res, nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	// #nosec G306 -- generated proxy config must be readable by the proxy user.
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return &WriteError{Op: "write", Path: path, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &WriteError{Op: "write", Path: path, Err: err}
	}
	return nil
}
