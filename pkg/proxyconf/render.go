// Package proxyconf renders compiled routes as nginx location blocks.
package proxyconf

import (
	"strconv"
	"strings"

	"github.com/r9s-ai/langgate/pkg/routes"
)

// Artifact file names written by the generate command.
const (
	LocationsFile = "locations.conf"
	HeadersFile   = "proxy-headers.conf"
)

// UpstreamHost is the loopback address every backend listens on.
const UpstreamHost = "127.0.0.1"

const proxyHeaders = `proxy_http_version 1.1;
proxy_set_header Upgrade $http_upgrade;
proxy_set_header Connection "upgrade";
proxy_set_header Host $host;
proxy_set_header X-Real-IP $remote_addr;
proxy_set_header X-Forwarded-For $proxy_add_x_forwarded_for;
proxy_set_header X-Forwarded-Proto $scheme;
`

// ProxyHeaders returns the shared header directives included by every
// location block. It does not depend on the registry.
func ProxyHeaders() string {
	return proxyHeaders
}

// UpstreamURL is the proxy_pass target of r. An empty subpath still yields a
// valid URL ending in "/".
func UpstreamURL(r routes.RouteSpec) string {
	var b strings.Builder
	b.WriteString("http://")
	b.WriteString(UpstreamHost)
	b.WriteByte(':')
	b.WriteString(strconv.FormatUint(uint64(r.BackendPort), 10))
	b.WriteByte('/')
	b.WriteString(r.BackendSubpath)
	if q := r.Query.Encode(); q != "" {
		b.WriteByte('?')
		b.WriteString(q)
	}
	return b.String()
}

// RenderLocation renders one location block without a trailing newline.
func RenderLocation(r routes.RouteSpec) string {
	var b strings.Builder
	b.WriteString("location ")
	b.WriteString(r.PublicPath)
	b.WriteString(" {\n")
	b.WriteString("    proxy_pass ")
	b.WriteString(UpstreamURL(r))
	b.WriteString(";\n")
	b.WriteString("    include " + HeadersFile + ";\n")
	b.WriteString("}")
	return b.String()
}

// RenderLocations joins the blocks of rs with a blank line, in order. The
// result ends with a newline unless rs is empty.
func RenderLocations(rs []routes.RouteSpec) string {
	if len(rs) == 0 {
		return ""
	}
	blocks := make([]string, 0, len(rs))
	for _, r := range rs {
		blocks = append(blocks, RenderLocation(r))
	}
	return strings.Join(blocks, "\n\n") + "\n"
}
