// Package assets holds the files compiled into the langgate binary: the
// default service registry and the API directory page template.
package assets

import _ "embed"

// LanguagesTOML is the registry served when no --registry file is given.
//
//go:embed languages.toml
var LanguagesTOML []byte

// IndexHTML is the directory page template. Generated endpoint sections are
// substituted for the "<!-- langgate:endpoints -->" placeholder.
//
//go:embed index.html
var IndexHTML string
