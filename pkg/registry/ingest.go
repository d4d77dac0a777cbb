package registry

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/r9s-ai/langgate/assets"
)

// Format is the syntax of a registry document.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// DefaultSource names the embedded registry in errors and logs.
const DefaultSource = "embedded:languages.toml"

// tagPattern keeps tags and voice ids usable as a single URL path segment.
var tagPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// IngestError reports a registry document that could not be turned into a
// Registry. It is fatal: nothing may be served or generated from it.
type IngestError struct {
	Source string
	Err    error
}

func (e *IngestError) Error() string {
	if e == nil || e.Err == nil {
		return ""
	}
	if strings.TrimSpace(e.Source) == "" {
		return "ingest registry: " + e.Err.Error()
	}
	return fmt.Sprintf("ingest registry %s: %v", e.Source, e.Err)
}

func (e *IngestError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// FormatFromPath picks the document format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported registry file extension %q (expect .toml, .yaml or .yml)", filepath.Ext(path))
	}
}

// Parse decodes and validates a registry document.
func Parse(data []byte, format Format) (*Registry, error) {
	return parse("", data, format)
}

// Load reads a registry file; the format follows the file extension.
func Load(path string) (*Registry, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, &IngestError{Source: path, Err: err}
	}
	// #nosec G304 -- registry path comes from trusted flag/config.
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &IngestError{Source: path, Err: err}
	}
	return parse(path, b, format)
}

// Default parses the registry compiled into the binary.
func Default() (*Registry, error) {
	return parse(DefaultSource, assets.LanguagesTOML, FormatTOML)
}

// LoadOrDefault loads path, or the embedded registry when path is empty.
func LoadOrDefault(path string) (*Registry, string, error) {
	if p := strings.TrimSpace(path); p != "" {
		reg, err := Load(p)
		return reg, p, err
	}
	reg, err := Default()
	return reg, DefaultSource, err
}

func parse(source string, data []byte, format Format) (*Registry, error) {
	var reg Registry
	if err := decode(data, format, &reg); err != nil {
		return nil, &IngestError{Source: source, Err: err}
	}
	reg.normalize()
	if err := reg.validate(); err != nil {
		return nil, &IngestError{Source: source, Err: err}
	}
	return &reg, nil
}

func decode(data []byte, format Format, out *Registry) error {
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(out)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unsupported registry format %q", format)
	}
}

// normalize replaces absent category maps with empty ones so the JSON dump
// always carries objects.
func (r *Registry) normalize() {
	if r.Available.Grammar == nil {
		r.Available.Grammar = map[string]LanguageEntry{}
	}
	if r.Available.Speller == nil {
		r.Available.Speller = map[string]LanguageEntry{}
	}
	if r.Available.Hyphenation == nil {
		r.Available.Hyphenation = map[string]LanguageEntry{}
	}
	if r.Available.TTS == nil {
		r.Available.TTS = map[string]TtsEntry{}
	}
}

func (r *Registry) validate() error {
	var problems []string
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			field := strings.TrimPrefix(fe.Namespace(), "Registry.")
			if fe.Tag() == "required" {
				problems = append(problems, field+" is required")
				continue
			}
			problems = append(problems, fmt.Sprintf("%s failed %q", field, fe.Tag()))
		}
	}

	for _, c := range []Category{Grammar, Speller, Hyphenation} {
		for _, tag := range SortedTags(r.Languages(c)) {
			if !tagPattern.MatchString(tag) {
				problems = append(problems, fmt.Sprintf("available.%s: invalid tag %q", c, tag))
			}
		}
	}
	voices := 0
	for _, tag := range SortedTags(r.Available.TTS) {
		if !tagPattern.MatchString(tag) {
			problems = append(problems, fmt.Sprintf("available.tts: invalid tag %q", tag))
		}
		e := r.Available.TTS[tag]
		for _, id := range e.SortedVoiceIDs() {
			if !tagPattern.MatchString(id) {
				problems = append(problems, fmt.Sprintf("available.tts[%s].voices: invalid voice id %q", tag, id))
			}
		}
		voices += len(e.Voices)
	}
	if voices > 0 && r.Global.TTSPort == 0 {
		problems = append(problems, "global.tts_port is required when tts voices are configured")
	}

	if len(problems) == 0 {
		return nil
	}
	sort.Strings(problems)
	return errors.New(strings.Join(problems, "; "))
}
