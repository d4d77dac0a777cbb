// Package routes compiles a registry into the ordered list of public routes
// that the reverse proxy exposes.
package routes

import (
	"strconv"

	"github.com/r9s-ai/langgate/pkg/registry"
)

// Query parameter names understood by the TTS backend.
const (
	QueryLanguage = "language"
	QuerySpeaker  = "speaker"
)

// RouteSpec maps one public path to an upstream backend.
type RouteSpec struct {
	Category       registry.Category `json:"category"`
	PublicPath     string            `json:"public_path"`
	BackendPort    uint16            `json:"backend_port"`
	BackendSubpath string            `json:"backend_subpath,omitempty"`
	Query          QueryParams       `json:"query,omitempty"`
}

// Compile expands reg into routes ordered by category (grammar, speller,
// hyphenation, tts), then by tag, then for tts by voice id.
func Compile(reg *registry.Registry) []RouteSpec {
	if reg == nil {
		return nil
	}
	var out []RouteSpec
	for _, c := range registry.Categories() {
		out = append(out, CompileCategory(reg, c)...)
	}
	return out
}

// CompileCategory compiles a single category. Empty categories yield nil.
func CompileCategory(reg *registry.Registry, c registry.Category) []RouteSpec {
	if reg == nil {
		return nil
	}
	if c == registry.TextToSpeech {
		return compileTTS(reg)
	}
	return compileLanguages(c, reg.Languages(c))
}

// compileLanguages handles the one-backend-per-language categories. Ports
// come from each entry.
func compileLanguages(c registry.Category, entries map[string]registry.LanguageEntry) []RouteSpec {
	if len(entries) == 0 {
		return nil
	}
	out := make([]RouteSpec, 0, len(entries))
	for _, tag := range registry.SortedTags(entries) {
		out = append(out, RouteSpec{
			Category:    c,
			PublicPath:  "/" + c.String() + "/" + tag,
			BackendPort: entries[tag].Port,
		})
	}
	return out
}

// compileTTS fans every (tag, voice) pair out to the shared TTS backend.
func compileTTS(reg *registry.Registry) []RouteSpec {
	var out []RouteSpec
	for _, tag := range registry.SortedTags(reg.Available.TTS) {
		entry := reg.Available.TTS[tag]
		for _, id := range entry.SortedVoiceIDs() {
			voice := entry.Voices[id]
			out = append(out, RouteSpec{
				Category:       registry.TextToSpeech,
				PublicPath:     "/" + registry.TextToSpeech.String() + "/" + tag + "/" + id,
				BackendPort:    reg.Global.TTSPort,
				BackendSubpath: voice.Model,
				Query:          voiceQuery(voice),
			})
		}
	}
	return out
}

// voiceQuery always puts language before speaker.
func voiceQuery(v registry.VoiceEntry) QueryParams {
	var q QueryParams
	if v.Language != nil {
		q.Add(QueryLanguage, strconv.FormatUint(uint64(*v.Language), 10))
	}
	if v.Speaker != nil {
		q.Add(QuerySpeaker, strconv.FormatUint(uint64(*v.Speaker), 10))
	}
	return q
}

// CountByCategory tallies routes per category.
func CountByCategory(routes []RouteSpec) map[registry.Category]int {
	out := make(map[registry.Category]int, 4)
	for _, r := range routes {
		out[r.Category]++
	}
	return out
}
