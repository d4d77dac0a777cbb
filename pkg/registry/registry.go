package registry

import (
	"maps"
	"slices"
)

// Gender of a TTS voice. Only GenderFemale changes rendering; any other value,
// including an empty or unrecognized one, renders as non-female.
type Gender string

const (
	GenderFemale Gender = "female"
	GenderMale   Gender = "male"
	GenderOther  Gender = "other"
)

func (g Gender) IsFemale() bool {
	return g == GenderFemale
}

// LanguageEntry is a grammar, speller or hyphenation backend for one language.
type LanguageEntry struct {
	Name string `json:"name" yaml:"name" toml:"name" validate:"required" jsonschema:"required"`
	Port uint16 `json:"port" yaml:"port" toml:"port" validate:"required" jsonschema:"required,minimum=1,maximum=65535"`
}

// VoiceEntry is one voice of a TTS language. Model selects the backend model
// and becomes the upstream sub-path; Speaker and Language are passed on as
// query parameters when set.
type VoiceEntry struct {
	Name     string  `json:"name" yaml:"name" toml:"name" validate:"required" jsonschema:"required"`
	Gender   Gender  `json:"gender,omitempty" yaml:"gender,omitempty" toml:"gender,omitempty"`
	Model    string  `json:"model" yaml:"model" toml:"model" validate:"required" jsonschema:"required"`
	Speaker  *uint32 `json:"speaker,omitempty" yaml:"speaker,omitempty" toml:"speaker,omitempty"`
	Language *uint32 `json:"language,omitempty" yaml:"language,omitempty" toml:"language,omitempty"`
}

// TtsEntry is a text-to-speech language and its voices keyed by voice id.
type TtsEntry struct {
	Name   string                `json:"name" yaml:"name" toml:"name" validate:"required" jsonschema:"required"`
	Voices map[string]VoiceEntry `json:"voices,omitempty" yaml:"voices,omitempty" toml:"voices,omitempty" validate:"dive"`
}

// SortedVoiceIDs returns the voice ids in ascending order.
func (e TtsEntry) SortedVoiceIDs() []string {
	return SortedTags(e.Voices)
}

// Global holds settings shared by all entries.
type Global struct {
	// TTSPort is the port of the single TTS backend serving every voice.
	TTSPort uint16 `json:"tts_port,omitempty" yaml:"tts_port,omitempty" toml:"tts_port,omitempty" jsonschema:"maximum=65535"`
}

// Available maps language tags to entries, one map per category.
type Available struct {
	Grammar     map[string]LanguageEntry `json:"grammar" yaml:"grammar,omitempty" toml:"grammar,omitempty" validate:"dive"`
	Speller     map[string]LanguageEntry `json:"speller" yaml:"speller,omitempty" toml:"speller,omitempty" validate:"dive"`
	Hyphenation map[string]LanguageEntry `json:"hyphenation" yaml:"hyphenation,omitempty" toml:"hyphenation,omitempty" validate:"dive"`
	TTS         map[string]TtsEntry      `json:"tts" yaml:"tts,omitempty" toml:"tts,omitempty" validate:"dive"`
}

// Registry is the root of the service catalog.
type Registry struct {
	Global    Global    `json:"global" yaml:"global,omitempty" toml:"global,omitempty"`
	Available Available `json:"available" yaml:"available" toml:"available"`
}

// Languages returns the tag map of a per-language category. TextToSpeech has
// no per-language ports and yields nil.
func (r *Registry) Languages(c Category) map[string]LanguageEntry {
	if r == nil {
		return nil
	}
	switch c {
	case Grammar:
		return r.Available.Grammar
	case Speller:
		return r.Available.Speller
	case Hyphenation:
		return r.Available.Hyphenation
	default:
		return nil
	}
}

// Counts summarizes the size of a registry.
type Counts struct {
	Grammar     int `json:"grammar"`
	Speller     int `json:"speller"`
	Hyphenation int `json:"hyphenation"`
	TTS         int `json:"tts"`
	Voices      int `json:"voices"`
}

func (r *Registry) Counts() Counts {
	if r == nil {
		return Counts{}
	}
	c := Counts{
		Grammar:     len(r.Available.Grammar),
		Speller:     len(r.Available.Speller),
		Hyphenation: len(r.Available.Hyphenation),
		TTS:         len(r.Available.TTS),
	}
	for _, e := range r.Available.TTS {
		c.Voices += len(e.Voices)
	}
	return c
}

// SortedTags returns the keys of m in ascending lexicographic order.
func SortedTags[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
