// Package docpage renders the human-readable API directory page.
package docpage

import (
	"fmt"
	"html"
	"strings"

	"github.com/r9s-ai/langgate/pkg/registry"
)

// Placeholder marks where generated endpoint sections go in the template.
const Placeholder = "<!-- langgate:endpoints -->"

const (
	glyphFemale = "♀"
	glyphOther  = "♂"
)

// Render substitutes the endpoint sections of reg for Placeholder in tmpl.
// A template without the placeholder is returned unchanged.
func Render(tmpl string, reg *registry.Registry) string {
	if !strings.Contains(tmpl, Placeholder) {
		return tmpl
	}
	return strings.Replace(tmpl, Placeholder, strings.Join(Fragments(reg), "\n\n"), 1)
}

// Fragments returns one section per non-empty documented category, in the
// order grammar, speller, tts. Hyphenation has no documented payloads and so
// no section.
func Fragments(reg *registry.Registry) []string {
	if reg == nil {
		return nil
	}
	var out []string
	if len(reg.Available.Grammar) > 0 {
		out = append(out, languageSection(grammarDoc, reg.Available.Grammar))
	}
	if len(reg.Available.Speller) > 0 {
		out = append(out, languageSection(spellerDoc, reg.Available.Speller))
	}
	if len(reg.Available.TTS) > 0 {
		out = append(out, ttsSection(reg.Available.TTS))
	}
	return out
}

func languageSection(d sectionDoc, entries map[string]registry.LanguageEntry) string {
	items := make([]string, 0, len(entries))
	for _, tag := range registry.SortedTags(entries) {
		items = append(items, fmt.Sprintf(
			`                <li><a href="/%s/%s"><code>%s</code></a> - %s</li>`,
			d.category, tag, tag, html.EscapeString(entries[tag].Name),
		))
	}
	return d.render(strings.Join(items, "\n"))
}

func ttsSection(entries map[string]registry.TtsEntry) string {
	items := make([]string, 0, len(entries))
	for _, tag := range registry.SortedTags(entries) {
		e := entries[tag]
		voices := make([]string, 0, len(e.Voices))
		for _, id := range e.SortedVoiceIDs() {
			v := e.Voices[id]
			voices = append(voices, fmt.Sprintf(
				`<code>%s</code> <a href="/tts/%s/%s">%s %s</a>`,
				id, tag, id, html.EscapeString(v.Name), genderGlyph(v.Gender),
			))
		}
		items = append(items, fmt.Sprintf(
			`                <li><code>%s</code> - %s (voices: %s)</li>`,
			tag, html.EscapeString(e.Name), strings.Join(voices, ", "),
		))
	}
	return ttsDoc.render(strings.Join(items, "\n"))
}

func genderGlyph(g registry.Gender) string {
	if g.IsFemale() {
		return glyphFemale
	}
	return glyphOther
}
