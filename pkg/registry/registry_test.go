package registry

import (
	"encoding/json"
	"testing"
)

func TestSortedTags(t *testing.T) {
	got := SortedTags(map[string]int{"smj": 1, "se": 2, "sma": 3, "fi": 4})
	want := []string{"fi", "se", "sma", "smj"}
	if len(got) != len(want) {
		t.Fatalf("SortedTags len=%d want=%d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SortedTags[%d]=%q want=%q (all=%v)", i, got[i], want[i], got)
		}
	}
	if out := SortedTags(map[string]int(nil)); len(out) != 0 {
		t.Fatalf("SortedTags(nil)=%v", out)
	}
}

func TestSortedVoiceIDs(t *testing.T) {
	e := TtsEntry{Voices: map[string]VoiceEntry{"b": {}, "a": {}, "c": {}}}
	got := e.SortedVoiceIDs()
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("SortedVoiceIDs=%v", got)
	}
}

func TestGender_IsFemale(t *testing.T) {
	tests := []struct {
		g    Gender
		want bool
	}{
		{GenderFemale, true},
		{GenderMale, false},
		{GenderOther, false},
		{"", false},
		{"Female", false},
	}
	for _, tt := range tests {
		if got := tt.g.IsFemale(); got != tt.want {
			t.Fatalf("Gender(%q).IsFemale()=%v want=%v", tt.g, got, tt.want)
		}
	}
}

func TestCategory(t *testing.T) {
	want := []string{"grammar", "speller", "hyphenation", "tts"}
	for i, c := range Categories() {
		if c.String() != want[i] {
			t.Fatalf("Categories()[%d]=%q want=%q", i, c, want[i])
		}
		parsed, err := ParseCategory(" " + want[i] + " ")
		if err != nil || parsed != c {
			t.Fatalf("ParseCategory(%q)=(%v,%v)", want[i], parsed, err)
		}
	}
	if _, err := ParseCategory("ocr"); err == nil {
		t.Fatalf("ParseCategory(ocr) should fail")
	}
	if got := Category(9).String(); got != "category(9)" {
		t.Fatalf("Category(9).String()=%q", got)
	}
}

func TestLanguages(t *testing.T) {
	reg := &Registry{Available: Available{
		Grammar:     map[string]LanguageEntry{"se": {Name: "g", Port: 1}},
		Speller:     map[string]LanguageEntry{"se": {Name: "s", Port: 2}},
		Hyphenation: map[string]LanguageEntry{"se": {Name: "h", Port: 3}},
	}}
	for c, port := range map[Category]uint16{Grammar: 1, Speller: 2, Hyphenation: 3} {
		if got := reg.Languages(c)["se"].Port; got != port {
			t.Fatalf("Languages(%s)[se].Port=%d want=%d", c, got, port)
		}
	}
	if reg.Languages(TextToSpeech) != nil {
		t.Fatalf("Languages(tts) should be nil")
	}
	var nilReg *Registry
	if nilReg.Languages(Grammar) != nil {
		t.Fatalf("nil registry should yield nil map")
	}
}

func TestCounts(t *testing.T) {
	reg := &Registry{Available: Available{
		Grammar: map[string]LanguageEntry{"a": {}, "b": {}},
		TTS: map[string]TtsEntry{
			"a": {Voices: map[string]VoiceEntry{"x": {}, "y": {}}},
			"b": {},
			"c": {Voices: map[string]VoiceEntry{"z": {}}},
		},
	}}
	got := reg.Counts()
	want := Counts{Grammar: 2, TTS: 3, Voices: 3}
	if got != want {
		t.Fatalf("Counts()=%+v want=%+v", got, want)
	}
}

func TestSchema(t *testing.T) {
	b, err := Schema()
	if err != nil {
		t.Fatalf("Schema err=%v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("schema is not json: %v", err)
	}
	if doc["title"] != "langgate service registry" {
		t.Fatalf("schema title=%v", doc["title"])
	}
	props, ok := doc["properties"].(map[string]any)
	if !ok {
		t.Fatalf("schema has no properties: %s", b)
	}
	if _, ok := props["available"]; !ok {
		t.Fatalf("schema missing available: %s", b)
	}
	if _, ok := props["global"]; !ok {
		t.Fatalf("schema missing global: %s", b)
	}
}
