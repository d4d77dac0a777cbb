package registry

import (
	"fmt"
	"strings"
)

// Category identifies the public path prefix and documentation section of a
// registry entry.
type Category int

const (
	Grammar Category = iota
	Speller
	Hyphenation
	TextToSpeech
)

var categoryNames = [...]string{
	Grammar:      "grammar",
	Speller:      "speller",
	Hyphenation:  "hyphenation",
	TextToSpeech: "tts",
}

// Categories returns every category in render order.
func Categories() []Category {
	return []Category{Grammar, Speller, Hyphenation, TextToSpeech}
}

// String returns the public path prefix of the category.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseCategory accepts a path prefix ("grammar", "tts", ...) case-insensitively.
func ParseCategory(s string) (Category, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for i, name := range categoryNames {
		if name == v {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown category %q (expect: grammar|speller|hyphenation|tts)", s)
}

func (c Category) MarshalText() ([]byte, error) {
	if c < 0 || int(c) >= len(categoryNames) {
		return nil, fmt.Errorf("unknown category %d", int(c))
	}
	return []byte(categoryNames[c]), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	v, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
