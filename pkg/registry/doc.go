// Package registry is the typed model of the langgate service registry and
// its ingestion from TOML or YAML documents.
//
// A Registry lists, per category, the language tags that have a backend:
// grammar checkers, spell checkers and hyphenators each run one backend per
// language on its own port, while every text-to-speech voice is served by a
// single backend on Global.TTSPort and is told apart by model and optional
// speaker/language ids.
//
// A Registry is built once by Parse, Load or Default and is never mutated
// afterwards, so it can be shared between goroutines without locking.
// Go maps have no defined order: callers that render or compile a Registry
// iterate through SortedTags and (TtsEntry).SortedVoiceIDs.
package registry
