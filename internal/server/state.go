package server

import (
	"time"

	"github.com/r9s-ai/langgate/pkg/docpage"
	"github.com/r9s-ai/langgate/pkg/registry"
)

// state is everything handlers read. It is built once before the listener
// starts and never written afterwards, so handlers share it without locks.
type state struct {
	reg       *registry.Registry
	indexHTML []byte
	startedAt time.Time
}

func newState(reg *registry.Registry, template string) *state {
	return &state{
		reg:       reg,
		indexHTML: []byte(docpage.Render(template, reg)),
		startedAt: time.Now(),
	}
}
