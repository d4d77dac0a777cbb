package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/r9s-ai/langgate/pkg/registry"
	"github.com/r9s-ai/langgate/pkg/routes"
)

func defaultRoutes(t *testing.T) []routes.RouteSpec {
	t.Helper()
	reg, err := registry.Default()
	if err != nil {
		t.Fatalf("Default err=%v", err)
	}
	return routes.Compile(reg)
}

func press(m model, key string) (model, tea.Cmd) {
	var msg tea.KeyMsg
	switch key {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return next.(model), cmd
}

func TestModel_StartsUnfiltered(t *testing.T) {
	rs := defaultRoutes(t)
	m := newModel(rs)
	if len(m.visible) != len(rs) {
		t.Fatalf("visible=%d want=%d", len(m.visible), len(rs))
	}
	if r, ok := m.selected(); !ok || r.PublicPath != rs[0].PublicPath {
		t.Fatalf("selected=%+v ok=%v", r, ok)
	}
}

func TestModel_TabCyclesCategories(t *testing.T) {
	rs := defaultRoutes(t)
	m := newModel(rs)
	counts := routes.CountByCategory(rs)

	for _, c := range registry.Categories() {
		m, _ = press(m, "tab")
		if m.filterLabel() != c.String() {
			t.Fatalf("filter=%q want=%q", m.filterLabel(), c.String())
		}
		if len(m.visible) != counts[c] {
			t.Fatalf("%s visible=%d want=%d", c, len(m.visible), counts[c])
		}
		for _, r := range m.visible {
			if r.Category != c {
				t.Fatalf("%s filter shows %s route %s", c, r.Category, r.PublicPath)
			}
		}
	}
	m, _ = press(m, "tab")
	if m.filterLabel() != "all" || len(m.visible) != len(rs) {
		t.Fatalf("filter did not wrap: %q visible=%d", m.filterLabel(), len(m.visible))
	}
}

func TestModel_DetailFollowsCursor(t *testing.T) {
	rs := defaultRoutes(t)
	m := newModel(rs)
	m, _ = press(m, "down")
	if r, _ := m.selected(); r.PublicPath != rs[1].PublicPath {
		t.Fatalf("selected=%s want=%s", r.PublicPath, rs[1].PublicPath)
	}
	view := m.View()
	if !strings.Contains(view, "location "+rs[1].PublicPath+" {") {
		t.Fatalf("detail pane lacks location block for %s", rs[1].PublicPath)
	}
}

func TestModel_QuitKeys(t *testing.T) {
	for _, key := range []string{"q", "ctrl+c"} {
		_, cmd := press(newModel(defaultRoutes(t)), key)
		if cmd == nil {
			t.Fatalf("%s: expected quit cmd", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%s: expected tea.QuitMsg", key)
		}
	}
}

func TestModel_EmptyRoutes(t *testing.T) {
	m := newModel(nil)
	if _, ok := m.selected(); ok {
		t.Fatalf("expected no selection")
	}
	if !strings.Contains(m.View(), "no routes") {
		t.Fatalf("empty view should say no routes")
	}
}
