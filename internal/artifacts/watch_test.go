package artifacts

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const watchRegistryV1 = `
[available.grammar.se]
name = "North Sámi"
port = 5001
`

const watchRegistryV2 = `
[available.grammar.se]
name = "North Sámi"
port = 5001

[available.grammar.sma]
name = "South Sámi"
port = 5002
`

type generated struct {
	res Result
	err error
}

func TestWatcher_RegeneratesOnChange(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	regPath := filepath.Join(srcDir, "languages.toml")
	require.NoError(t, os.WriteFile(regPath, []byte(watchRegistryV1), 0o600))

	events := make(chan generated, 8)
	w, err := NewWatcher(WatchOptions{
		RegistryPath: regPath,
		OutDir:       outDir,
		Debounce:     100 * time.Millisecond,
		OnGenerate: func(res Result, err error) {
			events <- generated{res: res, err: err}
		},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	require.NoError(t, os.WriteFile(regPath, []byte(watchRegistryV2), 0o600))

	select {
	case ev := <-events:
		require.NoError(t, ev.err)
		require.Equal(t, 2, ev.res.Locations)
		b, err := os.ReadFile(filepath.Join(outDir, "locations.conf"))
		require.NoError(t, err)
		require.True(t, strings.Contains(string(b), "location /grammar/sma {"), "locations.conf=%s", b)
	case <-time.After(5 * time.Second):
		t.Fatalf("no regeneration after registry change")
	}
}

func TestWatcher_BrokenRegistryKeepsArtifacts(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	regPath := filepath.Join(srcDir, "languages.toml")
	require.NoError(t, os.WriteFile(regPath, []byte(watchRegistryV1), 0o600))

	events := make(chan generated, 8)
	w, err := NewWatcher(WatchOptions{
		RegistryPath: regPath,
		OutDir:       outDir,
		Debounce:     100 * time.Millisecond,
		OnGenerate: func(res Result, err error) {
			events <- generated{res: res, err: err}
		},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	require.NoError(t, os.WriteFile(regPath, []byte("[available.grammar.se]\nname = \"x\"\n"), 0o600))

	select {
	case ev := <-events:
		require.Error(t, ev.err)
		_, statErr := os.Stat(filepath.Join(outDir, "locations.conf"))
		require.True(t, os.IsNotExist(statErr), "failed reload must not write artifacts")
	case <-time.After(5 * time.Second):
		t.Fatalf("no regeneration attempt after registry change")
	}
}

func TestNewWatcher_RequiresRegistryPath(t *testing.T) {
	_, err := NewWatcher(WatchOptions{OutDir: t.TempDir()})
	require.Error(t, err)
}
