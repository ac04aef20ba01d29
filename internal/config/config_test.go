package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrinehq/vitrine/internal/config"
)

const sampleConfig = `
site:
  experience: immersive
  transition:
    id: wipe
    settings:
      exitDurationMs: 150
pages:
  about:
    transition:
      id: fade
  gallery:
    sectionBehaviours:
      hero:
        - id: scroll/parallax
          options:
            depth: 0.5
`

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "vitrine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, t.TempDir(), sampleConfig)

	f, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "immersive", f.Site.Experience)
	require.NotNil(t, f.Site.Transition)
	assert.Equal(t, "wipe", f.Site.Transition.ID)
	assert.Equal(t, 150, f.Site.Transition.Settings["exitDurationMs"])

	about := f.Page("about")
	require.NotNil(t, about.Transition)
	assert.Equal(t, "fade", about.Transition.ID)

	gallery := f.Page("gallery")
	require.Len(t, gallery.SectionBehaviours["hero"], 1)
	assert.Equal(t, "scroll/parallax", gallery.SectionBehaviours["hero"][0].ID)

	// Unknown pages fall back to the zero config.
	assert.Empty(t, f.Page("missing").Experience)
	assert.Nil(t, f.Page("missing").Transition)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "site: [unclosed")
	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestWatcherSignalsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, sampleConfig)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := config.NewWatcher(dir).Watch(ctx)
	require.NoError(t, err)

	// Give the watcher a moment to attach before writing.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig+"\n"), 0o644))

	select {
	case _, ok := <-ch:
		assert.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a reload signal after the config changed")
	}
}

func TestWatcherIgnoresNonConfigFiles(t *testing.T) {
	dir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := config.NewWatcher(dir).Watch(ctx)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644))

	select {
	case <-ch:
		t.Fatal("non-config writes must not signal a reload")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherClosesOnCancel(t *testing.T) {
	dir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := config.NewWatcher(dir).Watch(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel should close after cancel")
	case <-time.After(2 * time.Second):
		t.Fatal("channel did not close after cancel")
	}
}
