package headless_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-dotmatrix/dotmatrix/backend"
	"github.com/valerio/go-dotmatrix/dotmatrix/backend/headless"
	"github.com/valerio/go-dotmatrix/dotmatrix/video"
)

var _ backend.Backend = (*headless.Backend)(nil)

func TestHeadlessQuitsAfterFrames(t *testing.T) {
	h := headless.New(3, headless.SnapshotConfig{})
	require.NoError(t, h.Init(backend.Config{Title: "test"}))

	frame := video.NewFrameBuffer()
	for i := 0; i < 2; i++ {
		events, err := h.Update(frame)
		require.NoError(t, err)
		assert.Empty(t, events)
	}

	events, err := h.Update(frame)
	require.NoError(t, err)
	assert.Equal(t, []backend.InputEvent{backend.Quit}, events)
	assert.Equal(t, 3, h.Frames())
	assert.NoError(t, h.Cleanup())
}

func TestHeadlessRejectsZeroFrames(t *testing.T) {
	h := headless.New(0, headless.SnapshotConfig{})
	assert.Error(t, h.Init(backend.Config{}))
}

func TestHeadlessSnapshots(t *testing.T) {
	dir := t.TempDir()
	config, err := headless.CreateSnapshotConfig(2, dir, "/roms/tetris.gb")
	require.NoError(t, err)
	assert.Equal(t, "tetris", config.ROMName)

	h := headless.New(5, config)
	require.NoError(t, h.Init(backend.Config{}))

	frame := video.NewFrameBuffer()
	for i := 0; i < 5; i++ {
		_, err := h.Update(frame)
		require.NoError(t, err)
	}

	for _, name := range []string{"tetris_frame_2.png", "tetris_frame_4.png", "tetris_frame_5.png"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestCreateSnapshotConfigDisabled(t *testing.T) {
	config, err := headless.CreateSnapshotConfig(0, "", "rom.gb")
	require.NoError(t, err)
	assert.False(t, config.Enabled)
	assert.Empty(t, config.Directory)
}

func TestCreateSnapshotConfigTempDir(t *testing.T) {
	config, err := headless.CreateSnapshotConfig(1, "", "rom.gb")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(config.Directory) })

	info, err := os.Stat(config.Directory)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
