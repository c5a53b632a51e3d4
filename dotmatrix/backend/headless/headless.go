// Package headless is a backend with no output, for batch runs and CI. It
// quits after a fixed number of frames and can dump PNG snapshots on the way.
package headless

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/valerio/go-dotmatrix/dotmatrix/backend"
	"github.com/valerio/go-dotmatrix/dotmatrix/debug"
	"github.com/valerio/go-dotmatrix/dotmatrix/video"
)

// progressInterval is how often, in frames, progress is logged.
const progressInterval = 10

// SnapshotConfig controls PNG output.
type SnapshotConfig struct {
	Enabled   bool
	Interval  int    // every N frames
	Directory string
	ROMName   string // file name prefix
}

type Backend struct {
	frameCount int
	maxFrames  int
	snapshots  SnapshotConfig
}

func New(maxFrames int, snapshots SnapshotConfig) *Backend {
	return &Backend{maxFrames: maxFrames, snapshots: snapshots}
}

func (h *Backend) Init(config backend.Config) error {
	if h.maxFrames <= 0 {
		return fmt.Errorf("headless backend needs a positive frame count, got %d", h.maxFrames)
	}
	slog.Info("running headless",
		"title", config.Title,
		"frames", h.maxFrames,
		"snapshot_interval", h.snapshots.Interval,
		"snapshot_dir", h.snapshots.Directory)
	return nil
}

func (h *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	h.frameCount++

	snapped := false
	if h.snapshots.Enabled && h.frameCount%h.snapshots.Interval == 0 {
		h.saveSnapshot(frame)
		snapped = true
	}

	if h.frameCount%progressInterval == 0 {
		slog.Info("frame progress", "completed", h.frameCount, "total", h.maxFrames)
	}

	if h.frameCount < h.maxFrames {
		return nil, nil
	}

	// always leave a picture of the last frame behind
	if h.snapshots.Enabled && !snapped {
		h.saveSnapshot(frame)
	}
	slog.Info("headless run completed", "frames", h.frameCount, "snapshot_dir", h.snapshots.Directory)
	return []backend.InputEvent{backend.Quit}, nil
}

func (h *Backend) Cleanup() error {
	return nil
}

// Frames returns how many frames were presented.
func (h *Backend) Frames() int { return h.frameCount }

// CreateSnapshotConfig builds a SnapshotConfig from CLI parameters. An
// interval of 0 disables snapshots; an empty directory picks a temporary one.
func CreateSnapshotConfig(interval int, directory, romPath string) (SnapshotConfig, error) {
	config := SnapshotConfig{Enabled: interval > 0, Interval: interval}
	if !config.Enabled {
		return config, nil
	}

	if directory == "" {
		dir, err := os.MkdirTemp("", "dotmatrix-snapshots-*")
		if err != nil {
			return config, fmt.Errorf("create snapshot directory: %w", err)
		}
		directory = dir
	} else if err := os.MkdirAll(directory, 0o755); err != nil {
		return config, fmt.Errorf("create snapshot directory: %w", err)
	}
	config.Directory = directory

	name := filepath.Base(romPath)
	config.ROMName = strings.TrimSuffix(name, filepath.Ext(name))
	return config, nil
}

func (h *Backend) saveSnapshot(frame *video.FrameBuffer) {
	name := fmt.Sprintf("%s_frame_%d", h.snapshots.ROMName, h.frameCount)
	if _, err := debug.SavePNG(frame, h.snapshots.Directory, name); err != nil {
		slog.Warn("failed to save snapshot", "frame", h.frameCount, "error", err)
	}
}
