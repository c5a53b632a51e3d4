// Package debug holds helpers for inspecting emulator output.
package debug

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/valerio/go-dotmatrix/dotmatrix/video"
)

// FrameImage converts the presented frame to a grayscale image.
func FrameImage(frame *video.FrameBuffer) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, video.FramebufferWidth, video.FramebufferHeight))
	for i, c := range frame.Pixels() {
		img.SetGray(i%video.FramebufferWidth, i/video.FramebufferWidth, color.Gray{Y: c.Gray()})
	}
	return img
}

// WritePNG encodes frame as PNG into w.
func WritePNG(w io.Writer, frame *video.FrameBuffer) error {
	if err := png.Encode(w, FrameImage(frame)); err != nil {
		return fmt.Errorf("encode PNG: %w", err)
	}
	return nil
}

// SavePNG writes frame to dir/baseName.png and returns the file path.
func SavePNG(frame *video.FrameBuffer, dir, baseName string) (string, error) {
	path := filepath.Join(dir, baseName+".png")
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create snapshot: %w", err)
	}
	defer file.Close()

	if err := WritePNG(file, frame); err != nil {
		return "", err
	}
	slog.Debug("snapshot saved", "path", path)
	return path, nil
}
