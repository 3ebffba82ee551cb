// Package snapshot writes the composited frame to disk.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

var ErrNoFrame = errors.New("no frame to save")

// Save encodes img at path; the format follows the file extension.
// png, jpg, and webp are supported.
func Save(img image.Image, path string) error {
	if img == nil {
		return ErrNoFrame
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".webp":
		return saveWebP(img, path)
	case ".png", ".jpg", ".jpeg":
		if err := imaging.Save(img, path); err != nil {
			return fmt.Errorf("saving snapshot: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported snapshot format %q", ext)
	}
}

func saveWebP(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	defer f.Close()

	if err := webp.Encode(f, img, &webp.Options{Lossless: true}); err != nil {
		return fmt.Errorf("encoding webp: %w", err)
	}
	return nil
}
