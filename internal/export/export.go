// Package export hands bundle fields to the clipboard and the filesystem.
// Content is written verbatim as UTF-8 text.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"

	"aiupstart.com/snapcode"
	"aiupstart.com/snapcode/internal/utils"
)

// Clipboard is a clipboard-write capability.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard is not supported on this system")
	}
	return clipboard.WriteAll(text)
}

// Copy writes one part of b to cb.
func Copy(cb Clipboard, b snapcode.CodeBundle, part snapcode.Part) error {
	if part.Filename() == "" {
		return fmt.Errorf("unknown bundle part %q", part)
	}
	if err := cb.WriteAll(b.Get(part)); err != nil {
		return fmt.Errorf("copying %s to clipboard: %w", part, err)
	}
	utils.Logger.Debug().Str("module", "export").Str("part", string(part)).Msg("copied to clipboard")
	return nil
}

// SaveFile writes one part of b into dir under its download name and returns
// the written path. dir is created if needed.
func SaveFile(dir string, b snapcode.CodeBundle, part snapcode.Part) (string, error) {
	name := part.Filename()
	if name == "" {
		return "", fmt.Errorf("unknown bundle part %q", part)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output dir %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := utils.WriteFileAtomic(path, []byte(b.Get(part)), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// Save writes all three parts into dir and returns the paths in part order.
func Save(dir string, b snapcode.CodeBundle) ([]string, error) {
	paths := make([]string, 0, len(snapcode.Parts))
	for _, part := range snapcode.Parts {
		path, err := SaveFile(dir, b, part)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	utils.Logger.Info().Str("module", "export").Str("dir", dir).Msg("bundle saved")
	return paths, nil
}
