package manim

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/scenesmith/scenesmith/internal/core"
	apperrors "github.com/scenesmith/scenesmith/internal/errors"
)

// Locator finds the media file a renderer run left beneath a scratch
// directory. The renderer decides its own nested layout, so discovery works
// from the filesystem state alone.
type Locator struct {
	format string
}

var _ core.OutputLocator = (*Locator)(nil)

// NewLocator creates a Locator for the given output format (file extension
// without the dot).
func NewLocator(format string) *Locator {
	return &Locator{format: strings.TrimPrefix(format, ".")}
}

// Locate returns the best candidate file for sceneName under root.
// Files whose name contains the scene name beat those that don't; within a
// tier the newest modification time wins. Returns an artifact_not_found
// error when root is missing or holds no file with the expected extension.
func (l *Locator) Locate(ctx context.Context, root, sceneName string) (string, error) {
	ext := "." + l.format

	var (
		bestMatch    string
		bestMatchMod time.Time
		bestAny      string
		bestAnyMod   time.Time
	)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ext) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		mod := info.ModTime()

		if sceneName != "" && strings.Contains(d.Name(), sceneName) {
			if bestMatch == "" || mod.After(bestMatchMod) {
				bestMatch, bestMatchMod = path, mod
			}
		}
		if bestAny == "" || mod.After(bestAnyMod) {
			bestAny, bestAnyMod = path, mod
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return "", apperrors.ArtifactNotFound("Rendered video file not found.")
		}
		return "", err
	}

	if bestMatch != "" {
		return bestMatch, nil
	}
	if bestAny != "" {
		return bestAny, nil
	}
	return "", apperrors.ArtifactNotFound("Rendered video file not found.")
}
