package data

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/scenesmith/scenesmith/config"
	"github.com/scenesmith/scenesmith/internal/domain/model"
	apperrors "github.com/scenesmith/scenesmith/internal/errors"
)

// FSArtifactStore keeps published render outputs as plain files under a
// single directory. Publication is a move out of the job's scratch area,
// so a file is either fully present in the store or not present at all.
type FSArtifactStore struct {
	dir string
}

// NewFSArtifactStore creates the store directory if needed and returns a
// store rooted at cfg.Dir.
func NewFSArtifactStore(cfg config.ArtifactConfig) (*FSArtifactStore, error) {
	if cfg.Dir == "" {
		return nil, errors.New("artifact directory is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
		return nil, fmt.Errorf("create artifact directory: %w", err)
	}
	return &FSArtifactStore{dir: cfg.Dir}, nil
}

// Dir returns the directory artifacts are stored under.
func (s *FSArtifactStore) Dir() string {
	return s.dir
}

// Publish moves the file at srcPath into the store under filename.
// An existing artifact with the same filename is replaced.
func (s *FSArtifactStore) Publish(_ context.Context, srcPath, filename string) (*model.Artifact, error) {
	if !artifactNameOK(filename) {
		return nil, apperrors.Validation("Invalid artifact filename.")
	}

	dst := filepath.Join(s.dir, filename)
	if err := moveFile(srcPath, dst); err != nil {
		return nil, fmt.Errorf("publish artifact: %w", err)
	}

	info, err := os.Stat(dst)
	if err != nil {
		return nil, fmt.Errorf("stat published artifact: %w", err)
	}

	return &model.Artifact{
		ID:        strings.TrimSuffix(filename, filepath.Ext(filename)),
		Filename:  filename,
		Path:      dst,
		Size:      info.Size(),
		CreatedAt: info.ModTime(),
	}, nil
}

// Open returns a reader over the stored artifact. Unknown filenames and
// names with path elements both come back as not_found; callers get no
// signal about what exists outside the store.
func (s *FSArtifactStore) Open(_ context.Context, filename string) (io.ReadSeekCloser, *model.Artifact, error) {
	if !artifactNameOK(filename) {
		return nil, nil, apperrors.NotFound("File not found.")
	}

	path := filepath.Join(s.dir, filename)
	f, err := os.Open(path) // #nosec G304 -- path is store dir + validated bare filename
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, apperrors.NotFound("File not found.")
		}
		return nil, nil, fmt.Errorf("open artifact: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("stat artifact: %w", err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, nil, apperrors.NotFound("File not found.")
	}

	artifact := &model.Artifact{
		ID:        strings.TrimSuffix(filename, filepath.Ext(filename)),
		Filename:  filename,
		Path:      path,
		Size:      info.Size(),
		CreatedAt: info.ModTime(),
	}
	return f, artifact, nil
}

// artifactNameOK reports whether name is a bare filename with no path elements.
func artifactNameOK(name string) bool {
	return name != "" && name != "." && name != ".." && name == filepath.Base(name)
}

// moveFile renames src to dst, falling back to copy+remove when the two
// paths live on different filesystems (scratch on tmpfs, store on disk).
func moveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}

	if err := copyFile(src, dst); err != nil {
		return err
	}
	// Scratch cleanup sweeps the source directory regardless, so a failed
	// remove here only leaves a file the janitor will collect.
	_ = os.Remove(src)
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src) // #nosec G304 -- src is a path inside the job scratch directory
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o640) // #nosec G304 -- dst is store dir + validated filename
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
