// Package local implements blob.Store on a filesystem tree.
//
// Every directory name maps to a sub-folder of the data dir, and the root
// directory "." maps to the data dir itself.
package local

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/code19m/errx"
	"github.com/spf13/afero"

	"github.com/rise-and-shine/filestorage/internal/blob"
)

const (
	dirPerm     = 0o755
	filePerm    = 0o644
	tempPattern = ".upload-*"
)

var _ blob.Store = (*Store)(nil)

// Store keeps blobs as plain files.
type Store struct {
	fs afero.Fs
}

// New creates the data dir if needed and returns a Store rooted at it.
func New(cfg Config) (*Store, error) {
	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(cfg.DataDir, dirPerm); err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(errx.D{"data_dir": cfg.DataDir}))
	}
	return NewWithFs(afero.NewBasePathFs(osFs, cfg.DataDir)), nil
}

// NewWithFs returns a Store whose root is the root of fs.
func NewWithFs(fs afero.Fs) *Store {
	return &Store{fs: fs}
}

// Write streams r into a temporary file next to the target and renames it
// into place, so readers never observe a half written blob.
func (s *Store) Write(_ context.Context, dir, name string, r io.Reader) (int64, error) {
	folder := folderOf(dir)
	if err := s.fs.MkdirAll(folder, dirPerm); err != nil {
		if isNameClash(err) {
			return 0, blob.ErrNameConflict(dir, name)
		}
		return 0, errx.Wrap(err, errx.WithDetails(errx.D{"dir": dir}))
	}

	tmp, err := afero.TempFile(s.fs, folder, tempPattern)
	if err != nil {
		return 0, errx.Wrap(err, errx.WithDetails(errx.D{"dir": dir}))
	}
	tmpName := tmp.Name()

	n, err := io.Copy(tmp, r)
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = s.fs.Remove(tmpName)
		return 0, errx.Wrap(err, errx.WithDetails(errx.D{"path": blob.Key(dir, name)}))
	}

	if err = s.fs.Chmod(tmpName, filePerm); err != nil {
		_ = s.fs.Remove(tmpName)
		return 0, errx.Wrap(err, errx.WithDetails(errx.D{"path": blob.Key(dir, name)}))
	}

	if err = s.fs.Rename(tmpName, filepath.Join(folder, name)); err != nil {
		_ = s.fs.Remove(tmpName)
		if isNameClash(err) {
			return 0, blob.ErrNameConflict(dir, name)
		}
		return 0, errx.Wrap(err, errx.WithDetails(errx.D{"path": blob.Key(dir, name)}))
	}

	return n, nil
}

// Read returns the contents of dir/name.
func (s *Store) Read(_ context.Context, dir, name string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, filepath.Join(folderOf(dir), name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, blob.ErrNotFound(dir, name)
		}
		return nil, errx.Wrap(err, errx.WithDetails(errx.D{"path": blob.Key(dir, name)}))
	}
	return data, nil
}

// Exists reports whether dir/name is a regular file.
func (s *Store) Exists(_ context.Context, dir, name string) (bool, error) {
	info, err := s.fs.Stat(filepath.Join(folderOf(dir), name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errx.Wrap(err, errx.WithDetails(errx.D{"path": blob.Key(dir, name)}))
	}
	return !info.IsDir(), nil
}

// isNameClash reports a path component that is a file where a directory is
// needed, or the reverse.
func isNameClash(err error) bool {
	// os.Rename reports a directory target as EEXIST
	return errors.Is(err, syscall.ENOTDIR) || errors.Is(err, syscall.EISDIR) || errors.Is(err, syscall.EEXIST)
}

func folderOf(dir string) string {
	if dir == "" {
		return blob.RootDir
	}
	return dir
}
