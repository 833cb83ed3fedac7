// Package blob defines where uploaded file bytes live.
//
// A blob is addressed by a directory name and a file name, both single path
// elements. The directory "." is the storage root.
package blob

import (
	"context"
	"io"
	"path"

	"github.com/code19m/errx"
)

// RootDir is the directory name of the storage root.
const RootDir = "."

// Error codes of blob stores.
const (
	// CodeFileNotFound is returned when no blob exists at the requested location.
	CodeFileNotFound = "FILE_NOT_FOUND"
	// CodeNameConflict is returned when a file and a directory would share a name.
	CodeNameConflict = "NAME_CONFLICT"
)

// Store persists and retrieves file contents.
// Implementations must be safe for concurrent use.
type Store interface {
	// Write stores the contents of r as dir/name, replacing any previous
	// blob there and creating the directory when missing. It returns the
	// number of bytes written.
	Write(ctx context.Context, dir, name string, r io.Reader) (int64, error)

	// Read returns the full contents of dir/name.
	Read(ctx context.Context, dir, name string) ([]byte, error)

	// Exists reports whether dir/name is present.
	Exists(ctx context.Context, dir, name string) (bool, error)
}

// Key joins dir and name into a slash separated location. Blobs of the root
// directory have no prefix.
func Key(dir, name string) string {
	if dir == "" || dir == RootDir {
		return name
	}
	return path.Join(dir, name)
}

// ErrNotFound builds the not-found error for dir/name.
func ErrNotFound(dir, name string) error {
	return errx.New(
		"file not found",
		errx.WithCode(CodeFileNotFound),
		errx.WithType(errx.T_NotFound),
		errx.WithDetails(errx.D{"path": Key(dir, name)}),
	)
}

// ErrNameConflict builds the error for a write whose directory name is taken
// by a file, or whose file name is taken by a directory.
func ErrNameConflict(dir, name string) error {
	return errx.New(
		"a file and a directory cannot share a name",
		errx.WithCode(CodeNameConflict),
		errx.WithType(errx.T_Conflict),
		errx.WithDetails(errx.D{"path": Key(dir, name)}),
	)
}
