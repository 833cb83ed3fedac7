// Package storage implements the file operations of the service: uploads,
// downloads, metadata lookups, top-files queries and report generation.
package storage

import (
	"context"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/filestorage/internal/metadata"
)

// MetadataStore persists directory and file records.
// metadata.PgStore and metadata.MemStore implement it.
type MetadataStore interface {
	EnsureDirectory(ctx context.Context, dirName string) error
	UpsertFile(ctx context.Context, rec *metadata.FileRecord) error
	GetFile(ctx context.Context, id int64) (*metadata.FileRecord, error)
	TopFiles(ctx context.Context, dirName string, limit int) ([]metadata.FileRecord, error)
}

// Reconciler records a file that was just written to the blob store.
type Reconciler struct {
	store MetadataStore
}

// NewReconciler returns a Reconciler writing to store.
func NewReconciler(store MetadataStore) *Reconciler {
	return &Reconciler{store: store}
}

// Reconcile makes sure dirName exists and upserts the (fileName, dirName)
// record with byteCount. It returns the record id, which stays the same for
// every later upload of the same pair. An empty dirName means the root
// directory.
//
// Call it only after the blob write succeeded.
func (r *Reconciler) Reconcile(ctx context.Context, dirName, fileName string, byteCount int64) (int64, error) {
	if dirName == "" {
		dirName = metadata.RootDir
	}
	if fileName == "" {
		return 0, errInvalidName("file_name", fileName)
	}
	if byteCount < 0 {
		return 0, errx.New("byte count must not be negative", errx.WithDetails(errx.D{"byte_count": byteCount}))
	}

	if err := r.store.EnsureDirectory(ctx, dirName); err != nil {
		return 0, errx.Wrap(err)
	}

	rec := &metadata.FileRecord{FileName: fileName, DirName: dirName, FileSize: byteCount}
	if err := r.store.UpsertFile(ctx, rec); err != nil {
		return 0, errx.Wrap(err)
	}

	return rec.ID, nil
}
