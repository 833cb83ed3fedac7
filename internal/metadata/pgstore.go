package metadata

import (
	"context"

	"github.com/code19m/errx"
	"github.com/uptrace/bun"

	"github.com/rise-and-shine/filestorage/internal/pg"
)

const constraintFilesDirFK = "files_dir_name_fkey"

// PgStore keeps metadata in PostgreSQL.
type PgStore struct {
	db bun.IDB
}

// NewPgStore returns a PgStore running its statements on db.
func NewPgStore(db bun.IDB) *PgStore {
	return &PgStore{db: db}
}

// EnsureDirectory inserts dirName unless it already exists.
func (s *PgStore) EnsureDirectory(ctx context.Context, dirName string) error {
	q := s.db.NewInsert().
		Model(&Directory{DirName: dirName}).
		On("CONFLICT (dir_name) DO NOTHING").
		Returning("NULL")

	if _, err := q.Exec(ctx); err != nil {
		return errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}
	return nil
}

// UpsertFile inserts the record or, when (FileName, DirName) already exists,
// replaces its size and refreshes UpdatedAt. Both branches run as one
// statement. rec receives the id and timestamps stored in the database.
func (s *PgStore) UpsertFile(ctx context.Context, rec *FileRecord) error {
	q := s.db.NewInsert().
		Model(rec).
		On("CONFLICT (file_name, dir_name) DO UPDATE").
		Set("file_size = EXCLUDED.file_size").
		Set("updated_at = CURRENT_TIMESTAMP").
		Returning("id, created_at, updated_at")

	if _, err := q.Exec(ctx); err != nil {
		if pg.ConstraintName(err) == constraintFilesDirFK {
			return errx.Wrap(errDirectoryMissing(rec.DirName), errx.WithDetails(pg.GetPgErrorDetails(err, q)))
		}
		return errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}
	return nil
}

// GetFile returns the record with the given id.
func (s *PgStore) GetFile(ctx context.Context, id int64) (*FileRecord, error) {
	rec := new(FileRecord)
	q := s.db.NewSelect().Model(rec).Where("f.id = ?", id)

	if err := q.Scan(ctx); err != nil {
		if pg.IsNotFound(err) {
			return nil, errFileNotFound(id)
		}
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}
	return rec, nil
}

// TopFiles returns up to limit records ordered by size, largest first. An
// empty dirName searches every directory.
func (s *PgStore) TopFiles(ctx context.Context, dirName string, limit int) ([]FileRecord, error) {
	recs := make([]FileRecord, 0, limit)
	q := s.db.NewSelect().Model(&recs)
	if dirName != "" {
		q = q.Where("f.dir_name = ?", dirName)
	}
	q = q.OrderExpr("f.file_size DESC, f.id ASC").Limit(limit)

	if err := q.Scan(ctx); err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}
	return recs, nil
}
