package metadata

import (
	"context"

	"github.com/code19m/errx"
	"github.com/uptrace/bun"

	"github.com/rise-and-shine/filestorage/internal/pg"
)

const indexFilesDirSize = "files_dir_name_file_size_idx"

// Bootstrap creates the metadata tables when they are missing and seeds the
// root directory. It is safe to run on every start.
func Bootstrap(ctx context.Context, db bun.IDB) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		dirs := tx.NewCreateTable().
			Model((*Directory)(nil)).
			IfNotExists()
		if _, err := dirs.Exec(ctx); err != nil {
			return errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, dirs)))
		}

		files := tx.NewCreateTable().
			Model((*FileRecord)(nil)).
			IfNotExists().
			ForeignKey(`("dir_name") REFERENCES "directories" ("dir_name")`)
		if _, err := files.Exec(ctx); err != nil {
			return errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, files)))
		}

		idx := tx.NewCreateIndex().
			Model((*FileRecord)(nil)).
			Index(indexFilesDirSize).
			IfNotExists().
			ColumnExpr("dir_name, file_size DESC")
		if _, err := idx.Exec(ctx); err != nil {
			return errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, idx)))
		}

		return NewPgStore(tx).EnsureDirectory(ctx, RootDir)
	})
}
