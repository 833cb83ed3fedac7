package metadata_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/code19m/errx"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"github.com/rise-and-shine/filestorage/internal/metadata"
)

func newMockDB(t *testing.T) (*bun.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db := bun.NewDB(sqlDB, pgdialect.New())
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func TestPgStore_EnsureDirectory(t *testing.T) {
	db, mock := newMockDB(t)
	store := metadata.NewPgStore(db)

	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO "directories" AS "d" ("id", "dir_name") VALUES (DEFAULT, 'docs') ON CONFLICT (dir_name) DO NOTHING`,
	)).WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.EnsureDirectory(context.Background(), "docs"))
}

func TestPgStore_UpsertFile(t *testing.T) {
	upsertQuery := regexp.QuoteMeta(`INSERT INTO "files" AS "f" `) + `.*` +
		regexp.QuoteMeta(`VALUES (DEFAULT, 'report.txt', 'docs', 42, DEFAULT, DEFAULT) `+
			`ON CONFLICT (file_name, dir_name) DO UPDATE SET file_size = EXCLUDED.file_size, `+
			`updated_at = CURRENT_TIMESTAMP RETURNING id, created_at, updated_at`)

	t.Run("returns stored id and timestamps", func(t *testing.T) {
		db, mock := newMockDB(t)
		store := metadata.NewPgStore(db)

		created := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
		updated := created.Add(time.Hour)
		mock.ExpectQuery(upsertQuery).WillReturnRows(
			sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(7, created, updated),
		)

		rec := &metadata.FileRecord{FileName: "report.txt", DirName: "docs", FileSize: 42}
		require.NoError(t, store.UpsertFile(context.Background(), rec))

		assert.Equal(t, int64(7), rec.ID)
		assert.True(t, created.Equal(rec.CreatedAt))
		assert.True(t, updated.Equal(rec.UpdatedAt))
	})

	t.Run("missing directory", func(t *testing.T) {
		db, mock := newMockDB(t)
		store := metadata.NewPgStore(db)

		mock.ExpectQuery(upsertQuery).WillReturnError(&pgconn.PgError{
			Code:           "23503",
			ConstraintName: "files_dir_name_fkey",
		})

		rec := &metadata.FileRecord{FileName: "report.txt", DirName: "docs", FileSize: 42}
		err := store.UpsertFile(context.Background(), rec)
		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, metadata.CodeDirectoryMissing))
	})

	t.Run("driver failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		store := metadata.NewPgStore(db)

		mock.ExpectQuery(upsertQuery).WillReturnError(&pgconn.PgError{Code: "57P01", Message: "terminating connection"})

		rec := &metadata.FileRecord{FileName: "report.txt", DirName: "docs", FileSize: 42}
		err := store.UpsertFile(context.Background(), rec)
		require.Error(t, err)
		assert.False(t, errx.IsCodeIn(err, metadata.CodeDirectoryMissing))
		assert.Equal(t, "57P01", errx.AsErrorX(err).Details()["pg.code"])
	})
}

func TestPgStore_GetFile(t *testing.T) {
	query := `SELECT .* FROM "files" AS "f" WHERE \(f\.id = 7\)`

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		store := metadata.NewPgStore(db)

		ts := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
		mock.ExpectQuery(query).WillReturnRows(
			sqlmock.NewRows([]string{"id", "file_name", "dir_name", "file_size", "created_at", "updated_at"}).
				AddRow(7, "a.txt", ".", 12, ts, ts),
		)

		rec, err := store.GetFile(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), rec.ID)
		assert.Equal(t, "a.txt", rec.FileName)
		assert.Equal(t, ".", rec.DirName)
		assert.Equal(t, int64(12), rec.FileSize)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		store := metadata.NewPgStore(db)

		mock.ExpectQuery(query).WillReturnRows(
			sqlmock.NewRows([]string{"id", "file_name", "dir_name", "file_size", "created_at", "updated_at"}),
		)

		_, err := store.GetFile(context.Background(), 7)
		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, metadata.CodeFileNotFound))
	})
}

func TestPgStore_TopFiles(t *testing.T) {
	columns := []string{"id", "file_name", "dir_name", "file_size", "created_at", "updated_at"}
	ts := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		dir   string
		query string
	}{
		{
			name:  "scoped to a directory",
			dir:   "docs",
			query: `SELECT .* FROM "files" AS "f" WHERE \(f\.dir_name = 'docs'\) ORDER BY f\.file_size DESC, f\.id ASC LIMIT 10`,
		},
		{
			name:  "across directories",
			dir:   "",
			query: `SELECT .* FROM "files" AS "f" ORDER BY f\.file_size DESC, f\.id ASC LIMIT 10`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			store := metadata.NewPgStore(db)

			mock.ExpectQuery(tc.query).WillReturnRows(
				sqlmock.NewRows(columns).
					AddRow(3, "big.bin", "docs", 90, ts, ts).
					AddRow(1, "mid.bin", "docs", 50, ts, ts),
			)

			recs, err := store.TopFiles(context.Background(), tc.dir, 10)
			require.NoError(t, err)
			require.Len(t, recs, 2)
			assert.Equal(t, "big.bin", recs[0].FileName)
			assert.Equal(t, int64(50), recs[1].FileSize)
		})
	}
}

func TestBootstrap(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS "directories"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS "files"`) + `.*` +
		regexp.QuoteMeta(`FOREIGN KEY ("dir_name") REFERENCES "directories" ("dir_name")`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`CREATE INDEX IF NOT EXISTS "files_dir_name_file_size_idx"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "directories"`) + `.*` + regexp.QuoteMeta(`'.'`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, metadata.Bootstrap(context.Background(), db))
}

func TestBootstrap_IndexFailure(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS "directories"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS "files"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`CREATE INDEX IF NOT EXISTS "files_dir_name_file_size_idx"`)).
		WillReturnError(&pgconn.PgError{Code: "42501", Message: "permission denied for schema public"})
	mock.ExpectRollback()

	err := metadata.Bootstrap(context.Background(), db)
	require.Error(t, err)

	details := errx.AsErrorX(err).Details()
	assert.Equal(t, "42501", details["pg.code"])
	assert.Contains(t, details["query"], "CREATE INDEX IF NOT EXISTS files_dir_name_file_size_idx ON files")
}
