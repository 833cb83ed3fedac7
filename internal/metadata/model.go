// Package metadata records which files exist, in which directory, and how
// large they are.
package metadata

import (
	"time"

	"github.com/uptrace/bun"
)

// RootDir is the directory every store starts with.
const RootDir = "."

// Directory is a named folder files are uploaded into.
type Directory struct {
	bun.BaseModel `bun:"table:directories,alias:d"`

	ID      int64  `bun:"id,pk,autoincrement"`
	DirName string `bun:"dir_name,notnull,unique"`
}

// FileRecord describes one stored file. The pair (FileName, DirName) is
// unique; re-uploading the same pair updates the record in place.
type FileRecord struct {
	bun.BaseModel `bun:"table:files,alias:f"`

	ID        int64     `bun:"id,pk,autoincrement"`
	FileName  string    `bun:"file_name,notnull,unique:files_file_name_dir_name_key"`
	DirName   string    `bun:"dir_name,notnull,unique:files_file_name_dir_name_key"`
	FileSize  int64     `bun:"file_size,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
