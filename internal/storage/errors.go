package storage

import (
	"github.com/code19m/errx"

	"github.com/rise-and-shine/filestorage/internal/blob"
	"github.com/rise-and-shine/filestorage/internal/metadata"
	"github.com/rise-and-shine/filestorage/internal/report"
)

// Error codes surfaced by Service.
const (
	CodeFileNotFound           = "FILE_NOT_FOUND"
	CodeDirectoryNotFound      = "DIRECTORY_NOT_FOUND"
	CodeInvalidFileName        = "INVALID_FILE_NAME"
	CodeReportFormatNotAllowed = report.CodeFormatNotAppropriate
	CodeNameConflict           = blob.CodeNameConflict
)

func errFileNotFound(id int64) error {
	return errx.New(
		"file not found",
		errx.WithCode(CodeFileNotFound),
		errx.WithType(errx.T_NotFound),
		errx.WithDetails(errx.D{"file_id": id}),
	)
}

func errDirectoryNotFound(dirName string) error {
	return errx.New(
		"directory not found",
		errx.WithCode(CodeDirectoryNotFound),
		errx.WithType(errx.T_NotFound),
		errx.WithDetails(errx.D{"dir_name": dirName}),
	)
}

func errInvalidName(field, value string) error {
	return errx.New(
		"name must be a single path element",
		errx.WithCode(CodeInvalidFileName),
		errx.WithType(errx.T_Validation),
		errx.WithFields(errx.M{field: "Must be a single path element without separators"}),
		errx.WithDetails(errx.D{field: value}),
	)
}

// isNotFound reports whether err means the file is missing from either store.
func isNotFound(err error) bool {
	return errx.IsCodeIn(err, metadata.CodeFileNotFound, blob.CodeFileNotFound)
}
