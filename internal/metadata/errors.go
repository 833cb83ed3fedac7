package metadata

import (
	"github.com/code19m/errx"
)

// Error codes returned by the stores.
const (
	// CodeFileNotFound is returned when no file record has the requested id.
	CodeFileNotFound = "FILE_NOT_FOUND"

	// CodeDirectoryMissing is returned when a file is upserted into a
	// directory that was never ensured.
	CodeDirectoryMissing = "DIRECTORY_MISSING"
)

func errFileNotFound(id int64) error {
	return errx.New(
		"file not found",
		errx.WithCode(CodeFileNotFound),
		errx.WithType(errx.T_NotFound),
		errx.WithDetails(errx.D{"file_id": id}),
	)
}

func errDirectoryMissing(dirName string) error {
	return errx.New(
		"directory does not exist",
		errx.WithCode(CodeDirectoryMissing),
		errx.WithType(errx.T_Internal),
		errx.WithDetails(errx.D{"dir_name": dirName}),
	)
}
