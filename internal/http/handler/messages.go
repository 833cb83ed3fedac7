package handler

import (
	"github.com/rise-and-shine/filestorage/internal/http/forward"
	"github.com/rise-and-shine/filestorage/internal/http/middleware"
	"github.com/rise-and-shine/filestorage/internal/storage"
	"github.com/rise-and-shine/filestorage/internal/val"
)

// DefaultLanguage is used when a request names no known language.
const DefaultLanguage = "en"

// Messages translates error codes into user facing messages, per language.
//
//nolint:gochecknoglobals // static translation table
var Messages = map[string]map[string]string{
	"en": {
		storage.CodeFileNotFound:           "File not found",
		storage.CodeDirectoryNotFound:      "Directory not found",
		storage.CodeInvalidFileName:        "File and directory names must not contain path separators",
		storage.CodeReportFormatNotAllowed: "File format is not appropriate",
		storage.CodeNameConflict:           "A file or directory with this name already exists",
		CodeFileRequired:                   "A file must be sent in the \"file\" form field",
		forward.CodeInvalidPathParams:      "Invalid path parameters",
		forward.CodeInvalidQueryParams:     "Invalid query parameters",
		val.CodeValidationFailed:           "Validation failed",
		middleware.CodeRequestTimeout:      "The request took too long to process",
		"ROUTER_ERROR":                     "Route not found or method not allowed",
		"":                                 "Internal server error",
	},
	"uk": {
		storage.CodeFileNotFound:           "Файл не знайдено",
		storage.CodeDirectoryNotFound:      "Директорію не знайдено",
		storage.CodeInvalidFileName:        "Імена файлів і директорій не можуть містити роздільники шляху",
		storage.CodeReportFormatNotAllowed: "Формат файлу не підходить",
		storage.CodeNameConflict:           "Файл або директорія з таким іменем вже існує",
		CodeFileRequired:                   "Файл потрібно надіслати в полі форми \"file\"",
		forward.CodeInvalidPathParams:      "Некоректні параметри шляху",
		forward.CodeInvalidQueryParams:     "Некоректні параметри запиту",
		val.CodeValidationFailed:           "Помилка валідації",
		middleware.CodeRequestTimeout:      "Обробка запиту тривала надто довго",
		"ROUTER_ERROR":                     "Маршрут не знайдено або метод не дозволено",
		"":                                 "Внутрішня помилка сервера",
	},
}
