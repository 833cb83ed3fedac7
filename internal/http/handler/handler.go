// Package handler exposes the storage service over HTTP.
package handler

import (
	"context"
	"net/url"
	"time"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/spf13/cast"

	"github.com/rise-and-shine/filestorage/internal/http/forward"
	"github.com/rise-and-shine/filestorage/internal/storage"
)

// CodeFileRequired is returned when an upload carries no "file" form field.
const CodeFileRequired = "FILE_REQUIRED"

const (
	formFieldFile = "file"

	headerFileSize  = "X-File-Size"
	headerUpdatedAt = "X-Updated-At"

	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Handler serves the file storage API.
type Handler struct {
	svc *storage.Service
}

// New returns a Handler backed by svc.
func New(svc *storage.Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts every route on r.
func (h *Handler) Register(r fiber.Router) {
	r.Get("/ping", h.ping)

	r.Post("/files", h.upload)
	r.Post("/files/:dir_name", h.upload)

	// HEAD first: Get also registers a HEAD route for the same path.
	r.Head("/files/:file_id", h.stat)
	r.Get("/files/:file_id", h.download)

	r.Get("/top", forward.ToUseCase(h.topFiles))
	r.Get("/top/:dir_name", forward.ToUseCase(h.topFiles))

	r.Get("/report/:file_id", h.report)
}

type fileIDRequest struct {
	FileID int64 `params:"file_id" validate:"gt=0"`
}

type uploadRequest struct {
	DirName string `params:"dir_name"`
}

type uploadResponse struct {
	FileID int64 `json:"file_id"`
}

type topFilesRequest struct {
	DirName string `params:"dir_name" validate:"omitempty,path_element"`
}

type topFileItem struct {
	FileName  string    `json:"file_name"`
	FileSize  int64     `json:"file_size"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (h *Handler) ping(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func (h *Handler) upload(c *fiber.Ctx) error {
	req, err := forward.Decode[*uploadRequest](c)
	if err != nil {
		return errx.Wrap(err)
	}

	fh, err := c.FormFile(formFieldFile)
	if err != nil {
		return errx.New(
			"multipart form field \"file\" is required",
			errx.WithCode(CodeFileRequired),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{"cause": err.Error()}),
		)
	}

	f, err := fh.Open()
	if err != nil {
		return errx.Wrap(err)
	}
	defer f.Close()

	id, err := h.svc.Upload(c.UserContext(), req.DirName, fh.Filename, f)
	if err != nil {
		return errx.Wrap(err)
	}

	return errx.Wrap(c.Status(fiber.StatusCreated).JSON(uploadResponse{FileID: id}))
}

func (h *Handler) download(c *fiber.Ctx) error {
	req, err := forward.Decode[*fileIDRequest](c)
	if err != nil {
		return errx.Wrap(err)
	}

	file, err := h.svc.Download(c.UserContext(), req.FileID)
	if err != nil {
		return errx.Wrap(err)
	}

	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, attachment(file.FileName))
	return errx.Wrap(c.Send(file.Data))
}

func (h *Handler) stat(c *fiber.Ctx) error {
	req, err := forward.Decode[*fileIDRequest](c)
	if err != nil {
		return errx.Wrap(err)
	}

	d, err := h.svc.Stat(c.UserContext(), req.FileID)
	if err != nil {
		return errx.Wrap(err)
	}

	c.Set(fiber.HeaderContentDisposition, attachment(d.FileName))
	c.Set(headerFileSize, cast.ToString(d.FileSize))
	c.Set(headerUpdatedAt, d.UpdatedAt.Format(time.RFC3339))
	c.Response().Header.SetContentLength(int(d.FileSize))
	c.Status(fiber.StatusOK)
	return nil
}

func (h *Handler) topFiles(ctx context.Context, req *topFilesRequest) ([]topFileItem, error) {
	files, err := h.svc.TopFiles(ctx, req.DirName)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return lo.Map(files, func(d storage.FileDescriptor, _ int) topFileItem {
		return topFileItem{
			FileName:  d.FileName,
			FileSize:  d.FileSize,
			UpdatedAt: d.UpdatedAt,
		}
	}), nil
}

func (h *Handler) report(c *fiber.Ctx) error {
	req, err := forward.Decode[*fileIDRequest](c)
	if err != nil {
		return errx.Wrap(err)
	}

	r, err := h.svc.Report(c.UserContext(), req.FileID)
	if err != nil {
		return errx.Wrap(err)
	}

	c.Set(fiber.HeaderContentType, mimeXLSX)
	c.Set(fiber.HeaderContentDisposition, attachment(r.FileName))
	return errx.Wrap(c.Send(r.Data))
}

// attachment builds a Content-Disposition value; non-ASCII names are percent-encoded.
func attachment(fileName string) string {
	return "attachment; filename=" + url.PathEscape(fileName)
}
