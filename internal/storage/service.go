package storage

import (
	"context"
	"io"
	"time"

	"github.com/code19m/errx"
	"github.com/gabriel-vasile/mimetype"
	"github.com/samber/lo"

	"github.com/rise-and-shine/filestorage/internal/blob"
	"github.com/rise-and-shine/filestorage/internal/logger"
	"github.com/rise-and-shine/filestorage/internal/metadata"
	"github.com/rise-and-shine/filestorage/internal/report"
	"github.com/rise-and-shine/filestorage/internal/val"
)

// TopFilesLimit caps the TopFiles result.
const TopFilesLimit = 10

// FileDescriptor is the metadata of a stored file.
type FileDescriptor struct {
	ID        int64
	FileName  string
	DirName   string
	FileSize  int64
	UpdatedAt time.Time
}

// Download is a stored file with its contents.
type Download struct {
	FileDescriptor

	Data        []byte
	ContentType string
}

// Report is a generated workbook ready to be sent.
type Report struct {
	FileName string
	Data     []byte
}

// Service runs the file operations on top of a blob store and a metadata store.
type Service struct {
	blobs      blob.Store
	meta       MetadataStore
	reconciler *Reconciler
	log        logger.Logger
}

// NewService wires a Service.
func NewService(blobs blob.Store, meta MetadataStore, log logger.Logger) *Service {
	return &Service{
		blobs:      blobs,
		meta:       meta,
		reconciler: NewReconciler(meta),
		log:        log.Named("storage"),
	}
}

// Upload writes r as fileName inside dirName and records it. An empty
// dirName means the root directory. Uploading the same pair again replaces
// the contents and keeps the returned id.
//
// When the blob is written but recording it fails, the blob stays in place
// and is logged as orphaned.
func (s *Service) Upload(ctx context.Context, dirName, fileName string, r io.Reader) (int64, error) {
	if dirName == "" {
		dirName = metadata.RootDir
	}
	if !val.PathElement(dirName) {
		return 0, errInvalidName("dir_name", dirName)
	}
	if !val.PathElement(fileName) || fileName == metadata.RootDir {
		return 0, errInvalidName("file_name", fileName)
	}

	written, err := s.blobs.Write(ctx, dirName, fileName, r)
	if err != nil {
		return 0, errx.Wrap(err)
	}

	id, err := s.reconciler.Reconcile(ctx, dirName, fileName, written)
	if err != nil {
		s.log.WithContext(ctx).
			With("orphaned_blob", blob.Key(dirName, fileName), "bytes", written).
			Errorx(err)
		return 0, errx.Wrap(err)
	}

	return id, nil
}

// Stat returns the metadata of file id. The blob must exist too.
func (s *Service) Stat(ctx context.Context, id int64) (*FileDescriptor, error) {
	rec, err := s.getRecord(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	ok, err := s.blobs.Exists(ctx, rec.DirName, rec.FileName)
	if err != nil {
		return nil, errx.Wrap(err)
	}
	if !ok {
		return nil, errFileNotFound(id)
	}

	d := toDescriptor(*rec, 0)
	return &d, nil
}

// Download returns file id with its contents and detected content type.
func (s *Service) Download(ctx context.Context, id int64) (*Download, error) {
	rec, err := s.getRecord(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	data, err := s.blobs.Read(ctx, rec.DirName, rec.FileName)
	if err != nil {
		if isNotFound(err) {
			return nil, errFileNotFound(id)
		}
		return nil, errx.Wrap(err)
	}

	return &Download{
		FileDescriptor: toDescriptor(*rec, 0),
		Data:           data,
		ContentType:    mimetype.Detect(data).String(),
	}, nil
}

// TopFiles returns the TopFilesLimit largest files, largest first, of
// dirName or of every directory when dirName is empty. An empty result is
// reported as a missing directory.
func (s *Service) TopFiles(ctx context.Context, dirName string) ([]FileDescriptor, error) {
	recs, err := s.meta.TopFiles(ctx, dirName, TopFilesLimit)
	if err != nil {
		return nil, errx.Wrap(err)
	}
	if len(recs) == 0 {
		return nil, errDirectoryNotFound(dirName)
	}
	return lo.Map(recs, toDescriptor), nil
}

// Report builds the xlsx report of file id.
func (s *Service) Report(ctx context.Context, id int64) (*Report, error) {
	file, err := s.Download(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	data, err := report.Generate(string(file.Data))
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(errx.D{"file_id": id}))
	}

	return &Report{
		FileName: report.FileName(file.FileName),
		Data:     data,
	}, nil
}

func (s *Service) getRecord(ctx context.Context, id int64) (*metadata.FileRecord, error) {
	rec, err := s.meta.GetFile(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, errFileNotFound(id)
		}
		return nil, errx.Wrap(err)
	}
	return rec, nil
}

func toDescriptor(rec metadata.FileRecord, _ int) FileDescriptor {
	return FileDescriptor{
		ID:        rec.ID,
		FileName:  rec.FileName,
		DirName:   rec.DirName,
		FileSize:  rec.FileSize,
		UpdatedAt: rec.UpdatedAt,
	}
}
