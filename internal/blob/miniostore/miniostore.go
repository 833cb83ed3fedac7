// Package miniostore implements blob.Store on a MinIO (or any S3 compatible)
// bucket. The blob dir/name is stored under the object key "dir/name"; root
// directory blobs use the bare file name.
package miniostore

import (
	"bytes"
	"context"
	"io"

	"github.com/code19m/errx"
	"github.com/gabriel-vasile/mimetype"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/rise-and-shine/filestorage/internal/blob"
)

const codeNoSuchKey = "NoSuchKey"

var _ blob.Store = (*Store)(nil)

// Store keeps blobs as objects of a single bucket.
type Store struct {
	client *minio.Client
	bucket string
}

// New connects to MinIO and makes sure the bucket exists.
func New(ctx context.Context, cfg Config) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errx.Wrap(err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(errx.D{"bucket": cfg.Bucket}))
	}
	if !exists {
		if cfg.BucketMustExist {
			return nil, errx.New("bucket does not exist", errx.WithDetails(errx.D{"bucket": cfg.Bucket}))
		}
		if err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, errx.Wrap(err, errx.WithDetails(errx.D{"bucket": cfg.Bucket}))
		}
	}

	return &Store{client: client, bucket: cfg.Bucket}, nil
}

// Write uploads the contents of r. The whole body is buffered to learn its
// size and content type before the upload starts.
func (s *Store) Write(ctx context.Context, dir, name string, r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, errx.Wrap(err)
	}

	key := blob.Key(dir, name)
	info, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: mimetype.Detect(data).String(),
	})
	if err != nil {
		return 0, errx.Wrap(err, errx.WithDetails(errx.D{"key": key}))
	}

	return info.Size, nil
}

// Read downloads the object of dir/name.
func (s *Store) Read(ctx context.Context, dir, name string) ([]byte, error) {
	key := blob.Key(dir, name)

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.wrapMinioError(err, dir, name)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, s.wrapMinioError(err, dir, name)
	}
	return data, nil
}

// Exists stats the object of dir/name.
func (s *Store) Exists(ctx context.Context, dir, name string) (bool, error) {
	key := blob.Key(dir, name)

	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == codeNoSuchKey {
			return false, nil
		}
		return false, errx.Wrap(err, errx.WithDetails(errx.D{"key": key}))
	}
	return true, nil
}

// wrapMinioError converts a missing object into blob's not-found error.
func (s *Store) wrapMinioError(err error, dir, name string) error {
	if minio.ToErrorResponse(err).Code == codeNoSuchKey {
		return blob.ErrNotFound(dir, name)
	}
	return errx.Wrap(err, errx.WithDetails(errx.D{"key": blob.Key(dir, name)}))
}
