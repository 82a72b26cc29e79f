package services

import (
	"context"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/studyscribe/studyscribe-api/internal/config"
	"github.com/studyscribe/studyscribe-api/internal/models"
)

// FileService keeps uploaded resource files (PDFs) in object storage. A
// resource of type pdf carries the object key in its Path field.
type FileService struct {
	client *minio.Client
	bucket string
}

func NewFileService(cfg *config.Config) (*FileService, error) {
	client, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
	})
	if err != nil {
		return nil, err
	}

	// Ensure bucket exists
	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.MinIOBucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		err = client.MakeBucket(ctx, cfg.MinIOBucket, minio.MakeBucketOptions{})
		if err != nil {
			return nil, err
		}
	}

	return &FileService{
		client: client,
		bucket: cfg.MinIOBucket,
	}, nil
}

func (s *FileService) Upload(ctx context.Context, reader io.Reader, key string, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (s *FileService) Download(ctx context.Context, key string) (*minio.Object, error) {
	return s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
}

func (s *FileService) Delete(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

// OpenResource resolves the target a client should open for a resource: a
// time-limited download URL for a stored PDF, the link target for a link.
// Notes and other resources have nothing to open.
func (s *FileService) OpenResource(ctx context.Context, r models.Resource) (string, error) {
	switch {
	case r.Type == models.ResourcePDF && r.Path != "":
		u, err := s.client.PresignedGetObject(ctx, s.bucket, r.Path, 15*time.Minute, nil)
		if err != nil {
			return "", err
		}
		return u.String(), nil
	case r.Type == models.ResourceLink && r.URL != "":
		return r.URL, nil
	}
	return "", nil
}
