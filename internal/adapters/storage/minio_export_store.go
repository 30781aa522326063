package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"meeting-point-service/internal/domain"
	"meeting-point-service/internal/platform/obs"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// objectClient is the subset of *minio.Client used by the export store.
type objectClient interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(
		ctx context.Context,
		bucketName, objectName string,
		reader io.Reader,
		objectSize int64,
		opts minio.PutObjectOptions,
	) (minio.UploadInfo, error)
}

// MinioExportStore archives export documents in an S3-compatible bucket.
type MinioExportStore struct {
	client objectClient
	bucket string
}

type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// NewMinioExportStore connects to the endpoint. The bucket is created on
// first use when missing.
func NewMinioExportStore(opts MinioOptions) (*MinioExportStore, error) {
	if opts.Endpoint == "" || opts.AccessKey == "" || opts.SecretKey == "" {
		return nil, errors.New("minio export store: endpoint, access key and secret key are required")
	}
	if opts.Bucket == "" {
		return nil, errors.New("minio export store: bucket is empty")
	}

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio export store: create client: %w", err)
	}

	return &MinioExportStore{client: client, bucket: opts.Bucket}, nil
}

// Store uploads body under exports/<uuid>/<file name> and returns the key.
func (s *MinioExportStore) Store(ctx context.Context, export domain.Export, body []byte) (_ string, err error) {
	defer obs.Time(ctx, "export.minio.Store")(&err)

	if err := s.ensureBucket(ctx); err != nil {
		return "", err
	}

	key := fmt.Sprintf("exports/%s/%s", uuid.NewString(), export.FileName())

	_, err = s.client.PutObject(
		ctx,
		s.bucket,
		key,
		bytes.NewReader(body),
		int64(len(body)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return "", fmt.Errorf("store export %s: put object: %w", key, err)
	}

	return key, nil
}

func (s *MinioExportStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("store export: check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("store export: make bucket %s: %w", s.bucket, err)
	}
	return nil
}
