package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"path/filepath"

	"legalbot/legalbot/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ArchiveClient mirrors committed file blobs into object storage so the
// database only has to be the system of record, not the backup.
type ArchiveClient struct {
	client *minio.Client
	bucket string
}

func NewArchiveClient(cfg config.Config) (*ArchiveClient, error) {
	bucket := cfg.MinIOBucket
	client, err := minio.New(
		cfg.MinIOEndpoint,
		&minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
			Secure: false,
		},
	)
	if err != nil {
		return nil, err
	}
	exists, err := client.BucketExists(context.Background(), bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}
	return &ArchiveClient{client: client, bucket: bucket}, nil
}

// ArchiveFile stores the decoded file content under files/<id> and returns
// the object key.
func (a *ArchiveClient) ArchiveFile(ctx context.Context, fileID, mimeType, dataB64 string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(dataB64)
	if err != nil {
		return "", fmt.Errorf("invalid base64 payload: %w", err)
	}
	key := filepath.Join("files", fileID)

	_, err = a.client.PutObject(ctx, a.bucket, key,
		bytes.NewReader(raw), int64(len(raw)),
		minio.PutObjectOptions{ContentType: mimeType})
	if err != nil {
		return "", err
	}
	return key, nil
}

func (a *ArchiveClient) RemoveFile(ctx context.Context, key string) error {
	return a.client.RemoveObject(ctx, a.bucket, key, minio.RemoveObjectOptions{})
}
