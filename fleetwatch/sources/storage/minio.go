// Package storage backs the model registry: risk-model artifacts live in an
// object-store bucket so a retrained model can be rolled out without baking
// it into the image.
package storage

import (
	"context"
	"io"
	"os"

	"fleetwatch/fleetwatch/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type ModelStore struct {
	client *minio.Client
	bucket string
}

func NewModelStore(cfg config.Config) (*ModelStore, error) {
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
	exists, err := client.BucketExists(context.Background(), cfg.MinIOBucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(context.Background(), cfg.MinIOBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}
	return &ModelStore{client: client, bucket: cfg.MinIOBucket}, nil
}

// FetchModel downloads an artifact to destPath, from where risk.Load picks
// it up at startup.
func (s *ModelStore) FetchModel(ctx context.Context, key, destPath string) error {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return err
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		return err
	}
	return os.WriteFile(destPath, data, 0o644)
}

// PublishModel uploads a locally trained artifact into the registry.
func (s *ModelStore) PublishModel(ctx context.Context, key, srcPath string) error {
	f, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, s.bucket, key, f, info.Size(),
		minio.PutObjectOptions{ContentType: "application/json"})
	return err
}
