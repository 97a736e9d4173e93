package storage

import (
	"context"
	"fmt"
	"io"
)

//go:generate mockgen -source=storage.go -destination=mock/storage.go -package=mock

// ImageStorage stores uploaded images and hands back a public URL.
type ImageStorage interface {
	// UploadImage uploads image from reader and returns the public URL.
	// folder is a logical folder under the configured root (e.g. "waste").
	UploadImage(ctx context.Context, r io.Reader, folder, fileName string) (string, error)
	// DeleteImage deletes image from storage using its URL.
	DeleteImage(ctx context.Context, fileURL string) error
}

type Options struct {
	Driver string

	CloudinaryFolder string

	S3Bucket          string
	S3Region          string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3PublicBaseURL   string
}

// New builds the ImageStorage selected by opts.Driver.
func New(ctx context.Context, opts Options) (ImageStorage, error) {
	switch opts.Driver {
	case "", "cloudinary":
		return NewCloudinaryStorage(opts.CloudinaryFolder)
	case "s3":
		return NewS3Storage(ctx, S3Options{
			Bucket:          opts.S3Bucket,
			Region:          opts.S3Region,
			Endpoint:        opts.S3Endpoint,
			AccessKeyID:     opts.S3AccessKeyID,
			SecretAccessKey: opts.S3SecretAccessKey,
			PublicBaseURL:   opts.S3PublicBaseURL,
		})
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}
