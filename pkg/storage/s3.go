package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type S3Options struct {
	Bucket          string
	Region          string
	Endpoint        string // R2, Spaces, MinIO; empty for AWS
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
}

type s3Storage struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewS3Storage creates an ImageStorage on any S3 compatible bucket.
func NewS3Storage(ctx context.Context, opts S3Options) (ImageStorage, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	region := opts.Region
	if region == "" {
		region = "auto"
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load s3 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	baseURL := strings.TrimSuffix(opts.PublicBaseURL, "/")
	if baseURL == "" {
		if opts.Endpoint != "" {
			baseURL = strings.TrimSuffix(opts.Endpoint, "/") + "/" + opts.Bucket
		} else {
			baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, region)
		}
	}

	return &s3Storage{client: client, bucket: opts.Bucket, baseURL: baseURL}, nil
}

func (s *s3Storage) UploadImage(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	key := objectKey(folder, fileName)

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	}
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(fileName))); ct != "" {
		input.ContentType = aws.String(ct)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload to s3: %w", err)
	}

	return s.baseURL + "/" + key, nil
}

func (s *s3Storage) DeleteImage(ctx context.Context, fileURL string) error {
	key, ok := s.keyFromURL(fileURL)
	if !ok {
		return fmt.Errorf("url %s does not belong to bucket %s", fileURL, s.bucket)
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from s3: %w", err)
	}
	return nil
}

func (s *s3Storage) keyFromURL(fileURL string) (string, bool) {
	if !strings.HasPrefix(fileURL, s.baseURL+"/") {
		return "", false
	}
	key, err := url.PathUnescape(strings.TrimPrefix(fileURL, s.baseURL+"/"))
	if err != nil || key == "" {
		return "", false
	}
	return key, true
}

// objectKey is folder/<uuid><ext>; client file names never reach the bucket.
func objectKey(folder, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return path.Join(folder, uuid.NewString()+ext)
}
