// Package minio exports prediction records as training samples to S3-compatible storage.
package minio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dtroode/premium-server/internal/config"
	"github.com/dtroode/premium-server/internal/model"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Internal adapter interface to enable mocking without a real MinIO server.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

var (
	_ model.SampleSink    = (*Client)(nil)
	_ model.HealthChecker = (*Client)(nil)
	_ model.SampleSink    = NoopSink{}
)

// Sample is the stored form of a prediction record.
type Sample struct {
	PredictionID string               `json:"predictionId"`
	AccountID    string               `json:"accountId"`
	Inputs       model.ClinicalInputs `json:"inputs"`
	Price        float64              `json:"predictedPrice"`
	IsSatisfied  model.Satisfaction   `json:"isSatisfied"`
	Timestamp    time.Time            `json:"timestamp"`
}

type Client struct {
	api    minioAPI
	bucket string
}

// NewClient connects to the endpoint in cfg and makes sure the bucket exists.
func NewClient(ctx context.Context, cfg config.Storage) (*Client, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return NewClientWithAPI(ctx, mc, cfg.Bucket)
}

// NewClientWithAPI allows injecting a mockable API (used in tests).
func NewClientWithAPI(ctx context.Context, api minioAPI, bucket string) (*Client, error) {
	c := &Client{
		api:    api,
		bucket: bucket,
	}

	if err := c.ensureBucketExists(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return c, nil
}

func (c *Client) ensureBucketExists(ctx context.Context) error {
	exists, err := c.api.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = c.api.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// ObjectKey returns the key a prediction sample is stored under.
// Re-exporting the same prediction overwrites the previous sample.
func ObjectKey(p model.Prediction) string {
	return fmt.Sprintf("predictions/%s/%s.json", p.AccountID, p.ID)
}

// Export writes p as a JSON sample.
func (c *Client) Export(ctx context.Context, p model.Prediction) error {
	data, err := json.Marshal(Sample{
		PredictionID: p.ID.String(),
		AccountID:    p.AccountID.String(),
		Inputs:       p.Inputs,
		Price:        p.Price,
		IsSatisfied:  p.Satisfaction,
		Timestamp:    p.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to encode sample: %w", err)
	}

	_, err = c.api.PutObject(ctx, c.bucket, ObjectKey(p), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload sample: %w", err)
	}
	return nil
}

// Ping checks that the bucket is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.api.BucketExists(ctx, c.bucket); err != nil {
		return fmt.Errorf("failed to reach bucket: %w", err)
	}
	return nil
}

// NoopSink discards samples. It is used when sample export is disabled.
type NoopSink struct{}

func (NoopSink) Export(context.Context, model.Prediction) error { return nil }
