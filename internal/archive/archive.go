// Package archive stores rendered invoices in an S3-compatible bucket.
package archive

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type Archive interface {
	PutInvoice(ctx context.Context, sessionID uint, pdf []byte) error
}

type Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Archive struct {
	client objectPutter
	bucket string
}

// NewS3 builds a client from static credentials. A custom endpoint switches
// to path-style addressing for MinIO and similar stores.
func NewS3(cfg Config) (*S3Archive, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	opts := s3.Options{
		Region: cfg.Region,
	}
	if cfg.AccessKey != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
	} else {
		opts.Credentials = aws.AnonymousCredentials{}
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	return &S3Archive{client: s3.New(opts), bucket: cfg.Bucket}, nil
}

func InvoiceKey(sessionID uint) string {
	return fmt.Sprintf("invoices/session-%d.pdf", sessionID)
}

func (a *S3Archive) PutInvoice(ctx context.Context, sessionID uint, pdf []byte) error {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(InvoiceKey(sessionID)),
		Body:          bytes.NewReader(pdf),
		ContentType:   aws.String("application/pdf"),
		ContentLength: aws.Int64(int64(len(pdf))),
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", InvoiceKey(sessionID), err)
	}
	return nil
}

// Noop discards invoices; used when S3_BUCKET is unset.
type Noop struct{}

func (Noop) PutInvoice(context.Context, uint, []byte) error { return nil }
