package ingest

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"store-dashboard/internal/models"
)

const s3Scheme = "s3"

// ObjectGetter is the subset of the S3 client used to fetch datasets.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Source opens datasets from local paths or s3://bucket/key locations. The
// S3 client is created from the default AWS configuration on first use.
type Source struct {
	mu     sync.Mutex
	client ObjectGetter
}

func NewSource() *Source {
	return &Source{}
}

// NewSourceWithClient uses the given client for s3:// locations.
func NewSourceWithClient(client ObjectGetter) *Source {
	return &Source{client: client}
}

// Open returns the dataset contents and a display name for it.
func (s *Source) Open(ctx context.Context, location string) (io.ReadCloser, string, error) {
	if !strings.HasPrefix(location, s3Scheme+"://") {
		f, err := os.Open(location)
		if err != nil {
			return nil, "", fmt.Errorf("open file: %w", err)
		}
		return f, path.Base(location), nil
	}

	bucket, key, err := splitS3(location)
	if err != nil {
		return nil, "", err
	}

	client, err := s.s3Client(ctx)
	if err != nil {
		return nil, "", err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, "", fmt.Errorf("get s3 object %s: %w", location, err)
	}
	return out.Body, path.Base(key), nil
}

// Load opens and parses location in one step.
func (s *Source) Load(ctx context.Context, location string) ([]models.Transaction, string, error) {
	rc, name, err := s.Open(ctx, location)
	if err != nil {
		return nil, "", err
	}
	defer rc.Close()

	txs, err := Parse(ctx, rc)
	if err != nil {
		return nil, "", err
	}
	return txs, name, nil
}

func (s *Source) s3Client(ctx context.Context) (ObjectGetter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return s.client, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	s.client = s3.NewFromConfig(cfg)
	return s.client, nil
}

func splitS3(location string) (bucket, key string, err error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", fmt.Errorf("parse s3 location: %w", err)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("s3 location must look like s3://bucket/key, got %q", location)
	}
	return u.Host, key, nil
}
