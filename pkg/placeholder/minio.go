package placeholder

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/vango-dev/vimg/internal/errors"
)

// MinioClient is the subset of the MinIO client used by MinioSource.
type MinioClient interface {
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error)
}

// MinioConfig holds the connection settings for NewMinioClient.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
	Timeout   time.Duration
}

// NewMinioClient creates a MinIO client. The endpoint may carry an http:// or
// https:// scheme; it is stripped.
func NewMinioClient(cfg MinioConfig) (MinioClient, error) {
	endpoint := strings.TrimPrefix(cfg.Endpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeout,
		ResponseHeaderTimeout: timeout,
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("placeholder: create minio client: %w", err)
	}
	return &minioClient{Client: client}, nil
}

type minioClient struct {
	*minio.Client
}

func (c *minioClient) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	return c.Client.GetObject(ctx, bucketName, objectName, opts)
}

// MinioSource reads images from a MinIO bucket.
type MinioSource struct {
	client MinioClient
	bucket string
	prefix string
}

// NewMinioSource creates a MinioSource. Keys are appended to prefix.
func NewMinioSource(client MinioClient, bucket, prefix string) *MinioSource {
	return &MinioSource{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// Open implements Source. The object is stat'ed first because MinIO reports
// a missing object only on the first read.
func (s *MinioSource) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	key, err := CleanKey(key)
	if err != nil {
		return nil, err
	}
	object := s.prefix + key

	if _, err := s.client.StatObject(ctx, s.bucket, object, minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, errors.New("E020").WithDetail(s.bucket + "/" + object).Wrap(err)
		}
		return nil, err
	}
	return s.client.GetObject(ctx, s.bucket, object, minio.GetObjectOptions{})
}
