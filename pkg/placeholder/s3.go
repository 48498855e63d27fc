package placeholder

import (
	"context"
	stderrors "errors"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/vango-dev/vimg/internal/errors"
)

// S3API is the subset of the S3 client used by S3Source.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads images from an S3 bucket.
//
// Example usage:
//
//	client := placeholder.NewS3Client(placeholder.S3Config{Region: "eu-west-1", ...})
//	src := placeholder.NewS3Source(client, "my-bucket", "photos/")
type S3Source struct {
	client S3API
	bucket string
	prefix string
}

// NewS3Source creates an S3Source. Keys are appended to prefix.
func NewS3Source(client S3API, bucket, prefix string) *S3Source {
	return &S3Source{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// Open implements Source.
func (s *S3Source) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	key, err := CleanKey(key)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.prefix + key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if stderrors.As(err, &nsk) {
			return nil, errors.New("E020").WithDetail("s3://" + s.bucket + "/" + s.prefix + key).Wrap(err)
		}
		return nil, err
	}
	return out.Body, nil
}

// S3Config holds the connection settings for NewS3Client.
type S3Config struct {
	Region    string
	AccessKey string
	SecretKey string

	// Endpoint overrides the AWS endpoint, for S3-compatible stores.
	Endpoint string

	// PathStyle addresses buckets as endpoint/bucket instead of
	// bucket.endpoint.
	PathStyle bool
}

// NewS3Client creates an S3 client with static credentials.
func NewS3Client(cfg S3Config) *s3.Client {
	return s3.New(s3.Options{
		Region: cfg.Region,
		Credentials: aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
			return aws.Credentials{
				AccessKeyID:     cfg.AccessKey,
				SecretAccessKey: cfg.SecretKey,
				Source:          "vimg",
			}, nil
		}),
	}, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.PathStyle
	})
}
