package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type s3API interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type S3Config struct {
	Bucket     string
	Prefix     string
	Region     string
	Endpoint   string
	Extensions []string
}

// S3 lists objects under a bucket prefix.
type S3 struct {
	client     s3API
	bucket     string
	prefix     string
	extensions []string
}

func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("s3 bucket is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	opts := []func(*s3.Options){}
	if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		})
	}

	return newS3WithClient(s3.NewFromConfig(awsCfg, opts...), cfg), nil
}

func newS3WithClient(client s3API, cfg S3Config) *S3 {
	return &S3{
		client:     client,
		bucket:     strings.TrimSpace(cfg.Bucket),
		prefix:     strings.TrimLeft(strings.TrimSpace(cfg.Prefix), "/"),
		extensions: normalizeExtensions(cfg.Extensions),
	}
}

func (s *S3) Discover(ctx context.Context) ([]Location, error) {
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})

	locations := make([]Location, 0, 16)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list s3://%s/%s: %w", s.bucket, s.prefix, err)
		}
		for _, object := range page.Contents {
			key := aws.ToString(object.Key)
			name := path.Base(key)
			if strings.HasSuffix(key, "/") || !hasExtension(name, s.extensions) {
				continue
			}
			locations = append(locations, Location{
				Name:    name,
				URI:     key,
				Size:    aws.ToInt64(object.Size),
				Version: strings.Trim(aws.ToString(object.ETag), `"`),
			})
		}
	}
	if len(locations) == 0 {
		return nil, fmt.Errorf("%w in s3://%s/%s", ErrNoSourcesFound, s.bucket, s.prefix)
	}

	sortLocations(locations)
	return locations, nil
}

func (s *S3) Open(ctx context.Context, loc Location) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(loc.URI),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", s.bucket, loc.URI, err)
	}
	return out.Body, nil
}
