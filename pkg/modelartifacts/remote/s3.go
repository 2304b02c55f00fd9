package remote

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/furiosa-ai/model-artifacts/pkg/modelartifacts"
)

// S3Config options for the S3 fetcher
type S3Config struct {
	Region          string // AWS region
	Bucket          string // S3 bucket name
	Prefix          string // Optional key prefix in front of the content address
	AccessKeyID     string // AWS access key ID
	SecretAccessKey string // AWS secret access key
	Endpoint        string // Optional custom endpoint for S3-compatible services
	UsePathStyle    bool   // Use path-style addressing (MinIO and friends)
}

// S3Fetcher retrieves artifacts from an S3 bucket sharing the same
// content-addressed layout the HTTP endpoint exposes. It is the
// authenticated variant of HTTPFetcher.
type S3Fetcher struct {
	client     *s3.Client
	downloader *manager.Downloader
	bucket     string
	prefix     string
}

// NewS3Fetcher creates an S3-backed fetcher.
func NewS3Fetcher(config S3Config) (*S3Fetcher, error) {
	if config.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}

	if config.Region == "" {
		config.Region = "us-east-1"
	}

	// Set up AWS config
	var awsCfg aws.Config
	var err error

	if config.AccessKeyID != "" && config.SecretAccessKey != "" {
		// Use provided credentials
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(config.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				config.AccessKeyID,
				config.SecretAccessKey,
				"",
			)),
		)
	} else {
		// Use default credential chain
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(config.Region),
		)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Custom endpoint for S3-compatible services (MinIO, etc.)
	var s3Options []func(*s3.Options)
	if config.Endpoint != "" {
		s3Options = append(s3Options, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(config.Endpoint)
			o.UsePathStyle = config.UsePathStyle
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Options...)

	return &S3Fetcher{
		client:     client,
		downloader: manager.NewDownloader(client),
		bucket:     config.Bucket,
		prefix:     config.Prefix,
	}, nil
}

// Fetch downloads the object at addr from the bucket. A missing key
// reports modelartifacts.ErrArtifactNotFoundRemote.
func (f *S3Fetcher) Fetch(ctx context.Context, addr modelartifacts.ContentAddress) ([]byte, error) {
	key := path.Join(f.prefix, addr.PrefixDir, addr.SuffixName)

	buf := manager.NewWriteAtBuffer(nil)
	_, err := f.downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		var notFound *types.NotFound
		if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: s3://%s/%s", modelartifacts.ErrArtifactNotFoundRemote, f.bucket, key)
		}
		return nil, fmt.Errorf("%w: s3://%s/%s: %v", modelartifacts.ErrArtifactNotFoundRemote, f.bucket, key, err)
	}

	return buf.Bytes(), nil
}
