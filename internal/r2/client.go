package r2

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"studyquiz/internal/config"
	"studyquiz/internal/logger"
	"studyquiz/internal/materials"
	"studyquiz/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// objectAPI is the subset of the S3 client used by Store.
type objectAPI interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Store serves study materials from a Cloudflare R2 bucket. Objects are read
// from directly under the configured prefix; deeper keys are ignored.
type Store struct {
	api        objectAPI
	bucketName string
	prefix     string
	log        *logger.Logger
}

var _ materials.Store = (*Store)(nil)

// NewStore configures an S3 client against the account's R2 endpoint.
func NewStore(ctx context.Context, cfg config.R2Config, log *logger.Logger) (*Store, error) {
	if !cfg.Enabled() {
		return nil, errors.New("R2 materials store is not fully configured (CLOUDFLARE_ACCOUNT_ID, R2_BUCKET_NAME, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY)")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		awsconfig.WithRegion("auto"), // R2 is region-agnostic
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config for R2: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID))
	})

	log.Info("R2 materials store initialized", "bucket", cfg.BucketName, "prefix", cfg.Prefix)
	return newStore(client, cfg.BucketName, cfg.Prefix, log), nil
}

func newStore(api objectAPI, bucket, prefix string, log *logger.Logger) *Store {
	return &Store{api: api, bucketName: bucket, prefix: strings.Trim(prefix, "/"), log: log}
}

func (s *Store) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

// List returns the materials stored directly under the prefix. A missing bucket
// lists as empty.
func (s *Store) List(ctx context.Context) ([]models.MaterialEntry, error) {
	input := &s3.ListObjectsV2Input{
		Bucket:    aws.String(s.bucketName),
		Delimiter: aws.String("/"),
	}
	if s.prefix != "" {
		input.Prefix = aws.String(s.prefix + "/")
	}

	out := []models.MaterialEntry{}
	pages := s3.NewListObjectsV2Paginator(s.api, input)
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			if isNoSuchBucket(err) {
				s.log.Warn("R2 bucket not found; listing no materials", "bucket", s.bucketName)
				return []models.MaterialEntry{}, nil
			}
			return nil, fmt.Errorf("failed to list R2 materials (bucket: %s): %w", s.bucketName, err)
		}
		for _, obj := range page.Contents {
			name := path.Base(aws.ToString(obj.Key))
			if s.key(name) != aws.ToString(obj.Key) {
				continue
			}
			if entry, ok := materials.ParseFilename(name); ok {
				out = append(out, entry)
			}
		}
	}
	return out, nil
}

// Open fetches filename from the bucket. Size is -1 when R2 does not report a
// content length.
func (s *Store) Open(ctx context.Context, filename string) (*materials.Object, error) {
	if !materials.ValidFilename(filename) {
		return nil, fmt.Errorf("%w: %s", materials.ErrInvalidFilename, filename)
	}
	key := s.key(filename)
	resp, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) || isNoSuchBucket(err) {
			return nil, fmt.Errorf("%w: %s", materials.ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to fetch R2 material (key: %s): %w", key, err)
	}
	size := int64(-1)
	if resp.ContentLength != nil {
		size = *resp.ContentLength
	}
	return &materials.Object{
		Name: filename,
		Size: size,
		Body: resp.Body,
	}, nil
}

func isNoSuchBucket(err error) bool {
	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchBucket"
}
