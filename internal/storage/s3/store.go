package s3

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ThousandGolder/event-management-ticketing-system-sub001/internal/config"
	"github.com/ThousandGolder/event-management-ticketing-system-sub001/internal/domain"
	"github.com/ThousandGolder/event-management-ticketing-system-sub001/internal/storage"
)

const (
	defaultFolder       = "event-images"
	defaultExtension    = "jpg"
	defaultUploadExpiry = time.Hour
	corsMaxAgeSeconds   = 3000
)

// S3API is the subset of the S3 client the store uses
type S3API interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	PutBucketPolicy(ctx context.Context, params *s3.PutBucketPolicyInput, optFns ...func(*s3.Options)) (*s3.PutBucketPolicyOutput, error)
	PutBucketCors(ctx context.Context, params *s3.PutBucketCorsInput, optFns ...func(*s3.Options)) (*s3.PutBucketCorsOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// PresignAPI is the presigning subset of the S3 client
type PresignAPI interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Store implements storage.AssetStore on S3
type Store struct {
	api       S3API
	presigner PresignAPI
	config    config.S3
	log       *zap.Logger
}

// NewStore creates a new S3-backed asset store
func NewStore(api S3API, presigner PresignAPI, s3Config config.S3, log *zap.Logger) *Store {
	return &Store{
		api:       api,
		presigner: presigner,
		config:    s3Config,
		log:       log,
	}
}

// IssueUploadAuthorization presigns a PUT for the object. The URL is only
// valid for the declared content type, requires the public-read ACL marker,
// and expires after the requested window.
func (s *Store) IssueUploadAuthorization(ctx context.Context, req storage.UploadRequest) (*storage.UploadAuthorization, error) {
	if req.FileName == "" {
		return nil, fmt.Errorf("fileName is required")
	}

	expiry := req.ExpiresIn
	if expiry <= 0 {
		expiry = time.Duration(s.config.UploadExpirySec) * time.Second
	}
	if expiry <= 0 {
		expiry = defaultUploadExpiry
	}

	// A fileName that already carries a path is used as the key verbatim.
	key := req.FileName
	if !strings.Contains(key, "/") {
		key = buildObjectKey(req.Folder, req.FileName)
	}

	presigned, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(req.ContentType),
		ACL:         types.ObjectCannedACLPublicRead,
	}, func(o *s3.PresignOptions) {
		o.Expires = expiry
	})
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload for %s: %w", key, err)
	}

	s.log.Info("Issued upload authorization",
		zap.String("key", key),
		zap.String("content_type", req.ContentType),
		zap.Duration("expires_in", expiry))

	return &storage.UploadAuthorization{
		URL:    presigned.URL,
		Key:    key,
		Bucket: s.config.Bucket,
	}, nil
}

// PublicURL derives the externally visible URL for a key
func (s *Store) PublicURL(key string) string {
	if key == "" {
		return domain.PlaceholderImageURL
	}
	return fmt.Sprintf("%s/%s/%s",
		strings.TrimSuffix(s.publicEndpoint(), "/"),
		s.config.Bucket,
		strings.TrimPrefix(key, "/"))
}

func (s *Store) publicEndpoint() string {
	if s.config.PublicEndpoint != "" {
		return s.config.PublicEndpoint
	}
	if s.config.Endpoint != "" {
		return s.config.Endpoint
	}
	return fmt.Sprintf("https://s3.%s.amazonaws.com", s.config.Region)
}

// EnsureBucketExists checks the bucket and, when absent, runs the full
// provisioning sequence: create, public-read policy, CORS. Safe to call
// repeatedly; an existing bucket short-circuits re-provisioning.
func (s *Store) EnsureBucketExists(ctx context.Context) bool {
	bucket := aws.String(s.config.Bucket)

	_, err := s.api.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: bucket})
	if err == nil {
		return true
	}

	var notFound *types.NotFound
	if !errors.As(err, &notFound) {
		s.log.Error("Failed to check bucket existence",
			zap.String("bucket", s.config.Bucket),
			zap.Error(err))
		return false
	}

	s.log.Info("Bucket absent, provisioning", zap.String("bucket", s.config.Bucket))

	if _, err := s.api.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: bucket}); err != nil {
		s.log.Error("Failed to create bucket",
			zap.String("bucket", s.config.Bucket),
			zap.Error(err))
		return false
	}

	if _, err := s.api.PutBucketPolicy(ctx, &s3.PutBucketPolicyInput{
		Bucket: bucket,
		Policy: aws.String(publicReadPolicy(s.config.Bucket)),
	}); err != nil {
		s.log.Error("Failed to apply bucket policy",
			zap.String("bucket", s.config.Bucket),
			zap.Error(err))
		return false
	}

	if _, err := s.api.PutBucketCors(ctx, &s3.PutBucketCorsInput{
		Bucket: bucket,
		CORSConfiguration: &types.CORSConfiguration{
			CORSRules: []types.CORSRule{
				{
					AllowedOrigins: []string{"*"},
					AllowedMethods: []string{"GET", "PUT", "POST", "DELETE"},
					AllowedHeaders: []string{"*"},
					ExposeHeaders:  []string{"ETag"},
					MaxAgeSeconds:  aws.Int32(corsMaxAgeSeconds),
				},
			},
		},
	}); err != nil {
		s.log.Error("Failed to apply bucket CORS configuration",
			zap.String("bucket", s.config.Bucket),
			zap.Error(err))
		return false
	}

	s.log.Info("Bucket provisioned", zap.String("bucket", s.config.Bucket))
	return true
}

// ListObjects lists object metadata under the prefix, best-effort
func (s *Store) ListObjects(ctx context.Context, prefix string) ([]storage.ObjectInfo, bool) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.config.Bucket),
		Prefix: aws.String(prefix),
	}

	objects := make([]storage.ObjectInfo, 0)
	for {
		out, err := s.api.ListObjectsV2(ctx, input)
		if err != nil {
			s.log.Warn("Failed to list objects",
				zap.String("bucket", s.config.Bucket),
				zap.String("prefix", prefix),
				zap.Error(err))
			return nil, false
		}

		for _, obj := range out.Contents {
			info := storage.ObjectInfo{
				Key:  aws.ToString(obj.Key),
				Size: aws.ToInt64(obj.Size),
			}
			if obj.LastModified != nil {
				info.LastModified = *obj.LastModified
			}
			objects = append(objects, info)
		}

		if !aws.ToBool(out.IsTruncated) {
			break
		}
		input.ContinuationToken = out.NextContinuationToken
	}

	return objects, true
}

// DeleteObject removes a single object, best-effort
func (s *Store) DeleteObject(ctx context.Context, key string) bool {
	_, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		s.log.Warn("Failed to delete object",
			zap.String("bucket", s.config.Bucket),
			zap.String("key", key),
			zap.Error(err))
		return false
	}
	return true
}

// TestConnection probes the store; provisioning the bucket doubles as the
// liveness check.
func (s *Store) TestConnection(ctx context.Context) bool {
	return s.EnsureBucketExists(ctx)
}

// buildObjectKey synthesizes a collision-free key:
// {folder}/{unixMilli}-{token}.{ext}
func buildObjectKey(folder, fileName string) string {
	if folder == "" {
		folder = defaultFolder
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	if ext == "" {
		ext = defaultExtension
	}

	token := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("%s/%d-%s.%s", folder, time.Now().UnixMilli(), token, ext)
}

// publicReadPolicy grants anonymous read on all objects, and anonymous write
// only when the uploader sets the public-read ACL marker the presigned PUT
// carries.
func publicReadPolicy(bucket string) string {
	return fmt.Sprintf(`{
	"Version": "2012-10-17",
	"Statement": [
		{
			"Sid": "PublicRead",
			"Effect": "Allow",
			"Principal": "*",
			"Action": "s3:GetObject",
			"Resource": "arn:aws:s3:::%[1]s/*"
		},
		{
			"Sid": "PublicUpload",
			"Effect": "Allow",
			"Principal": "*",
			"Action": "s3:PutObject",
			"Resource": "arn:aws:s3:::%[1]s/*",
			"Condition": {
				"StringEquals": {
					"s3:x-amz-acl": "public-read"
				}
			}
		}
	]
}`, bucket)
}
