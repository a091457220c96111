package s3

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/ThousandGolder/event-management-ticketing-system-sub001/internal/config"
)

// Client wraps the S3 connection and its presigner
type Client struct {
	client   *s3.Client
	presign  *s3.PresignClient
	config   config.S3
	log      *zap.Logger
}

// NewClient creates a new S3 client with the given configuration
func NewClient(ctx context.Context, s3Config config.S3, log *zap.Logger) (*Client, error) {
	configOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(s3Config.Region),
	}

	var clientOpts []func(*s3.Options)

	// Configure for local development with MinIO / LocalStack
	if s3Config.Endpoint != "" {
		log.Info("Configuring S3 for local development",
			zap.String("endpoint", s3Config.Endpoint))
		configOpts = append(configOpts,
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("dummy", "dummy", "")))

		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(s3Config.Endpoint)
		})
	}

	clientOpts = append(clientOpts, func(o *s3.Options) {
		o.UsePathStyle = s3Config.ForcePathStyle
	})

	cfg, err := awsconfig.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, clientOpts...)

	return &Client{
		client:  client,
		presign: s3.NewPresignClient(client),
		config:  s3Config,
		log:     log,
	}, nil
}

// API returns the underlying S3 client
func (c *Client) API() S3API {
	return c.client
}

// Presigner returns the presign client
func (c *Client) Presigner() PresignAPI {
	return c.presign
}
