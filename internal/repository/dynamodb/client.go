package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"github.com/ThousandGolder/event-management-ticketing-system-sub001/internal/config"
)

// Client wraps the DynamoDB connection
type Client struct {
	client *dynamodb.Client
	config config.DynamoDB
	log    *zap.Logger
}

// NewClient creates a new DynamoDB client with the given configuration
func NewClient(ctx context.Context, dbConfig config.DynamoDB, log *zap.Logger) (*Client, error) {
	configOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(dbConfig.Region),
	}

	var clientOpts []func(*dynamodb.Options)

	// Configure for local development with DynamoDB Local / LocalStack
	if dbConfig.Endpoint != "" {
		log.Info("Configuring DynamoDB for local development",
			zap.String("endpoint", dbConfig.Endpoint))
		configOpts = append(configOpts,
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("dummy", "dummy", "")))

		clientOpts = append(clientOpts, func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String(dbConfig.Endpoint)
		})
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Client{
		client: dynamodb.NewFromConfig(cfg, clientOpts...),
		config: dbConfig,
		log:    log,
	}, nil
}

// API returns the underlying DynamoDB client
func (c *Client) API() DynamoAPI {
	return c.client
}

// Table returns the configured table name
func (c *Client) Table() string {
	return c.config.Table
}
