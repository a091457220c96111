package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Service struct {
	Environment string `envconfig:"SERVICE_ENVIRONMENT" required:"true"`
	APIPort     string `envconfig:"SERVICE_API_PORT" default:"8080"`
}

type DynamoDB struct {
	Endpoint string `envconfig:"DYNAMODB_ENDPOINT"`
	Region   string `envconfig:"AWS_REGION" required:"true"`
	Table    string `envconfig:"DYNAMODB_TABLE" default:"events"`
}

type S3 struct {
	Endpoint string `envconfig:"S3_ENDPOINT"`
	// PublicEndpoint is the base used for externally visible object URLs.
	// Falls back to the regional AWS endpoint when empty.
	PublicEndpoint  string `envconfig:"S3_PUBLIC_ENDPOINT"`
	Region          string `envconfig:"AWS_REGION" required:"true"`
	Bucket          string `envconfig:"S3_BUCKET" default:"event-assets"`
	ForcePathStyle  bool   `envconfig:"S3_FORCE_PATH_STYLE" default:"true"`
	UploadExpirySec int    `envconfig:"S3_UPLOAD_EXPIRY_SEC" default:"3600"`
}

type Config struct {
	Service  Service
	DynamoDB DynamoDB
	S3       S3
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
