package clients

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"

	"github.com/spacesedan/rekognition-bot/config"
)

// NewAWSConfig loads the SDK config for the configured region. Static keys are
// used when both are set, otherwise the default credential chain applies.
// The SDK retryer is limited to one attempt: failed calls are reported, not retried.
func NewAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	slog.Info("[AWSClient] Initializing AWS Config...",
		slog.String("region", cfg.AWSRegion),
		slog.Bool("static_credentials", cfg.HasStaticCredentials()))

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithRetryMaxAttempts(AWS_MAX_ATTEMPTS),
		awsconfig.WithAppID(APP_ID),
	}
	if cfg.HasStaticCredentials() {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKey, cfg.AWSSecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		slog.Error("[AWSClient] Failed to load AWS config",
			slog.String("error", err.Error()))
		return aws.Config{}, fmt.Errorf("[AWSClient] failed to load AWS config: %w", err)
	}

	slog.Info("[AWSClient] AWS Config Initialized")
	return awsCfg, nil
}

// NewRekognitionClient builds a client that is safe to share across invocations.
// A non-empty endpoint overrides the service URL (e.g. LocalStack).
func NewRekognitionClient(awsCfg aws.Config, endpoint string) *rekognition.Client {
	return rekognition.NewFromConfig(awsCfg, func(o *rekognition.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
}
