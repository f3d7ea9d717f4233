package sources

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// AWSConfig holds configuration for AWS Secrets Manager
type AWSConfig struct {
	Region          string `yaml:"region" toml:"region"`
	AccessKeyID     string `yaml:"access_key_id" toml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key" toml:"secret_access_key"`
	SecretName      string `yaml:"secret_name" toml:"secret_name"`
	Endpoint        string `yaml:"endpoint" toml:"endpoint"` // Optional: for LocalStack or custom endpoints
}

// Validate checks if the AWSConfig has all required fields set
func (a AWSConfig) Validate() error {
	if a.Region == "" {
		return errors.New("AWS region is required")
	}
	if a.SecretName == "" {
		return errors.New("AWS secret name is required")
	}
	// AccessKeyID and SecretAccessKey are optional - if not provided, will use IAM role or default credentials
	return nil
}

// CreateClient creates and configures an AWS Secrets Manager client from this
// config. Returns *secretsmanager.Client on success, or an error if client
// creation fails.
func (a AWSConfig) CreateClient() (*secretsmanager.Client, error) {
	ctx := context.Background()

	configOpts := []func(*config.LoadOptions) error{
		config.WithRegion(a.Region),
	}

	// Add custom endpoint if provided (for LocalStack or custom endpoints)
	if a.Endpoint != "" {
		configOpts = append(configOpts, config.WithBaseEndpoint(a.Endpoint))
	}

	// Add credentials if provided; otherwise use default credential chain (IAM role, env vars, etc.)
	if a.AccessKeyID != "" && a.SecretAccessKey != "" {
		configOpts = append(configOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				a.AccessKeyID,
				a.SecretAccessKey,
				"",
			),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AWS configuration")
	}

	return secretsmanager.NewFromConfig(cfg), nil
}

// AWS retrieves values from AWS Secrets Manager. The secret value can be
// either a plain string or a JSON object with multiple key-value pairs; in
// the JSON case the key selects an entry, in the plain case the whole secret
// is returned for any key.
type AWS struct {
	client     *secretsmanager.Client
	secretName string
}

// NewAWS creates an AWS Secrets Manager-backed source.
//
// Parameters:
//   - client: Configured AWS Secrets Manager client
//   - secretName: The name of the secret in AWS Secrets Manager
func NewAWS(client *secretsmanager.Client, secretName string) *AWS {
	return &AWS{
		client:     client,
		secretName: secretName,
	}
}

// Lookup retrieves a value from AWS Secrets Manager. A missing secret, a
// secret with no string value, or a key absent from a JSON secret means not
// found; any other API failure is an error.
func (a *AWS) Lookup(key string) (string, bool, error) {
	ctx := context.Background()

	input := &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(a.secretName),
	}

	result, err := a.client.GetSecretValue(ctx, input)
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if stderrors.As(err, &notFound) {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, "failed to read secret from AWS Secrets Manager: %q", a.secretName)
	}

	if result.SecretString == nil {
		return "", false, nil
	}

	secretString := *result.SecretString

	// Try to parse as JSON first (for secrets with multiple key-value pairs)
	var secretData map[string]interface{}
	if err := json.Unmarshal([]byte(secretString), &secretData); err == nil {
		value, ok := secretData[key].(string)
		if !ok {
			return "", false, nil
		}
		log.Debug().
			Str("secret_name", a.secretName).
			Str("key", key).
			Msg("Retrieved value from AWS Secrets Manager")
		return value, true, nil
	}

	// Not JSON, treat the entire secret as a single value
	// In this case, the key is ignored and the entire secret value is returned
	log.Debug().
		Str("secret_name", a.secretName).
		Msg("Retrieved value from AWS Secrets Manager (plain text)")
	return secretString, true, nil
}

// Name returns the source name
func (a *AWS) Name() string {
	return "AWS Secrets Manager"
}
