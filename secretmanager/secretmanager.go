package secretmanager

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

type secretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

var (
	loadDefaultConfig       = config.LoadDefaultConfig
	newSecretsManagerClient = func(cfg aws.Config) secretsManagerAPI {
		return secretsmanager.NewFromConfig(cfg)
	}
)

// GetSecret returns the string value of the named secret using the default
// AWS credential chain.
func GetSecret(ctx context.Context, name string) (string, error) {
	cfg, err := loadDefaultConfig(ctx)
	if err != nil {
		return "", fmt.Errorf("load aws config: %w", err)
	}

	output, err := newSecretsManagerClient(cfg).GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		return "", fmt.Errorf("get secret %s: %w", name, err)
	}
	if output.SecretString == nil {
		return "", errors.New("secret " + name + " has no string value")
	}
	return *output.SecretString, nil
}
