package secrets

import (
	"context"
	"errors"

	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/common"
	sc "github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newVaultClientFromConfig = func(cfg aws.Config, optFns ...func(*secretsmanager.Options)) *secretsmanager.Client {
		return secretsmanager.NewFromConfig(cfg, optFns...)
	}

	getSecretValue = func(c *secretsmanager.Client, ctx context.Context, in *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error) {
		return c.GetSecretValue(ctx, in)
	}
)

// VaultProvider fetches secrets from an AWS Secrets Manager compatible vault.
type VaultProvider struct {
	config *sc.Config
}

// NewVaultProvider constructs a VaultProvider using server config.
func NewVaultProvider(config *sc.Config) *VaultProvider {
	return &VaultProvider{config: config}
}

func (p *VaultProvider) getClient(ctx context.Context) (*secretsmanager.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(p.config.VaultRegion),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			p.config.VaultAccessKey,
			p.config.VaultSecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newVaultClientFromConfig(cfg, func(o *secretsmanager.Options) {
		if p.config.VaultBaseEndpoint != "" {
			o.BaseEndpoint = aws.String(p.config.VaultBaseEndpoint)
		}
	})

	return client, nil
}

// Get returns the current value of the named secret. An absent secret maps
// to common.ErrorNotFound.
func (p *VaultProvider) Get(ctx context.Context, name string) (string, error) {

	client, err := p.getClient(ctx)
	if err != nil {
		return "", err
	}

	out, err := getSecretValue(client, ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return "", common.ErrorNotFound
		}
		return "", err
	}

	if out.SecretString == nil {
		return "", common.ErrorNotFound
	}

	return *out.SecretString, nil
}
