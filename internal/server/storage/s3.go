package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/common"
	sc "github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/config"
	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/secrets"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// BlobConnectionSecret is the vault secret carrying the blob store
// credentials as "accessKey:secretKey".
const BlobConnectionSecret = "blob-connection-string"

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	createBucket = func(c *s3.Client, ctx context.Context, in *s3.CreateBucketInput) (*s3.CreateBucketOutput, error) {
		return c.CreateBucket(ctx, in)
	}
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}
	deleteObject = func(c *s3.Client, ctx context.Context, in *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error) {
		return c.DeleteObject(ctx, in)
	}
)

// S3FileStorage implements FileStorage on an S3-compatible backend. The
// connection credentials are fetched from the secret vault per call; when
// the secret is absent the adapter degrades to a silent no-op as documented
// on FileStorage.
type S3FileStorage struct {
	secrets secrets.Provider
	config  *sc.Config
}

// NewS3FileStorage constructs an S3FileStorage over the vault and server
// config.
func NewS3FileStorage(provider secrets.Provider, config *sc.Config) *S3FileStorage {
	return &S3FileStorage{secrets: provider, config: config}
}

// getClient builds an S3 client from the vault-held connection secret. A
// missing or empty secret yields a nil client and nil error (degraded mode).
func (s *S3FileStorage) getClient(ctx context.Context) (*s3.Client, error) {
	secret, err := s.secrets.Get(ctx, BlobConnectionSecret)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetching blob connection secret: %w", err)
	}

	accessKey, secretKey, ok := strings.Cut(secret, ":")
	if !ok || secret == "" {
		return nil, nil
	}

	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKey,
			secretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return client, nil
}

// Store uploads the file into the container under a freshly generated name
// that preserves the original extension, makes the object publicly
// readable, and returns its URL. Returns "" with a nil error when the
// connection secret is unavailable.
func (s *S3FileStorage) Store(ctx context.Context, container string, file Upload) (string, error) {

	client, err := s.getClient(ctx)
	if err != nil {
		return "", err
	}
	if client == nil {
		return "", nil
	}

	if err := s.ensureContainer(ctx, client, container); err != nil {
		return "", err
	}

	name := uuid.New().String() + strings.ToLower(path.Ext(file.FileName))

	in := &s3.PutObjectInput{
		Bucket: aws.String(container),
		Key:    aws.String(name),
		Body:   file.Body,
		ACL:    types.ObjectCannedACLPublicRead,
	}
	if file.ContentType != "" {
		in.ContentType = aws.String(file.ContentType)
	}

	if _, err := putObject(client, ctx, in); err != nil {
		return "", fmt.Errorf("uploading %s: %w", name, err)
	}

	return s.objectURL(container, name), nil
}

// Delete removes the object referenced by route from the container. The
// object name is the final path segment of the route. Empty routes and an
// unavailable connection secret are silent no-ops; deleting an absent
// object is not an error.
func (s *S3FileStorage) Delete(ctx context.Context, route, container string) error {
	if route == "" {
		return nil
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return err
	}
	if client == nil {
		return nil
	}

	name := objectName(route)

	if _, err := deleteObject(client, ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(container),
		Key:    aws.String(name),
	}); err != nil {
		return fmt.Errorf("deleting %s: %w", name, err)
	}

	return nil
}

// ensureContainer creates the bucket if it does not exist yet.
func (s *S3FileStorage) ensureContainer(ctx context.Context, client *s3.Client, container string) error {
	_, err := createBucket(client, ctx, &s3.CreateBucketInput{
		Bucket: aws.String(container),
	})
	if err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		var exists *types.BucketAlreadyExists
		if errors.As(err, &owned) || errors.As(err, &exists) {
			return nil
		}
		return fmt.Errorf("creating container %s: %w", container, err)
	}
	return nil
}

func (s *S3FileStorage) objectURL(container, name string) string {
	base := strings.TrimRight(s.config.S3BaseEndpoint, "/")
	return base + "/" + container + "/" + name
}

// objectName resolves the stored object name from a URL or bare path.
func objectName(route string) string {
	if u, err := url.Parse(route); err == nil && u.Path != "" {
		return path.Base(u.Path)
	}
	return path.Base(route)
}
