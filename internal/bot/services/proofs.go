package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrijs2005/trustbot/internal/bot/config"
	"github.com/dmitrijs2005/trustbot/internal/netx"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}

	uploadToPresignedURL = netx.UploadToPresignedURL
)

// ProofService issues presigned URLs for uploading and viewing proof
// photos attached to scammer reports. The photos themselves live in
// S3-compatible object storage; only the object key is persisted with the
// record.
type ProofService struct {
	config *config.Config
	access *AccessService
}

// NewProofService constructs a ProofService gated by the given
// AccessService.
func NewProofService(cfg *config.Config, access *AccessService) *ProofService {
	return &ProofService{config: cfg, access: access}
}

// ProofStorageKey returns a fresh object key for a proof upload.
func ProofStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("proofs/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *ProofService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// UploadURL returns a fresh storage key and a presigned PUT URL for it.
// Admin tier required: only actors who may file scammer reports get to
// upload proof photos.
func (s *ProofService) UploadURL(ctx context.Context, actorID int64) (string, string, error) {
	if _, err := s.access.RequireAdmin(ctx, actorID); err != nil {
		return "", "", err
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", "", err
	}

	key := ProofStorageKey()

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.config.S3Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.config.PresignValidityDuration))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// StoreProof uploads photo bytes to object storage under a fresh key and
// returns the key. Admin tier required.
func (s *ProofService) StoreProof(ctx context.Context, actorID int64, data []byte, contentType string) (string, error) {
	key, url, err := s.UploadURL(ctx, actorID)
	if err != nil {
		return "", err
	}
	if err := uploadToPresignedURL(ctx, url, data, contentType); err != nil {
		return "", err
	}
	return key, nil
}

// ViewURL returns a presigned GET URL for a stored proof photo.
func (s *ProofService) ViewURL(ctx context.Context, key string) (string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.S3Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.config.PresignValidityDuration))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
