package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	sc "github.com/dmitrijs2005/hoverboard/internal/server/config"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const presignValidity = 15 * time.Minute

// Upload kinds accepted by MediaService.PresignUpload.
const (
	MediaAvatar  = "avatars"
	MediaProject = "projects"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

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
)

// UploadTicket tells a client where to PUT an image and where it will be
// readable afterwards.
type UploadTicket struct {
	StorageKey string    `json:"storage_key"`
	UploadURL  string    `json:"upload_url"`
	PublicURL  string    `json:"public_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// MediaService hands out presigned S3 (or MinIO) URLs for profile and
// project images, so image bytes never pass through this server.
type MediaService struct {
	config *sc.Config
	now    func() time.Time
}

func NewMediaService(config *sc.Config) *MediaService {
	return &MediaService{config: config, now: time.Now}
}

// StorageKey builds an object key under the owner's prefix.
func StorageKey(userID, kind string, d time.Time) string {
	return fmt.Sprintf("users/%s/%s/%d/%d/%d/%v", userID, kind, d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *MediaService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		// MinIO serves buckets under the path, not as subdomains
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// PresignUpload returns a ticket for a new object of the given kind owned by userID.
func (s *MediaService) PresignUpload(ctx context.Context, userID, kind string) (*UploadTicket, error) {
	if kind != MediaAvatar && kind != MediaProject {
		return nil, fmt.Errorf("unknown media kind %q", kind)
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	bucket := s.config.S3Bucket
	key := StorageKey(userID, kind, now)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignValidity))
	if err != nil {
		return nil, err
	}

	return &UploadTicket{
		StorageKey: key,
		UploadURL:  req.URL,
		PublicURL:  s.PublicURL(key),
		ExpiresAt:  now.Add(presignValidity).UTC(),
	}, nil
}

// PresignAvatarUpload is PresignUpload for profile pictures.
func (s *MediaService) PresignAvatarUpload(ctx context.Context, userID string) (*UploadTicket, error) {
	return s.PresignUpload(ctx, userID, MediaAvatar)
}

// PresignedGetURL returns a time-limited read URL for key.
func (s *MediaService) PresignedGetURL(ctx context.Context, key string) (string, error) {
	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignValidity))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

// PublicURL is the unsigned path-style URL of key, valid for public-read buckets.
func (s *MediaService) PublicURL(key string) string {
	return strings.TrimRight(s.config.S3BaseEndpoint, "/") + "/" + s.config.S3Bucket + "/" + key
}
