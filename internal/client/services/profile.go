package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/hoverboard/internal/client/client"
	"github.com/dmitrijs2005/hoverboard/internal/filex"
	"github.com/dmitrijs2005/hoverboard/internal/netx"
	"github.com/dmitrijs2005/hoverboard/internal/server/models"
)

var ErrNotImage = errors.New("file is not an image")

// Uploader PUTs body to a presigned URL.
type Uploader func(ctx context.Context, url string, body []byte, contentType string) error

type ProfileService interface {
	Me(ctx context.Context) (*models.UserProfile, error)
	Update(ctx context.Context, upd models.UserUpdate) (*models.UserProfile, error)
	UploadAvatar(ctx context.Context, path string) (*models.UserProfile, error)
}

type profileService struct {
	client   client.Client
	maxBytes int64
	upload   Uploader
}

func NewProfileService(c client.Client, maxAvatarBytes int64) ProfileService {
	return &profileService{client: c, maxBytes: maxAvatarBytes, upload: netx.UploadToS3PresignedURL}
}

func (p *profileService) Me(ctx context.Context) (*models.UserProfile, error) {
	return p.client.Me(ctx)
}

func (p *profileService) Update(ctx context.Context, upd models.UserUpdate) (*models.UserProfile, error) {
	return p.client.UpdateProfile(ctx, upd)
}

// UploadAvatar sends the image at path straight to object storage through a
// presigned URL, then points the profile's avatar_url at it.
func (p *profileService) UploadAvatar(ctx context.Context, path string) (*models.UserProfile, error) {
	data, err := filex.ReadLimited(path, p.maxBytes)
	if err != nil {
		return nil, err
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: detected %s", ErrNotImage, contentType)
	}

	ticket, err := p.client.UploadAvatar(ctx)
	if err != nil {
		return nil, fmt.Errorf("presign error: %w", err)
	}

	if err := p.upload(ctx, ticket.UploadURL, data, contentType); err != nil {
		return nil, fmt.Errorf("upload error: %w", err)
	}

	return p.client.UpdateProfile(ctx, models.UserUpdate{AvatarURL: &ticket.PublicURL})
}
