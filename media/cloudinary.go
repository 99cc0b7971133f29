package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type cloudinaryStore struct {
	client *cloudinary.Cloudinary
}

// NewCloudinaryStore builds a Store backed by a Cloudinary account.
func NewCloudinaryStore(cloudName, apiKey, apiSecret string) (Store, error) {
	client, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %w", err)
	}
	return &cloudinaryStore{client: client}, nil
}

func (s *cloudinaryStore) Upload(ctx context.Context, localPath string, kind Kind) (Asset, error) {
	params := uploader.UploadParams{}
	if kind == KindVideo {
		params.ResourceType = "video"
	}

	resp, err := s.client.Upload.Upload(ctx, localPath, params)
	if err != nil {
		return Asset{}, fmt.Errorf("failed to upload %s: %w", kind, err)
	}
	// The SDK reports API-level failures in the response body, not err.
	if resp.Error.Message != "" {
		return Asset{}, fmt.Errorf("failed to upload %s: %s", kind, resp.Error.Message)
	}

	return Asset{URL: resp.SecureURL, PublicID: resp.PublicID}, nil
}

func (s *cloudinaryStore) Destroy(ctx context.Context, publicID string, kind Kind) error {
	params := uploader.DestroyParams{PublicID: publicID}
	if kind == KindVideo {
		params.ResourceType = "video"
	}

	resp, err := s.client.Upload.Destroy(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to destroy %s %s: %w", kind, publicID, err)
	}
	// "not found" is fine: the asset is already gone.
	if resp.Result != "ok" && resp.Result != "not found" {
		return errors.New("failed to destroy " + publicID + ": " + resp.Result)
	}
	return nil
}
