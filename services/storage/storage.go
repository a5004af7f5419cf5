package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorageService uploads attachments to Cloudinary.
type CloudinaryStorageService struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStorageService creates a Cloudinary-backed StorageService.
func NewCloudinaryStorageService(cloudName, apiKey, apiSecret string) (StorageService, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("CloudinaryStorageService: failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryStorageService{cld: cld, folder: AttachmentFolder}, nil
}

// UploadAttachment uploads content into the attachment folder and returns its secure URL.
func (s *CloudinaryStorageService) UploadAttachment(ctx context.Context, filename string, content io.Reader) (string, error) {
	publicID := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	result, err := s.cld.Upload.Upload(ctx, content, uploader.UploadParams{
		Folder:   s.folder,
		PublicID: publicID,
	})
	if err != nil {
		return "", fmt.Errorf("CloudinaryStorageService: failed to upload file: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("CloudinaryStorageService: upload rejected: %s", result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("CloudinaryStorageService: no URL returned")
	}
	return result.SecureURL, nil
}
