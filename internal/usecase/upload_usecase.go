package usecase

import (
	"context"
	"io"

	"dukkan/internal/domain/service"
	"dukkan/internal/infrastructure/storage"
	"dukkan/pkg/errors"
)

const maxUploadSize = 5 << 20

var uploadFolders = map[string]bool{
	"products":   true,
	"banners":    true,
	"categories": true,
}

type UploadUseCase struct {
	files service.FileUploadService
}

// NewUploadUseCase accepts a nil service; uploads then fail with 503.
func NewUploadUseCase(files service.FileUploadService) *UploadUseCase {
	return &UploadUseCase{files: files}
}

type UploadResult struct {
	URL string `json:"url"`
}

func (uc *UploadUseCase) Upload(ctx context.Context, file io.Reader, size int64, contentType, folder string) (*UploadResult, error) {
	if uc.files == nil {
		return nil, errors.Unavailable("File storage is not configured", nil)
	}
	if size > maxUploadSize {
		return nil, errors.BadRequest("File exceeds the 5 MB limit", nil)
	}
	if !storage.AllowedImageType(contentType) {
		return nil, errors.BadRequest("Only JPEG, PNG, WebP and GIF images are accepted", nil)
	}
	if folder == "" {
		folder = "products"
	}
	if !uploadFolders[folder] {
		return nil, errors.BadRequest("Unknown upload folder "+folder, nil)
	}

	url, err := uc.files.UploadFile(ctx, file, contentType, folder)
	if err != nil {
		return nil, errors.Internal("Failed to upload file", err)
	}
	return &UploadResult{URL: url}, nil
}
