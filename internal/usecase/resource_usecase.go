package usecase

import (
	"context"
	"io"

	"ministry/internal/domain/entity"

	"github.com/google/uuid"
)

// ListResourcesInput filters the resource library.
type ListResourcesInput struct {
	PageInput
	Category string `query:"category"`
	FileType string `query:"file_type"`
}

// CreateResourceInput defines a new resource. At least one of FileURL and ExternalLink is required.
type CreateResourceInput struct {
	Title        string  `json:"title" validate:"required,max=200"`
	Description  string  `json:"description" validate:"omitempty,max=2000"`
	Category     string  `json:"category" validate:"required,max=50"`
	FileURL      string  `json:"file_url" validate:"omitempty,url"`
	ExternalLink string  `json:"external_link" validate:"omitempty,url"`
	FileType     string  `json:"file_type" validate:"omitempty,max=20"`
	FileSizeMB   float64 `json:"file_size_mb" validate:"gte=0"`
	ThumbnailURL string  `json:"thumbnail_url" validate:"omitempty,url"`
}

// UploadInput is a file received from a multipart form.
type UploadInput struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ResourceUsecase manages downloadable study material.
type ResourceUsecase interface {
	List(ctx context.Context, input *ListResourcesInput) (*Page[entity.Resource], error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Resource, error)
	Create(ctx context.Context, input *CreateResourceInput) (*entity.Resource, error)

	// Upload stores a file and returns its public URL without creating a resource.
	Upload(ctx context.Context, input *UploadInput) (*entity.UploadedFile, error)

	RecordDownload(ctx context.Context, id uuid.UUID) (*DownloadOutput, error)
}
