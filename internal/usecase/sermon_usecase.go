package usecase

import (
	"context"
	"time"

	"ministry/internal/domain/entity"

	"github.com/google/uuid"
)

// ListSermonsInput filters the public sermon archive.
type ListSermonsInput struct {
	PageInput
	Speaker string `query:"speaker"`
	Series  string `query:"series"`
	Tag     string `query:"tag"`
}

// CreateSermonInput defines a new sermon.
type CreateSermonInput struct {
	Title              string    `json:"title" validate:"required,max=200"`
	Speaker            string    `json:"speaker" validate:"required,max=100"`
	Series             string    `json:"series" validate:"omitempty,max=100"`
	Description        string    `json:"description" validate:"omitempty,max=5000"`
	ScriptureReference string    `json:"scripture_reference" validate:"omitempty,max=200"`
	Date               time.Time `json:"date" validate:"required"`
	AudioURL           string    `json:"audio_url" validate:"omitempty,url"`
	VideoURL           string    `json:"video_url" validate:"omitempty,url"`
	ThumbnailURL       string    `json:"thumbnail_url" validate:"omitempty,url"`
	DownloadURL        string    `json:"download_url" validate:"omitempty,url"`
	DurationMinutes    int       `json:"duration_minutes" validate:"gte=0"`
	Tags               []string  `json:"tags" validate:"omitempty,max=20,dive,max=50"`
}

// UpdateSermonInput is a partial sermon update; nil fields are left unchanged.
type UpdateSermonInput struct {
	Title              *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Speaker            *string    `json:"speaker" validate:"omitempty,min=1,max=100"`
	Series             *string    `json:"series" validate:"omitempty,max=100"`
	Description        *string    `json:"description" validate:"omitempty,max=5000"`
	ScriptureReference *string    `json:"scripture_reference" validate:"omitempty,max=200"`
	Date               *time.Time `json:"date"`
	AudioURL           *string    `json:"audio_url" validate:"omitempty,url"`
	VideoURL           *string    `json:"video_url" validate:"omitempty,url"`
	ThumbnailURL       *string    `json:"thumbnail_url" validate:"omitempty,url"`
	DownloadURL        *string    `json:"download_url" validate:"omitempty,url"`
	DurationMinutes    *int       `json:"duration_minutes" validate:"omitempty,gte=0"`
	Tags               []string   `json:"tags" validate:"omitempty,max=20,dive,max=50"`
}

// DownloadOutput is the link a download counter increment resolves to.
type DownloadOutput struct {
	URL           string `json:"download_url"`
	DownloadCount int64  `json:"download_count"`
}

// SermonUsecase manages the sermon archive.
type SermonUsecase interface {
	List(ctx context.Context, input *ListSermonsInput) (*Page[entity.Sermon], error)

	// Get returns a sermon and counts the view.
	Get(ctx context.Context, id uuid.UUID) (*entity.Sermon, error)

	RecordDownload(ctx context.Context, id uuid.UUID) (*DownloadOutput, error)
	Create(ctx context.Context, input *CreateSermonInput) (*entity.Sermon, error)
	Update(ctx context.Context, id uuid.UUID, input *UpdateSermonInput) (*entity.Sermon, error)
}
