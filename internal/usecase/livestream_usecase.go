package usecase

import (
	"context"
	"time"

	"ministry/internal/domain/entity"

	"github.com/google/uuid"
)

// ListLiveStreamsInput filters streams by broadcast state.
type ListLiveStreamsInput struct {
	PageInput
	Status entity.LiveStreamStatus `query:"status" validate:"omitempty,oneof=scheduled live ended"`
}

// CreateLiveStreamInput schedules a broadcast.
type CreateLiveStreamInput struct {
	Title           string    `json:"title" validate:"required,max=200"`
	Description     string    `json:"description" validate:"omitempty,max=2000"`
	ScheduledStart  time.Time `json:"scheduled_start" validate:"required"`
	YoutubeVideoID  string    `json:"youtube_video_id" validate:"omitempty,max=64"`
	FacebookVideoID string    `json:"facebook_video_id" validate:"omitempty,max=64"`
}

// UpdateLiveStreamStatusInput moves a stream between broadcast states.
type UpdateLiveStreamStatusInput struct {
	Status entity.LiveStreamStatus `json:"status" validate:"required,oneof=scheduled live ended"`
}

// ChatMessageInput is a message posted to a stream's chat.
type ChatMessageInput struct {
	UserName        string `json:"user_name" validate:"required,max=50"`
	Message         string `json:"message" validate:"required,max=1000"`
	IsPrayerRequest bool   `json:"is_prayer_request"`
}

// LiveStreamUsecase manages broadcasts and their chat.
type LiveStreamUsecase interface {
	List(ctx context.Context, input *ListLiveStreamsInput) (*Page[entity.LiveStream], error)
	Get(ctx context.Context, id uuid.UUID) (*entity.LiveStream, error)
	Create(ctx context.Context, input *CreateLiveStreamInput) (*entity.LiveStream, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, input *UpdateLiveStreamStatusInput) (*entity.LiveStream, error)
	PostChat(ctx context.Context, streamID uuid.UUID, input *ChatMessageInput) (*entity.ChatMessage, error)

	// ListChat returns chat messages oldest first.
	ListChat(ctx context.Context, streamID uuid.UUID, page PageInput) (*Page[entity.ChatMessage], error)
}
