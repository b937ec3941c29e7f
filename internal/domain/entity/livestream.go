package entity

import (
	"time"

	"github.com/google/uuid"
)

// LiveStreamStatus is the broadcast state of a stream.
type LiveStreamStatus string

const (
	LiveStreamStatusScheduled LiveStreamStatus = "scheduled"
	LiveStreamStatusLive      LiveStreamStatus = "live"
	LiveStreamStatusEnded     LiveStreamStatus = "ended"
)

// IsValid reports whether s is a known broadcast state.
func (s LiveStreamStatus) IsValid() bool {
	switch s {
	case LiveStreamStatusScheduled, LiveStreamStatusLive, LiveStreamStatusEnded:
		return true
	default:
		return false
	}
}

// LiveStream is a broadcast mirrored from YouTube or Facebook.
type LiveStream struct {
	ID              uuid.UUID        `json:"id"`
	Title           string           `json:"title"`
	Description     string           `json:"description,omitempty"`
	ScheduledStart  time.Time        `json:"scheduled_start"`
	YoutubeVideoID  string           `json:"youtube_video_id,omitempty"`
	FacebookVideoID string           `json:"facebook_video_id,omitempty"`
	Status          LiveStreamStatus `json:"status"`
	ActualStart     *time.Time       `json:"actual_start,omitempty"`
	ActualEnd       *time.Time       `json:"actual_end,omitempty"`
	ViewerCount     int64            `json:"viewer_count"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// ChatMessage is a message posted to a stream's chat.
type ChatMessage struct {
	ID              uuid.UUID `json:"id"`
	StreamID        uuid.UUID `json:"stream_id"`
	UserName        string    `json:"user_name"`
	Message         string    `json:"message"`
	IsPrayerRequest bool      `json:"is_prayer_request"`
	Moderated       bool      `json:"moderated"`
	CreatedAt       time.Time `json:"timestamp"`
	UpdatedAt       time.Time `json:"updated_at"`
}
