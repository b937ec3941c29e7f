package entity

import (
	"time"

	"github.com/google/uuid"
)

// Sermon is a recorded message with optional audio, video and download links.
type Sermon struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	Speaker            string    `json:"speaker"`
	Series             string    `json:"series,omitempty"`
	Description        string    `json:"description,omitempty"`
	ScriptureReference string    `json:"scripture_reference,omitempty"`
	Date               time.Time `json:"date"`
	AudioURL           string    `json:"audio_url,omitempty"`
	VideoURL           string    `json:"video_url,omitempty"`
	ThumbnailURL       string    `json:"thumbnail_url,omitempty"`
	DownloadURL        string    `json:"download_url,omitempty"`
	DurationMinutes    int       `json:"duration_minutes,omitempty"`
	Tags               []string  `json:"tags"`
	ViewCount          int64     `json:"view_count"`
	DownloadCount      int64     `json:"download_count"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
