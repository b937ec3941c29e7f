package entity

import (
	"time"

	"github.com/google/uuid"
)

// Resource is a downloadable file or an external link for study material.
type Resource struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category"`
	FileURL       string    `json:"file_url,omitempty"`
	ExternalLink  string    `json:"external_link,omitempty"`
	FileType      string    `json:"file_type,omitempty"`
	FileSizeMB    float64   `json:"file_size_mb,omitempty"`
	ThumbnailURL  string    `json:"thumbnail_url,omitempty"`
	DownloadCount int64     `json:"download_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Link returns the URL a download should resolve to.
func (r *Resource) Link() string {
	if r.FileURL != "" {
		return r.FileURL
	}

	return r.ExternalLink
}

// UploadedFile describes a file written to blob storage.
type UploadedFile struct {
	FileURL    string  `json:"file_url"`
	FileType   string  `json:"file_type"`
	FileSizeMB float64 `json:"file_size_mb"`
}
