package entity

import (
	"time"

	"github.com/google/uuid"
)

// BlogPost is an article. Only published posts are visible publicly.
type BlogPost struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Author        string     `json:"author"`
	Content       string     `json:"content"`
	Excerpt       string     `json:"excerpt,omitempty"`
	FeaturedImage string     `json:"featured_image,omitempty"`
	Category      string     `json:"category"`
	Tags          []string   `json:"tags"`
	Published     bool       `json:"published"`
	PublishedAt   *time.Time `json:"published_at,omitempty"` // Set the first time the post is published.
	ViewCount     int64      `json:"view_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
