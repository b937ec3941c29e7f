package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SermonModel is the GORM-specific struct for the 'sermons' table.
type SermonModel struct {
	ID                 uuid.UUID                   `gorm:"type:uuid;primary_key"`
	Title              string                      `gorm:"type:varchar(255);not null"`
	Speaker            string                      `gorm:"type:varchar(255);not null;index"`
	Series             string                      `gorm:"type:varchar(255);index"`
	Description        string                      `gorm:"type:text"`
	ScriptureReference string                      `gorm:"type:varchar(255)"`
	Date               time.Time                   `gorm:"not null;index"`
	AudioURL           string                      `gorm:"type:text"`
	VideoURL           string                      `gorm:"type:text"`
	ThumbnailURL       string                      `gorm:"type:text"`
	DownloadURL        string                      `gorm:"type:text"`
	DurationMinutes    int                         `gorm:"not null;default:0"`
	Tags               datatypes.JSONSlice[string] `gorm:"type:jsonb;not null;default:'[]'"`
	ViewCount          int64                       `gorm:"not null;default:0"`
	DownloadCount      int64                       `gorm:"not null;default:0"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName explicitly sets the table name for GORM.
func (SermonModel) TableName() string {
	return "sermons"
}

// EventModel is the GORM-specific struct for the 'events' table.
type EventModel struct {
	ID                   uuid.UUID `gorm:"type:uuid;primary_key"`
	Title                string    `gorm:"type:varchar(255);not null"`
	Description          string    `gorm:"type:text;not null"`
	StartDate            time.Time `gorm:"not null;index"`
	EndDate              time.Time `gorm:"not null"`
	Location             string    `gorm:"type:varchar(255);not null"`
	Latitude             *float64  `gorm:"type:decimal(10,8)"`
	Longitude            *float64  `gorm:"type:decimal(11,8)"`
	ImageURL             string    `gorm:"type:text"`
	MaxAttendees         *int
	RegistrationRequired bool   `gorm:"not null;default:false"`
	Category             string `gorm:"type:varchar(50);not null;index"`
	AttendeesCount       int64  `gorm:"not null;default:0"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// TableName explicitly sets the table name for GORM.
func (EventModel) TableName() string {
	return "events"
}

// EventRSVPModel is the GORM-specific struct for the 'event_rsvps' table.
type EventRSVPModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key"`
	EventID           uuid.UUID `gorm:"type:uuid;not null;index"`
	Name              string    `gorm:"type:varchar(255);not null"`
	Email             string    `gorm:"type:varchar(255);not null"`
	Phone             string    `gorm:"type:varchar(50)"`
	NumberOfAttendees int       `gorm:"not null;default:1"`
	Message           string    `gorm:"type:text"`
	Status            string    `gorm:"type:varchar(20);not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName explicitly sets the table name for GORM.
func (EventRSVPModel) TableName() string {
	return "event_rsvps"
}

// PrayerRequestModel is the GORM-specific struct for the 'prayer_requests' table.
type PrayerRequestModel struct {
	ID                   uuid.UUID `gorm:"type:uuid;primary_key"`
	Name                 string    `gorm:"type:varchar(255)"`
	Email                string    `gorm:"type:varchar(255)"`
	RequestText          string    `gorm:"type:text;not null"`
	IsAnonymous          bool      `gorm:"not null;default:false"`
	PublicSharingAllowed bool      `gorm:"not null;default:false;index"`
	Status               string    `gorm:"type:varchar(20);not null;index"`
	Testimony            string    `gorm:"type:text"`
	CreatedAt            time.Time `gorm:"index"`
	UpdatedAt            time.Time
}

// TableName explicitly sets the table name for GORM.
func (PrayerRequestModel) TableName() string {
	return "prayer_requests"
}

// VolunteerModel is the GORM-specific struct for the 'volunteers' table.
type VolunteerModel struct {
	ID              uuid.UUID                   `gorm:"type:uuid;primary_key"`
	FirstName       string                      `gorm:"type:varchar(100);not null"`
	LastName        string                      `gorm:"type:varchar(100);not null"`
	Email           string                      `gorm:"type:varchar(255);not null"`
	Phone           string                      `gorm:"type:varchar(50);not null"`
	AreasOfInterest datatypes.JSONSlice[string] `gorm:"type:jsonb;not null;default:'[]'"`
	Availability    string                      `gorm:"type:varchar(255);not null"`
	Skills          string                      `gorm:"type:text"`
	Experience      string                      `gorm:"type:text"`
	Motivation      string                      `gorm:"type:text"`
	Status          string                      `gorm:"type:varchar(20);not null;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (VolunteerModel) TableName() string {
	return "volunteers"
}

// BlogPostModel is the GORM-specific struct for the 'blog_posts' table.
type BlogPostModel struct {
	ID            uuid.UUID                   `gorm:"type:uuid;primary_key"`
	Title         string                      `gorm:"type:varchar(255);not null"`
	Slug          string                      `gorm:"type:varchar(255);not null;uniqueIndex"`
	Author        string                      `gorm:"type:varchar(255);not null"`
	Content       string                      `gorm:"type:text;not null"`
	Excerpt       string                      `gorm:"type:text"`
	FeaturedImage string                      `gorm:"type:text"`
	Category      string                      `gorm:"type:varchar(50);not null;index"`
	Tags          datatypes.JSONSlice[string] `gorm:"type:jsonb;not null;default:'[]'"`
	Published     bool                        `gorm:"not null;default:false;index"`
	PublishedAt   *time.Time
	ViewCount     int64 `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (BlogPostModel) TableName() string {
	return "blog_posts"
}

// ResourceModel is the GORM-specific struct for the 'resources' table.
type ResourceModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	Title         string    `gorm:"type:varchar(255);not null"`
	Description   string    `gorm:"type:text"`
	Category      string    `gorm:"type:varchar(50);not null;index"`
	FileURL       string    `gorm:"type:text"`
	ExternalLink  string    `gorm:"type:text"`
	FileType      string    `gorm:"type:varchar(20)"`
	FileSizeMB    float64   `gorm:"column:file_size_mb;type:numeric(10,2);not null;default:0"`
	ThumbnailURL  string    `gorm:"type:text"`
	DownloadCount int64     `gorm:"not null;default:0"`
	CreatedAt     time.Time `gorm:"index"`
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (ResourceModel) TableName() string {
	return "resources"
}

// LiveStreamModel is the GORM-specific struct for the 'live_streams' table.
type LiveStreamModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	Title           string    `gorm:"type:varchar(255);not null"`
	Description     string    `gorm:"type:text"`
	ScheduledStart  time.Time `gorm:"not null;index"`
	YoutubeVideoID  string    `gorm:"type:varchar(100)"`
	FacebookVideoID string    `gorm:"type:varchar(100)"`
	Status          string    `gorm:"type:varchar(20);not null;index"`
	ActualStart     *time.Time
	ActualEnd       *time.Time
	ViewerCount     int64 `gorm:"not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (LiveStreamModel) TableName() string {
	return "live_streams"
}

// ChatMessageModel is the GORM-specific struct for the 'chat_messages' table.
type ChatMessageModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	StreamID        uuid.UUID `gorm:"type:uuid;not null;index"`
	UserName        string    `gorm:"type:varchar(255);not null"`
	Message         string    `gorm:"type:text;not null"`
	IsPrayerRequest bool      `gorm:"not null;default:false"`
	Moderated       bool      `gorm:"not null;default:false"`
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (ChatMessageModel) TableName() string {
	return "chat_messages"
}

// All lists every model for schema migration.
func All() []any {
	return []any{
		&UserModel{},
		&DonationModel{},
		&SermonModel{},
		&EventModel{},
		&EventRSVPModel{},
		&PrayerRequestModel{},
		&VolunteerModel{},
		&BlogPostModel{},
		&ResourceModel{},
		&LiveStreamModel{},
		&ChatMessageModel{},
	}
}
