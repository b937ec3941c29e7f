package repository

import (
	"context"
	"errors"

	"ministry/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	ErrSermonNotFound        = errors.New("sermon not found")
	ErrEventNotFound         = errors.New("event not found")
	ErrRSVPNotFound          = errors.New("rsvp not found")
	ErrPrayerRequestNotFound = errors.New("prayer request not found")
	ErrVolunteerNotFound     = errors.New("volunteer not found")
	ErrBlogPostNotFound      = errors.New("blog post not found")
	ErrResourceNotFound      = errors.New("resource not found")
	ErrLiveStreamNotFound    = errors.New("live stream not found")
	ErrChatMessageNotFound   = errors.New("chat message not found")

	// ErrDuplicateKey is returned when a write violates a unique index.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrUnknownCounter is returned when IncrementCounter targets a column that is not a counter.
	ErrUnknownCounter = errors.New("unknown counter column")
)

// ContentRepository is the generic persistence contract shared by content entities.
// Each entity type gets its own not-found sentinel.
type ContentRepository[T any] interface {
	// Create persists item and fills in its ID and timestamps.
	Create(ctx context.Context, item *T) error

	// FindByID retrieves a single record.
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)

	// List returns an ordered page of records matching the query.
	List(ctx context.Context, query ListQuery) ([]*T, error)

	// Count returns the number of records matching all conditions.
	Count(ctx context.Context, conditions ...Condition) (int64, error)

	// IncrementCounter atomically adds delta to a counter column.
	IncrementCounter(ctx context.Context, id uuid.UUID, column string, delta int64) error

	// UpdateFields applies a partial update keyed by column name and returns the updated record.
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*T, error)
}

type (
	SermonRepository        = ContentRepository[entity.Sermon]
	EventRepository         = ContentRepository[entity.Event]
	RSVPRepository          = ContentRepository[entity.EventRSVP]
	PrayerRequestRepository = ContentRepository[entity.PrayerRequest]
	VolunteerRepository     = ContentRepository[entity.Volunteer]
	ResourceRepository      = ContentRepository[entity.Resource]
	LiveStreamRepository    = ContentRepository[entity.LiveStream]
	ChatMessageRepository   = ContentRepository[entity.ChatMessage]
)

// BlogPostRepository adds slug lookup to the generic contract.
type BlogPostRepository interface {
	ContentRepository[entity.BlogPost]

	// FindBySlug retrieves a post by its unique slug.
	FindBySlug(ctx context.Context, slug string) (*entity.BlogPost, error)
}
