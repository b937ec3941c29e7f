package postgres

import (
	"context"
	"time"

	"ministry/internal/domain/entity"
	domainerrors "ministry/internal/domain/errors"
	"ministry/internal/domain/repository"
	"ministry/internal/errors"
	"ministry/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewSermonRepository is the constructor for the sermon repository.
func NewSermonRepository(db *gorm.DB) repository.SermonRepository {
	return newContentRepository(db, contentMapping[entity.Sermon, model.SermonModel]{
		name:     "sermon",
		notFound: repository.ErrSermonNotFound,
		counters: []string{"view_count", "download_count"},
		toDomain: toSermonDomain,
		toModel:  fromSermonDomain,
		prepare:  func(m *model.SermonModel) { m.ID = ensureID(m.ID) },
		assign: func(e *entity.Sermon, m *model.SermonModel) {
			e.ID, e.CreatedAt, e.UpdatedAt = m.ID, m.CreatedAt, m.UpdatedAt
		},
	})
}

// NewEventRepository is the constructor for the event repository.
func NewEventRepository(db *gorm.DB) repository.EventRepository {
	return newContentRepository(db, contentMapping[entity.Event, model.EventModel]{
		name:     "event",
		notFound: repository.ErrEventNotFound,
		counters: []string{"attendees_count"},
		toDomain: toEventDomain,
		toModel:  fromEventDomain,
		prepare:  func(m *model.EventModel) { m.ID = ensureID(m.ID) },
		assign: func(e *entity.Event, m *model.EventModel) {
			e.ID, e.CreatedAt, e.UpdatedAt = m.ID, m.CreatedAt, m.UpdatedAt
		},
	})
}

// NewRSVPRepository is the constructor for the event RSVP repository.
func NewRSVPRepository(db *gorm.DB) repository.RSVPRepository {
	return newContentRepository(db, contentMapping[entity.EventRSVP, model.EventRSVPModel]{
		name:     "rsvp",
		notFound: repository.ErrRSVPNotFound,
		toDomain: toRSVPDomain,
		toModel:  fromRSVPDomain,
		prepare:  func(m *model.EventRSVPModel) { m.ID = ensureID(m.ID) },
		assign: func(e *entity.EventRSVP, m *model.EventRSVPModel) {
			e.ID, e.CreatedAt, e.UpdatedAt = m.ID, m.CreatedAt, m.UpdatedAt
		},
	})
}

// NewPrayerRequestRepository is the constructor for the prayer request repository.
func NewPrayerRequestRepository(db *gorm.DB) repository.PrayerRequestRepository {
	return newContentRepository(db, contentMapping[entity.PrayerRequest, model.PrayerRequestModel]{
		name:     "prayer request",
		notFound: repository.ErrPrayerRequestNotFound,
		toDomain: toPrayerRequestDomain,
		toModel:  fromPrayerRequestDomain,
		prepare:  func(m *model.PrayerRequestModel) { m.ID = ensureID(m.ID) },
		assign: func(e *entity.PrayerRequest, m *model.PrayerRequestModel) {
			e.ID, e.CreatedAt, e.UpdatedAt = m.ID, m.CreatedAt, m.UpdatedAt
		},
	})
}

// NewVolunteerRepository is the constructor for the volunteer repository.
func NewVolunteerRepository(db *gorm.DB) repository.VolunteerRepository {
	return newContentRepository(db, contentMapping[entity.Volunteer, model.VolunteerModel]{
		name:     "volunteer",
		notFound: repository.ErrVolunteerNotFound,
		toDomain: toVolunteerDomain,
		toModel:  fromVolunteerDomain,
		prepare:  func(m *model.VolunteerModel) { m.ID = ensureID(m.ID) },
		assign: func(e *entity.Volunteer, m *model.VolunteerModel) {
			e.ID, e.CreatedAt, e.UpdatedAt = m.ID, m.CreatedAt, m.UpdatedAt
		},
	})
}

// NewResourceRepository is the constructor for the resource repository.
func NewResourceRepository(db *gorm.DB) repository.ResourceRepository {
	return newContentRepository(db, contentMapping[entity.Resource, model.ResourceModel]{
		name:     "resource",
		notFound: repository.ErrResourceNotFound,
		counters: []string{"download_count"},
		toDomain: toResourceDomain,
		toModel:  fromResourceDomain,
		prepare:  func(m *model.ResourceModel) { m.ID = ensureID(m.ID) },
		assign: func(e *entity.Resource, m *model.ResourceModel) {
			e.ID, e.CreatedAt, e.UpdatedAt = m.ID, m.CreatedAt, m.UpdatedAt
		},
	})
}

// NewLiveStreamRepository is the constructor for the live stream repository.
func NewLiveStreamRepository(db *gorm.DB) repository.LiveStreamRepository {
	return newContentRepository(db, contentMapping[entity.LiveStream, model.LiveStreamModel]{
		name:     "live stream",
		notFound: repository.ErrLiveStreamNotFound,
		counters: []string{"viewer_count"},
		toDomain: toLiveStreamDomain,
		toModel:  fromLiveStreamDomain,
		prepare:  func(m *model.LiveStreamModel) { m.ID = ensureID(m.ID) },
		assign: func(e *entity.LiveStream, m *model.LiveStreamModel) {
			e.ID, e.CreatedAt, e.UpdatedAt = m.ID, m.CreatedAt, m.UpdatedAt
		},
	})
}

// NewChatMessageRepository is the constructor for the chat message repository.
func NewChatMessageRepository(db *gorm.DB) repository.ChatMessageRepository {
	return newContentRepository(db, contentMapping[entity.ChatMessage, model.ChatMessageModel]{
		name:     "chat message",
		notFound: repository.ErrChatMessageNotFound,
		toDomain: toChatMessageDomain,
		toModel:  fromChatMessageDomain,
		prepare:  func(m *model.ChatMessageModel) { m.ID = ensureID(m.ID) },
		assign: func(e *entity.ChatMessage, m *model.ChatMessageModel) {
			e.ID, e.CreatedAt, e.UpdatedAt = m.ID, m.CreatedAt, m.UpdatedAt
		},
	})
}

// blogPostRepository adds slug lookup on top of the generic repository.
type blogPostRepository struct {
	*contentRepository[entity.BlogPost, model.BlogPostModel]
}

// NewBlogPostRepository is the constructor for blogPostRepository.
func NewBlogPostRepository(db *gorm.DB) repository.BlogPostRepository {
	return &blogPostRepository{
		contentRepository: newContentRepository(db, contentMapping[entity.BlogPost, model.BlogPostModel]{
			name:     "blog post",
			notFound: repository.ErrBlogPostNotFound,
			counters: []string{"view_count"},
			toDomain: toBlogPostDomain,
			toModel:  fromBlogPostDomain,
			prepare:  func(m *model.BlogPostModel) { m.ID = ensureID(m.ID) },
			assign: func(e *entity.BlogPost, m *model.BlogPostModel) {
				e.ID, e.CreatedAt, e.UpdatedAt = m.ID, m.CreatedAt, m.UpdatedAt
			},
		}),
	}
}

// FindBySlug retrieves a post by its unique slug.
func (repo *blogPostRepository) FindBySlug(ctx context.Context, slug string) (*entity.BlogPost, error) {
	var m model.BlogPostModel
	if err := repo.db.WithContext(ctx).Where("slug = ?", slug).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBlogPostNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find blog post by slug")
	}

	return toBlogPostDomain(&m), nil
}

func ensureID(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return newID()
	}

	return id
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

func toSermonDomain(data *model.SermonModel) *entity.Sermon {
	if data == nil {
		return nil
	}

	return &entity.Sermon{
		ID:                 data.ID,
		Title:              data.Title,
		Speaker:            data.Speaker,
		Series:             data.Series,
		Description:        data.Description,
		ScriptureReference: data.ScriptureReference,
		Date:               data.Date,
		AudioURL:           data.AudioURL,
		VideoURL:           data.VideoURL,
		ThumbnailURL:       data.ThumbnailURL,
		DownloadURL:        data.DownloadURL,
		DurationMinutes:    data.DurationMinutes,
		Tags:               nonNilStrings(data.Tags),
		ViewCount:          data.ViewCount,
		DownloadCount:      data.DownloadCount,
		CreatedAt:          data.CreatedAt,
		UpdatedAt:          data.UpdatedAt,
	}
}

func fromSermonDomain(data *entity.Sermon) *model.SermonModel {
	if data == nil {
		return nil
	}

	return &model.SermonModel{
		ID:                 data.ID,
		Title:              data.Title,
		Speaker:            data.Speaker,
		Series:             data.Series,
		Description:        data.Description,
		ScriptureReference: data.ScriptureReference,
		Date:               data.Date,
		AudioURL:           data.AudioURL,
		VideoURL:           data.VideoURL,
		ThumbnailURL:       data.ThumbnailURL,
		DownloadURL:        data.DownloadURL,
		DurationMinutes:    data.DurationMinutes,
		Tags:               nonNilStrings(data.Tags),
		ViewCount:          data.ViewCount,
		DownloadCount:      data.DownloadCount,
	}
}

func toEventDomain(data *model.EventModel) *entity.Event {
	if data == nil {
		return nil
	}

	return &entity.Event{
		ID:                   data.ID,
		Title:                data.Title,
		Description:          data.Description,
		StartDate:            data.StartDate,
		EndDate:              data.EndDate,
		Location:             data.Location,
		Latitude:             data.Latitude,
		Longitude:            data.Longitude,
		ImageURL:             data.ImageURL,
		MaxAttendees:         data.MaxAttendees,
		RegistrationRequired: data.RegistrationRequired,
		Category:             data.Category,
		AttendeesCount:       data.AttendeesCount,
		CreatedAt:            data.CreatedAt,
		UpdatedAt:            data.UpdatedAt,
	}
}

func fromEventDomain(data *entity.Event) *model.EventModel {
	if data == nil {
		return nil
	}

	return &model.EventModel{
		ID:                   data.ID,
		Title:                data.Title,
		Description:          data.Description,
		StartDate:            data.StartDate,
		EndDate:              data.EndDate,
		Location:             data.Location,
		Latitude:             data.Latitude,
		Longitude:            data.Longitude,
		ImageURL:             data.ImageURL,
		MaxAttendees:         data.MaxAttendees,
		RegistrationRequired: data.RegistrationRequired,
		Category:             data.Category,
		AttendeesCount:       data.AttendeesCount,
	}
}

func toRSVPDomain(data *model.EventRSVPModel) *entity.EventRSVP {
	if data == nil {
		return nil
	}

	return &entity.EventRSVP{
		ID:                data.ID,
		EventID:           data.EventID,
		Name:              data.Name,
		Email:             data.Email,
		Phone:             data.Phone,
		NumberOfAttendees: data.NumberOfAttendees,
		Message:           data.Message,
		Status:            entity.RSVPStatus(data.Status),
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}

func fromRSVPDomain(data *entity.EventRSVP) *model.EventRSVPModel {
	if data == nil {
		return nil
	}

	return &model.EventRSVPModel{
		ID:                data.ID,
		EventID:           data.EventID,
		Name:              data.Name,
		Email:             data.Email,
		Phone:             data.Phone,
		NumberOfAttendees: data.NumberOfAttendees,
		Message:           data.Message,
		Status:            string(data.Status),
	}
}

func toPrayerRequestDomain(data *model.PrayerRequestModel) *entity.PrayerRequest {
	if data == nil {
		return nil
	}

	return &entity.PrayerRequest{
		ID:                   data.ID,
		Name:                 data.Name,
		Email:                data.Email,
		RequestText:          data.RequestText,
		IsAnonymous:          data.IsAnonymous,
		PublicSharingAllowed: data.PublicSharingAllowed,
		Status:               entity.PrayerStatus(data.Status),
		Testimony:            data.Testimony,
		CreatedAt:            data.CreatedAt,
		UpdatedAt:            data.UpdatedAt,
	}
}

func fromPrayerRequestDomain(data *entity.PrayerRequest) *model.PrayerRequestModel {
	if data == nil {
		return nil
	}

	return &model.PrayerRequestModel{
		ID:                   data.ID,
		Name:                 data.Name,
		Email:                data.Email,
		RequestText:          data.RequestText,
		IsAnonymous:          data.IsAnonymous,
		PublicSharingAllowed: data.PublicSharingAllowed,
		Status:               string(data.Status),
		Testimony:            data.Testimony,
	}
}

func toVolunteerDomain(data *model.VolunteerModel) *entity.Volunteer {
	if data == nil {
		return nil
	}

	return &entity.Volunteer{
		ID:              data.ID,
		FirstName:       data.FirstName,
		LastName:        data.LastName,
		Email:           data.Email,
		Phone:           data.Phone,
		AreasOfInterest: nonNilStrings(data.AreasOfInterest),
		Availability:    data.Availability,
		Skills:          data.Skills,
		Experience:      data.Experience,
		Motivation:      data.Motivation,
		Status:          entity.VolunteerStatus(data.Status),
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func fromVolunteerDomain(data *entity.Volunteer) *model.VolunteerModel {
	if data == nil {
		return nil
	}

	return &model.VolunteerModel{
		ID:              data.ID,
		FirstName:       data.FirstName,
		LastName:        data.LastName,
		Email:           data.Email,
		Phone:           data.Phone,
		AreasOfInterest: nonNilStrings(data.AreasOfInterest),
		Availability:    data.Availability,
		Skills:          data.Skills,
		Experience:      data.Experience,
		Motivation:      data.Motivation,
		Status:          string(data.Status),
	}
}

func toBlogPostDomain(data *model.BlogPostModel) *entity.BlogPost {
	if data == nil {
		return nil
	}

	return &entity.BlogPost{
		ID:            data.ID,
		Title:         data.Title,
		Slug:          data.Slug,
		Author:        data.Author,
		Content:       data.Content,
		Excerpt:       data.Excerpt,
		FeaturedImage: data.FeaturedImage,
		Category:      data.Category,
		Tags:          nonNilStrings(data.Tags),
		Published:     data.Published,
		PublishedAt:   data.PublishedAt,
		ViewCount:     data.ViewCount,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

func fromBlogPostDomain(data *entity.BlogPost) *model.BlogPostModel {
	if data == nil {
		return nil
	}

	return &model.BlogPostModel{
		ID:            data.ID,
		Title:         data.Title,
		Slug:          data.Slug,
		Author:        data.Author,
		Content:       data.Content,
		Excerpt:       data.Excerpt,
		FeaturedImage: data.FeaturedImage,
		Category:      data.Category,
		Tags:          nonNilStrings(data.Tags),
		Published:     data.Published,
		PublishedAt:   data.PublishedAt,
		ViewCount:     data.ViewCount,
	}
}

func toResourceDomain(data *model.ResourceModel) *entity.Resource {
	if data == nil {
		return nil
	}

	return &entity.Resource{
		ID:            data.ID,
		Title:         data.Title,
		Description:   data.Description,
		Category:      data.Category,
		FileURL:       data.FileURL,
		ExternalLink:  data.ExternalLink,
		FileType:      data.FileType,
		FileSizeMB:    data.FileSizeMB,
		ThumbnailURL:  data.ThumbnailURL,
		DownloadCount: data.DownloadCount,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

func fromResourceDomain(data *entity.Resource) *model.ResourceModel {
	if data == nil {
		return nil
	}

	return &model.ResourceModel{
		ID:            data.ID,
		Title:         data.Title,
		Description:   data.Description,
		Category:      data.Category,
		FileURL:       data.FileURL,
		ExternalLink:  data.ExternalLink,
		FileType:      data.FileType,
		FileSizeMB:    data.FileSizeMB,
		ThumbnailURL:  data.ThumbnailURL,
		DownloadCount: data.DownloadCount,
	}
}

func toLiveStreamDomain(data *model.LiveStreamModel) *entity.LiveStream {
	if data == nil {
		return nil
	}

	return &entity.LiveStream{
		ID:              data.ID,
		Title:           data.Title,
		Description:     data.Description,
		ScheduledStart:  data.ScheduledStart,
		YoutubeVideoID:  data.YoutubeVideoID,
		FacebookVideoID: data.FacebookVideoID,
		Status:          entity.LiveStreamStatus(data.Status),
		ActualStart:     data.ActualStart,
		ActualEnd:       data.ActualEnd,
		ViewerCount:     data.ViewerCount,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func fromLiveStreamDomain(data *entity.LiveStream) *model.LiveStreamModel {
	if data == nil {
		return nil
	}

	return &model.LiveStreamModel{
		ID:              data.ID,
		Title:           data.Title,
		Description:     data.Description,
		ScheduledStart:  data.ScheduledStart,
		YoutubeVideoID:  data.YoutubeVideoID,
		FacebookVideoID: data.FacebookVideoID,
		Status:          string(data.Status),
		ActualStart:     data.ActualStart,
		ActualEnd:       data.ActualEnd,
		ViewerCount:     data.ViewerCount,
	}
}

func toChatMessageDomain(data *model.ChatMessageModel) *entity.ChatMessage {
	if data == nil {
		return nil
	}

	return &entity.ChatMessage{
		ID:              data.ID,
		StreamID:        data.StreamID,
		UserName:        data.UserName,
		Message:         data.Message,
		IsPrayerRequest: data.IsPrayerRequest,
		Moderated:       data.Moderated,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func fromChatMessageDomain(data *entity.ChatMessage) *model.ChatMessageModel {
	if data == nil {
		return nil
	}

	return &model.ChatMessageModel{
		ID:              data.ID,
		StreamID:        data.StreamID,
		UserName:        data.UserName,
		Message:         data.Message,
		IsPrayerRequest: data.IsPrayerRequest,
		Moderated:       data.Moderated,
	}
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}

func timePtr(t time.Time) *time.Time {
	return &t
}
