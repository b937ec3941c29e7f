package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ministry/config"
	"ministry/internal/domain/entity"
	domainerrors "ministry/internal/domain/errors"
	"ministry/internal/domain/repository"
	"ministry/internal/domain/service"
	"ministry/internal/errors"
	"ministry/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"go.uber.org/fx"
)

const (
	defaultSearchRadiusKM = 25.0
	// proximityScanLimit bounds how many candidate events a proximity search filters in memory.
	proximityScanLimit = 1000
)

type eventService struct {
	eventRepo repository.EventRepository
	rsvpRepo  repository.RSVPRepository
	qrcode    service.QRCodeService
	mail      *transactionalMail
	now       func() time.Time
	logger    *slog.Logger
}

// EventServiceParams holds dependencies for EventService, injected by Fx.
type EventServiceParams struct {
	fx.In

	EventRepo repository.EventRepository
	RSVPRepo  repository.RSVPRepository
	QRCode    service.QRCodeService
	Notifier  service.Notifier
	Config    *config.Config
	Logger    *slog.Logger
}

// NewEventService is the constructor for eventService.
func NewEventService(params EventServiceParams) usecase.EventUsecase {
	return &eventService{
		eventRepo: params.EventRepo,
		rsvpRepo:  params.RSVPRepo,
		qrcode:    params.QRCode,
		mail:      newTransactionalMail(params.Notifier, params.Config, params.Logger),
		now:       time.Now,
		logger:    params.Logger,
	}
}

// List returns events soonest first, optionally limited to a radius around a point.
func (srv *eventService) List(ctx context.Context, input *usecase.ListEventsInput) (*usecase.Page[entity.Event], error) {
	conditions := optionalEq(nil, "category", input.Category)
	if input.Upcoming {
		conditions = append(conditions, repository.Gte("start_date", srv.now().UTC()))
	}
	byStart := order{column: "start_date"}

	if input.Latitude == nil || input.Longitude == nil {
		return listPage(ctx, srv.eventRepo, input.PageInput, byStart, conditions...)
	}

	candidates, err := srv.eventRepo.List(ctx, repository.ListQuery{
		Conditions: conditions,
		OrderBy:    byStart.column,
		Limit:      proximityScanLimit,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list events for proximity search")
	}

	radius := input.RadiusKM
	if radius <= 0 {
		radius = defaultSearchRadiusKM
	}
	nearby := withinRadius(candidates, orb.Point{*input.Longitude, *input.Latitude}, radius)

	page := input.PageInput.Normalize()
	start := min(page.Skip, len(nearby))
	end := min(start+page.Limit, len(nearby))

	return &usecase.Page[entity.Event]{
		Items: nearby[start:end],
		Total: int64(len(nearby)),
		Skip:  page.Skip,
		Limit: page.Limit,
	}, nil
}

func (srv *eventService) Get(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	event, err := srv.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, repository.ErrEventNotFound, domainerrors.ErrEventNotFound)
	}

	return event, nil
}

func (srv *eventService) Create(ctx context.Context, input *usecase.CreateEventInput) (*entity.Event, error) {
	if !input.EndDate.After(input.StartDate) {
		return nil, domainerrors.Invalid("end_date", "must be after start_date")
	}
	if err := validateCoordinates(input.Latitude, input.Longitude); err != nil {
		return nil, err
	}

	event := &entity.Event{
		Title:                input.Title,
		Description:          input.Description,
		StartDate:            input.StartDate.UTC(),
		EndDate:              input.EndDate.UTC(),
		Location:             input.Location,
		Latitude:             input.Latitude,
		Longitude:            input.Longitude,
		ImageURL:             input.ImageURL,
		MaxAttendees:         input.MaxAttendees,
		RegistrationRequired: input.RegistrationRequired,
		Category:             input.Category,
	}
	if err := srv.eventRepo.Create(ctx, event); err != nil {
		return nil, errors.Wrap(err, "failed to create event")
	}

	requestLogger(ctx, srv.logger).Info("Event created", slog.String("event_id", event.ID.String()))

	return event, nil
}

func (srv *eventService) Update(ctx context.Context, id uuid.UUID, input *usecase.UpdateEventInput) (*entity.Event, error) {
	if input.StartDate != nil || input.EndDate != nil {
		current, err := srv.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		start, end := current.StartDate, current.EndDate
		if input.StartDate != nil {
			start = *input.StartDate
		}
		if input.EndDate != nil {
			end = *input.EndDate
		}
		if !end.After(start) {
			return nil, domainerrors.Invalid("end_date", "must be after start_date")
		}
	}
	if err := validateCoordinates(input.Latitude, input.Longitude); err != nil {
		return nil, err
	}

	fields := fieldSet{}
	setIfPresent(fields, "title", input.Title)
	setIfPresent(fields, "description", input.Description)
	setIfPresent(fields, "start_date", input.StartDate)
	setIfPresent(fields, "end_date", input.EndDate)
	setIfPresent(fields, "location", input.Location)
	setIfPresent(fields, "latitude", input.Latitude)
	setIfPresent(fields, "longitude", input.Longitude)
	setIfPresent(fields, "image_url", input.ImageURL)
	setIfPresent(fields, "max_attendees", input.MaxAttendees)
	setIfPresent(fields, "registration_required", input.RegistrationRequired)
	setIfPresent(fields, "category", input.Category)

	event, err := srv.eventRepo.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, notFoundAs(err, repository.ErrEventNotFound, domainerrors.ErrEventNotFound)
	}

	return event, nil
}

// RSVP stores the reservation, then adds its attendees with an atomic increment.
// The capacity check reads a snapshot, so concurrent reservations can overshoot
// max_attendees slightly. The two writes are independent; a failed increment is
// logged and the reservation stands.
func (srv *eventService) RSVP(ctx context.Context, eventID uuid.UUID, input *usecase.RSVPInput) (*entity.EventRSVP, error) {
	event, err := srv.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	attendees := 1
	if input.NumberOfAttendees != nil {
		attendees = *input.NumberOfAttendees
	}
	if attendees < 1 {
		return nil, domainerrors.Invalid("number_of_attendees", "must be at least 1")
	}
	if event.MaxAttendees != nil && event.AttendeesCount+int64(attendees) > int64(*event.MaxAttendees) {
		return nil, domainerrors.ErrEventFull.WithDetails(
			fmt.Sprintf("%d of %d places taken", event.AttendeesCount, *event.MaxAttendees),
		)
	}

	status := entity.RSVPStatusConfirmed
	if event.RegistrationRequired {
		status = entity.RSVPStatusPending
	}

	rsvp := &entity.EventRSVP{
		EventID:           event.ID,
		Name:              input.Name,
		Email:             normalizeEmail(input.Email),
		Phone:             input.Phone,
		NumberOfAttendees: attendees,
		Message:           input.Message,
		Status:            status,
	}
	if err := srv.rsvpRepo.Create(ctx, rsvp); err != nil {
		return nil, errors.Wrap(err, "failed to create rsvp")
	}

	if err := srv.eventRepo.IncrementCounter(ctx, event.ID, "attendees_count", int64(attendees)); err != nil {
		requestLogger(ctx, srv.logger).Error("Failed to add RSVP attendees to event",
			slog.String("event_id", event.ID.String()),
			slog.String("rsvp_id", rsvp.ID.String()),
			slog.Any("error", err),
		)
	}

	srv.mail.send(ctx, rsvp.Email, "RSVP: "+event.Title, mailRSVPConfirmation, rsvpView{
		Name:              rsvp.Name,
		EventTitle:        event.Title,
		StartDate:         event.StartDate,
		Location:          event.Location,
		NumberOfAttendees: attendees,
		Status:            string(status),
	})

	return rsvp, nil
}

func (srv *eventService) ListRSVPs(ctx context.Context, eventID uuid.UUID, page usecase.PageInput) (*usecase.Page[entity.EventRSVP], error) {
	if _, err := srv.Get(ctx, eventID); err != nil {
		return nil, err
	}

	return listPage(ctx, srv.rsvpRepo, page, order{column: "created_at"}, repository.Eq("event_id", eventID))
}

func (srv *eventService) QRCode(ctx context.Context, eventID uuid.UUID) ([]byte, error) {
	event, err := srv.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrcode.GenerateEventQR(event.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate event qr code")
	}

	return png, nil
}

// rsvpView feeds the RSVP confirmation template.
type rsvpView struct {
	Name              string
	EventTitle        string
	StartDate         time.Time
	Location          string
	NumberOfAttendees int
	Status            string
}

// withinRadius keeps events with coordinates no further than radiusKM from center, preserving order.
func withinRadius(events []*entity.Event, center orb.Point, radiusKM float64) []*entity.Event {
	out := make([]*entity.Event, 0, len(events))
	for _, event := range events {
		if !event.HasCoordinates() {
			continue
		}
		if geo.Distance(center, orb.Point{*event.Longitude, *event.Latitude}) <= radiusKM*1000 {
			out = append(out, event)
		}
	}

	return out
}

func validateCoordinates(latitude, longitude *float64) error {
	if latitude != nil && (*latitude < -90 || *latitude > 90) {
		return domainerrors.Invalid("latitude", "must be between -90 and 90")
	}
	if longitude != nil && (*longitude < -180 || *longitude > 180) {
		return domainerrors.Invalid("longitude", "must be between -180 and 180")
	}

	return nil
}
