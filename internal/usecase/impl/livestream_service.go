package impl

import (
	"context"
	"log/slog"
	"time"

	"ministry/internal/domain/entity"
	domainerrors "ministry/internal/domain/errors"
	"ministry/internal/domain/repository"
	"ministry/internal/errors"
	"ministry/internal/usecase"

	"github.com/google/uuid"
)

type liveStreamService struct {
	streamRepo repository.LiveStreamRepository
	chatRepo   repository.ChatMessageRepository
	now        func() time.Time
	logger     *slog.Logger
}

// NewLiveStreamService is the constructor for liveStreamService.
func NewLiveStreamService(
	streamRepo repository.LiveStreamRepository,
	chatRepo repository.ChatMessageRepository,
	logger *slog.Logger,
) usecase.LiveStreamUsecase {
	return &liveStreamService{
		streamRepo: streamRepo,
		chatRepo:   chatRepo,
		now:        time.Now,
		logger:     logger,
	}
}

func (srv *liveStreamService) List(ctx context.Context, input *usecase.ListLiveStreamsInput) (*usecase.Page[entity.LiveStream], error) {
	conditions := optionalEq(nil, "status", input.Status)

	return listPage(ctx, srv.streamRepo, input.PageInput, order{column: "scheduled_start", descending: true}, conditions...)
}

func (srv *liveStreamService) Get(ctx context.Context, id uuid.UUID) (*entity.LiveStream, error) {
	stream, err := srv.streamRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, repository.ErrLiveStreamNotFound, domainerrors.ErrLiveStreamNotFound)
	}

	return stream, nil
}

func (srv *liveStreamService) Create(ctx context.Context, input *usecase.CreateLiveStreamInput) (*entity.LiveStream, error) {
	stream := &entity.LiveStream{
		Title:           input.Title,
		Description:     input.Description,
		ScheduledStart:  input.ScheduledStart.UTC(),
		YoutubeVideoID:  input.YoutubeVideoID,
		FacebookVideoID: input.FacebookVideoID,
		Status:          entity.LiveStreamStatusScheduled,
	}
	if err := srv.streamRepo.Create(ctx, stream); err != nil {
		return nil, errors.Wrap(err, "failed to create live stream")
	}

	return stream, nil
}

// UpdateStatus stamps actual_start when a stream first goes live and actual_end when it ends.
func (srv *liveStreamService) UpdateStatus(ctx context.Context, id uuid.UUID, input *usecase.UpdateLiveStreamStatusInput) (*entity.LiveStream, error) {
	if !input.Status.IsValid() {
		return nil, domainerrors.Invalid("status", "must be one of scheduled, live, ended")
	}

	current, err := srv.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := fieldSet{"status": string(input.Status)}
	now := srv.now().UTC()
	switch input.Status {
	case entity.LiveStreamStatusLive:
		if current.ActualStart == nil {
			fields["actual_start"] = now
		}
	case entity.LiveStreamStatusEnded:
		fields["actual_end"] = now
	case entity.LiveStreamStatusScheduled:
	}

	stream, err := srv.streamRepo.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, notFoundAs(err, repository.ErrLiveStreamNotFound, domainerrors.ErrLiveStreamNotFound)
	}

	requestLogger(ctx, srv.logger).Info("Live stream status changed",
		slog.String("stream_id", id.String()),
		slog.String("status", string(input.Status)),
	)

	return stream, nil
}

func (srv *liveStreamService) PostChat(ctx context.Context, streamID uuid.UUID, input *usecase.ChatMessageInput) (*entity.ChatMessage, error) {
	if _, err := srv.Get(ctx, streamID); err != nil {
		return nil, err
	}

	message := &entity.ChatMessage{
		StreamID:        streamID,
		UserName:        input.UserName,
		Message:         input.Message,
		IsPrayerRequest: input.IsPrayerRequest,
	}
	if err := srv.chatRepo.Create(ctx, message); err != nil {
		return nil, errors.Wrap(err, "failed to post chat message")
	}

	return message, nil
}

func (srv *liveStreamService) ListChat(ctx context.Context, streamID uuid.UUID, page usecase.PageInput) (*usecase.Page[entity.ChatMessage], error) {
	if _, err := srv.Get(ctx, streamID); err != nil {
		return nil, err
	}

	return listPage(ctx, srv.chatRepo, page, order{column: "created_at"}, repository.Eq("stream_id", streamID))
}
