package impl

import (
	"context"
	"log/slog"

	"ministry/internal/domain/entity"
	domainerrors "ministry/internal/domain/errors"
	"ministry/internal/domain/repository"
	"ministry/internal/errors"
	"ministry/internal/usecase"

	"github.com/google/uuid"
)

type sermonService struct {
	sermonRepo repository.SermonRepository
	logger     *slog.Logger
}

// NewSermonService is the constructor for sermonService.
func NewSermonService(sermonRepo repository.SermonRepository, logger *slog.Logger) usecase.SermonUsecase {
	return &sermonService{
		sermonRepo: sermonRepo,
		logger:     logger,
	}
}

func (srv *sermonService) List(ctx context.Context, input *usecase.ListSermonsInput) (*usecase.Page[entity.Sermon], error) {
	conditions := optionalEq(nil, "speaker", input.Speaker)
	conditions = optionalEq(conditions, "series", input.Series)
	if input.Tag != "" {
		conditions = append(conditions, repository.HasTag("tags", input.Tag))
	}

	return listPage(ctx, srv.sermonRepo, input.PageInput, order{column: "date", descending: true}, conditions...)
}

func (srv *sermonService) Get(ctx context.Context, id uuid.UUID) (*entity.Sermon, error) {
	if err := srv.sermonRepo.IncrementCounter(ctx, id, "view_count", 1); err != nil {
		return nil, notFoundAs(err, repository.ErrSermonNotFound, domainerrors.ErrSermonNotFound)
	}

	sermon, err := srv.sermonRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, repository.ErrSermonNotFound, domainerrors.ErrSermonNotFound)
	}

	return sermon, nil
}

func (srv *sermonService) RecordDownload(ctx context.Context, id uuid.UUID) (*usecase.DownloadOutput, error) {
	if err := srv.sermonRepo.IncrementCounter(ctx, id, "download_count", 1); err != nil {
		return nil, notFoundAs(err, repository.ErrSermonNotFound, domainerrors.ErrSermonNotFound)
	}

	sermon, err := srv.sermonRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, repository.ErrSermonNotFound, domainerrors.ErrSermonNotFound)
	}

	url := sermon.DownloadURL
	if url == "" {
		url = sermon.AudioURL
	}
	if url == "" {
		url = sermon.VideoURL
	}

	return &usecase.DownloadOutput{URL: url, DownloadCount: sermon.DownloadCount}, nil
}

func (srv *sermonService) Create(ctx context.Context, input *usecase.CreateSermonInput) (*entity.Sermon, error) {
	sermon := &entity.Sermon{
		Title:              input.Title,
		Speaker:            input.Speaker,
		Series:             input.Series,
		Description:        input.Description,
		ScriptureReference: input.ScriptureReference,
		Date:               input.Date.UTC(),
		AudioURL:           input.AudioURL,
		VideoURL:           input.VideoURL,
		ThumbnailURL:       input.ThumbnailURL,
		DownloadURL:        input.DownloadURL,
		DurationMinutes:    input.DurationMinutes,
		Tags:               stringsOrEmpty(input.Tags),
	}
	if err := srv.sermonRepo.Create(ctx, sermon); err != nil {
		return nil, errors.Wrap(err, "failed to create sermon")
	}

	requestLogger(ctx, srv.logger).Info("Sermon created", slog.String("sermon_id", sermon.ID.String()))

	return sermon, nil
}

func (srv *sermonService) Update(ctx context.Context, id uuid.UUID, input *usecase.UpdateSermonInput) (*entity.Sermon, error) {
	fields := fieldSet{}
	setIfPresent(fields, "title", input.Title)
	setIfPresent(fields, "speaker", input.Speaker)
	setIfPresent(fields, "series", input.Series)
	setIfPresent(fields, "description", input.Description)
	setIfPresent(fields, "scripture_reference", input.ScriptureReference)
	setIfPresent(fields, "date", input.Date)
	setIfPresent(fields, "audio_url", input.AudioURL)
	setIfPresent(fields, "video_url", input.VideoURL)
	setIfPresent(fields, "thumbnail_url", input.ThumbnailURL)
	setIfPresent(fields, "download_url", input.DownloadURL)
	setIfPresent(fields, "duration_minutes", input.DurationMinutes)
	setIfNotNil(fields, "tags", input.Tags)

	sermon, err := srv.sermonRepo.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, notFoundAs(err, repository.ErrSermonNotFound, domainerrors.ErrSermonNotFound)
	}

	return sermon, nil
}
