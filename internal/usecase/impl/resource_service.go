package impl

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"path"
	"slices"
	"strings"

	"ministry/config"
	"ministry/internal/domain/entity"
	domainerrors "ministry/internal/domain/errors"
	"ministry/internal/domain/repository"
	"ministry/internal/domain/service"
	"ministry/internal/errors"
	"ministry/internal/usecase"
	"ministry/internal/util"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const bytesPerMB = 1024 * 1024

type resourceService struct {
	resourceRepo repository.ResourceRepository
	storage      service.BlobStorage
	allowedTypes []string
	maxBytes     int64
	logger       *slog.Logger
}

// ResourceServiceParams holds dependencies for ResourceService, injected by Fx.
type ResourceServiceParams struct {
	fx.In

	ResourceRepo repository.ResourceRepository
	Storage      service.BlobStorage
	Config       *config.Config
	Logger       *slog.Logger
}

// NewResourceService is the constructor for resourceService.
func NewResourceService(params ResourceServiceParams) usecase.ResourceUsecase {
	allowed := make([]string, 0, len(params.Config.Storage.AllowedFileTypes))
	for _, ext := range params.Config.Storage.AllowedFileTypes {
		allowed = append(allowed, strings.ToLower(strings.TrimPrefix(ext, ".")))
	}

	return &resourceService{
		resourceRepo: params.ResourceRepo,
		storage:      params.Storage,
		allowedTypes: allowed,
		maxBytes:     params.Config.Storage.MaxUploadSizeMB * bytesPerMB,
		logger:       params.Logger,
	}
}

func (srv *resourceService) List(ctx context.Context, input *usecase.ListResourcesInput) (*usecase.Page[entity.Resource], error) {
	conditions := optionalEq(nil, "category", input.Category)
	conditions = optionalEq(conditions, "file_type", strings.ToLower(input.FileType))

	return listPage(ctx, srv.resourceRepo, input.PageInput, order{column: "created_at", descending: true}, conditions...)
}

func (srv *resourceService) Get(ctx context.Context, id uuid.UUID) (*entity.Resource, error) {
	resource, err := srv.resourceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, repository.ErrResourceNotFound, domainerrors.ErrResourceNotFound)
	}

	return resource, nil
}

func (srv *resourceService) Create(ctx context.Context, input *usecase.CreateResourceInput) (*entity.Resource, error) {
	if input.FileURL == "" && input.ExternalLink == "" {
		return nil, domainerrors.NewValidationError(
			domainerrors.FieldError{Field: "file_url", Message: "file_url or external_link is required"},
			domainerrors.FieldError{Field: "external_link", Message: "file_url or external_link is required"},
		)
	}

	resource := &entity.Resource{
		Title:        input.Title,
		Description:  input.Description,
		Category:     input.Category,
		FileURL:      input.FileURL,
		ExternalLink: input.ExternalLink,
		FileType:     strings.ToLower(input.FileType),
		FileSizeMB:   input.FileSizeMB,
		ThumbnailURL: input.ThumbnailURL,
	}
	if err := srv.resourceRepo.Create(ctx, resource); err != nil {
		return nil, errors.Wrap(err, "failed to create resource")
	}

	return resource, nil
}

// Upload checks the extension and size, then streams the file into blob storage.
func (srv *resourceService) Upload(ctx context.Context, input *usecase.UploadInput) (*entity.UploadedFile, error) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(input.Filename), "."))
	if ext == "" || !slices.Contains(srv.allowedTypes, ext) {
		return nil, domainerrors.Invalid("file", fmt.Sprintf("file type not allowed; allowed types: %s", strings.Join(srv.allowedTypes, ", ")))
	}
	if srv.maxBytes > 0 && input.Size > srv.maxBytes {
		return nil, srv.tooLarge()
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate upload key")
	}
	key := "resources/" + id.String() + "." + ext

	body := input.Body
	var limited *util.SizeLimitedReader
	if srv.maxBytes > 0 {
		limited = util.NewSizeLimitedReader(input.Body, srv.maxBytes)
		body = limited
	}

	fileURL, err := srv.storage.Upload(ctx, key, input.ContentType, body)
	if err != nil {
		if errors.Is(err, util.ErrSizeLimitExceeded) {
			return nil, srv.tooLarge()
		}
		requestLogger(ctx, srv.logger).Error("Failed to store upload", slog.String("key", key), slog.Any("error", err))

		return nil, domainerrors.ErrStorageFailed.WrapMessage(err.Error())
	}

	size := input.Size
	if limited != nil {
		size = limited.BytesRead()
	}

	requestLogger(ctx, srv.logger).Info("File uploaded",
		slog.String("key", key),
		slog.String("size", util.FormatBytes(size)),
	)

	return &entity.UploadedFile{
		FileURL:    fileURL,
		FileType:   ext,
		FileSizeMB: math.Round(float64(size)/bytesPerMB*100) / 100,
	}, nil
}

func (srv *resourceService) RecordDownload(ctx context.Context, id uuid.UUID) (*usecase.DownloadOutput, error) {
	if err := srv.resourceRepo.IncrementCounter(ctx, id, "download_count", 1); err != nil {
		return nil, notFoundAs(err, repository.ErrResourceNotFound, domainerrors.ErrResourceNotFound)
	}

	resource, err := srv.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &usecase.DownloadOutput{URL: resource.Link(), DownloadCount: resource.DownloadCount}, nil
}

func (srv *resourceService) tooLarge() error {
	return domainerrors.ErrUploadTooLarge.WithDetails("maximum size is " + util.FormatBytes(srv.maxBytes))
}
