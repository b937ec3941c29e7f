package handler

import (
	"ministry/internal/delivery/api/response"
	domainerrors "ministry/internal/domain/errors"
	"ministry/internal/errors"
	"ministry/internal/usecase"

	"github.com/labstack/echo/v4"
)

// uploadFormField is the multipart field holding the uploaded file.
const uploadFormField = "file"

// ResourceHandler serves the resource library and file uploads.
type ResourceHandler struct {
	resourceUC usecase.ResourceUsecase
}

// NewResourceHandler is the constructor for ResourceHandler
func NewResourceHandler(resourceUC usecase.ResourceUsecase) *ResourceHandler {
	return &ResourceHandler{resourceUC: resourceUC}
}

// List handles GET /resources
func (h *ResourceHandler) List(c echo.Context) error {
	var input usecase.ListResourcesInput
	err := bindPage(echo.QueryParamsBinder(c), &input.PageInput).
		String("category", &input.Category).
		String("file_type", &input.FileType).
		BindError()
	if err != nil {
		return response.HandleAppError(c, queryBindError(err))
	}
	if err := c.Validate(&input); err != nil {
		return response.HandleAppError(c, err)
	}

	resources, err := h.resourceUC.List(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, resources)
}

// Get handles GET /resources/:id
func (h *ResourceHandler) Get(c echo.Context) error {
	id, err := pathID(c, domainerrors.ErrResourceNotFound)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	resource, err := h.resourceUC.Get(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, resource)
}

// Create handles POST /resources
func (h *ResourceHandler) Create(c echo.Context) error {
	var input usecase.CreateResourceInput
	if err := bindBody(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	resource, err := h.resourceUC.Create(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, resource)
}

// Upload handles POST /resources/upload with a multipart "file" field.
func (h *ResourceHandler) Upload(c echo.Context) error {
	header, err := c.FormFile(uploadFormField)
	if err != nil {
		return response.HandleAppError(c, domainerrors.Invalid(uploadFormField, "field required"))
	}

	file, err := header.Open()
	if err != nil {
		return errors.Wrap(err, "open uploaded file")
	}
	defer file.Close()

	uploaded, err := h.resourceUC.Upload(c.Request().Context(), &usecase.UploadInput{
		Filename:    header.Filename,
		ContentType: header.Header.Get(echo.HeaderContentType),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, uploaded)
}

// Download handles POST /resources/:id/download
func (h *ResourceHandler) Download(c echo.Context) error {
	id, err := pathID(c, domainerrors.ErrResourceNotFound)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	out, err := h.resourceUC.RecordDownload(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, out)
}
