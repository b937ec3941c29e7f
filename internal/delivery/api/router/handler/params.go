package handler

import (
	domainerrors "ministry/internal/domain/errors"
	"ministry/internal/errors"
	"ministry/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// pathID parses the :id path parameter. A malformed id cannot name an existing
// record, so it is reported as notFound.
func pathID(c echo.Context, notFound *domainerrors.BaseError) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, notFound
	}

	return id, nil
}

// bindPage reads skip and limit from the query string.
func bindPage(b *echo.ValueBinder, page *usecase.PageInput) *echo.ValueBinder {
	return b.Int("skip", &page.Skip).Int("limit", &page.Limit)
}

// queryBindError converts a typed query parameter failure into a ValidationError.
func queryBindError(err error) error {
	var bindErr *echo.BindingError
	if errors.As(err, &bindErr) && len(bindErr.Field) > 0 {
		return domainerrors.Invalid(bindErr.Field, "invalid value")
	}

	return domainerrors.Invalid("query", "invalid query parameters")
}

// bindBody decodes the JSON body into input and validates it.
func bindBody(c echo.Context, input any) error {
	if err := c.Bind(input); err != nil {
		return domainerrors.Invalid("body", "malformed request body")
	}

	return c.Validate(input)
}
