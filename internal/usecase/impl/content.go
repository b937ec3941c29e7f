// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "ministry/internal/delivery/context"
	domainerrors "ministry/internal/domain/errors"
	"ministry/internal/domain/repository"
	"ministry/internal/errors"
	"ministry/internal/usecase"
)

// pageSource is the read side shared by every list endpoint.
type pageSource[T any] interface {
	List(ctx context.Context, query repository.ListQuery) ([]*T, error)
	Count(ctx context.Context, conditions ...repository.Condition) (int64, error)
}

// order names the sort column of a listing.
type order struct {
	column     string
	descending bool
}

// listPage fetches one normalized page and the total number of matches.
func listPage[T any](ctx context.Context, src pageSource[T], page usecase.PageInput, by order, conditions ...repository.Condition) (*usecase.Page[T], error) {
	page = page.Normalize()

	items, err := src.List(ctx, repository.ListQuery{
		Conditions: conditions,
		OrderBy:    by.column,
		Descending: by.descending,
		Skip:       page.Skip,
		Limit:      page.Limit,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list page")
	}

	total, err := src.Count(ctx, conditions...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count page")
	}

	return &usecase.Page[T]{Items: items, Total: total, Skip: page.Skip, Limit: page.Limit}, nil
}

// notFoundAs replaces a repository not-found sentinel with the matching AppError.
func notFoundAs(err, sentinel error, appErr *domainerrors.BaseError) error {
	if errors.Is(err, sentinel) {
		return appErr.WrapMessage(err.Error())
	}

	return err
}

// fieldSet collects the columns of a partial update.
type fieldSet map[string]any

func setIfPresent[T any](fields fieldSet, column string, value *T) {
	if value != nil {
		fields[column] = *value
	}
}

func setIfNotNil(fields fieldSet, column string, values []string) {
	if values != nil {
		fields[column] = values
	}
}

// optionalEq adds an equality condition when value is non-empty.
func optionalEq[T ~string](conditions []repository.Condition, column string, value T) []repository.Condition {
	if value == "" {
		return conditions
	}

	return append(conditions, repository.Eq(column, string(value)))
}

func requestLogger(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, fallback)
}

func utcNow() time.Time {
	return time.Now().UTC()
}

func stringsOrEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}
