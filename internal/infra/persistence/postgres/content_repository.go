package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"time"

	domainerrors "ministry/internal/domain/errors"
	"ministry/internal/domain/repository"
	"ministry/internal/errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var columnNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// contentMapping describes how one entity maps onto its GORM model.
type contentMapping[E any, M any] struct {
	name     string
	notFound error
	counters []string
	toDomain func(*M) *E
	toModel  func(*E) *M
	// assign copies generated columns (ID and timestamps) back onto the entity after insert.
	assign func(*E, *M)
	// prepare fills in the primary key before insert.
	prepare func(*M)
}

// contentRepository is a generic GORM implementation of repository.ContentRepository.
type contentRepository[E any, M any] struct {
	db      *gorm.DB
	mapping contentMapping[E, M]
}

func newContentRepository[E any, M any](db *gorm.DB, mapping contentMapping[E, M]) *contentRepository[E, M] {
	return &contentRepository[E, M]{db: db, mapping: mapping}
}

func (repo *contentRepository[E, M]) Create(ctx context.Context, item *E) error {
	m := repo.mapping.toModel(item)
	repo.mapping.prepare(m)

	if err := repo.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return errors.Wrapf(repository.ErrDuplicateKey, "failed to create %s", repo.mapping.name)
		}

		return domainerrors.NewDatabaseExecuteError(err, fmt.Sprintf("failed to create %s", repo.mapping.name))
	}

	repo.mapping.assign(item, m)

	return nil
}

func (repo *contentRepository[E, M]) FindByID(ctx context.Context, id uuid.UUID) (*E, error) {
	var m M
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.mapping.notFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, fmt.Sprintf("failed to find %s by id", repo.mapping.name))
	}

	return repo.mapping.toDomain(&m), nil
}

func (repo *contentRepository[E, M]) List(ctx context.Context, q repository.ListQuery) ([]*E, error) {
	tx, err := applyConditions(repo.db.WithContext(ctx).Model(new(M)), q.Conditions)
	if err != nil {
		return nil, err
	}

	if q.OrderBy != "" {
		if !columnNamePattern.MatchString(q.OrderBy) {
			return nil, errors.Errorf("invalid order column %q", q.OrderBy)
		}
		direction := "ASC"
		if q.Descending {
			direction = "DESC"
		}
		tx = tx.Order(q.OrderBy + " " + direction)
	}
	if q.Skip > 0 {
		tx = tx.Offset(q.Skip)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var models []*M
	if err := tx.Find(&models).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, fmt.Sprintf("failed to list %s", repo.mapping.name))
	}

	items := make([]*E, 0, len(models))
	for _, m := range models {
		items = append(items, repo.mapping.toDomain(m))
	}

	return items, nil
}

func (repo *contentRepository[E, M]) Count(ctx context.Context, conditions ...repository.Condition) (int64, error) {
	tx, err := applyConditions(repo.db.WithContext(ctx).Model(new(M)), conditions)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, domainerrors.NewDatabaseExecuteError(err, fmt.Sprintf("failed to count %s", repo.mapping.name))
	}

	return count, nil
}

// IncrementCounter issues a single UPDATE so concurrent increments never lose updates.
func (repo *contentRepository[E, M]) IncrementCounter(ctx context.Context, id uuid.UUID, column string, delta int64) error {
	if !repo.isCounter(column) {
		return errors.Wrapf(repository.ErrUnknownCounter, "%s.%s", repo.mapping.name, column)
	}

	result := repo.db.WithContext(ctx).Model(new(M)).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, fmt.Sprintf("failed to increment %s.%s", repo.mapping.name, column))
	}
	if result.RowsAffected == 0 {
		return repo.mapping.notFound
	}

	return nil
}

func (repo *contentRepository[E, M]) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*E, error) {
	if len(fields) == 0 {
		return repo.FindByID(ctx, id)
	}

	updates := make(map[string]any, len(fields)+1)
	for column, value := range fields {
		if !columnNamePattern.MatchString(column) || column == "id" {
			return nil, errors.Errorf("invalid update column %q", column)
		}
		if list, ok := value.([]string); ok {
			value = datatypes.JSONSlice[string](nonNilStrings(list))
		}
		updates[column] = value
	}
	updates["updated_at"] = time.Now()

	result := repo.db.WithContext(ctx).Model(new(M)).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return nil, errors.Wrapf(repository.ErrDuplicateKey, "failed to update %s", repo.mapping.name)
		}

		return nil, domainerrors.NewDatabaseExecuteError(result.Error, fmt.Sprintf("failed to update %s", repo.mapping.name))
	}
	if result.RowsAffected == 0 {
		return nil, repo.mapping.notFound
	}

	return repo.FindByID(ctx, id)
}

func (repo *contentRepository[E, M]) isCounter(column string) bool {
	return slices.Contains(repo.mapping.counters, column)
}

func applyConditions(tx *gorm.DB, conditions []repository.Condition) (*gorm.DB, error) {
	for _, cond := range conditions {
		if !columnNamePattern.MatchString(cond.Column) {
			return nil, errors.Errorf("invalid filter column %q", cond.Column)
		}

		switch cond.Op {
		case repository.OpEq:
			tx = tx.Where(cond.Column+" = ?", cond.Value)
		case repository.OpGte:
			tx = tx.Where(cond.Column+" >= ?", cond.Value)
		case repository.OpLte:
			tx = tx.Where(cond.Column+" <= ?", cond.Value)
		case repository.OpHasTag:
			tag, err := json.Marshal([]any{cond.Value})
			if err != nil {
				return nil, errors.Wrap(err, "failed to encode tag filter")
			}
			tx = tx.Where(cond.Column+" @> ?::jsonb", string(tag))
		default:
			return nil, errors.Errorf("unsupported operator %q", cond.Op)
		}
	}

	return tx, nil
}

// newID returns a time-ordered UUID for new rows.
func newID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}

	return id
}
