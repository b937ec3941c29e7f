package postgres

import (
	"strings"

	"ministry/internal/errors"

	"gorm.io/gorm"
)

// isUniqueConstraintViolation reports duplicate key errors whether or not the
// dialector translated them into gorm.ErrDuplicatedKey.
func isUniqueConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	// 23505 is PostgreSQL's unique_violation code.
	return strings.Contains(err.Error(), "SQLSTATE 23505")
}
