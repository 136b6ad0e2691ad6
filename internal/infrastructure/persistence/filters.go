package persistence

import (
	"gorm.io/gorm"

	"github.com/stockroom/backend/internal/domain/shared"
)

// applyFilter applies pagination and ordering from a filter. The requested
// sort column is validated against the entity's allowlist; an unknown or
// empty column falls back to the caller's default ordering.
func applyFilter(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultOrder string) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if column := ValidateSortField(filter.OrderBy, allowed, ""); column != "" {
		return query.Order(column + " " + ValidateSortOrder(filter.OrderDir))
	}
	return query.Order(defaultOrder)
}
