package persistence

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/stockledger/backend/internal/domain/shared"
)

// applyFilter applies pagination and ordering to a query. The order column
// is taken from the filter when set, falling back to defaultOrder. Column
// names come from code, never from user input directly.
func applyFilter(query *gorm.DB, filter shared.Filter, defaultOrder string) *gorm.DB {
	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = defaultOrder
	}
	orderDir := filter.OrderDir
	if orderDir != "asc" && orderDir != "desc" {
		orderDir = "asc"
	}
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	return query
}
