package persistence

import (
	"strings"

	"github.com/borrowtrack/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// Sortable columns per table. Anything else falls back to id.
var (
	customerSortFields    = sortFields("first_name", "last_name", "email")
	itemSortFields        = sortFields("name")
	transactionSortFields = sortFields("date_issued", "due_date", "date_returned", "status")
)

func sortFields(columns ...string) map[string]bool {
	allowed := map[string]bool{"id": true, "created_at": true, "updated_at": true}
	for _, c := range columns {
		allowed[c] = true
	}
	return allowed
}

// likePattern builds a case-insensitive contains pattern, escaping LIKE wildcards
func likePattern(search string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + strings.ToLower(replacer.Replace(search)) + "%"
}

// paginate applies offset and limit when the filter asks for a page
func paginate(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}

// orderBy applies a whitelisted, table-qualified ordering. Unknown columns
// sort by id; any direction other than asc sorts descending.
func orderBy(query *gorm.DB, table string, filter shared.Filter, allowed map[string]bool) *gorm.DB {
	field := strings.TrimSpace(filter.OrderBy)
	if !allowed[field] {
		field = "id"
	}
	dir := "DESC"
	if strings.EqualFold(strings.TrimSpace(filter.OrderDir), "asc") {
		dir = "ASC"
	}
	return query.Order(table + "." + field + " " + dir)
}
