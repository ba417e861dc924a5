package persistence

import (
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// applyStatus restricts the query to the filter's status, when one is set
func applyStatus(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Status == "" {
		return query
	}
	return query.Where("status = ?", filter.Status)
}

// applySearch adds a case-insensitive substring match over the given columns.
// LOWER(..) LIKE is used instead of ILIKE so the same SQL runs on SQLite.
func applySearch(query *gorm.DB, search string, columns ...string) *gorm.DB {
	search = strings.TrimSpace(search)
	if search == "" || len(columns) == 0 {
		return query
	}
	pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
	clauses := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns))
	for _, col := range columns {
		clauses = append(clauses, "LOWER("+col+") LIKE ? ESCAPE '\\'")
		args = append(args, pattern)
	}
	return query.Where("("+strings.Join(clauses, " OR ")+")", args...)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// applyUUIDFilter adds "column = ?" when the named filter holds a uuid
func applyUUIDFilter(query *gorm.DB, filter shared.Filter, key, column string) *gorm.DB {
	v, ok := filter.Filters[key]
	if !ok {
		return query
	}
	switch id := v.(type) {
	case uuid.UUID:
		return query.Where(column+" = ?", id)
	case *uuid.UUID:
		if id == nil {
			return query.Where(column + " IS NULL")
		}
		return query.Where(column+" = ?", *id)
	}
	return query
}

// findPage counts the rows matched by query, then loads one page of them.
// leading order expressions are placed before the validated sort column.
func findPage[M any](query *gorm.DB, filter shared.Filter, columns SortColumns, defaultSort string, leading ...string) ([]M, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []M
	if total == 0 {
		return rows, 0, nil
	}

	for _, expr := range leading {
		query = query.Order(expr)
	}
	sortField := columns.Resolve(filter.OrderBy, defaultSort)
	query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: sortField}, Desc: descending(filter.OrderDir)})
	if sortField != "id" {
		query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	}
	if filter.Limit > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// existsQuery reports whether the query matches any row, optionally ignoring one id
func existsQuery(query *gorm.DB, excludeID *uuid.UUID) (bool, error) {
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// existingIDs returns which of ids are present in the model's table
func existingIDs(query *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	found := make(map[uuid.UUID]bool, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	var rows []uuid.UUID
	if err := query.Where("id IN ?", ids).Pluck("id", &rows).Error; err != nil {
		return nil, err
	}
	for _, id := range rows {
		found[id] = true
	}
	return found, nil
}
