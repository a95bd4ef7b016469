package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/audit-mgmt-api/internal/models"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// sortSpec whitelists sortable columns for a listing.
type sortSpec struct {
	allowed  map[string]bool
	fallback string
}

// whereBuilder accumulates positional-parameter conditions for a listing.
type whereBuilder struct {
	conditions []string
	args       []interface{}
}

// add appends a condition whose single %d is replaced with the next placeholder index.
func (b *whereBuilder) add(format string, value interface{}) {
	b.args = append(b.args, value)
	b.conditions = append(b.conditions, fmt.Sprintf(format, len(b.args)))
}

// search matches term case-insensitively against any of the columns.
func (b *whereBuilder) search(term string, columns ...string) {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return
	}
	b.args = append(b.args, "%"+strings.ToLower(term)+"%")
	pos := len(b.args)
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = fmt.Sprintf("LOWER(%s) LIKE $%d", col, pos)
	}
	b.conditions = append(b.conditions, "("+strings.Join(parts, " OR ")+")")
}

func (b *whereBuilder) from(table string) string {
	base := "FROM " + table + " WHERE 1=1"
	if len(b.conditions) > 0 {
		base += " AND " + strings.Join(b.conditions, " AND ")
	}
	return base
}

// pageClause resolves ORDER BY / LIMIT / OFFSET with the shared paging defaults.
func pageClause(opts models.ListOptions, sorts sortSpec) string {
	sortBy := opts.SortBy
	if !sorts.allowed[sortBy] {
		sortBy = sorts.fallback
	}

	sortOrder := strings.ToUpper(opts.SortOrder)
	if sortOrder != "ASC" && sortOrder != "DESC" {
		sortOrder = "DESC"
	}

	page := opts.Page
	if page < 1 {
		page = 1
	}
	pageSize := opts.PageSize
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	return fmt.Sprintf("ORDER BY %s %s LIMIT %d OFFSET %d", sortBy, sortOrder, pageSize, (page-1)*pageSize)
}

// listPage runs the page query and the matching count query.
func listPage(ctx context.Context, db sqlx.QueryerContext, dest interface{}, columns, table string, where *whereBuilder, opts models.ListOptions, sorts sortSpec) (int, error) {
	base := where.from(table)

	listQuery := fmt.Sprintf("SELECT %s %s %s", columns, base, pageClause(opts, sorts))
	if err := sqlx.SelectContext(ctx, db, dest, listQuery, where.args...); err != nil {
		return 0, fmt.Errorf("list %s: %w", table, err)
	}

	var total int
	if err := sqlx.GetContext(ctx, db, &total, "SELECT COUNT(*) "+base, where.args...); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return total, nil
}

// slugTaken reports whether a row other than excludeID already owns slug.
func slugTaken(ctx context.Context, db sqlx.QueryerContext, table, slug, excludeID string) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM " + table + " WHERE slug = $1 AND ($2 = '' OR id::text <> $2))"
	var exists bool
	if err := sqlx.GetContext(ctx, db, &exists, query, slug, excludeID); err != nil {
		return false, fmt.Errorf("check %s slug: %w", table, err)
	}
	return exists, nil
}
