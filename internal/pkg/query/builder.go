package query

import (
	"strings"

	"cloud.google.com/go/spanner"
)

// Builder assembles Spanner SELECT statements. Every method returns a copy,
// so a base builder can be shared between a page query and its count.
type Builder struct {
	table   string
	columns []string
	where   []Condition
	orderBy []string
	limit   int64
	offset  int64
}

// From starts a statement against table.
func From(table string) *Builder {
	return &Builder{table: table}
}

// Select appends result columns. With none the statement selects *.
func (b *Builder) Select(columns ...string) *Builder {
	next := b.clone()
	next.columns = append(next.columns, columns...)
	return next
}

// Where adds a condition. Conditions are joined with AND.
func (b *Builder) Where(condition Condition) *Builder {
	next := b.clone()
	next.where = append(next.where, condition)
	return next
}

// OrderBy appends ascending sort columns, most significant first.
func (b *Builder) OrderBy(columns ...string) *Builder {
	next := b.clone()
	next.orderBy = append(next.orderBy, columns...)
	return next
}

// Page limits the result to limit rows after skipping offset. A limit of zero
// or less leaves the statement unpaged.
func (b *Builder) Page(limit, offset int64) *Builder {
	next := b.clone()
	next.limit = max(limit, 0)
	next.offset = max(offset, 0)
	return next
}

// Count turns the statement into a COUNT(*) over the same rows, dropping
// ordering and paging.
func (b *Builder) Count() *Builder {
	next := b.clone()
	next.columns = []string{"COUNT(*)"}
	next.orderBy = nil
	next.limit, next.offset = 0, 0
	return next
}

// Build renders the statement. Condition parameters are named @p0, @p1, ...
func (b *Builder) Build() spanner.Statement {
	var sql strings.Builder
	params := make(map[string]interface{})

	sql.WriteString("SELECT ")
	if len(b.columns) == 0 {
		sql.WriteString("*")
	} else {
		sql.WriteString(strings.Join(b.columns, ", "))
	}
	sql.WriteString(" FROM ")
	sql.WriteString(b.table)

	if len(b.where) > 0 {
		parts := make([]string, 0, len(b.where))
		for _, condition := range b.where {
			fragment, condParams := condition.SQL(len(params))
			parts = append(parts, fragment)
			for k, v := range condParams {
				params[k] = v
			}
		}
		sql.WriteString(" WHERE ")
		sql.WriteString(strings.Join(parts, " AND "))
	}

	if len(b.orderBy) > 0 {
		sql.WriteString(" ORDER BY ")
		sql.WriteString(strings.Join(b.orderBy, ", "))
	}

	if b.limit > 0 {
		sql.WriteString(" LIMIT @limit")
		params["limit"] = b.limit
		if b.offset > 0 {
			sql.WriteString(" OFFSET @offset")
			params["offset"] = b.offset
		}
	}

	return spanner.Statement{SQL: sql.String(), Params: params}
}

func (b *Builder) clone() *Builder {
	next := *b
	next.columns = append([]string(nil), b.columns...)
	next.where = append([]Condition(nil), b.where...)
	next.orderBy = append([]string(nil), b.orderBy...)
	return &next
}
