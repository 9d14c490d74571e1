package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder_Build(t *testing.T) {
	tests := []struct {
		name       string
		builder    *Builder
		wantSQL    string
		wantParams map[string]interface{}
	}{
		{
			name:       "all columns",
			builder:    From("pricing_rules"),
			wantSQL:    "SELECT * FROM pricing_rules",
			wantParams: map[string]interface{}{},
		},
		{
			name:       "selected columns",
			builder:    From("pricing_rules").Select("rule_id", "name").Select("priority"),
			wantSQL:    "SELECT rule_id, name, priority FROM pricing_rules",
			wantParams: map[string]interface{}{},
		},
		{
			name:       "conditions joined with and",
			builder:    From("pricing_rules").Select("rule_id").Where(Eq("active", true)).Where(Eq("discount_type", "fixed")),
			wantSQL:    "SELECT rule_id FROM pricing_rules WHERE active = @p0 AND discount_type = @p1",
			wantParams: map[string]interface{}{"p0": true, "p1": "fixed"},
		},
		{
			name:       "ordering with tie breaker",
			builder:    From("pricing_rules").Select("rule_id").OrderBy("priority").OrderBy("rule_id"),
			wantSQL:    "SELECT rule_id FROM pricing_rules ORDER BY priority, rule_id",
			wantParams: map[string]interface{}{},
		},
		{
			name:       "page",
			builder:    From("pricing_rules").Select("rule_id").Page(10, 20),
			wantSQL:    "SELECT rule_id FROM pricing_rules LIMIT @limit OFFSET @offset",
			wantParams: map[string]interface{}{"limit": int64(10), "offset": int64(20)},
		},
		{
			name:       "first page has no offset",
			builder:    From("pricing_rules").Select("rule_id").Page(10, 0),
			wantSQL:    "SELECT rule_id FROM pricing_rules LIMIT @limit",
			wantParams: map[string]interface{}{"limit": int64(10)},
		},
		{
			name:       "offset without limit is ignored",
			builder:    From("pricing_rules").Select("rule_id").Page(0, 5),
			wantSQL:    "SELECT rule_id FROM pricing_rules",
			wantParams: map[string]interface{}{},
		},
		{
			name: "line items of a quote",
			builder: From("quote_line_items").
				Select("quote_id", "line_item_id", "quantity").
				Where(Eq("quote_id", "q-1")).
				OrderBy("line_item_id"),
			wantSQL:    "SELECT quote_id, line_item_id, quantity FROM quote_line_items WHERE quote_id = @p0 ORDER BY line_item_id",
			wantParams: map[string]interface{}{"p0": "q-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := tt.builder.Build()
			assert.Equal(t, tt.wantSQL, stmt.SQL)
			assert.Equal(t, tt.wantParams, stmt.Params)
		})
	}
}

func TestBuilder_Count(t *testing.T) {
	page := From("pricing_rules").
		Select("rule_id", "name").
		Where(Eq("active", true)).
		OrderBy("priority").
		Page(50, 100)

	count := page.Count().Build()
	assert.Equal(t, "SELECT COUNT(*) FROM pricing_rules WHERE active = @p0", count.SQL)
	assert.Equal(t, map[string]interface{}{"p0": true}, count.Params)

	assert.Equal(t,
		"SELECT rule_id, name FROM pricing_rules WHERE active = @p0 ORDER BY priority LIMIT @limit OFFSET @offset",
		page.Build().SQL)
}

func TestBuilder_DerivedBuildersDoNotShareState(t *testing.T) {
	base := From("pricing_rules").Select("rule_id").OrderBy("priority")

	active := base.Where(Eq("active", true)).OrderBy("rule_id").Build()
	fixed := base.Where(Eq("discount_type", "fixed")).Build()

	assert.Equal(t, "SELECT rule_id FROM pricing_rules WHERE active = @p0 ORDER BY priority, rule_id", active.SQL)
	assert.Equal(t, "SELECT rule_id FROM pricing_rules WHERE discount_type = @p0 ORDER BY priority", fixed.SQL)
}

func TestEq(t *testing.T) {
	sql, params := Eq("category", "banners").SQL(5)

	assert.Equal(t, "category = @p5", sql)
	assert.Equal(t, map[string]interface{}{"p5": "banners"}, params)
}
