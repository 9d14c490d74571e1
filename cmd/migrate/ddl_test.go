package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sample = `-- pricing rules
CREATE TABLE pricing_rules (
  rule_id STRING(36) NOT NULL,
) PRIMARY KEY (rule_id);

CREATE INDEX pricing_rules_by_active ON pricing_rules(active, priority);
`

func TestSplitDDLStatements(t *testing.T) {
	statements := splitDDLStatements(sample)

	assert.Len(t, statements, 2)
	assert.Contains(t, statements[0], "CREATE TABLE pricing_rules")
	assert.Equal(t, "CREATE INDEX pricing_rules_by_active ON pricing_rules(active, priority)", statements[1])
}

func TestObjectName(t *testing.T) {
	tests := []struct {
		stmt string
		want string
		ok   bool
	}{
		{stmt: "CREATE TABLE Quotes (x INT64) PRIMARY KEY (x)", want: "TABLE quotes", ok: true},
		{stmt: "create unique index idx_a on t(a)", want: "INDEX idx_a", ok: true},
		{stmt: "CREATE NULL_FILTERED INDEX `idx_b` ON t(b)", want: "INDEX idx_b", ok: true},
		{stmt: "ALTER TABLE t ADD COLUMN c STRING(MAX)", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.stmt, func(t *testing.T) {
			got, ok := objectName(tt.stmt)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPendingStatements(t *testing.T) {
	existing := existingObjects([]string{
		"CREATE TABLE pricing_rules (\n  rule_id STRING(36) NOT NULL,\n) PRIMARY KEY(rule_id)",
	})

	pending := pendingStatements(splitDDLStatements(sample), existing)

	assert.Len(t, pending, 1)
	assert.Contains(t, pending[0], "CREATE INDEX")
}
