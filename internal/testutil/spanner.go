package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/printshop-pricing/internal/models/m_pricing_rule"
	"github.com/light-bringer/printshop-pricing/internal/models/m_quote"
)

// SetupSpannerTest connects to the Spanner emulator and cleans every table.
// The test is skipped when SPANNER_EMULATOR_HOST is unset. The schema must
// already be in place (go run ./cmd/migrate).
func SetupSpannerTest(t *testing.T) *spanner.Client {
	t.Helper()

	if os.Getenv("SPANNER_EMULATOR_HOST") == "" {
		t.Skip("SPANNER_EMULATOR_HOST not set")
	}

	client, err := spanner.NewClient(context.Background(), TestSpannerDB())
	require.NoError(t, err, "failed to create Spanner client")

	CleanDatabase(t, client)
	t.Cleanup(func() {
		CleanDatabase(t, client)
		client.Close()
	})

	return client
}

// TestSpannerDB returns the test database path.
func TestSpannerDB() string {
	if db := os.Getenv("PRINTSHOP_TEST_SPANNER_DB"); db != "" {
		return db
	}
	return "projects/test-project/instances/dev-instance/databases/pricing-db"
}

// CleanDatabase deletes all rows from every table.
func CleanDatabase(t *testing.T, client *spanner.Client) {
	t.Helper()

	_, err := client.Apply(context.Background(), []*spanner.Mutation{
		spanner.Delete(m_quote.LineItemsTable, spanner.AllKeys()),
		spanner.Delete(m_quote.QuotesTable, spanner.AllKeys()),
		spanner.Delete(m_quote.CustomersTable, spanner.AllKeys()),
		spanner.Delete(m_pricing_rule.TableName, spanner.AllKeys()),
	})
	require.NoError(t, err, "failed to clean database")
}

// AssertRowCount asserts the number of rows in a table.
func AssertRowCount(t *testing.T, client *spanner.Client, table string, expected int) {
	t.Helper()

	iter := client.Single().Query(context.Background(), spanner.Statement{
		SQL: fmt.Sprintf("SELECT COUNT(*) FROM %s", table),
	})
	defer iter.Stop()

	row, err := iter.Next()
	require.NoError(t, err, "failed to query row count")

	var count int64
	require.NoError(t, row.Columns(&count))
	require.Equal(t, int64(expected), count, "unexpected row count in table %s", table)
}
