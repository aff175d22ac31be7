package migrations

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingExecer struct {
	sql  []string
	args [][]any
	err  error
}

func (e *recordingExecer) Exec(_ context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	e.sql = append(e.sql, sql)
	e.args = append(e.args, arguments)
	if e.err != nil {
		return pgconn.CommandTag{}, e.err
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func TestRecordMigrationWritesThroughTransaction(t *testing.T) {
	m := NewMigrator(nil)
	tx := &recordingExecer{}

	require.NoError(t, m.recordMigration(context.Background(), tx, "001"))

	// the version row rides on the migration's own transaction
	require.Len(t, tx.sql, 1)
	assert.Contains(t, tx.sql[0], "INSERT INTO schema_migrations")
	require.NotEmpty(t, tx.args[0])
	assert.Equal(t, "001", tx.args[0][0])
}

func TestRecordMigrationError(t *testing.T) {
	m := NewMigrator(nil)
	tx := &recordingExecer{err: errors.New("connection lost")}

	err := m.recordMigration(context.Background(), tx, "001")
	assert.ErrorContains(t, err, "failed to record migration")
}
