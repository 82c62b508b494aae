package db

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbgen "github.com/codr1/courtbook/internal/db/generated"
)

func TestWithConnectionDefaults(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{
			name: "bare path",
			dsn:  "data/app.db",
			want: "data/app.db?_fk=1&_txlock=immediate&_busy_timeout=5000",
		},
		{
			name: "keeps explicit values",
			dsn:  "app.db?_fk=0&_busy_timeout=100",
			want: "app.db?_fk=0&_busy_timeout=100&_txlock=immediate",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, withConnectionDefaults(tt.dsn))
		})
	}
}

func TestNewAppliesMigrations(t *testing.T) {
	database, err := New(filepath.Join(t.TempDir(), "migrate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	var count int
	err = database.QueryRowContext(context.Background(),
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('courts', 'coaches', 'equipment', 'pricing_rules', 'reservations', 'reservation_equipment')",
	).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 6, count)

	var fk int
	require.NoError(t, database.QueryRowContext(context.Background(), "PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestRunInTxRollsBackAndPassesErrorThrough(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	database := &DB{DB: sqlDB, Queries: dbgen.New(sqlDB)}
	sentinel := errors.New("validation failed")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err = database.RunInTx(context.Background(), func(*DB) error { return sentinel })
	assert.ErrorIs(t, err, sentinel)
	assert.Same(t, sentinel, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTxCommits(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	database := &DB{DB: sqlDB, Queries: dbgen.New(sqlDB)}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM reservations").WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = database.RunInTx(context.Background(), func(tx *DB) error {
		n, err := tx.Queries.DeleteReservation(context.Background(), 7)
		if err != nil {
			return err
		}
		if n != 1 {
			return errors.New("expected one row")
		}
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The query layer is maintained by hand, so tooling must not treat it as
// generated output it may overwrite or skip.
func TestQueryLayerIsNotMarkedGenerated(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("generated", "*.go"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for _, path := range files {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.False(t, strings.Contains(string(data), "DO NOT EDIT"), path)
	}
}
