package dataset

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/YuminosukeSato/dtforest/pkg/errors"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE observations (
		will_wait TEXT,
		outlook TEXT,
		guests INTEGER,
		temperature REAL
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO observations VALUES
		('Y', 'sunny', 2, 21.5),
		('N', NULL, 4, 18.0),
		('Y', 'rain', 2, NULL)`)
	require.NoError(t, err)
	return db
}

func TestReadSQL(t *testing.T) {
	db := openTestDB(t)

	es, attrs, err := ReadSQL(context.Background(), db,
		"SELECT will_wait, outlook, guests, temperature FROM observations", "will_wait")
	require.NoError(t, err)
	assert.Equal(t, Attributes{"outlook", "guests", "temperature", "will_wait"}, attrs)
	require.Len(t, es, 3)
	assert.Equal(t, Example{String("sunny"), Int(2), Float(21.5), String("Y")}, es[0])
	assert.True(t, es[1][0].IsMissing())
	assert.True(t, es[2][2].IsMissing())
}

func TestReadSQLErrors(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, _, err := ReadSQL(ctx, db, "SELECT will_wait, outlook FROM observations WHERE guests > 10", "")
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	_, _, err = ReadSQL(ctx, db, "SELECT outlook FROM observations", "")
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))

	_, _, err = ReadSQL(ctx, db, "SELECT will_wait, outlook FROM observations", "play")
	var valueErr *errors.ValueError
	assert.True(t, errors.As(err, &valueErr))

	_, _, err = ReadSQL(ctx, db, "SELECT * FROM missing_table", "")
	assert.Error(t, err)
}
