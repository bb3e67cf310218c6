package delimfix

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_QueryRepairedData(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, "measurements.txt", referenceContent)

	db, err := Open([]string{path})
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM measurements`).Scan(&count))
	assert.Equal(t, 3, count)

	// REAL columns are converted, so locale-written "75,4" compares as 75.4.
	var name string
	require.NoError(t, db.QueryRow(
		`SELECT name FROM measurements WHERE kgs > 90`).Scan(&name))
	assert.Equal(t, "weirdo", name)

	var avg float64
	require.NoError(t, db.QueryRow(`SELECT AVG(height) FROM measurements`).Scan(&avg))
	assert.InDelta(t, 1.83, avg, 0.0001)
}

func TestOpen_SchemaUsesInferredTypes(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, "measurements.txt", referenceContent)

	db, err := OpenContext(context.Background(), []string{path})
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Query(`SELECT name, type FROM pragma_table_info('measurements')`)
	require.NoError(t, err)
	defer rows.Close()

	types := make(map[string]string)
	for rows.Next() {
		var name, colType string
		require.NoError(t, rows.Scan(&name, &colType))
		types[name] = colType
	}
	require.NoError(t, rows.Err())

	assert.Equal(t, "TEXT", types["name"])
	assert.Equal(t, "TEXT", types["birthdate"])
	assert.Equal(t, "REAL", types["height"])
	assert.Equal(t, "REAL", types["kgs"])
}

func TestOpen_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := Open([]string{"does-not-exist.csv"})
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestOpen_EmptyBodyStillCreatesTable(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, "headeronly.csv", "name|kgs\n")

	db, err := Open([]string{path})
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM headeronly`).Scan(&count))
	assert.Equal(t, 0, count)
}
