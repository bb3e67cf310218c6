package delimfix

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delimfix/delimfix/domain/model"
)

func TestRead_ReferenceDataset(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, "measurements.txt", referenceContent)

	table, err := Read(path, WithDelimiters('|', ';'))
	require.NoError(t, err)

	assert.Equal(t, "measurements", table.Name())
	assert.Equal(t, model.Header{"name", "birthdate", "height", "kgs"}, table.Header())
	require.Len(t, table.Records(), 3)
	assert.Equal(t, model.Record{"danno", "2001-05-22", "1,73", "75,4"}, table.Records()[0])
	assert.Equal(t, model.Record{"manno", "2002-06-23", "1,83", "85,4"}, table.Records()[1])
	assert.Equal(t, model.Record{"weirdo", "2003-07-24", "1,93", "91,3"}, table.Records()[2])

	info := table.ColumnInfo()
	require.Len(t, info, 4)
	assert.Equal(t, model.ColumnTypeText, info[0].Type)
	assert.Equal(t, model.ColumnTypeDatetime, info[1].Type)
	assert.Equal(t, model.ColumnTypeReal, info[2].Type)
	assert.Equal(t, model.ColumnTypeReal, info[3].Type)

	height, err := table.Float64(0, 2)
	require.NoError(t, err)
	assert.InDelta(t, 1.73, height, 0.0001)

	kgs, err := table.Float64(2, table.ColumnIndex("kgs"))
	require.NoError(t, err)
	assert.InDelta(t, 91.3, kgs, 0.0001)

	birthdate, err := table.Time(0, 1)
	require.NoError(t, err)
	assert.Equal(t, "2001-05-22", birthdate.Format("2006-01-02"))
}

func TestRead_AllStrategiesProduceEqualTables(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, "measurements.txt", referenceContent)

	reference, err := Read(path, WithStrategy(StrategyRejoin))
	require.NoError(t, err)

	for _, strategy := range []Strategy{StrategyReplaceAll, StrategySplice, StrategySeek} {
		strategy := strategy
		t.Run(strategy.String(), func(t *testing.T) {
			t.Parallel()

			table, err := Read(path, WithStrategy(strategy))
			require.NoError(t, err)
			assert.True(t, reference.Equal(table), "strategy %s produced a different table", strategy)
		})
	}
}

func TestReadAll_ThreeFilesConcatenateInOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	contents := []string{
		"name|birthdate|height|kgs\ndanno1;2001-05-22;1,73;75,4\nmanno1;2002-06-23;1,83;85,4\nweirdo1;2003-07-24;1,93;91,3\n",
		"name|birthdate|height|kgs\ndanno2;2001-05-22;1,73;75,4\nmanno2;2002-06-23;1,83;85,4\nweirdo2;2003-07-24;1,93;91,3\n",
		"name|birthdate|height|kgs\ndanno3;2001-05-22;1,73;75,4\nmanno3;2002-06-23;1,83;85,4\nweirdo3;2003-07-24;1,93;91,3\n",
	}
	paths := make([]string, 0, len(contents))
	for i, content := range contents {
		path := filepath.Join(dir, "measurements_"+string(rune('1'+i))+".txt")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		paths = append(paths, path)
	}

	table, err := ReadAll(paths)
	require.NoError(t, err)

	require.Len(t, table.Records(), 9)
	wantNames := []string{
		"danno1", "manno1", "weirdo1",
		"danno2", "manno2", "weirdo2",
		"danno3", "manno3", "weirdo3",
	}
	for i, want := range wantNames {
		assert.Equal(t, want, table.Records()[i][0])
	}
}

func TestReadAll_MismatchedFileFailsFast(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "a.txt")
	bad := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(good, []byte(referenceContent), 0o600))
	// One column short against the shared fixed header.
	require.NoError(t, os.WriteFile(bad, []byte("name|birthdate|height|kgs\ndanno;2001-05-22;1,73\n"), 0o600))

	_, err := ReadAll([]string{good, bad})
	assert.ErrorIs(t, err, ErrFieldCountMismatch)
}

func TestRead_FieldCountMismatch(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, "broken.csv", "name|height\ndanno;1,73;extra\n")

	_, err := Read(path)
	assert.ErrorIs(t, err, ErrFieldCountMismatch)
}

func TestRead_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Read(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestRead_EmptyFile(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, "empty.csv", "")

	_, err := Read(path)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestRead_DuplicateColumns(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, "dup.csv", "name|name\ndanno;manno\n")

	_, err := Read(path)
	assert.ErrorIs(t, err, model.ErrDuplicateColumnName)
}

func TestRead_GzipCompressedInput(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "measurements.txt.gz")
	file, err := os.Create(path)
	require.NoError(t, err)
	gzWriter := gzip.NewWriter(file)
	_, err = gzWriter.Write([]byte(referenceContent))
	require.NoError(t, err)
	require.NoError(t, gzWriter.Close())
	require.NoError(t, file.Close())

	table, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "measurements", table.Name())
	assert.Len(t, table.Records(), 3)
}

func TestReadContext_Cancelled(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, "measurements.txt", referenceContent)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadContext(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRead_PointDecimalFormat(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, "plain.csv", "name|height\ndanno;1.73\n")

	table, err := Read(path, WithNumberFormat(model.DecimalPointFormat()))
	require.NoError(t, err)

	assert.Equal(t, model.ColumnTypeReal, table.ColumnInfo()[1].Type)
	height, err := table.Float64(0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.73, height, 0.0001)
}
