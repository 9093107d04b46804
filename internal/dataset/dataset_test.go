package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("well-formed file", func(t *testing.T) {
		path := writeCSV(t, "source,date,term_found\nGartner,2024-01-15,unified gateway\nZDNet,2024-04-12,database gateway\n")

		ds, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, []string{"source", "date", "term_found"}, ds.Header)
		assert.Equal(t, 2, ds.Len())
		assert.Equal(t, "Gartner", ds.Value(0, "source"))
		assert.Equal(t, "database gateway", ds.Value(1, "term_found"))
	})

	t.Run("quoted fields with embedded commas", func(t *testing.T) {
		path := writeCSV(t, "source,phrase\nAWS Blog,\"gateway, unified across services\"\n")

		ds, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "gateway, unified across services", ds.Value(0, "phrase"))
	})

	t.Run("header only is a valid empty dataset", func(t *testing.T) {
		path := writeCSV(t, "a,b,c\n")

		ds, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 0, ds.Len())
		assert.Equal(t, []string{"a", "b", "c"}, ds.Header)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
		require.Error(t, err)
		assert.True(t, ErrIs(err, CodeNotFound))
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeCSV(t, "")

		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, ErrIs(err, CodeEmptyFile))
	})

	t.Run("short row reports its line number", func(t *testing.T) {
		path := writeCSV(t, "a,b,c\n1,2,3\n4,5\n6,7,8\n")

		ds, err := Load(path)
		require.Error(t, err)
		assert.Nil(t, ds, "no partial dataset on failure")
		assert.True(t, ErrIs(err, CodeMalformedRow))

		e := err.(Err)
		assert.Equal(t, 3, e.Data["line"])
		assert.Contains(t, err.Error(), "line = 3")
	})

	t.Run("long row is malformed too", func(t *testing.T) {
		path := writeCSV(t, "a,b\n1,2,3\n")

		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, ErrIs(err, CodeMalformedRow))
	})
}

func TestRecordMap(t *testing.T) {
	ds := New("x.csv", []string{"term", "count"}, [][]string{{"Gateway", "2"}})

	assert.Equal(t, map[string]any{"term": "Gateway", "count": "2"}, ds.RecordMap(0))
}

func TestColumn(t *testing.T) {
	ds := New("x.csv", []string{"a", "b"}, nil)

	i, ok := ds.Column("b")
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = ds.Column("missing")
	assert.False(t, ok)
}

func TestErrIs(t *testing.T) {
	err := NotFoundErr("some.csv")
	assert.True(t, ErrIs(err, CodeNotFound))
	assert.False(t, ErrIs(err, CodeEmptyFile))
	assert.False(t, ErrIs(os.ErrNotExist, CodeNotFound))
}
