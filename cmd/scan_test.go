package cmd

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/schollz/progressbar/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmcfadin/post-database-era-sub002/internal/connectors"
	"github.com/pmcfadin/post-database-era-sub002/internal/dataset"
)

func TestProfileFilesContinuesPastMalformedFile(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.csv")
	require.NoError(t, os.WriteFile(good,
		[]byte("term,count\nGateway,2\nAPI,1\nGateway,3\n"), 0644))

	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad,
		[]byte("a,b,c\n1,2,3\n4,5\n"), 0644))

	files := []connectors.FileMeta{
		{Path: bad, Size: 14},
		{Path: good, Size: 34},
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(io.Discard),
	)

	results := profileFiles(files, 2, bar)
	require.Len(t, results, 2, "a failed file must not abort the scan")

	byPath := make(map[string]scanResult, len(results))
	for _, res := range results {
		byPath[res.meta.Path] = res
	}

	badRes, ok := byPath[bad]
	require.True(t, ok)
	require.Error(t, badRes.err)
	assert.True(t, dataset.ErrIs(badRes.err, dataset.CodeMalformedRow))

	goodRes, ok := byPath[good]
	require.True(t, ok)
	require.NoError(t, goodRes.err)
	assert.Equal(t, 3, goodRes.records)
	require.Len(t, goodRes.columns, 2)
	assert.Equal(t, "term", goodRes.columns[0].Name)
	assert.Equal(t, 2, goodRes.columns[0].Distinct)
	assert.Equal(t, "Gateway", goodRes.columns[0].Top)
	assert.Equal(t, 2, goodRes.columns[0].TopCount)
}
