package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/portfolio-scout/internal/llm"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seeds.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadSeedCSV_SkipsHeaderAndNonURLs(t *testing.T) {
	path := writeTempCSV(t, `portfolio_url,notes
https://examplefund.com/portfolio,main fund
https://other.example/companies,
not-a-url,junk
,empty
`)

	urls, err := readSeedCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://examplefund.com/portfolio",
		"https://other.example/companies",
	}, urls)
}

func TestReadSeedCSV_DeduplicatesAndTrims(t *testing.T) {
	path := writeTempCSV(t, `  https://examplefund.com/portfolio
https://examplefund.com/portfolio
`)

	urls, err := readSeedCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://examplefund.com/portfolio"}, urls)
}

func TestReadSeedCSV_ExtraColumnsTolerated(t *testing.T) {
	path := writeTempCSV(t, `https://examplefund.com/portfolio,a,b,c
http://plain.example/companies
`)

	urls, err := readSeedCSV(path)
	require.NoError(t, err)
	assert.Len(t, urls, 2)
}

func TestReadSeedCSV_MissingFile(t *testing.T) {
	_, err := readSeedCSV(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")
}

func TestReadSeedCSV_EmptyFile(t *testing.T) {
	path := writeTempCSV(t, "")

	urls, err := readSeedCSV(path)
	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestTierFromString(t *testing.T) {
	assert.Equal(t, llm.TierLite, tierFromString("lite"))
	assert.Equal(t, llm.TierStandard, tierFromString("standard"))
	assert.Equal(t, llm.TierAdvanced, tierFromString("advanced"))
	assert.Equal(t, llm.TierStandard, tierFromString(""))
	assert.Equal(t, llm.TierStandard, tierFromString("unknown"))
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	assert.True(t, names["run"])
	assert.True(t, names["resolve-website"])
	assert.True(t, names["find-articles"])
	assert.True(t, names["score"])
}
