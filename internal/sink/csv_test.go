package sink

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(sourceURL, company string) []string {
	return []string{sourceURL, "Fund", "https://fund.com", company, "https://" + strings.ToLower(company) + ".com", "", "", ""}
}

func TestCSV_AppendWritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.csv")
	c := NewCSV(path)
	ctx := context.Background()

	require.NoError(t, c.Append(ctx, row("https://fund.com/portfolio", "Acme")))
	require.NoError(t, c.Append(ctx, row("https://fund.com/portfolio", "Globex")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(Columns, ","), lines[0])
}

func TestCSV_AppendRejectsWrongWidth(t *testing.T) {
	c := NewCSV(filepath.Join(t.TempDir(), "output.csv"))

	err := c.Append(context.Background(), []string{"too", "short"})
	assert.Error(t, err)
}

func TestCSV_SourceURLs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.csv")
	c := NewCSV(path)
	ctx := context.Background()

	require.NoError(t, c.Append(ctx, row("https://a.com/portfolio", "Acme")))
	require.NoError(t, c.Append(ctx, row("https://a.com/portfolio", "Globex")))
	require.NoError(t, c.Append(ctx, row("https://b.com/companies", "Initech")))

	urls, err := c.SourceURLs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.com/portfolio", "https://b.com/companies"}, urls)
}

func TestCSV_SourceURLs_MissingFile(t *testing.T) {
	c := NewCSV(filepath.Join(t.TempDir(), "missing.csv"))

	urls, err := c.SourceURLs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, urls)
}
