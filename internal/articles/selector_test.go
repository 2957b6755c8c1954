package articles

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/portfolio-scout/internal/providers"
)

type fakeSearch struct {
	results []providers.Result
	err     error
	calls   int
	query   string
}

func (f *fakeSearch) Search(_ context.Context, query string, _ int) ([]providers.Result, error) {
	f.calls++
	f.query = query
	return f.results, f.err
}

func urls(raw ...string) []providers.Result {
	results := make([]providers.Result, len(raw))
	for i, u := range raw {
		results[i] = providers.Result{URL: u}
	}
	return results
}

func TestSelect_RanksNewsAboveSocialAndExcludesOwnSite(t *testing.T) {
	search := &fakeSearch{results: urls(
		"https://www.linkedin.com/company/acme",
		"https://www.reuters.com/article/acme-merger",
		"https://acme.com/about",
	)}
	s := NewSelector(search, nil, zap.NewNop())

	got, err := s.Select(context.Background(), "Acme", "Example Fund", "")

	require.NoError(t, err)
	require.Equal(t, []string{
		"https://www.reuters.com/article/acme-merger",
		"https://www.linkedin.com/company/acme",
	}, got)
	assert.Equal(t, "Acme Example Fund", search.query)
}

func TestSelect_ExcludesResolvedWebsiteHost(t *testing.T) {
	// The resolved website's host is excluded even when the domain does not
	// resemble the company name.
	search := &fakeSearch{results: urls(
		"https://shopbrand.example/news/acme-funding",
		"https://www.reuters.com/article/acme-merger",
	)}
	s := NewSelector(search, nil, zap.NewNop())

	got, err := s.Select(context.Background(), "Acme", "", "https://shopbrand.example")

	require.NoError(t, err)
	assert.Equal(t, []string{"https://www.reuters.com/article/acme-merger"}, got)
}

func TestSelect_DropsBlockedDomains(t *testing.T) {
	search := &fakeSearch{results: urls(
		"https://pitchbook.com/profiles/company/acme",
		"https://www.prnewswire.com/news-releases/acme-raises",
		"https://news.prweb.com/acme",
		"https://find-and-update.company-information.service.gov.uk/company/012345",
		"https://www.ft.com/content/acme-acquisition",
	)}
	s := NewSelector(search, nil, zap.NewNop())

	got, err := s.Select(context.Background(), "Acme", "Example Fund", "")

	require.NoError(t, err)
	assert.Equal(t, []string{"https://www.ft.com/content/acme-acquisition"}, got)
}

func TestSelect_CapsAtThree(t *testing.T) {
	search := &fakeSearch{results: urls(
		"https://www.bbc.com/news/business/acme-expansion",
		"https://techcrunch.com/2026/01/10/acme-series-b",
		"https://www.reuters.com/article/acme-merger",
		"https://example.org/blog/thoughts",
		"https://www.ft.com/content/acme-acquisition",
	)}
	s := NewSelector(search, nil, zap.NewNop())

	got, err := s.Select(context.Background(), "Acme", "Example Fund", "")

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.NotContains(t, got, "https://example.org/blog/thoughts")
}

func TestSelect_DeduplicatesExactURLs(t *testing.T) {
	search := &fakeSearch{results: urls(
		"https://www.reuters.com/article/acme-merger",
		"https://www.reuters.com/article/acme-merger",
	)}
	s := NewSelector(search, nil, zap.NewNop())

	got, err := s.Select(context.Background(), "Acme", "Example Fund", "")

	require.NoError(t, err)
	assert.Equal(t, []string{"https://www.reuters.com/article/acme-merger"}, got)
}

func TestSelect_EmptyNamesSkipsSearch(t *testing.T) {
	search := &fakeSearch{}
	s := NewSelector(search, nil, zap.NewNop())

	got, err := s.Select(context.Background(), "", "  ", "")

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 0, search.calls)
}

func TestSelect_SearchErrorIsReturned(t *testing.T) {
	search := &fakeSearch{err: errors.New("quota exceeded")}
	s := NewSelector(search, nil, zap.NewNop())

	_, err := s.Select(context.Background(), "Acme", "", "")

	require.Error(t, err)
	assert.ErrorContains(t, err, "article search failed")
}

func TestBuildQuery(t *testing.T) {
	assert.Equal(t, "Acme", buildQuery(" Acme ", ""))
	assert.Equal(t, "Example Fund", buildQuery("", "Example Fund"))
	assert.Equal(t, "", buildQuery("", ""))
}
