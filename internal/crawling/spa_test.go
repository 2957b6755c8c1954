package crawling

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeDataEndpoints_GatsbyPageData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/page-data/portfolio/page-data.json" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"result":{"data":{"companies":[{"name":"Acme"}]}}}`))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	decoded := ProbeDataEndpoints(context.Background(), server.URL+"/portfolio")
	require.Len(t, decoded, 1)

	obj, ok := decoded[0].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, obj, "result")
}

func TestProbeDataEndpoints_SkipsNonJSONResponses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>not found</html>"))
	}))
	defer server.Close()

	decoded := ProbeDataEndpoints(context.Background(), server.URL+"/portfolio")
	assert.Empty(t, decoded)
}

func TestProbeDataEndpoints_InvalidURL(t *testing.T) {
	assert.Nil(t, ProbeDataEndpoints(context.Background(), "not a url"))
}

func TestDataEndpoints(t *testing.T) {
	endpoints := dataEndpoints("https://examplefund.com/portfolio/")
	require.Equal(t, []string{
		"https://examplefund.com/page-data/portfolio/page-data.json",
		"https://examplefund.com/page-data/index/page-data.json",
	}, endpoints)

	endpoints = dataEndpoints("https://examplefund.com/")
	require.Equal(t, []string{
		"https://examplefund.com/page-data/index/page-data.json",
	}, endpoints)
}
