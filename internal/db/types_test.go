package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Acme", "acme"},
		{"Acme, Inc.", "acmeinc"},
		{"Globex Corporation", "globexcorporation"},
		{"open AI", "openai"},
		{"100 Thieves", "100thieves"},
		{"  Spaces Around  ", "spacesaround"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := NormalizeName(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeName(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestHashContent(t *testing.T) {
	// Same input should produce same hash
	hash1 := HashContent("hello world")
	hash2 := HashContent("hello world")
	if hash1 != hash2 {
		t.Errorf("Same content produced different hashes: %s vs %s", hash1, hash2)
	}

	// Different input should produce different hash
	hash3 := HashContent("different content")
	if hash1 == hash3 {
		t.Errorf("Different content produced same hash: %s", hash1)
	}

	// Hash should be 64 characters (SHA-256 hex)
	if len(hash1) != 64 {
		t.Errorf("Hash length is %d, expected 64", len(hash1))
	}
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"https://www.acme.com/portfolio", "acme.com"},
		{"http://acme.com", "acme.com"},
		{"https://news.acme.com/article", "news.acme.com"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ExtractDomain(tt.input)
			if err != nil {
				t.Fatalf("ExtractDomain(%q) returned error: %v", tt.input, err)
			}
			if result != tt.expected {
				t.Errorf("ExtractDomain(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFetchStatusFromHTTP(t *testing.T) {
	assert.Equal(t, FetchStatusSuccess, FetchStatusFromHTTP(200))
	assert.Equal(t, FetchStatusSuccess, FetchStatusFromHTTP(204))
	assert.Equal(t, FetchStatusNotFound, FetchStatusFromHTTP(404))
	assert.Equal(t, FetchStatusNotFound, FetchStatusFromHTTP(410))
	assert.Equal(t, FetchStatusBlocked, FetchStatusFromHTTP(403))
	assert.Equal(t, FetchStatusBlocked, FetchStatusFromHTTP(429))
	assert.Equal(t, FetchStatusError, FetchStatusFromHTTP(500))
}

func TestIsPermanentHTTPStatus(t *testing.T) {
	assert.True(t, IsPermanentHTTPStatus(404))
	assert.True(t, IsPermanentHTTPStatus(410))
	assert.True(t, IsPermanentHTTPStatus(451))
	assert.False(t, IsPermanentHTTPStatus(429))
	assert.False(t, IsPermanentHTTPStatus(500))
}

func TestCrawledPage_Freshness(t *testing.T) {
	page := CrawledPage{FetchedAt: time.Now().Add(-time.Hour)}
	assert.True(t, page.IsFresh(2*time.Hour))
	assert.False(t, page.IsFresh(30*time.Minute))

	assert.False(t, page.IsExpired(), "no expiry set means never expired")

	past := time.Now().Add(-time.Minute)
	page.ExpiresAt = &past
	assert.True(t, page.IsExpired())
}

func TestRunStatusConstants(t *testing.T) {
	for _, status := range []string{RunStatusRunning, RunStatusCompleted, RunStatusFailed} {
		assert.NotEmpty(t, status)
	}
}
