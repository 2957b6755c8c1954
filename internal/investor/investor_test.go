package investor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"simple domain", "https://examplefund.com/portfolio", "Examplefund"},
		{"www stripped", "https://www.advent.com/portfolio", "Advent"},
		{"dashes to spaces", "https://example-capital.com/companies", "Example Capital"},
		{"underscores to spaces", "https://big_fund.io/portfolio", "Big Fund"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NameFromURL(tt.url))
		})
	}
}

func TestWebsiteFromURL(t *testing.T) {
	assert.Equal(t, "https://examplefund.com", WebsiteFromURL("https://examplefund.com/portfolio?page=2"))
	assert.Equal(t, "", WebsiteFromURL("not a url"))
	assert.Equal(t, "", WebsiteFromURL(""))
}
