package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_Baseline(t *testing.T) {
	table := DefaultTable()

	// Root path on an unknown domain: baseline plus the root penalty.
	assert.Equal(t, 20, table.Score("https://example.com/"))
}

func TestScore_MalformedURL(t *testing.T) {
	table := DefaultTable()

	assert.Equal(t, 50, table.Score("://not-a-url"))
	assert.Equal(t, 50, table.Score(""))
}

func TestScore_Deterministic(t *testing.T) {
	table := DefaultTable()
	url := "https://reuters.com/article/acme-merger"

	first := table.Score(url)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, table.Score(url))
	}
}

func TestScore_HighValueDomainFloor(t *testing.T) {
	table := DefaultTable()

	// High-value domain with a neutral path stays at or above 80.
	assert.GreaterOrEqual(t, table.Score("https://reuters.com/somepage"), 80)
	assert.GreaterOrEqual(t, table.Score("https://www.businesswire.com/home"), 80)
}

func TestScore_LowValueDomainCeiling(t *testing.T) {
	table := DefaultTable()

	// Low-value domain stays at or below 20 even with a deep path.
	assert.LessOrEqual(t, table.Score("https://linkedin.com/company/acme/posts"), 20)
	assert.LessOrEqual(t, table.Score("https://www.wikipedia.org/wiki/Acme_Corp"), 20)
}

func TestScore_DealKeywordAndNewsSegment(t *testing.T) {
	table := DefaultTable()

	// 50 +30 (reuters) +20 (merger) +10 (/article/) +5 (depth) = 115
	assert.Equal(t, 115, table.Score("https://reuters.com/article/acme-merger"))
}

func TestScore_DealKeywordAppliesOnce(t *testing.T) {
	table := DefaultTable()

	one := table.Score("https://example.com/x/acme-merger")
	two := table.Score("https://example.com/x/acme-merger-buyout-funding")
	assert.Equal(t, one, two)
}

func TestScore_NonArticlePenalties(t *testing.T) {
	table := DefaultTable()

	// 50 -20 (/category/) +5 (depth) = 35
	assert.Equal(t, 35, table.Score("https://example.com/category/energy"))
	// 50 -15 (.pdf) +5 (depth) = 40
	assert.Equal(t, 40, table.Score("https://example.com/reports/q3.pdf"))
}

func TestScore_WWWStripped(t *testing.T) {
	table := DefaultTable()

	assert.Equal(t,
		table.Score("https://reuters.com/article/acme-merger"),
		table.Score("https://www.reuters.com/article/acme-merger"))
}

func TestScore_SubdomainSuffixMatch(t *testing.T) {
	table := DefaultTable()

	assert.GreaterOrEqual(t, table.Score("https://uk.reuters.com/article/acme-deal"), 80)
}

func TestLinkSignalTable_NoDomainSets(t *testing.T) {
	table := LinkSignalTable()

	// No domain bonus on the legacy table.
	assert.Equal(t,
		table.Score("https://example.com/news/acme"),
		table.Score("https://reuters.com/news/acme"))
}
