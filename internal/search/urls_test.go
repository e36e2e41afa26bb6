package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSearchURLs(t *testing.T) {
	urls := GenerateSearchURLs("Product Designer")
	require.Len(t, urls, 6)

	byPlatform := make(map[string]string)
	for _, u := range urls {
		byPlatform[u.Platform] = u.URL
	}

	assert.Equal(t,
		"https://www.linkedin.com/jobs/search/?keywords=Product+Designer&location=United%20States&f_WT=2",
		byPlatform["LinkedIn"])
	assert.Equal(t,
		"https://www.indeed.com/jobs?q=Product+Designer&l=Remote",
		byPlatform["Indeed"])
	// Wellfound uses a lowercase dashed slug instead of a query parameter
	assert.Equal(t, "https://wellfound.com/role/r/product-designer", byPlatform["Wellfound"])
	assert.Contains(t, byPlatform["Glassdoor"], "sc.keyword=Product+Designer")
	assert.Contains(t, byPlatform["Dribbble"], "keyword=Product+Designer")
	assert.Contains(t, byPlatform["Built In"], "search=Product+Designer")
}
