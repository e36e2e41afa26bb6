package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wwrFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
	<title>We Work Remotely: Remote Design Jobs</title>
	<item>
		<title>Acme Studio: Product Designer</title>
		<region>USA Only</region>
		<type>Full-Time</type>
		<description>Work in figma with our product team.</description>
		<link>https://weworkremotely.com/jobs/1</link>
		<pubDate>Thu, 19 Feb 2026 16:43:31 +0000</pubDate>
	</item>
	<item>
		<title>Euro GmbH: Product Designer</title>
		<region>Germany</region>
		<type>Full-Time</type>
		<description>figma</description>
		<link>https://weworkremotely.com/jobs/2</link>
		<pubDate>Thu, 19 Feb 2026 10:00:00 +0000</pubDate>
	</item>
	<item>
		<title>Other Co: Accountant</title>
		<region>USA Only</region>
		<type>Full-Time</type>
		<description>Books and ledgers.</description>
		<link>https://weworkremotely.com/jobs/3</link>
		<pubDate>Thu, 19 Feb 2026 09:00:00 +0000</pubDate>
	</item>
</channel>
</rss>`

func TestWWRSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml; charset=utf-8")
		w.Write([]byte(wwrFeed))
	}))
	defer srv.Close()

	s := NewWWR(testDeps())
	s.feedURL = srv.URL + "/remote-design-jobs.rss"

	jobs := s.Search(context.Background(), "Product Designer")
	require.Len(t, jobs, 1)

	job := jobs[0]
	// "Company: Title" feed items are split apart
	assert.Equal(t, "Product Designer", job.Title)
	assert.Equal(t, "Acme Studio", job.Company)
	assert.Equal(t, "USA Only", job.Location)
	assert.Equal(t, "https://weworkremotely.com/jobs/1", job.URL)
	assert.Equal(t, "2026-02-19", job.DatePosted)
	assert.Equal(t, "Full-Time", job.EmploymentType)
	assert.Equal(t, "WWR", job.Source)
	assert.True(t, job.IsRemote)
}

func TestParsePubDate(t *testing.T) {
	assert.Equal(t, "2026-02-19", parsePubDate("Thu, 19 Feb 2026 16:43:31 +0000"))
	assert.Equal(t, "2026-02-19", parsePubDate("Thu, 19 Feb 2026 16:43:31 GMT"))
	assert.Equal(t, "garbage", parsePubDate("garbage"))
	// unparseable long strings keep a raw prefix
	assert.Equal(t, "sometime in the ", parsePubDate("sometime in the near future"))
	assert.Equal(t, "", parsePubDate(""))
}
