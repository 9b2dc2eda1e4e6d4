package naukri

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listHTML = `
<html><body>
<article class="jobTuple">
  <a class="title" href="/job-listings-it-service-desk-analyst-acme-12345">IT Service Desk Analyst</a>
  <a class="subTitle">Acme Technologies</a>
  <li class="location">Bengaluru</li>
  <li class="experience">2-5 Yrs</li>
  <li class="salary">4-7 Lacs PA</li>
  <span class="jobTupleFooter">3 Days Ago</span>
</article>
<article class="jobTuple">
  <a class="title" href="https://www.naukri.com/job-listings-help-desk-67890">Help Desk Executive</a>
</article>
<article class="jobTuple">
  <a class="subTitle">Titleless Corp</a>
</article>
</body></html>`

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestParseListPage(t *testing.T) {
	recs := parseListPage(mustDoc(t, listHTML), "India")
	require.Len(t, recs, 2) // the titleless card is dropped

	first := recs[0]
	assert.Equal(t, "IT Service Desk Analyst", first.Title)
	assert.Equal(t, "Acme Technologies", first.Company)
	assert.Equal(t, "Bengaluru", first.Location)
	assert.Equal(t, "2-5 Yrs", first.Experience)
	assert.Equal(t, "4-7 Lacs PA", first.Salary)
	assert.Equal(t, "Naukri.com", first.Source)
	assert.Equal(t, "https://www.naukri.com/job-listings-it-service-desk-analyst-acme-12345", first.URL)
	assert.Equal(t, "3 Days Ago", first.DatePosted)
	assert.Equal(t, "Remote/Hybrid", first.WorkMode)

	second := recs[1]
	assert.Equal(t, "Help Desk Executive", second.Title)
	assert.Equal(t, "N/A", second.Company)
	assert.Equal(t, "India", second.Location)
	assert.Equal(t, "Not specified", second.Experience)
	assert.Equal(t, "Not disclosed", second.Salary)
	assert.Equal(t, "https://www.naukri.com/job-listings-help-desk-67890", second.URL)
}

func TestParseListPageDivFallback(t *testing.T) {
	html := `
<div class="jobTuple">
  <div class="title">Desktop Support Engineer</div>
  <div class="companyInfo">Globex</div>
</div>`
	recs := parseListPage(mustDoc(t, html), "India")
	require.Len(t, recs, 1)
	assert.Equal(t, "Desktop Support Engineer", recs[0].Title)
	assert.Equal(t, "Globex", recs[0].Company)
	assert.Empty(t, recs[0].URL)
}

func TestParseListPageEmpty(t *testing.T) {
	recs := parseListPage(mustDoc(t, "<html><body></body></html>"), "India")
	assert.Empty(t, recs)
}
