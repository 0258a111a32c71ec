package extract

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCards(t *testing.T) {
	tests := []struct {
		name      string
		html      string
		selectors []string
		want      int
	}{
		{
			name: "same job link collapses across selectors and tracking params",
			html: `<ul class="results">
				<li><div class="base-card"><a href="https://www.linkedin.com/jobs/view/1?trk=a">One</a></div></li>
				<li><div class="base-card"><a href="https://www.linkedin.com/jobs/view/1?trk=b">One again</a></div></li>
				<li><div class="base-card"><a href="/jobs/view/2">Two</a></div></li>
			</ul>`,
			selectors: []string{"div.base-card", ".results li"},
			want:      2,
		},
		{
			name:      "node matched by two selectors is kept once",
			html:      `<div class="base-card job-search-card">no link</div>`,
			selectors: []string{"div.base-card", ".job-search-card"},
			want:      1,
		},
		{
			name:      "cards without links are all kept",
			html:      `<div class="base-card">a</div><div class="base-card">b</div>`,
			selectors: []string{"div.base-card"},
			want:      2,
		},
		{
			name:      "invalid selector is skipped",
			html:      `<div class="base-card">a</div>`,
			selectors: []string{"div[", "div.base-card"},
			want:      1,
		},
		{
			name:      "nothing matches",
			html:      `<p>blocked</p>`,
			selectors: []string{"div.base-card"},
			want:      0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := goquery.NewDocumentFromReader(strings.NewReader(tt.html))
			require.NoError(t, err)
			assert.Len(t, Cards(doc.Selection, tt.selectors, nil), tt.want)
		})
	}
}

func TestCards_KeepsFirstInDocumentOrder(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
		<div class="base-card" id="first"><a href="/jobs/view/7?x=1">A</a></div>
		<div class="base-card" id="second"><a href="/jobs/view/7?x=2">B</a></div>`))
	require.NoError(t, err)

	cards := Cards(doc.Selection, []string{"div.base-card"}, nil)

	require.Len(t, cards, 1)
	id, _ := cards[0].Attr("id")
	assert.Equal(t, "first", id)
}

func TestCards_RelativeAndAbsoluteLinkCollapse(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
		<div class="base-card"><a href="/jobs/view/7?trk=a">A</a></div>
		<div class="base-card"><a href="https://www.linkedin.com/jobs/view/7">A</a></div>`))
	require.NoError(t, err)
	base, err := url.Parse("https://www.linkedin.com/jobs/search/?keywords=go")
	require.NoError(t, err)

	assert.Len(t, Cards(doc.Selection, []string{"div.base-card"}, base), 1)
	assert.Len(t, Cards(doc.Selection, []string{"div.base-card"}, nil), 2)
}
