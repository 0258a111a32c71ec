package extract

import (
	"log"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/net/html"
)

// cardLinkSelector finds the job permalink used to tell cards apart
const cardLinkSelector = `a[href*="/jobs/view/"]`

// Cards collects listing cards from every card selector that matches (markup
// variants can coexist on one page), then drops duplicates: cards pointing at
// the same job link collapse to the first one, and a DOM node matched by
// several selectors is kept once. base resolves relative links so both
// forms of one job link compare equal; it may be nil.
func Cards(doc *goquery.Selection, selectors []string, base *url.URL) []*goquery.Selection {
	var found []*goquery.Selection
	for _, l := range Compile(selectors, "") {
		matched := doc.FindMatcher(l.sel)
		if matched.Length() == 0 {
			continue
		}
		log.Printf("🔎 Found %d job cards using selector: %s", matched.Length(), l.Selector)
		matched.Each(func(_ int, s *goquery.Selection) {
			found = append(found, s)
		})
	}

	seenURLs := mapset.NewThreadUnsafeSet[string]()
	seenNodes := mapset.NewThreadUnsafeSet[*html.Node]()
	unique := make([]*goquery.Selection, 0, len(found))
	for _, card := range found {
		node := card.Get(0)
		if seenNodes.Contains(node) {
			continue
		}
		seenNodes.Add(node)

		href, _ := card.Find(cardLinkSelector).First().Attr("href")
		href = strings.TrimSpace(href)
		if href != "" {
			key := NormalizeURL(href, base)
			if seenURLs.Contains(key) {
				continue
			}
			seenURLs.Add(key)
		}
		unique = append(unique, card)
	}
	return unique
}
