package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type Field string

const (
	FieldTitle      Field = "title"
	FieldCompany    Field = "company"
	FieldLocation   Field = "location"
	FieldURL        Field = "url"
	FieldDatePosted Field = "datePosted"
)

// Fields is a partial mapping: a field that was not found is absent, never
// present with an empty value.
type Fields map[Field]string

func (f Fields) Get(field Field) (string, bool) {
	v, ok := f[field]
	return v, ok
}

// Rules holds the ordered locator lists per field, most reliable first.
type Rules struct {
	Title    []Locator
	Company  []Locator
	Location []Locator
	URL      []Locator
	Date     []Locator

	// BaseURL resolves relative hrefs. Optional.
	BaseURL *url.URL
}

// Selectors is the string form of Rules as it appears in config.
type Selectors struct {
	Title    []string `json:"title" yaml:"title"`
	Company  []string `json:"company" yaml:"company"`
	Location []string `json:"location" yaml:"location"`
	URL      []string `json:"url" yaml:"url"`
	Date     []string `json:"date" yaml:"date"`
	Cards    []string `json:"cards" yaml:"cards"`
}

// NewRules compiles selectors into Rules. URL locators read the href
// attribute, every other field reads text.
func NewRules(s Selectors, pageURL string) Rules {
	r := Rules{
		Title:    Compile(s.Title, ""),
		Company:  Compile(s.Company, ""),
		Location: Compile(s.Location, ""),
		URL:      Compile(s.URL, "href"),
		Date:     Compile(s.Date, ""),
	}
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		r.BaseURL = u
	}
	return r
}

// Extract reads every field from one listing card.
func Extract(card *goquery.Selection, rules Rules) Fields {
	fields := Fields{}

	if el, title, ok := First(card, rules.Title); ok {
		fields[FieldTitle] = title
		// a linked title doubles as the job URL and beats the url locators
		if href, _ := el.Attr("href"); href != "" {
			if link, ok := JobLink(href, rules.BaseURL); ok {
				fields[FieldURL] = link
			}
		}
	}
	if _, company, ok := First(card, rules.Company); ok {
		fields[FieldCompany] = company
	}
	if _, location, ok := First(card, rules.Location); ok {
		fields[FieldLocation] = location
	}
	if _, found := fields[FieldURL]; !found {
		if link, ok := firstLink(card, rules.URL, rules.BaseURL); ok {
			fields[FieldURL] = link
		}
	}
	if _, date, ok := First(card, rules.Date); ok {
		fields[FieldDatePosted] = date
	}

	// an href that normalizes to nothing is not a URL
	if fields[FieldURL] == "" {
		delete(fields, FieldURL)
	}
	return fields
}

// firstLink is First for href locators: placeholder links are skipped so a
// later locator can still supply the real one.
func firstLink(card *goquery.Selection, locators []Locator, base *url.URL) (string, bool) {
	for _, l := range locators {
		if _, href, ok := l.Find(card); ok {
			if link, ok := JobLink(href, base); ok {
				return link, true
			}
		}
	}
	return "", false
}

// JobLink normalizes href and reports whether it points somewhere other than
// the page itself. "#", "javascript:" and links back to the search page are
// placeholders.
func JobLink(href string, base *url.URL) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(strings.ToLower(href), "javascript:") {
		return "", false
	}
	link := NormalizeURL(href, base)
	if link == "" {
		return "", false
	}
	if base != nil && link == NormalizeURL(base.String(), nil) {
		return "", false
	}
	return link, true
}

// NormalizeURL resolves href against base and drops the query string.
// LinkedIn appends tracking params (refId, trackingId) that change per view.
func NormalizeURL(href string, base *url.URL) string {
	href = strings.TrimSpace(href)
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if base != nil && !u.IsAbs() {
		u = base.ResolveReference(u)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
