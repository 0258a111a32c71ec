// Package extract pulls job fields out of a single listing card by trying
// ordered CSS locators per field, first non-empty match wins.
package extract

import (
	"fmt"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// Locator is one compiled selector plus the thing it reads from the matched
// element: trimmed text when Attr is empty, otherwise the attribute value.
type Locator struct {
	Selector string
	Attr     string
	sel      cascadia.Selector
}

// NewLocator compiles selector. Invalid selectors are reported here so that
// extraction itself never has to deal with them.
func NewLocator(selector, attr string) (Locator, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return Locator{}, fmt.Errorf("invalid selector %q: %w", selector, err)
	}
	return Locator{
		Selector: selector,
		Attr:     attr,
		sel:      sel,
	}, nil
}

// Compile builds a locator list in the given order, skipping (and logging)
// selectors that do not parse.
func Compile(selectors []string, attr string) []Locator {
	locators := make([]Locator, 0, len(selectors))
	for _, s := range selectors {
		l, err := NewLocator(s, attr)
		if err != nil {
			log.Printf("⚠️ Skipping locator: %v", err)
			continue
		}
		locators = append(locators, l)
	}
	return locators
}

// Find returns the first element under card matched by the locator and the
// value read from it. ok is false when nothing matched or the value is empty.
func (l Locator) Find(card *goquery.Selection) (el *goquery.Selection, value string, ok bool) {
	if card == nil || l.sel == nil {
		return nil, "", false
	}
	el = card.FindMatcher(goquery.SingleMatcher(l.sel))
	if el.Length() == 0 {
		return nil, "", false
	}

	if l.Attr == "" {
		value = CleanText(el.Text())
	} else {
		value, _ = el.Attr(l.Attr)
		value = strings.TrimSpace(value)
	}
	if value == "" {
		return nil, "", false
	}
	return el, value, true
}

// First walks locators in priority order and returns the first hit.
func First(card *goquery.Selection, locators []Locator) (el *goquery.Selection, value string, ok bool) {
	for _, l := range locators {
		if el, value, ok = l.Find(card); ok {
			return el, value, true
		}
	}
	return nil, "", false
}

// CleanText collapses whitespace runs (including nbsp) into single spaces
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}
