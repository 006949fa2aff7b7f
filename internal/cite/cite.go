// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cite formats Papers as APA and BibTeX citation strings.
// Both formatters are pure and total: every combination of missing optional
// fields yields a string, never a panic.
package cite

import (
	"regexp"
	"strconv"

	"github.com/pdiddy/paper-brief/pkg/types"
)

// doiResolver is prepended to bare DOIs to build a locator link.
const doiResolver = "https://doi.org/"

// nonKeyChars matches everything a BibTeX citation key must not contain.
var nonKeyChars = regexp.MustCompile(`[^A-Za-z0-9]`)

// APA formats p as "<authors> (<year>). <title>.[ <venue>][ <locator>]".
// The locator is the DOI link when a DOI is known, else the URL.
func APA(p types.Paper) string {
	year := "(n.d.)."
	if p.Year > 0 {
		year = "(" + strconv.Itoa(p.Year) + ")."
	}

	title := p.Title
	if title == "" {
		title = types.UntitledPlaceholder
	}

	venue := ""
	if p.Venue != "" {
		venue = " " + p.Venue
	}

	locator := ""
	switch {
	case p.DOI != "":
		locator = " " + doiResolver + p.DOI
	case p.URL != "":
		locator = " " + p.URL
	}

	return inlineAuthors(p.Authors) + " " + year + " " + title + "." + venue + locator
}

// inlineAuthors renders the APA author clause: "", "A", "A & B", or "A et al.".
func inlineAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return authors[0]
	case 2:
		return authors[0] + " & " + authors[1]
	default:
		return authors[0] + " et al."
	}
}
