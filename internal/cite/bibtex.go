// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cite

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/paper-brief/pkg/types"
)

// BibTeX formats p as an @article entry. Fields without a value produce no
// line; title is always present. Two papers sharing a first-author surname
// and year get the same key.
func BibTeX(p types.Paper) string {
	lines := []string{"@article{" + CitationKey(p) + ","}
	lines = append(lines, bibField("title", p.Title))
	if len(p.Authors) > 0 {
		lines = append(lines, bibField("author", strings.Join(p.Authors, " and ")))
	}
	if p.Venue != "" {
		lines = append(lines, bibField("journal", p.Venue))
	}
	if p.Year > 0 {
		lines = append(lines, bibField("year", strconv.Itoa(p.Year)))
	}
	if p.DOI != "" {
		lines = append(lines, bibField("doi", p.DOI))
	}
	if p.URL != "" {
		lines = append(lines, bibField("url", p.URL))
	}
	lines = append(lines, "}")
	return strings.Join(lines, "\n")
}

// CitationKey is the last name token of the first author followed by the
// year ("key" stands in for a missing author), restricted to [A-Za-z0-9].
func CitationKey(p types.Paper) string {
	base := "key"
	if len(p.Authors) > 0 {
		if fields := strings.Fields(p.Authors[0]); len(fields) > 0 {
			base = fields[len(fields)-1]
		}
	}
	if p.Year > 0 {
		base += strconv.Itoa(p.Year)
	}
	return nonKeyChars.ReplaceAllString(base, "")
}

func bibField(name, value string) string {
	return fmt.Sprintf("  %-7s = {%s},", name, value)
}
