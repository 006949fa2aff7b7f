// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries the OpenAlex works API, normalizes works into
// Papers, and renders enriched result lists for the CLI.
package search

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/paper-brief/pkg/types"
)

const (
	// DefaultLimit is the number of candidates fetched per query.
	DefaultLimit = 8

	// maxPerPage is the largest page OpenAlex serves.
	maxPerPage = 200
)

// FormatTable writes results as a human-readable table to w.
func FormatTable(papers []types.EnrichedPaper, w io.Writer) {
	if len(papers) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-20s  %-4s  %s\n",
		"Rank", "Title", "Authors", "Year", "Venue")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, p := range papers {
		year := ""
		if p.Year > 0 {
			year = fmt.Sprintf("%d", p.Year)
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-20s  %-4s  %s\n",
			i+1, truncate(p.Title, 60), formatAuthors(p.Authors), year, truncate(p.Venue, 30))
	}

	fmt.Fprintf(w, "\n%d results\n", len(papers))

	for i, p := range papers {
		fmt.Fprintf(w, "\n[%d] %s\n", i+1, p.APACitation)
		if p.Summary != nil {
			fmt.Fprintf(w, "    %s\n", *p.Summary)
		} else {
			fmt.Fprintln(w, "    (summary unavailable)")
		}
	}
}

// FormatJSON writes results as indented JSON to w, wrapped in a "papers"
// object to match the HTTP response body.
func FormatJSON(papers []types.EnrichedPaper, w io.Writer) error {
	if papers == nil {
		papers = []types.EnrichedPaper{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Papers []types.EnrichedPaper `json:"papers"`
	}{Papers: papers})
}

// FormatBibTeX writes every BibTeX entry, separated by blank lines.
func FormatBibTeX(papers []types.EnrichedPaper, w io.Writer) error {
	for i, p := range papers {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, p.BibTeXCitation+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
