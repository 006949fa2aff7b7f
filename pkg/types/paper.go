// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paper-brief pipeline:
// the normalized paper record, its enriched form, stage configuration, and
// the error taxonomy shared by every stage.
package types

// UntitledPlaceholder is the title used when the source record carries none.
const UntitledPlaceholder = "[No title]"

// Paper is the normalized representation of one scholarly work as produced
// by the search stage. Fields are never modified after the search stage
// returns them; enrichment produces an EnrichedPaper instead.
type Paper struct {
	// ID is the stable external identifier (e.g. "https://openalex.org/W2741809807").
	ID string `json:"id" yaml:"id"`

	// Title is the display title, or UntitledPlaceholder when the source has none.
	Title string `json:"title" yaml:"title"`

	// Authors lists author display names in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Year is the publication year; 0 means unknown.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// Venue is the journal or conference name.
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	// Abstract is the abstract prose reconstructed from the source.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// DOI is the bare DOI without any resolver prefix (e.g. "10.1/xyz").
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// URL is the canonical link: the DOI resolver link when a DOI is known,
	// otherwise the source identifier.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// EnrichedPaper is a Paper with the citation and summary fields attached by
// the enrichment stage.
type EnrichedPaper struct {
	Paper `yaml:",inline"`

	// APACitation is the APA-style reference string.
	APACitation string `json:"apaCitation" yaml:"apa_citation"`

	// BibTeXCitation is a complete @article entry.
	BibTeXCitation string `json:"bibtexCitation" yaml:"bibtex_citation"`

	// Summary is the generated abstract summary, the no-abstract sentinel,
	// or nil when generation failed or produced nothing.
	Summary *string `json:"summary" yaml:"summary"`
}
