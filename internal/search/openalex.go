// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/paper-brief/internal/httputil"
	"github.com/pdiddy/paper-brief/internal/logging"
	"github.com/pdiddy/paper-brief/pkg/types"
)

// openAlexSearchBase is the OpenAlex Works search endpoint. Declared as a
// var so tests can substitute an httptest server.
var openAlexSearchBase = "https://api.openalex.org/works"

// doiResolverPrefix matches DOI resolver URLs that OpenAlex prepends to DOIs.
var doiResolverPrefix = regexp.MustCompile(`(?i)^https?://(dx\.)?doi\.org/`)

// OpenAlex queries the OpenAlex API and normalizes works into Papers.
type OpenAlex struct {
	Client *http.Client
	// Email is sent as mailto parameter for polite pool access.
	Email string
	// DefaultLimit is used when Search is called with limit <= 0.
	DefaultLimit int
	Logger       *zap.Logger
}

// NewOpenAlex builds an OpenAlex adapter from the search configuration.
func NewOpenAlex(cfg types.SearchConfig, logger *zap.Logger) *OpenAlex {
	return &OpenAlex{
		Client:       httputil.NewClient(cfg.HTTPConfig),
		Email:        cfg.Email,
		DefaultLimit: cfg.MaxResults,
		Logger:       logger,
	}
}

// Search issues one relevance-sorted query for at most limit works. Any
// failure is returned wrapped in types.ErrSearchUnavailable; there is no retry.
func (b *OpenAlex) Search(ctx context.Context, query string, limit int) ([]types.Paper, error) {
	log := logging.OrNop(b.Logger)

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty OpenAlex query", types.ErrInvalidRequest)
	}

	if limit <= 0 {
		limit = b.DefaultLimit
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > maxPerPage {
		limit = maxPerPage
	}

	params := url.Values{
		"search":   {query},
		"per-page": {strconv.Itoa(limit)},
		"sort":     {"relevance_score:desc"},
	}
	if b.Email != "" {
		params.Set("mailto", b.Email)
	}
	reqURL := openAlexSearchBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", types.ErrSearchUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	client := b.Client
	if client == nil {
		client = httputil.NewClient(types.HTTPConfig{})
	}

	resp, err := client.Do(req)
	if err != nil {
		log.Error("OpenAlex request failed", zap.String("query", query), zap.Error(err))
		return nil, fmt.Errorf("%w: OpenAlex API request: %v", types.ErrSearchUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error("OpenAlex returned error status",
			zap.String("query", query),
			zap.Int("status", resp.StatusCode),
			zap.String("body", httputil.Snippet(resp.Body)))
		return nil, fmt.Errorf("%w: OpenAlex API returned HTTP %d", types.ErrSearchUnavailable, resp.StatusCode)
	}

	var oar openAlexResponse
	if err := json.NewDecoder(resp.Body).Decode(&oar); err != nil {
		log.Error("OpenAlex response not decodable", zap.String("query", query), zap.Error(err))
		return nil, fmt.Errorf("%w: parsing OpenAlex response: %v", types.ErrSearchUnavailable, err)
	}

	papers := make([]types.Paper, 0, len(oar.Results))
	seen := make(map[string]bool, len(oar.Results))
	for _, work := range oar.Results {
		id := strings.TrimSpace(work.ID)
		if id == "" {
			log.Warn("skipping OpenAlex work without id", zap.String("title", work.DisplayName))
			continue
		}
		if seen[id] {
			log.Debug("skipping repeated OpenAlex work", zap.String("id", id))
			continue
		}
		seen[id] = true
		papers = append(papers, toPaper(work))
	}

	log.Debug("OpenAlex search complete",
		zap.String("query", query),
		zap.Int("requested", limit),
		zap.Int("returned", len(papers)))
	return papers, nil
}

// toPaper normalizes one OpenAlex work. The caller guarantees a non-empty ID.
func toPaper(work openAlexWork) types.Paper {
	p := types.Paper{
		ID:      strings.TrimSpace(work.ID),
		Title:   firstNonEmpty(work.DisplayName, work.Title, types.UntitledPlaceholder),
		Authors: []string{},
	}

	for _, authorship := range work.Authorships {
		if authorship.Author == nil {
			continue
		}
		if name := strings.TrimSpace(authorship.Author.DisplayName); name != "" {
			p.Authors = append(p.Authors, name)
		}
	}

	if work.PublicationYear != nil && *work.PublicationYear > 0 {
		p.Year = *work.PublicationYear
	}

	if work.PrimaryLocation != nil && work.PrimaryLocation.Source != nil {
		p.Venue = strings.TrimSpace(work.PrimaryLocation.Source.DisplayName)
	}

	if len(work.AbstractInvertedIndex) > 0 {
		p.Abstract = reconstructAbstract(work.AbstractInvertedIndex)
	}

	rawDOI := work.DOI
	if rawDOI == "" && work.IDs != nil {
		rawDOI = work.IDs.DOI
	}
	p.DOI = normalizeDOI(rawDOI)

	if p.DOI != "" {
		p.URL = "https://doi.org/" + p.DOI
	} else {
		p.URL = p.ID
	}
	return p
}

// normalizeDOI strips any DOI resolver prefix and surrounding whitespace.
func normalizeDOI(raw string) string {
	return strings.TrimSpace(doiResolverPrefix.ReplaceAllString(strings.TrimSpace(raw), ""))
}

// reconstructAbstract converts OpenAlex's abstract_inverted_index back to
// plain text. The inverted index maps each word to a list of positions
// where that word appears. Positions nobody claims are skipped, negative
// positions are ignored, and a position claimed by two words keeps the
// lexicographically smaller one so the output is deterministic.
func reconstructAbstract(invertedIndex map[string][]int) string {
	if len(invertedIndex) == 0 {
		return ""
	}

	type posWord struct {
		pos  int
		word string
	}
	var pairs []posWord
	for word, positions := range invertedIndex {
		for _, pos := range positions {
			if pos < 0 {
				continue
			}
			pairs = append(pairs, posWord{pos: pos, word: word})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].pos != pairs[j].pos {
			return pairs[i].pos < pairs[j].pos
		}
		return pairs[i].word < pairs[j].word
	})

	words := make([]string, 0, len(pairs))
	last := -1
	for _, p := range pairs {
		if p.pos == last {
			continue
		}
		last = p.pos
		words = append(words, p.word)
	}
	return strings.Join(words, " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// OpenAlex API JSON structures. Optional objects are pointers so absent and
// null values decode without error.
type openAlexResponse struct {
	Meta    openAlexMeta   `json:"meta"`
	Results []openAlexWork `json:"results"`
}

type openAlexMeta struct {
	Count   int `json:"count"`
	PerPage int `json:"per_page"`
	Page    int `json:"page"`
}

type openAlexWork struct {
	ID                    string               `json:"id"`
	DisplayName           string               `json:"display_name"`
	Title                 string               `json:"title"`
	DOI                   string               `json:"doi"`
	IDs                   *openAlexIDs         `json:"ids"`
	PublicationYear       *int                 `json:"publication_year"`
	Authorships           []openAlexAuthorship `json:"authorships"`
	PrimaryLocation       *openAlexLocation    `json:"primary_location"`
	AbstractInvertedIndex map[string][]int     `json:"abstract_inverted_index"`
}

type openAlexIDs struct {
	OpenAlex string `json:"openalex"`
	DOI      string `json:"doi"`
}

type openAlexAuthorship struct {
	Author *openAlexAuthor `json:"author"`
}

type openAlexAuthor struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type openAlexLocation struct {
	Source *openAlexSource `json:"source"`
}

type openAlexSource struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}
