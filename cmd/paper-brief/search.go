// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-brief/internal/search"
	"github.com/pdiddy/paper-brief/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search for papers and print enriched results",
	Long: `Search runs one query through the pipeline: OpenAlex search, APA and
BibTeX citations, and abstract summaries. Arguments are joined into a single
query string.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("format", "table", "output format: table, json, csl, or bibtex")
	searchCmd.Flags().Bool("no-summary", false, "skip summaries (no API key needed)")
	searchCmd.Flags().Int("limit", 0, "number of candidates to fetch (default search.max_results)")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	noSummary, _ := cmd.Flags().GetBool("no-summary")
	limit, _ := cmd.Flags().GetInt("limit")

	write, err := formatter(format)
	if err != nil {
		return err
	}

	cfg := configFromViper(viper.GetViper(), loadedSecrets, os.Getenv)
	if limit > 0 {
		cfg.Search.MaxResults = limit
	}

	orch, cleanup, err := buildPipeline(cmd.Context(), cfg, !noSummary, logger)
	defer cleanup()
	if err != nil {
		return err
	}

	papers, err := orch.Handle(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}
	return write(papers, cmd.OutOrStdout())
}

// formatter returns the writer for an output format name.
func formatter(name string) (func([]types.EnrichedPaper, io.Writer) error, error) {
	switch strings.ToLower(name) {
	case "table", "":
		return func(p []types.EnrichedPaper, w io.Writer) error {
			search.FormatTable(p, w)
			return nil
		}, nil
	case "json":
		return search.FormatJSON, nil
	case "csl":
		return search.FormatCSL, nil
	case "bibtex":
		return search.FormatBibTeX, nil
	default:
		return nil, fmt.Errorf("unknown format %q: use table, json, csl, or bibtex", name)
	}
}
