package docs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/local-mcps/claude-docs-mcp/internal/common"
	"github.com/local-mcps/claude-docs-mcp/pkg/mcp"
)

const (
	FetchToolName  = "fetch_claude_docs"
	SearchToolName = "search_claude_docs"

	defaultExcerptChars = 1000
)

type FetchArgs struct {
	Page  string `json:"page" jsonschema:"required,description=Documentation page to fetch"`
	Query string `json:"query,omitempty" jsonschema:"description=Optional search query to filter content"`
}

type SearchArgs struct {
	Query string   `json:"query" jsonschema:"required,description=Search query"`
	Pages []string `json:"pages,omitempty" jsonschema:"description=Specific pages to search (optional)"`
}

// SearchResult is one page's contribution to a search.
type SearchResult struct {
	Page    string
	URL     string
	Content string
}

func (s *Server) fetchDocsTool() *mcp.Tool {
	schema := mcp.GenerateSchema[FetchArgs]()
	_ = mcp.SetEnum(schema, "page", s.registry.IDs())

	return &mcp.Tool{
		Name:        FetchToolName,
		Description: "Fetch Claude Code documentation from docs.anthropic.com",
		InputSchema: schema,
		Handler:     s.handleFetchDocs,
	}
}

func (s *Server) searchDocsTool() *mcp.Tool {
	schema := mcp.GenerateSchema[SearchArgs]()
	_ = mcp.SetEnum(schema, "pages", s.registry.IDs())

	return &mcp.Tool{
		Name:        SearchToolName,
		Description: "Search across all Claude Code documentation",
		InputSchema: schema,
		Handler:     s.handleSearchDocs,
	}
}

func (s *Server) handleFetchDocs(ctx context.Context, params map[string]interface{}) (*mcp.ToolResult, error) {
	page, err := mcp.GetStringParam(params, "page", true)
	if err != nil {
		return nil, common.NewError(common.KindValidation, err.Error(), nil)
	}

	query, err := mcp.GetStringParam(params, "query", false)
	if err != nil {
		return nil, common.NewError(common.KindValidation, err.Error(), nil)
	}

	url, err := s.registry.Resolve(page)
	if err != nil {
		return nil, err
	}

	text, err := s.fetchText(ctx, page, url)
	if err != nil {
		return nil, common.NewError(common.KindOf(err), "Failed to fetch "+page, err)
	}

	if query != "" {
		text = Filter(text, query)
	}

	return mcp.TextResult(FormatPage(page, url, text)), nil
}

func (s *Server) handleSearchDocs(ctx context.Context, params map[string]interface{}) (*mcp.ToolResult, error) {
	query, err := mcp.GetStringParam(params, "query", true)
	if err != nil {
		return nil, common.NewError(common.KindValidation, err.Error(), nil)
	}

	pages, err := mcp.GetStringArrayParam(params, "pages", false)
	if err != nil {
		return nil, common.NewError(common.KindValidation, err.Error(), nil)
	}
	if pages == nil {
		pages = s.registry.IDs()
	}

	results := s.Search(ctx, query, pages)
	if len(results) == 0 {
		return mcp.TextResult(FormatNoResults(query)), nil
	}

	return mcp.TextResult(FormatSearchResults(query, results)), nil
}

// Search fetches pages on a bounded worker pool and returns the matching ones
// in the order requested. A page that is unknown, unreachable or answers with
// an error status is left out; it never affects the other pages.
func (s *Server) Search(ctx context.Context, query string, pages []string) []SearchResult {
	slots := make([]*SearchResult, len(pages))

	var g errgroup.Group
	g.SetLimit(max(1, s.config.Concurrency))

	excerptChars := s.config.MaxExcerptChars
	if excerptChars < 1 {
		excerptChars = defaultExcerptChars
	}

	for i, page := range pages {
		i, page := i, page
		g.Go(func() error {
			logger := s.logger.WithFields(map[string]interface{}{
				"page":  page,
				"query": query,
			})

			url, err := s.registry.Resolve(page)
			if err != nil {
				logger.Debug("search skipped unknown page")
				return nil
			}

			text, err := s.fetchText(ctx, page, url)
			if err != nil {
				logger.WithField("kind", string(common.KindOf(err))).
					WithError(err).
					Debug("search skipped page")
				return nil
			}
			if !Contains(text, query) {
				return nil
			}

			slots[i] = &SearchResult{
				Page:    page,
				URL:     url,
				Content: Truncate(Filter(text, query), excerptChars),
			}
			return nil
		})
	}
	_ = g.Wait()

	var results []SearchResult
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}
	return results
}

// fetchText fetches a resolved page and returns its extracted text.
func (s *Server) fetchText(ctx context.Context, page, url string) (string, error) {
	start := time.Now()
	raw, err := s.fetcher.Get(ctx, url)
	if err != nil {
		return "", err
	}

	text := Extract(raw)
	s.logger.WithFields(map[string]interface{}{
		"page":         page,
		"url":          url,
		"bytes":        len(raw),
		"text_chars":   len(text),
		"content_hash": fmt.Sprintf("%016x", xxhash.Sum64String(raw)),
		"duration_ms":  time.Since(start).Milliseconds(),
	}).Debug("page fetched")

	return text, nil
}

// PageTitle turns a page id into a heading by title-casing each segment
// between '-' and '_', e.g. "common-workflows" into "Common-Workflows".
func PageTitle(page string) string {
	caser := cases.Title(language.Und)

	var b strings.Builder
	start := 0
	for i, r := range page {
		if r == '-' || r == '_' {
			b.WriteString(caser.String(page[start:i]))
			b.WriteRune(r)
			start = i + 1
		}
	}
	b.WriteString(caser.String(page[start:]))
	return b.String()
}

func FormatPage(page, url, content string) string {
	return fmt.Sprintf("# Claude Code Documentation: %s\n\nURL: %s\n\n%s", PageTitle(page), url, content)
}

func FormatNoResults(query string) string {
	return fmt.Sprintf("No results found for query: '%s'", query)
}

func FormatSearchResults(query string, results []SearchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Search Results for '%s'\n\n", query)
	for _, r := range results {
		fmt.Fprintf(&b, "## %s\n", PageTitle(r.Page))
		fmt.Fprintf(&b, "URL: %s\n\n", r.URL)
		fmt.Fprintf(&b, "%s\n\n---\n\n", r.Content)
	}
	return b.String()
}
