package config

import (
	"fmt"
	"net/url"
	"strings"
)

// maxPerPage is the largest page size the search API accepts.
const maxPerPage = 100

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.GitHub.validate(); err != nil {
		return fmt.Errorf("github: %w", err)
	}
	if err := c.Newest.validate(); err != nil {
		return fmt.Errorf("newest: %w", err)
	}
	if err := c.LLM.validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	if err := c.Enrichment.validate(); err != nil {
		return fmt.Errorf("enrichment: %w", err)
	}
	if c.SyncAPI.RequestsPerMinute < 1 {
		return fmt.Errorf("sync_api: requests_per_minute must be >= 1 (got %d)", c.SyncAPI.RequestsPerMinute)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log: format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

func (g *GitHubConfig) validate() error {
	if _, err := url.ParseRequestURI(g.APIURL); err != nil {
		return fmt.Errorf("api_url: %w", err)
	}
	if strings.TrimSpace(g.SearchQuery) == "" {
		return fmt.Errorf("search_query must not be empty")
	}
	if g.PerPage < 1 || g.PerPage > maxPerPage {
		return fmt.Errorf("per_page must be in 1..%d (got %d)", maxPerPage, g.PerPage)
	}
	if g.MaxPages < 1 {
		return fmt.Errorf("max_pages must be >= 1 (got %d)", g.MaxPages)
	}
	if g.MaxResults < 1 {
		return fmt.Errorf("max_results must be >= 1 (got %d)", g.MaxResults)
	}
	if g.RateLimitBuffer < 0 {
		return fmt.Errorf("rate_limit_buffer must be >= 0 (got %d)", g.RateLimitBuffer)
	}
	if g.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be > 0")
	}
	return nil
}

func (n *NewestConfig) validate() error {
	if n.WindowDays < 1 {
		return fmt.Errorf("window_days must be >= 1 (got %d)", n.WindowDays)
	}
	if n.MaxPages < 1 {
		return fmt.Errorf("max_pages must be >= 1 (got %d)", n.MaxPages)
	}
	if n.MaxResults < 1 {
		return fmt.Errorf("max_results must be >= 1 (got %d)", n.MaxResults)
	}
	return nil
}

func (l *LLMConfig) validate() error {
	if _, err := url.ParseRequestURI(l.BaseURL); err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if l.Temperature < 0 || l.Temperature > 2 {
		return fmt.Errorf("temperature must be in 0..2 (got %v)", l.Temperature)
	}
	if l.TranslateTimeout <= 0 || l.GenerateTimeout <= 0 {
		return fmt.Errorf("timeouts must be > 0")
	}
	return nil
}

func (e *EnrichmentConfig) validate() error {
	if e.BatchSize < 1 {
		return fmt.Errorf("batch_size must be >= 1 (got %d)", e.BatchSize)
	}
	if e.LockTTL <= 0 {
		return fmt.Errorf("lock_ttl must be > 0")
	}
	return nil
}
