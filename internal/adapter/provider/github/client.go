// Package github fetches repository search results page by page while
// staying inside the API quota.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/heartmarshall/skillhub-backend/internal/config"
	"github.com/heartmarshall/skillhub-backend/internal/domain"
)

// MaxPerPage is the largest page size the search API serves.
const MaxPerPage = 100

// StopReason records why pagination ended.
type StopReason string

const (
	StopEmptyPage   StopReason = "empty_page"
	StopMaxResults  StopReason = "max_results"
	StopShortPage   StopReason = "short_page"
	StopMaxPages    StopReason = "max_pages"
	StopRateLimited StopReason = "rate_limited"
	StopQuotaBuffer StopReason = "quota_buffer"
)

// searchResult is the outcome of one paginated search.
type searchResult struct {
	Items []domain.Candidate
	Pages int
	Stop  StopReason
}

// Client wraps the go-github search API.
type Client struct {
	gh          *gh.Client
	quotaBuffer int
	log         *slog.Logger
}

// NewClient creates a search client. A configured token authenticates every
// request through an oauth2 transport; without one the anonymous quota applies.
func NewClient(ctx context.Context, cfg config.GitHubConfig, logger *slog.Logger) (*Client, error) {
	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient = oauth2.NewClient(ctx, ts)
		httpClient.Timeout = cfg.RequestTimeout
	}

	client := gh.NewClient(httpClient)
	if cfg.APIURL != "" {
		base, err := url.Parse(strings.TrimRight(cfg.APIURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("github: parse api url: %w", err)
		}
		client.BaseURL = base
	}

	return &Client{
		gh:          client,
		quotaBuffer: cfg.RateLimitBuffer,
		log:         logger.With("adapter", "github"),
	}, nil
}

// SearchRepositories returns up to spec.MaxResults hits in API order.
// Running out of quota ends the fetch early with the pages already read and
// no error; any other failed page fails the call.
func (c *Client) SearchRepositories(ctx context.Context, spec domain.SearchSpec) ([]domain.Candidate, error) {
	res, err := c.search(ctx, spec)
	if err != nil {
		return nil, err
	}

	c.log.InfoContext(ctx, "search finished",
		slog.String("sort", spec.Sort),
		slog.Int("pages", res.Pages),
		slog.Int("items", len(res.Items)),
		slog.String("stop", string(res.Stop)),
	)
	return res.Items, nil
}

func (c *Client) search(ctx context.Context, spec domain.SearchSpec) (searchResult, error) {
	perPage := min(max(spec.PerPage, 1), MaxPerPage)
	maxPages := max(spec.MaxPages, 1)
	maxResults := max(spec.MaxResults, 1)

	res := searchResult{Items: make([]domain.Candidate, 0, min(maxResults, perPage*maxPages)), Stop: StopMaxPages}

	for page := 1; page <= maxPages; page++ {
		opts := &gh.SearchOptions{
			Sort:        spec.Sort,
			Order:       spec.Order,
			ListOptions: gh.ListOptions{Page: page, PerPage: perPage},
		}

		found, resp, err := c.gh.Search.Repositories(ctx, spec.Query, opts)
		if err != nil {
			if signal, limited := rateLimitSignal(err); limited {
				c.log.WarnContext(ctx, "search rate limited, stopping early",
					slog.Int("page", page),
					slog.String("signal", signal),
				)
				res.Stop = StopRateLimited
				return res, nil
			}
			return res, wrapError(err, fmt.Sprintf("search repositories page %d", page))
		}
		res.Pages = page

		var repos []*gh.Repository
		if found != nil {
			repos = found.Repositories
		}
		if len(repos) == 0 {
			res.Stop = StopEmptyPage
			break
		}

		for _, r := range repos {
			if cand, ok := toCandidate(r); ok {
				res.Items = append(res.Items, cand)
			}
		}

		if len(res.Items) >= maxResults {
			res.Items = res.Items[:maxResults]
			res.Stop = StopMaxResults
			break
		}
		if len(repos) < perPage {
			res.Stop = StopShortPage
			break
		}
		var httpResp *http.Response
		if resp != nil {
			httpResp = resp.Response
		}
		if remaining, ok := remainingQuota(httpResp); ok && remaining <= c.quotaBuffer {
			c.log.InfoContext(ctx, "search quota at buffer, stopping",
				slog.Int("page", page),
				slog.Int("remaining", remaining),
				slog.Int("buffer", c.quotaBuffer),
			)
			res.Stop = StopQuotaBuffer
			break
		}
	}

	return res, nil
}
