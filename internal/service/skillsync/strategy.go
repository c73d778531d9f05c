package skillsync

import (
	"time"

	"github.com/heartmarshall/skillhub-backend/internal/config"
	"github.com/heartmarshall/skillhub-backend/internal/domain"
)

// Strategy names.
const (
	StrategyPopular = "popular"
	StrategyNewest  = "newest"
)

const (
	sortStars   = "stars"
	sortUpdated = "updated"
	orderDesc   = "desc"
)

// Strategy is one way of querying the search API. Build receives the run
// start time so date-relative queries are computed once per run.
type Strategy struct {
	Name  string
	Build func(now time.Time) domain.SearchSpec
}

// PopularStrategy searches by stars with the base caps.
func PopularStrategy(cfg config.GitHubConfig) Strategy {
	return Strategy{
		Name: StrategyPopular,
		Build: func(time.Time) domain.SearchSpec {
			return domain.SearchSpec{
				Query:      cfg.SearchQuery,
				Sort:       sortStars,
				Order:      orderDesc,
				PerPage:    cfg.PerPage,
				MaxPages:   cfg.MaxPages,
				MaxResults: cfg.MaxResults,
			}
		},
	}
}

// NewestStrategy restricts the query to repositories created within the
// window and sorts by last update.
func NewestStrategy(gh config.GitHubConfig, cfg config.NewestConfig) Strategy {
	return Strategy{
		Name: StrategyNewest,
		Build: func(now time.Time) domain.SearchSpec {
			since := now.UTC().AddDate(0, 0, -cfg.WindowDays).Format(time.DateOnly)
			return domain.SearchSpec{
				Query:      gh.SearchQuery + " created:>=" + since,
				Sort:       sortUpdated,
				Order:      orderDesc,
				PerPage:    gh.PerPage,
				MaxPages:   cfg.MaxPages,
				MaxResults: cfg.MaxResults,
			}
		},
	}
}

// DefaultStrategies returns popular then newest. Merge lets later batches
// win, so the fresher newest results override popular ones.
func DefaultStrategies(gh config.GitHubConfig, newest config.NewestConfig) []Strategy {
	return []Strategy{
		PopularStrategy(gh),
		NewestStrategy(gh, newest),
	}
}
