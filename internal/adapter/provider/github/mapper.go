package github

import (
	"time"

	gh "github.com/google/go-github/v80/github"

	"github.com/heartmarshall/skillhub-backend/internal/domain"
)

// toCandidate maps a search hit. Hits without an id cannot be upserted and
// are dropped.
func toCandidate(r *gh.Repository) (domain.Candidate, bool) {
	if r == nil || r.ID == nil {
		return domain.Candidate{}, false
	}

	topics := make([]string, len(r.Topics))
	copy(topics, r.Topics)

	return domain.Candidate{
		RepoID:      r.GetID(),
		Name:        r.GetName(),
		FullName:    r.GetFullName(),
		Description: r.Description,
		HTMLURL:     r.GetHTMLURL(),
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
		Language:    r.Language,
		Topics:      topics,
		PushedAt:    timestampPtr(r.PushedAt),
		CreatedAt:   timestampPtr(r.CreatedAt),
		UpdatedAt:   timestampPtr(r.UpdatedAt),
	}, true
}

func timestampPtr(ts *gh.Timestamp) *time.Time {
	if ts == nil || ts.IsZero() {
		return nil
	}
	t := ts.UTC()
	return &t
}
