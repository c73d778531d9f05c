package testhelper

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/skillhub-backend/internal/domain"
)

var repoIDSeq atomic.Int64

func init() {
	repoIDSeq.Store(time.Now().UnixNano() % 1_000_000_000)
}

// NextRepoID returns a repo id that no other test in this process uses.
func NextRepoID() int64 {
	return repoIDSeq.Add(1)
}

// SkillOption customizes a seeded skill.
type SkillOption func(s *domain.Skill)

// WithStars sets the star count.
func WithStars(n int) SkillOption {
	return func(s *domain.Skill) { s.Stars = n }
}

// WithPushedAt sets last_pushed_at.
func WithPushedAt(t time.Time) SkillOption {
	return func(s *domain.Skill) { s.LastPushedAt = &t }
}

// WithContentUpdatedAt marks the skill as enriched at t.
func WithContentUpdatedAt(t time.Time) SkillOption {
	return func(s *domain.Skill) { s.ContentUpdatedAt = &t }
}

// WithDescriptionZH sets a stored translation.
func WithDescriptionZH(text string) SkillOption {
	return func(s *domain.Skill) { s.DescriptionZH = &text }
}

// SeedSkill inserts a skill with a fresh repo id and returns it.
func SeedSkill(t *testing.T, pool *pgxpool.Pool, opts ...SkillOption) domain.Skill {
	t.Helper()

	repoID := NextRepoID()
	desc := "A Claude Skill for tests"
	s := domain.Skill{
		RepoID:      repoID,
		Name:        fmt.Sprintf("skill-%d", repoID),
		FullName:    fmt.Sprintf("acme/skill-%d", repoID),
		Description: &desc,
		HTMLURL:     fmt.Sprintf("https://github.com/acme/skill-%d", repoID),
		Topics:      "claude,skill",
	}
	for _, opt := range opts {
		opt(&s)
	}

	err := pool.QueryRow(context.Background(),
		`INSERT INTO skills (repo_id, name, full_name, description, description_zh, html_url,
		                     stars, forks, topics, last_pushed_at, content_updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id, created_at, updated_at, fetched_at`,
		s.RepoID, s.Name, s.FullName, s.Description, s.DescriptionZH, s.HTMLURL,
		s.Stars, s.Forks, s.Topics, s.LastPushedAt, s.ContentUpdatedAt,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt, &s.FetchedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedSkill: %v", err)
	}

	return s
}
