// Package skillsync pulls repositories from the search API and upserts them into
// the skill catalog.
package skillsync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/skillhub-backend/internal/domain"
	"github.com/heartmarshall/skillhub-backend/internal/provider"
)

type searcher interface {
	SearchRepositories(ctx context.Context, spec domain.SearchSpec) ([]domain.Candidate, error)
}

type skillRepo interface {
	ExistingTranslations(ctx context.Context, repoIDs []int64) (map[int64]string, error)
	UpsertMany(ctx context.Context, skills []domain.Skill) (int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type translator interface {
	Translate(ctx context.Context, text string) provider.Outcome
}

// Service runs one sync: every strategy in order, merge, translate missing
// descriptions, then a single transactional upsert.
type Service struct {
	log        *slog.Logger
	search     searcher
	skills     skillRepo
	tx         txManager
	translator translator
	strategies []Strategy
	now        func() time.Time
}

// NewService creates a new sync service. Strategies run in slice order.
func NewService(
	log *slog.Logger,
	search searcher,
	skills skillRepo,
	tx txManager,
	translator translator,
	strategies []Strategy,
) *Service {
	return &Service{
		log:        log.With("service", "sync"),
		search:     search,
		skills:     skills,
		tx:         tx,
		translator: translator,
		strategies: strategies,
		now:        time.Now,
	}
}

// Run performs one sync and returns the number of skills written.
// A search error aborts the run before anything is written.
func (s *Service) Run(ctx context.Context) (int, error) {
	now := s.now().UTC()

	batches := make([]Batch, 0, len(s.strategies))
	for _, st := range s.strategies {
		items, err := s.search.SearchRepositories(ctx, st.Build(now))
		if err != nil {
			return 0, fmt.Errorf("skillsync.Run: strategy %s: %w", st.Name, err)
		}
		s.log.InfoContext(ctx, "strategy fetched",
			slog.String("strategy", st.Name),
			slog.Int("count", len(items)),
		)
		batches = append(batches, Batch{Strategy: st.Name, Items: items})
	}

	merged := Merge(batches)
	if len(merged) == 0 {
		s.log.InfoContext(ctx, "sync completed", slog.Int("merged", 0))
		return 0, nil
	}

	skills, err := s.prepare(ctx, merged, now)
	if err != nil {
		return 0, err
	}

	var written int
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		n, err := s.skills.UpsertMany(ctx, skills)
		if err != nil {
			return err
		}
		written = n
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("skillsync.Run: %w", err)
	}

	s.log.InfoContext(ctx, "sync completed",
		slog.Int("merged", len(merged)),
		slog.Int("written", written),
	)
	return written, nil
}

// prepare maps candidates to skills and fills translations for those that
// have a description but no stored translation. Translation happens before
// the transaction opens so slow model calls never hold it.
func (s *Service) prepare(ctx context.Context, merged []domain.Candidate, now time.Time) ([]domain.Skill, error) {
	ids := make([]int64, len(merged))
	for i, c := range merged {
		ids[i] = c.RepoID
	}

	stored, err := s.skills.ExistingTranslations(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("skillsync.Run: load translations: %w", err)
	}

	var attempted, applied int
	skills := make([]domain.Skill, 0, len(merged))
	for _, c := range merged {
		sk := domain.SkillFromCandidate(c)
		sk.FetchedAt = now

		if sk.HasDescription() && stored[sk.RepoID] == "" {
			out := s.translator.Translate(ctx, *sk.Description)
			if out.Failure != provider.FailureDisabled {
				attempted++
			}
			if out.OK() {
				text := out.Text
				sk.DescriptionZH = &text
				applied++
			}
		}
		skills = append(skills, sk)
	}

	if attempted > 0 {
		s.log.InfoContext(ctx, "translations done",
			slog.Int("attempted", attempted),
			slog.Int("applied", applied),
		)
	}
	return skills, nil
}
