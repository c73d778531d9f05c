// Package enrichment generates page content for skills whose content is
// missing or stale. Runs are serialized across processes by a lease lock.
package enrichment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/skillhub-backend/internal/config"
	"github.com/heartmarshall/skillhub-backend/internal/domain"
	"github.com/heartmarshall/skillhub-backend/internal/enricher"
)

const (
	releaseTimeout = 5 * time.Second
	commitTimeout  = 30 * time.Second
)

type locker interface {
	Acquire(ctx context.Context, ttl time.Duration) (domain.Lease, error)
	Release(ctx context.Context, lease domain.Lease) error
}

type skillRepo interface {
	ListEnrichmentCandidates(ctx context.Context, limit int) ([]domain.Skill, error)
	UpdateContent(ctx context.Context, repoID int64, c domain.SkillContent, generatedAt time.Time) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type generator interface {
	Generate(ctx context.Context, s domain.Skill) enricher.Result
}

// Service runs enrichment batches.
type Service struct {
	log    *slog.Logger
	cfg    config.EnrichmentConfig
	hasKey bool
	lock   locker
	skills skillRepo
	tx     txManager
	gen    generator
	now    func() time.Time
}

// NewService creates a new enrichment service.
func NewService(
	log *slog.Logger,
	cfg config.EnrichmentConfig,
	llmCfg config.LLMConfig,
	lock locker,
	skills skillRepo,
	tx txManager,
	gen generator,
) *Service {
	return &Service{
		log:    log.With("service", "enrichment"),
		cfg:    cfg,
		hasKey: llmCfg.HasKey(),
		lock:   lock,
		skills: skills,
		tx:     tx,
		gen:    gen,
		now:    time.Now,
	}
}

type update struct {
	repoID  int64
	content domain.SkillContent
}

// Run processes one batch and returns the number of skills updated.
// A disabled pipeline, a missing key or a busy lock yield zero without error.
// Valid results are committed together. A skill deleted since selection is
// skipped. A cancelled run still commits what was generated before the
// cancellation and returns the count with the context error.
func (s *Service) Run(ctx context.Context) (int, error) {
	if !s.cfg.Enabled {
		s.log.InfoContext(ctx, "enrichment disabled; skip")
		return 0, nil
	}
	if !s.hasKey {
		s.log.InfoContext(ctx, "llm api key missing; skip enrichment")
		return 0, nil
	}

	lease, err := s.lock.Acquire(ctx, s.cfg.LockTTL)
	if err != nil {
		if errors.Is(err, domain.ErrLockHeld) {
			s.log.InfoContext(ctx, "enrichment lock busy; skip")
		} else {
			s.log.WarnContext(ctx, "enrichment lock unavailable; skip", slog.String("error", err.Error()))
		}
		return 0, nil
	}
	defer s.release(ctx, lease)

	candidates, err := s.skills.ListEnrichmentCandidates(ctx, s.cfg.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("enrichment.Run: list candidates: %w", err)
	}
	if len(candidates) == 0 {
		s.log.InfoContext(ctx, "no skills to enrich")
		return 0, nil
	}

	updates := make([]update, 0, len(candidates))
	var cancelErr error
	for _, c := range candidates {
		if cancelErr = ctx.Err(); cancelErr != nil {
			break
		}
		res := s.gen.Generate(ctx, c)
		if !res.OK() {
			continue
		}
		updates = append(updates, update{repoID: c.RepoID, content: res.Content})
	}

	commitCtx := ctx
	if cancelErr != nil {
		var cancel context.CancelFunc
		commitCtx, cancel = context.WithTimeout(context.WithoutCancel(ctx), commitTimeout)
		defer cancel()
	}

	written, err := s.commit(commitCtx, updates)
	if err != nil {
		return 0, fmt.Errorf("enrichment.Run: %w", err)
	}

	s.log.InfoContext(ctx, "skill enrich completed",
		slog.Int("updated", written),
		slog.Int("generated", len(updates)),
		slog.Int("candidates", len(candidates)),
	)
	if cancelErr != nil {
		return written, fmt.Errorf("enrichment.Run: %w", cancelErr)
	}
	return written, nil
}

// commit writes every update in one transaction with a shared timestamp.
// Rows that no longer exist are skipped; any other error rolls back the batch.
func (s *Service) commit(ctx context.Context, updates []update) (int, error) {
	if len(updates) == 0 {
		return 0, nil
	}

	generatedAt := s.now().UTC()
	written := 0
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		written = 0
		for _, u := range updates {
			err := s.skills.UpdateContent(ctx, u.repoID, u.content, generatedAt)
			switch {
			case errors.Is(err, domain.ErrNotFound):
				s.log.WarnContext(ctx, "skill vanished before enrichment commit; skip",
					slog.Int64("repo_id", u.repoID),
				)
			case err != nil:
				return err
			default:
				written++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}

// release runs even when the run context is cancelled; a failed release
// leaves the lease to expire by TTL.
func (s *Service) release(ctx context.Context, lease domain.Lease) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()

	if err := s.lock.Release(ctx, lease); err != nil {
		s.log.WarnContext(ctx, "enrichment lock release failed", slog.String("error", err.Error()))
	}
}
