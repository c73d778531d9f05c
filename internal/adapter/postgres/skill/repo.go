// Package skill implements the skill catalog repository using PostgreSQL.
package skill

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/skillhub-backend/internal/adapter/postgres"
	"github.com/heartmarshall/skillhub-backend/internal/domain"
)

const table = "skills"

// selectColumns is the column order scanned by scanSkill. Generated text
// columns are coalesced so unenriched rows scan into empty strings.
var selectColumns = []string{
	"id", "repo_id", "name", "full_name", "description", "description_zh",
	"html_url", "stars", "forks", "language", "topics",
	"last_pushed_at", "repo_created_at", "repo_updated_at",
	"COALESCE(summary_en, '')", "COALESCE(summary_zh, '')",
	"key_features_en", "key_features_zh", "use_cases_en", "use_cases_zh",
	"COALESCE(seo_title_en, '')", "COALESCE(seo_title_zh, '')",
	"COALESCE(seo_description_en, '')", "COALESCE(seo_description_zh, '')",
	"content_updated_at", "created_at", "updated_at", "fetched_at",
}

var upsertColumns = []string{
	"repo_id", "name", "full_name", "description", "description_zh",
	"html_url", "stars", "forks", "language", "topics",
	"last_pushed_at", "repo_created_at", "repo_updated_at", "fetched_at",
}

// upsertConflict overwrites source metadata on re-sync. A stored non-empty
// translation always wins over the incoming one.
const upsertConflict = `ON CONFLICT (repo_id) DO UPDATE SET
	name = EXCLUDED.name,
	full_name = EXCLUDED.full_name,
	description = EXCLUDED.description,
	description_zh = COALESCE(NULLIF(skills.description_zh, ''), EXCLUDED.description_zh),
	html_url = EXCLUDED.html_url,
	stars = EXCLUDED.stars,
	forks = EXCLUDED.forks,
	language = EXCLUDED.language,
	topics = EXCLUDED.topics,
	last_pushed_at = EXCLUDED.last_pushed_at,
	repo_created_at = EXCLUDED.repo_created_at,
	repo_updated_at = EXCLUDED.repo_updated_at,
	fetched_at = EXCLUDED.fetched_at,
	updated_at = EXCLUDED.fetched_at`

// Repo provides skill persistence backed by PostgreSQL.
type Repo struct {
	pool    *pgxpool.Pool
	builder sq.StatementBuilderType
}

// New creates a new skill repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{
		pool:    pool,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// getByRepoID returns the skill stored for a GitHub repo id.
func (r *Repo) getByRepoID(ctx context.Context, repoID int64) (*domain.Skill, error) {
	query, args, err := r.builder.
		Select(selectColumns...).
		From(table).
		Where(sq.Eq{"repo_id": repoID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("skill.getByRepoID: build query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	s, err := scanSkill(row)
	if err != nil {
		return nil, fmt.Errorf("skill.getByRepoID: %w", postgres.MapError(err, "skill", repoID))
	}
	return &s, nil
}

// ExistingTranslations returns the non-empty stored translations for the
// given repo ids. Repos without a stored translation are absent from the map.
func (r *Repo) ExistingTranslations(ctx context.Context, repoIDs []int64) (map[int64]string, error) {
	out := make(map[int64]string)
	if len(repoIDs) == 0 {
		return out, nil
	}

	query, args, err := r.builder.
		Select("repo_id", "description_zh").
		From(table).
		Where(sq.Eq{"repo_id": repoIDs}).
		Where(sq.NotEq{"description_zh": nil}).
		Where(sq.NotEq{"description_zh": ""}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("skill.ExistingTranslations: build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("skill.ExistingTranslations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			repoID int64
			text   string
		)
		if err := rows.Scan(&repoID, &text); err != nil {
			return nil, fmt.Errorf("skill.ExistingTranslations: scan: %w", err)
		}
		out[repoID] = text
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("skill.ExistingTranslations: %w", err)
	}
	return out, nil
}

// UpsertMany inserts or updates skills by repo id using pgx.Batch.
// Call it inside TxManager.RunInTx to make the whole set atomic.
// Returns the number of rows written.
func (r *Repo) UpsertMany(ctx context.Context, skills []domain.Skill) (int, error) {
	if len(skills) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, s := range skills {
		fetchedAt := s.FetchedAt
		if fetchedAt.IsZero() {
			fetchedAt = time.Now().UTC()
		}

		query, args, err := r.builder.
			Insert(table).
			Columns(upsertColumns...).
			Values(
				s.RepoID, s.Name, s.FullName, s.Description, s.DescriptionZH,
				s.HTMLURL, s.Stars, s.Forks, s.Language, s.Topics,
				s.LastPushedAt, s.RepoCreatedAt, s.RepoUpdatedAt, fetchedAt,
			).
			Suffix(upsertConflict).
			ToSql()
		if err != nil {
			return 0, fmt.Errorf("skill.UpsertMany: build query for repo %d: %w", s.RepoID, err)
		}
		batch.Queue(query, args...)
	}

	n, err := r.sendBatchExec(ctx, batch)
	if err != nil {
		return n, fmt.Errorf("skill.UpsertMany: %w", err)
	}
	return n, nil
}

// ListEnrichmentCandidates returns up to limit skills whose content was never
// generated or is older than the last push. Never-enriched skills come first,
// then by stars descending, then by repo id.
func (r *Repo) ListEnrichmentCandidates(ctx context.Context, limit int) ([]domain.Skill, error) {
	if limit <= 0 {
		return []domain.Skill{}, nil
	}

	query, args, err := r.builder.
		Select(selectColumns...).
		From(table).
		Where(sq.Or{
			sq.Eq{"content_updated_at": nil},
			sq.And{
				sq.NotEq{"last_pushed_at": nil},
				sq.Expr("content_updated_at < last_pushed_at"),
			},
		}).
		OrderBy("content_updated_at IS NOT NULL", "stars DESC", "repo_id").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("skill.ListEnrichmentCandidates: build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("skill.ListEnrichmentCandidates: %w", err)
	}
	defer rows.Close()

	skills := make([]domain.Skill, 0, limit)
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, fmt.Errorf("skill.ListEnrichmentCandidates: scan: %w", err)
		}
		skills = append(skills, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("skill.ListEnrichmentCandidates: %w", err)
	}
	return skills, nil
}

// UpdateContent writes all ten generated fields and the content timestamp in
// a single statement.
func (r *Repo) UpdateContent(ctx context.Context, repoID int64, c domain.SkillContent, generatedAt time.Time) error {
	query, args, err := r.builder.
		Update(table).
		SetMap(map[string]any{
			"summary_en":         c.SummaryEN,
			"summary_zh":         c.SummaryZH,
			"key_features_en":    c.KeyFeaturesEN,
			"key_features_zh":    c.KeyFeaturesZH,
			"use_cases_en":       c.UseCasesEN,
			"use_cases_zh":       c.UseCasesZH,
			"seo_title_en":       c.SEOTitleEN,
			"seo_title_zh":       c.SEOTitleZH,
			"seo_description_en": c.SEODescriptionEN,
			"seo_description_zh": c.SEODescriptionZH,
			"content_updated_at": generatedAt,
			"updated_at":         generatedAt,
		}).
		Where(sq.Eq{"repo_id": repoID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("skill.UpdateContent: build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("skill.UpdateContent: %w", postgres.MapError(err, "skill", repoID))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("skill.UpdateContent: %w", postgres.MapError(pgx.ErrNoRows, "skill", repoID))
	}
	return nil
}

func (r *Repo) sendBatchExec(ctx context.Context, batch *pgx.Batch) (int, error) {
	results := postgres.QuerierFromCtx(ctx, r.pool).SendBatch(ctx, batch)
	defer results.Close()

	var written int
	for range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return written, fmt.Errorf("batch exec: %w", err)
		}
		written += int(tag.RowsAffected())
	}
	return written, nil
}

func scanSkill(row pgx.Row) (domain.Skill, error) {
	var s domain.Skill
	err := row.Scan(
		&s.ID, &s.RepoID, &s.Name, &s.FullName, &s.Description, &s.DescriptionZH,
		&s.HTMLURL, &s.Stars, &s.Forks, &s.Language, &s.Topics,
		&s.LastPushedAt, &s.RepoCreatedAt, &s.RepoUpdatedAt,
		&s.Content.SummaryEN, &s.Content.SummaryZH,
		&s.Content.KeyFeaturesEN, &s.Content.KeyFeaturesZH,
		&s.Content.UseCasesEN, &s.Content.UseCasesZH,
		&s.Content.SEOTitleEN, &s.Content.SEOTitleZH,
		&s.Content.SEODescriptionEN, &s.Content.SEODescriptionZH,
		&s.ContentUpdatedAt, &s.CreatedAt, &s.UpdatedAt, &s.FetchedAt,
	)
	return s, err
}
