package skill_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/skillhub-backend/internal/adapter/postgres"
	"github.com/heartmarshall/skillhub-backend/internal/adapter/postgres/skill"
	"github.com/heartmarshall/skillhub-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/skillhub-backend/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*skill.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return skill.New(pool), pool
}

func ptr[T any](v T) *T { return &v }

func buildSkill(repoID int64, stars int) domain.Skill {
	pushed := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	return domain.Skill{
		RepoID:       repoID,
		Name:         "pdf-skill",
		FullName:     "acme/pdf-skill",
		Description:  ptr("Reads PDFs"),
		HTMLURL:      "https://github.com/acme/pdf-skill",
		Stars:        stars,
		Forks:        3,
		Language:     ptr("Python"),
		Topics:       "claude,pdf",
		LastPushedAt: &pushed,
		FetchedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

func countByRepoID(t *testing.T, pool *pgxpool.Pool, repoID int64) int {
	t.Helper()
	var n int
	if err := pool.QueryRow(context.Background(), `SELECT count(*) FROM skills WHERE repo_id = $1`, repoID).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func validContent() domain.SkillContent {
	return domain.SkillContent{
		SummaryEN:        "Summary",
		SummaryZH:        "摘要",
		KeyFeaturesEN:    []string{"a", "b", "c"},
		KeyFeaturesZH:    []string{"甲", "乙", "丙"},
		UseCasesEN:       []string{"x", "y", "z", "w"},
		UseCasesZH:       []string{"一", "二", "三"},
		SEOTitleEN:       "Title",
		SEOTitleZH:       "标题",
		SEODescriptionEN: "Description",
		SEODescriptionZH: "描述",
	}
}

func TestRepo_UpsertMany_InsertThenGet(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	in := buildSkill(testhelper.NextRepoID(), 42)
	n, err := repo.UpsertMany(ctx, []domain.Skill{in})
	if err != nil {
		t.Fatalf("UpsertMany: %v", err)
	}
	if n != 1 {
		t.Fatalf("UpsertMany wrote %d rows, want 1", n)
	}

	got, err := repo.GetByRepoID(ctx, in.RepoID)
	if err != nil {
		t.Fatalf("GetByRepoID: %v", err)
	}
	if got.FullName != in.FullName || got.Stars != 42 || got.Forks != 3 || got.Topics != "claude,pdf" {
		t.Errorf("unexpected skill: %+v", got)
	}
	if got.Language == nil || *got.Language != "Python" {
		t.Errorf("language = %v, want Python", got.Language)
	}
	if got.LastPushedAt == nil || !got.LastPushedAt.Equal(*in.LastPushedAt) {
		t.Errorf("last_pushed_at = %v, want %v", got.LastPushedAt, in.LastPushedAt)
	}
	if got.RepoCreatedAt != nil {
		t.Errorf("repo_created_at = %v, want nil", got.RepoCreatedAt)
	}
	if got.ContentUpdatedAt != nil || got.Content.SummaryEN != "" || got.Content.KeyFeaturesEN != nil {
		t.Errorf("new skill should have no generated content: %+v", got.Content)
	}
}

func TestRepo_UpsertMany_Idempotent(t *testing.T) {
	repo, pool := newRepo(t)
	ctx := context.Background()

	in := buildSkill(testhelper.NextRepoID(), 10)
	for range 2 {
		if _, err := repo.UpsertMany(ctx, []domain.Skill{in}); err != nil {
			t.Fatalf("UpsertMany: %v", err)
		}
	}

	if n := countByRepoID(t, pool, in.RepoID); n != 1 {
		t.Fatalf("rows for repo = %d, want 1", n)
	}

	in.Stars = 99
	in.Description = nil
	if _, err := repo.UpsertMany(ctx, []domain.Skill{in}); err != nil {
		t.Fatalf("UpsertMany: %v", err)
	}
	got, err := repo.GetByRepoID(ctx, in.RepoID)
	if err != nil {
		t.Fatalf("GetByRepoID: %v", err)
	}
	if got.Stars != 99 {
		t.Errorf("stars = %d, want 99", got.Stars)
	}
	if got.Description != nil {
		t.Errorf("description = %v, want nil after overwrite", *got.Description)
	}
}

func TestRepo_UpsertMany_KeepsStoredTranslation(t *testing.T) {
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedSkill(t, pool, testhelper.WithDescriptionZH("已有翻译"))

	in := buildSkill(seeded.RepoID, 1)
	in.DescriptionZH = ptr("新的翻译")
	if _, err := repo.UpsertMany(ctx, []domain.Skill{in}); err != nil {
		t.Fatalf("UpsertMany: %v", err)
	}

	got, err := repo.GetByRepoID(ctx, seeded.RepoID)
	if err != nil {
		t.Fatalf("GetByRepoID: %v", err)
	}
	if got.DescriptionZH == nil || *got.DescriptionZH != "已有翻译" {
		t.Errorf("description_zh = %v, want stored translation kept", got.DescriptionZH)
	}
}

func TestRepo_UpsertMany_FillsEmptyTranslation(t *testing.T) {
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedSkill(t, pool, testhelper.WithDescriptionZH(""))

	in := buildSkill(seeded.RepoID, 1)
	in.DescriptionZH = ptr("翻译")
	if _, err := repo.UpsertMany(ctx, []domain.Skill{in}); err != nil {
		t.Fatalf("UpsertMany: %v", err)
	}

	got, err := repo.GetByRepoID(ctx, seeded.RepoID)
	if err != nil {
		t.Fatalf("GetByRepoID: %v", err)
	}
	if got.DescriptionZH == nil || *got.DescriptionZH != "翻译" {
		t.Errorf("description_zh = %v, want %q", got.DescriptionZH, "翻译")
	}
}

func TestRepo_UpsertMany_RollbackLeavesNothing(t *testing.T) {
	repo, pool := newRepo(t)
	tm := postgres.NewTxManager(pool)
	ctx := context.Background()

	first := buildSkill(testhelper.NextRepoID(), 1)
	second := buildSkill(testhelper.NextRepoID(), 2)
	second.Stars = -1 // violates skills_stars_check

	err := tm.RunInTx(ctx, func(ctx context.Context) error {
		_, err := repo.UpsertMany(ctx, []domain.Skill{first, second})
		return err
	})
	if err == nil {
		t.Fatal("expected error from check violation")
	}

	if n := countByRepoID(t, pool, first.RepoID); n != 0 {
		t.Fatalf("rows for first repo = %d, want 0 after rollback", n)
	}
}

func TestRepo_ExistingTranslations(t *testing.T) {
	repo, pool := newRepo(t)
	ctx := context.Background()

	translated := testhelper.SeedSkill(t, pool, testhelper.WithDescriptionZH("中文"))
	empty := testhelper.SeedSkill(t, pool, testhelper.WithDescriptionZH(""))
	missing := testhelper.SeedSkill(t, pool)

	got, err := repo.ExistingTranslations(ctx, []int64{translated.RepoID, empty.RepoID, missing.RepoID, testhelper.NextRepoID()})
	if err != nil {
		t.Fatalf("ExistingTranslations: %v", err)
	}

	want := map[int64]string{translated.RepoID: "中文"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExistingTranslations = %v, want %v", got, want)
	}
}

func TestRepo_ExistingTranslations_NoIDs(t *testing.T) {
	repo, _ := newRepo(t)

	got, err := repo.ExistingTranslations(context.Background(), nil)
	if err != nil {
		t.Fatalf("ExistingTranslations: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty map, got %v", got)
	}
}

func TestRepo_GetByRepoID_NotFound(t *testing.T) {
	repo, _ := newRepo(t)

	_, err := repo.GetByRepoID(context.Background(), testhelper.NextRepoID())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_ListEnrichmentCandidates_OrderAndFilter(t *testing.T) {
	repo, pool := newRepo(t)
	testhelper.TruncateSkills(t, pool)
	ctx := context.Background()

	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(48 * time.Hour)

	neverLow := testhelper.SeedSkill(t, pool, testhelper.WithStars(5))
	neverHigh := testhelper.SeedSkill(t, pool, testhelper.WithStars(50))
	stale := testhelper.SeedSkill(t, pool, testhelper.WithStars(100),
		testhelper.WithContentUpdatedAt(older), testhelper.WithPushedAt(newer))
	testhelper.SeedSkill(t, pool, testhelper.WithStars(1000),
		testhelper.WithContentUpdatedAt(newer), testhelper.WithPushedAt(older))
	testhelper.SeedSkill(t, pool, testhelper.WithStars(2000),
		testhelper.WithContentUpdatedAt(older))

	got, err := repo.ListEnrichmentCandidates(ctx, 10)
	if err != nil {
		t.Fatalf("ListEnrichmentCandidates: %v", err)
	}

	wantOrder := []int64{neverHigh.RepoID, neverLow.RepoID, stale.RepoID}
	if len(got) != len(wantOrder) {
		t.Fatalf("got %d candidates, want %d", len(got), len(wantOrder))
	}
	for i, id := range wantOrder {
		if got[i].RepoID != id {
			t.Errorf("candidate[%d] = %d, want %d", i, got[i].RepoID, id)
		}
	}

	limited, err := repo.ListEnrichmentCandidates(ctx, 2)
	if err != nil {
		t.Fatalf("ListEnrichmentCandidates: %v", err)
	}
	if len(limited) != 2 || limited[0].RepoID != neverHigh.RepoID || limited[1].RepoID != neverLow.RepoID {
		t.Errorf("limited candidates = %+v", limited)
	}
}

func TestRepo_ListEnrichmentCandidates_TiesByRepoID(t *testing.T) {
	repo, pool := newRepo(t)
	testhelper.TruncateSkills(t, pool)

	a := testhelper.SeedSkill(t, pool, testhelper.WithStars(7))
	b := testhelper.SeedSkill(t, pool, testhelper.WithStars(7))

	got, err := repo.ListEnrichmentCandidates(context.Background(), 5)
	if err != nil {
		t.Fatalf("ListEnrichmentCandidates: %v", err)
	}
	if len(got) != 2 || got[0].RepoID != a.RepoID || got[1].RepoID != b.RepoID {
		t.Errorf("expected repo id order %d, %d; got %+v", a.RepoID, b.RepoID, got)
	}
}

func TestRepo_UpdateContent(t *testing.T) {
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedSkill(t, pool)
	at := time.Now().UTC().Truncate(time.Microsecond)
	content := validContent()

	if err := repo.UpdateContent(ctx, seeded.RepoID, content, at); err != nil {
		t.Fatalf("UpdateContent: %v", err)
	}

	got, err := repo.GetByRepoID(ctx, seeded.RepoID)
	if err != nil {
		t.Fatalf("GetByRepoID: %v", err)
	}
	if !reflect.DeepEqual(got.Content, content) {
		t.Errorf("content = %+v, want %+v", got.Content, content)
	}
	if got.ContentUpdatedAt == nil || !got.ContentUpdatedAt.Equal(at) {
		t.Errorf("content_updated_at = %v, want %v", got.ContentUpdatedAt, at)
	}

	pending, err := repo.ListEnrichmentCandidates(ctx, 100)
	if err != nil {
		t.Fatalf("ListEnrichmentCandidates: %v", err)
	}
	for _, s := range pending {
		if s.RepoID == seeded.RepoID {
			t.Error("enriched skill should no longer be a candidate")
		}
	}
}

func TestRepo_UpdateContent_NotFound(t *testing.T) {
	repo, _ := newRepo(t)

	err := repo.UpdateContent(context.Background(), testhelper.NextRepoID(), validContent(), time.Now())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
