package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/skillhub-backend/internal/adapter/postgres"
	"github.com/heartmarshall/skillhub-backend/internal/adapter/postgres/testhelper"
)

const insertSkill = `INSERT INTO skills (repo_id, name, full_name, html_url) VALUES ($1, 'tx', 'acme/tx', 'https://github.com/acme/tx')`

// skillExists checks whether a skill row with the given repo id exists.
func skillExists(t *testing.T, pool *pgxpool.Pool, repoID int64) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(
		context.Background(),
		`SELECT EXISTS(SELECT 1 FROM skills WHERE repo_id = $1)`,
		repoID,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("skillExists query: %v", err)
	}
	return exists
}

func TestRunInTx_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	repoID := testhelper.NextRepoID()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if !postgres.InTx(ctx) {
			t.Error("expected InTx to be true inside RunInTx")
		}
		_, err := postgres.QuerierFromCtx(ctx, pool).Exec(ctx, insertSkill, repoID)
		return err
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !skillExists(t, pool, repoID) {
		t.Fatal("expected skill to exist after committed transaction")
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	repoID := testhelper.NextRepoID()
	sentinel := errors.New("business logic error")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if _, execErr := postgres.QuerierFromCtx(ctx, pool).Exec(ctx, insertSkill, repoID); execErr != nil {
			t.Fatalf("insert inside tx failed: %v", execErr)
		}
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}
	if skillExists(t, pool, repoID) {
		t.Fatal("expected skill NOT to exist after rolled-back transaction")
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	repoID := testhelper.NextRepoID()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic to be re-raised")
		}
		if r != "test panic" {
			t.Fatalf("expected panic value %q, got %v", "test panic", r)
		}
		if skillExists(t, pool, repoID) {
			t.Fatal("expected skill NOT to exist after panic-rolled-back transaction")
		}
	}()

	_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if _, err := postgres.QuerierFromCtx(ctx, pool).Exec(ctx, insertSkill, repoID); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		panic("test panic")
	})
}

func TestRunInTx_NotVisibleOutsideBeforeCommit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	repoID := testhelper.NextRepoID()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		if _, err := q.Exec(ctx, insertSkill, repoID); err != nil {
			return err
		}

		var inside bool
		if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM skills WHERE repo_id = $1)`, repoID).Scan(&inside); err != nil {
			return err
		}
		if !inside {
			t.Error("expected skill to be visible within the transaction")
		}
		if skillExists(t, pool, repoID) {
			t.Error("expected skill NOT to be visible outside before commit")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !skillExists(t, pool, repoID) {
		t.Fatal("expected skill to exist after committed transaction")
	}
}

func TestQuerierFromCtx_NoTxReturnsPool(t *testing.T) {
	pool := testhelper.SetupTestDB(t)

	if postgres.InTx(context.Background()) {
		t.Fatal("plain context should not carry a transaction")
	}
	if q := postgres.QuerierFromCtx(context.Background(), pool); q != postgres.Querier(pool) {
		t.Fatal("expected pool when no transaction is in context")
	}
}
