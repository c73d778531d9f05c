package skillsync

import (
	"testing"

	"github.com/heartmarshall/skillhub-backend/internal/domain"
)

func cand(id int64, stars int) domain.Candidate {
	return domain.Candidate{RepoID: id, Name: "r", FullName: "o/r", Stars: stars}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	got := Merge([]Batch{
		{Strategy: StrategyPopular, Items: []domain.Candidate{cand(1, 10), cand(2, 20)}},
		{Strategy: StrategyNewest, Items: []domain.Candidate{cand(3, 1), cand(1, 11)}},
	})

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	wantIDs := []int64{1, 2, 3}
	for i, id := range wantIDs {
		if got[i].RepoID != id {
			t.Errorf("got[%d].RepoID = %d, want %d", i, got[i].RepoID, id)
		}
	}
	if got[0].Stars != 11 {
		t.Errorf("later batch must win: stars = %d, want 11", got[0].Stars)
	}
}

func TestMerge_DuplicateWithinBatch(t *testing.T) {
	t.Parallel()

	got := Merge([]Batch{{Items: []domain.Candidate{cand(5, 1), cand(5, 2)}}})
	if len(got) != 1 || got[0].Stars != 2 {
		t.Errorf("got %+v, want one item with stars 2", got)
	}
}

func TestMerge_Empty(t *testing.T) {
	t.Parallel()

	if got := Merge(nil); len(got) != 0 {
		t.Errorf("Merge(nil) = %v", got)
	}
	if got := Merge([]Batch{{}, {}}); len(got) != 0 {
		t.Errorf("Merge(empty batches) = %v", got)
	}
}
