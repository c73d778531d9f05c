package skillsync

import "github.com/heartmarshall/skillhub-backend/internal/domain"

// Batch is the result list of one strategy.
type Batch struct {
	Strategy string
	Items    []domain.Candidate
}

// Merge folds batches in the given order into one list keyed by repo id.
// A later occurrence replaces an earlier one wholesale; the output keeps the
// order in which each repo id was first seen.
func Merge(batches []Batch) []domain.Candidate {
	size := 0
	for _, b := range batches {
		size += len(b.Items)
	}

	index := make(map[int64]int, size)
	out := make([]domain.Candidate, 0, size)
	for _, b := range batches {
		for _, c := range b.Items {
			if i, ok := index[c.RepoID]; ok {
				out[i] = c
				continue
			}
			index[c.RepoID] = len(out)
			out = append(out, c)
		}
	}
	return out
}
