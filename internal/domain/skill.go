package domain

import (
	"strings"
	"time"
)

// TopicSeparator joins repository topics into the stored topics column.
const TopicSeparator = ","

// Skill is a repository tracked in the catalog, keyed by its GitHub repo id.
type Skill struct {
	ID            int64
	RepoID        int64
	Name          string
	FullName      string
	Description   *string
	DescriptionZH *string
	HTMLURL       string
	Stars         int
	Forks         int
	Language      *string
	Topics        string
	LastPushedAt  *time.Time
	RepoCreatedAt *time.Time
	RepoUpdatedAt *time.Time

	Content          SkillContent
	ContentUpdatedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	FetchedAt time.Time
}

// SkillContent is the generated, bilingual page content of a skill.
// It is written as a whole or not at all.
type SkillContent struct {
	SummaryEN        string
	SummaryZH        string
	KeyFeaturesEN    []string
	KeyFeaturesZH    []string
	UseCasesEN       []string
	UseCasesZH       []string
	SEOTitleEN       string
	SEOTitleZH       string
	SEODescriptionEN string
	SEODescriptionZH string
}

// Candidate is one raw search result before it is merged and stored.
type Candidate struct {
	RepoID      int64
	Name        string
	FullName    string
	Description *string
	HTMLURL     string
	Stars       int
	Forks       int
	Language    *string
	Topics      []string
	PushedAt    *time.Time
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
}

// SkillFromCandidate builds the stored form of a search result.
// DescriptionZH is left to the caller.
func SkillFromCandidate(c Candidate) Skill {
	return Skill{
		RepoID:        c.RepoID,
		Name:          c.Name,
		FullName:      c.FullName,
		Description:   c.Description,
		HTMLURL:       c.HTMLURL,
		Stars:         c.Stars,
		Forks:         c.Forks,
		Language:      c.Language,
		Topics:        strings.Join(c.Topics, TopicSeparator),
		LastPushedAt:  c.PushedAt,
		RepoCreatedAt: c.CreatedAt,
		RepoUpdatedAt: c.UpdatedAt,
	}
}

// HasDescription reports whether the skill carries a non-blank description.
func (s Skill) HasDescription() bool {
	return s.Description != nil && strings.TrimSpace(*s.Description) != ""
}

// TopicList splits the stored topics column back into topics.
func (s Skill) TopicList() []string {
	if s.Topics == "" {
		return []string{}
	}
	parts := strings.Split(s.Topics, TopicSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SearchSpec is one paginated search request with its caps.
type SearchSpec struct {
	Query      string
	Sort       string
	Order      string
	PerPage    int
	MaxPages   int
	MaxResults int
}

// Lease is a held distributed lock. Token identifies the owner.
type Lease struct {
	Key   string
	Token string
}
