package enricher

import (
	"time"

	"github.com/heartmarshall/skillhub-backend/internal/domain"
	"github.com/heartmarshall/skillhub-backend/internal/provider"
)

// Input is the repository metadata sent to the model as the user message.
// The model must not claim anything it cannot derive from these fields.
type Input struct {
	FullName      string     `json:"full_name"`
	Description   string     `json:"description"`
	DescriptionZH string     `json:"description_zh"`
	Language      string     `json:"language"`
	Topics        []string   `json:"topics"`
	Stars         int        `json:"stars"`
	Forks         int        `json:"forks"`
	HTMLURL       string     `json:"html_url"`
	LastPushedAt  *time.Time `json:"last_pushed_at"`
}

// NewInput builds the payload for a stored skill. Missing text fields are
// sent as empty strings and topics as an empty list.
func NewInput(s domain.Skill) Input {
	in := Input{
		FullName:     s.FullName,
		Topics:       s.TopicList(),
		Stars:        s.Stars,
		Forks:        s.Forks,
		HTMLURL:      s.HTMLURL,
		LastPushedAt: s.LastPushedAt,
	}
	if s.Description != nil {
		in.Description = *s.Description
	}
	if s.DescriptionZH != nil {
		in.DescriptionZH = *s.DescriptionZH
	}
	if s.Language != nil {
		in.Language = *s.Language
	}
	return in
}

// Result is the outcome of generating content for one skill.
type Result struct {
	Content domain.SkillContent
	Failure provider.Failure
	Err     error
}

// OK reports whether Content holds a fully validated payload.
func (r Result) OK() bool {
	return r.Failure == provider.FailureNone
}
