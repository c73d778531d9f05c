// Package enricher generates bilingual page content for a skill with a
// chat-completion model and validates what comes back.
package enricher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/skillhub-backend/internal/domain"
	"github.com/heartmarshall/skillhub-backend/internal/provider"
)

var errNoObject = errors.New("reply contains no json object")

type completer interface {
	Complete(ctx context.Context, system, user string) provider.Outcome
}

// Generator asks the model for content and returns it only when the whole
// payload passes validation.
type Generator struct {
	llm completer
	log *slog.Logger
}

// NewGenerator creates a Generator.
func NewGenerator(llm completer, logger *slog.Logger) *Generator {
	return &Generator{
		llm: llm,
		log: logger.With("adapter", "enricher"),
	}
}

// Generate produces content for one skill. It never returns partial
// content: any transport, parse or validation problem yields a failed Result.
func (g *Generator) Generate(ctx context.Context, s domain.Skill) Result {
	payload, err := json.Marshal(NewInput(s))
	if err != nil {
		return Result{Failure: provider.FailureMalformed, Err: fmt.Errorf("enricher.Generate: marshal input: %w", err)}
	}

	out := g.llm.Complete(ctx, systemPrompt, string(payload))
	if !out.OK() {
		g.log.WarnContext(ctx, "generation request failed",
			slog.String("full_name", s.FullName),
			slog.String("reason", out.Reason()),
		)
		return Result{Failure: out.Failure, Err: out.Err}
	}

	obj, ok := extractObject(out.Text)
	if !ok {
		g.log.WarnContext(ctx, "generation returned non-json payload", slog.String("full_name", s.FullName))
		return Result{Failure: provider.FailureMalformed, Err: errNoObject}
	}

	content, err := Validate(obj)
	if err != nil {
		g.log.WarnContext(ctx, "generation returned invalid payload",
			slog.String("full_name", s.FullName),
			slog.String("error", err.Error()),
		)
		return Result{Failure: provider.FailureMalformed, Err: err}
	}

	return Result{Content: content}
}
