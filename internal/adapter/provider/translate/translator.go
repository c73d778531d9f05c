// Package translate turns English repository descriptions into Simplified
// Chinese through a chat-completion model.
package translate

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/heartmarshall/skillhub-backend/internal/config"
	"github.com/heartmarshall/skillhub-backend/internal/provider"
)

// systemPrompt keeps the product term untranslated.
const systemPrompt = "You are a professional translator. Translate the user's text into Simplified Chinese. " +
	"Keep the term \"Claude Skill\" exactly as written. " +
	"Reply with the translation only, without quotes, notes or explanations."

var errNoAPIKey = errors.New("llm api key is not configured")

// completer is the chat-completion call the translator needs.
type completer interface {
	Complete(ctx context.Context, system, user string) provider.Outcome
}

// Translator translates descriptions; it never returns an error; every
// problem is reported through the Outcome.
type Translator struct {
	enabled bool
	hasKey  bool
	llm     completer
	log     *slog.Logger
}

// NewTranslator creates a Translator. llm may be nil when translation is
// disabled or no key is configured.
func NewTranslator(cfg config.TranslationConfig, llmCfg config.LLMConfig, llm completer, logger *slog.Logger) *Translator {
	return &Translator{
		enabled: cfg.Enabled,
		hasKey:  llmCfg.HasKey(),
		llm:     llm,
		log:     logger.With("adapter", "translate"),
	}
}

// Translate returns the trimmed Chinese text, or a failed Outcome when the
// step is disabled, the input is blank, or the model gave nothing usable.
func (t *Translator) Translate(ctx context.Context, text string) provider.Outcome {
	if !t.enabled {
		return provider.Failed(provider.FailureDisabled, nil)
	}
	if !t.hasKey || t.llm == nil {
		return provider.Failed(provider.FailureDisabled, errNoAPIKey)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return provider.Failed(provider.FailureEmpty, nil)
	}

	out := t.llm.Complete(ctx, systemPrompt, text)
	if !out.OK() {
		t.log.WarnContext(ctx, "translation failed", slog.String("reason", out.Reason()))
		return out
	}

	translated := strings.TrimSpace(out.Text)
	if translated == "" {
		return provider.Failed(provider.FailureEmpty, nil)
	}
	return provider.Success(translated)
}
