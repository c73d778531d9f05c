package enricher

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/skillhub-backend/internal/domain"
)

const (
	minListItems = 3
	maxListItems = 6

	maxSummaryLen        = 800
	maxListItemLen       = 140
	maxSEOTitleLen       = 80
	maxSEODescriptionLen = 200
)

// Validate type-checks a generated payload and returns normalized content.
// Every one of the ten keys must be present with the right type; each list
// must keep at least three non-blank strings. The returned error wraps
// domain.ErrValidation and lists every offending field.
func Validate(obj gjson.Result) (domain.SkillContent, error) {
	v := &validator{obj: obj}

	c := domain.SkillContent{
		SummaryEN:        v.text(keySummaryEN, maxSummaryLen),
		SummaryZH:        v.text(keySummaryZH, maxSummaryLen),
		KeyFeaturesEN:    v.list(keyKeyFeaturesEN),
		KeyFeaturesZH:    v.list(keyKeyFeaturesZH),
		UseCasesEN:       v.list(keyUseCasesEN),
		UseCasesZH:       v.list(keyUseCasesZH),
		SEOTitleEN:       v.text(keySEOTitleEN, maxSEOTitleLen),
		SEOTitleZH:       v.text(keySEOTitleZH, maxSEOTitleLen),
		SEODescriptionEN: v.text(keySEODescriptionEN, maxSEODescriptionLen),
		SEODescriptionZH: v.text(keySEODescriptionZH, maxSEODescriptionLen),
	}

	if err := domain.NewValidationErrors(v.errs); err != nil {
		return domain.SkillContent{}, err
	}
	return c, nil
}

type validator struct {
	obj  gjson.Result
	errs []domain.FieldError
}

func (v *validator) fail(field, msg string) {
	v.errs = append(v.errs, domain.FieldError{Field: field, Message: msg})
}

func (v *validator) text(key string, maxLen int) string {
	r := v.obj.Get(key)
	if !r.Exists() {
		v.fail(key, "required")
		return ""
	}
	if r.Type != gjson.String {
		v.fail(key, "must be a string")
		return ""
	}
	return truncate(normalizeTerms(r.Str), maxLen)
}

func (v *validator) list(key string) []string {
	r := v.obj.Get(key)
	if !r.Exists() {
		v.fail(key, "required")
		return nil
	}
	if !r.IsArray() {
		v.fail(key, "must be an array of strings")
		return nil
	}

	items := make([]string, 0, maxListItems)
	for _, el := range r.Array() {
		if el.Type != gjson.String {
			continue
		}
		s := strings.TrimSpace(el.Str)
		if s == "" {
			continue
		}
		items = append(items, truncate(normalizeTerms(s), maxListItemLen))
	}

	if len(items) > maxListItems {
		items = items[:maxListItems]
	}
	if len(items) < minListItems {
		v.fail(key, fmt.Sprintf("needs at least %d items (got %d)", minListItems, len(items)))
		return nil
	}
	return items
}
