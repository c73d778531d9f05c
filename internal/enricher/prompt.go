package enricher

// systemPrompt constrains the model to the ten content keys.
const systemPrompt = `You generate SEO-friendly, factual content for a GitHub repository page.
You MUST only use the provided metadata; do NOT invent features.
Keep the term "Claude Skill" unchanged (never translate it).
Return ONLY valid JSON with these keys:
- summary_en (string)
- summary_zh (string, Simplified Chinese)
- key_features_en (array of 3-6 short strings)
- key_features_zh (array of 3-6 short strings, Simplified Chinese)
- use_cases_en (array of 3-6 short strings)
- use_cases_zh (array of 3-6 short strings, Simplified Chinese)
- seo_title_en (string, <= ~60-70 chars)
- seo_title_zh (string, Simplified Chinese, <= ~60-70 chars)
- seo_description_en (string, <= ~160 chars)
- seo_description_zh (string, Simplified Chinese, <= ~160 chars)
If metadata is insufficient, write cautiously and avoid claims.`

// Payload keys.
const (
	keySummaryEN        = "summary_en"
	keySummaryZH        = "summary_zh"
	keyKeyFeaturesEN    = "key_features_en"
	keyKeyFeaturesZH    = "key_features_zh"
	keyUseCasesEN       = "use_cases_en"
	keyUseCasesZH       = "use_cases_zh"
	keySEOTitleEN       = "seo_title_en"
	keySEOTitleZH       = "seo_title_zh"
	keySEODescriptionEN = "seo_description_en"
	keySEODescriptionZH = "seo_description_zh"
)
