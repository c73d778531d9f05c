package enricher

import (
	"strings"

	"github.com/tidwall/gjson"
)

// extractObject returns the JSON object in a model reply. The whole reply
// is tried first, then the span between the first '{' and the last '}'.
func extractObject(text string) (gjson.Result, bool) {
	text = strings.TrimSpace(text)
	if obj, ok := parseObject(text); ok {
		return obj, true
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return gjson.Result{}, false
	}
	return parseObject(text[start : end+1])
}

func parseObject(s string) (gjson.Result, bool) {
	if !gjson.Valid(s) {
		return gjson.Result{}, false
	}
	res := gjson.Parse(s)
	if !res.IsObject() {
		return gjson.Result{}, false
	}
	return res, true
}
