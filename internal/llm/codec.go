package llm

import (
	"encoding/json"
	"strings"
)

// StripCodeFence removes an optional markdown code-fence wrapper from a model
// response. Models frequently wrap JSON in ```json ... ``` despite being told
// not to; the payload inside the first fence is returned, otherwise the input
// is returned trimmed.
func StripCodeFence(s string) string {
	if idx := strings.Index(s, "```json"); idx >= 0 {
		rest := s[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	if idx := strings.Index(s, "```"); idx >= 0 {
		rest := s[idx+3:]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(s)
}

// UnmarshalResponse strips any code fence from a model response and parses the
// remainder as JSON into v. The raw response is left untouched; callers keep
// it for the fallback record when parsing fails.
func UnmarshalResponse(response string, v any) error {
	return json.Unmarshal([]byte(StripCodeFence(response)), v)
}
