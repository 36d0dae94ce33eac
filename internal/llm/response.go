package llm

import "strings"

// stripMarkdownFence removes a ```markdown (or ```md) fence that some models
// wrap around their whole answer. Other fences are left alone.
func stripMarkdownFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```markdown") && !strings.HasPrefix(trimmed, "```md") {
		return s
	}
	nl := strings.Index(trimmed, "\n")
	if nl < 0 {
		return s
	}
	inner := trimmed[nl+1:]
	if end := strings.LastIndex(inner, "```"); end >= 0 {
		inner = inner[:end]
	}
	return strings.TrimSpace(inner)
}
