package postservice

import "regexp"

var scriptTagRX = regexp.MustCompile(`(?is)<\s*script[^>]*>(.*?)<\s*/\s*script\s*>`)

// sanitizeContent drops inline script blocks. Post bodies are shown as pre-wrapped text, so
// nothing else needs escaping here.
func sanitizeContent(content string) string {
	return scriptTagRX.ReplaceAllString(content, "")
}
