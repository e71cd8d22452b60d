package postservice

import (
	"fmt"
	"strings"
)

const wordsPerMinute = 200

// ReadTime estimates reading time from the word count of content, rounded up, at least one
// minute.
func ReadTime(content string) string {
	words := len(strings.Fields(content))

	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}

	return fmt.Sprintf("%d min read", minutes)
}
