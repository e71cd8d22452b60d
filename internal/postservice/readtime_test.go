package postservice

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadTime(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		want    string
	}{
		{name: "empty", content: "", want: "1 min read"},
		{name: "one word", content: "hello", want: "1 min read"},
		{name: "exactly 200", content: strings.Repeat("w ", 200), want: "1 min read"},
		{name: "201 words", content: strings.Repeat("w ", 201), want: "2 min read"},
		{name: "newlines and tabs", content: strings.Repeat("w\n\tw ", 300), want: "3 min read"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ReadTime(tc.content))
		})
	}
}
