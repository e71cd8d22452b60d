package postservice

import "strings"

// PostView is a post laid out for its page.
type PostView struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	DisplayDate string `json:"display_date"`
	ReadTime    string `json:"read_time"`
	Image       string `json:"image"`
	Excerpt     string `json:"excerpt"`
	Body        string `json:"body"`
	// Paragraphs splits Body on blank lines. Single line breaks stay inside a paragraph.
	Paragraphs []string `json:"paragraphs"`
}

func Render(p *Post) *PostView {
	if p == nil {
		return nil
	}

	body := strings.ReplaceAll(p.Content, "\r\n", "\n")
	body = strings.ReplaceAll(body, "\r", "\n")

	return &PostView{
		ID:          p.ID,
		Title:       p.Title,
		Category:    p.Category,
		Date:        p.Date.String(),
		DisplayDate: p.Date.Display(),
		ReadTime:    p.ReadTime,
		Image:       p.Image,
		Excerpt:     p.Excerpt,
		Body:        body,
		Paragraphs:  paragraphs(body),
	}
}

func paragraphs(body string) []string {
	var out []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			out = append(out, strings.Join(current, "\n"))
			current = nil
		}
	}

	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	if out == nil {
		return []string{}
	}
	return out
}
