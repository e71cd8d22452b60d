package postservice

import "time"

// SamplePosts is the starter content served when no database is configured.
func SamplePosts() []Post {
	created := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)

	posts := []Post{
		{
			ID:       1,
			Title:    "The Art of Finding Meaning in the Cosmos",
			Excerpt:  "Exploring how ancient wisdom and modern science converge in our quest to understand the universe and our place within it...",
			Content:  "Full blog content goes here. You can write as much as you want...",
			Category: "Philosophy",
			Date:     NewDate(2024, time.March, 15),
		},
		{
			ID:       2,
			Title:    "Signals in the Noise: A Data Scientist's Journey",
			Excerpt:  "From financial markets to cosmic phenomena, the art of finding meaningful patterns in seemingly random data...",
			Content:  "Full blog content goes here...",
			Category: "Research",
			Date:     NewDate(2024, time.March, 8),
		},
		{
			ID:       3,
			Title:    "The Grey Areas of Financial Innovation",
			Excerpt:  "Navigating the complex intersection of traditional finance and emerging technologies. An analysis of regulatory frameworks...",
			Content:  "Full blog content goes here...",
			Category: "Finance",
			Date:     NewDate(2024, time.February, 28),
		},
		{
			ID:       4,
			Title:    "Contemplating Consciousness in the Digital Age",
			Excerpt:  "As artificial intelligence advances, we must grapple with fundamental questions about consciousness and awareness...",
			Content:  "Full blog content goes here...",
			Category: "Philosophy",
			Date:     NewDate(2024, time.February, 20),
		},
	}

	for i := range posts {
		posts[i].ReadTime = ReadTime(posts[i].Content)
		posts[i].Image = PlaceholderImage
		posts[i].CreatedAt = created
		posts[i].UpdatedAt = created
	}

	return posts
}
