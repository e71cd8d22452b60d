package postservice

import (
	"context"
	"database/sql"
	"sync"
	"time"
)

// PlaceholderImage is stored when a post is saved without a cover image.
const PlaceholderImage = "/placeholder.svg?height=250&width=400"

type Post struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Date     Date   `json:"date"`
	// ReadTime is derived from Content, e.g. "3 min read".
	ReadTime  string    `json:"read_time"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostInput carries the author-supplied fields of a new post.
type PostInput struct {
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Date     *Date  `json:"date"`
	Image    string `json:"image"`
}

// PostPatch holds a partial update. Nil fields are left untouched.
type PostPatch struct {
	Title    *string `json:"title"`
	Excerpt  *string `json:"excerpt"`
	Content  *string `json:"content"`
	Category *string `json:"category"`
	Date     *Date   `json:"date"`
	Image    *string `json:"image"`

	readTime *string
}

func (p *PostPatch) apply(post *Post) {
	if p.Title != nil {
		post.Title = *p.Title
	}
	if p.Excerpt != nil {
		post.Excerpt = *p.Excerpt
	}
	if p.Content != nil {
		post.Content = *p.Content
	}
	if p.Category != nil {
		post.Category = *p.Category
	}
	if p.Date != nil {
		post.Date = *p.Date
	}
	if p.Image != nil {
		post.Image = *p.Image
	}
	if p.readTime != nil {
		post.ReadTime = *p.readTime
	}
}

// PostStore persists posts. Implementations return ErrRecordNotFound from Get and Update
// when no post has the given id, and must leave their state unchanged on any other error.
type PostStore interface {
	List(ctx context.Context) ([]Post, error)
	Get(ctx context.Context, id int64) (*Post, error)
	// Insert assigns post.ID, CreatedAt and UpdatedAt.
	Insert(ctx context.Context, post *Post) error
	Update(ctx context.Context, id int64, patch PostPatch) (*Post, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type MemoryStore struct {
	mu     sync.RWMutex
	posts  []Post
	lastID int64
	now    func() time.Time
}

type PostModel struct {
	db *sql.DB
}

type PostService struct {
	store PostStore
	now   func() time.Time
}
