package postservice

import (
	"context"
	"strings"
	"time"

	"github.com/sushihentaime/folio/internal/common"
)

// NewPostService wraps store with validation and the derived fields every post carries.
func NewPostService(store PostStore) *PostService {
	return &PostService{store: store, now: time.Now}
}

// ListPosts returns all posts, newest first.
func (s *PostService) ListPosts(ctx context.Context) ([]Post, error) {
	return s.store.List(ctx)
}

// SearchPosts filters the full listing with q.
func (s *PostService) SearchPosts(ctx context.Context, q Query) ([]Post, error) {
	posts, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	return Filter(posts, q), nil
}

// GetPost returns ErrRecordNotFound when no post has the id.
func (s *PostService) GetPost(ctx context.Context, id int64) (*Post, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	return s.store.Get(ctx, id)
}

// CreatePost validates in, fills in the date, image and read time, and stores the post.
func (s *PostService) CreatePost(ctx context.Context, in *PostInput) (*Post, error) {
	v := common.NewValidator()
	validatePostInput(v, in)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	content := sanitizeContent(in.Content)

	post := &Post{
		Title:    strings.TrimSpace(in.Title),
		Excerpt:  strings.TrimSpace(in.Excerpt),
		Content:  content,
		Category: strings.TrimSpace(in.Category),
		ReadTime: ReadTime(content),
		Image:    in.Image,
	}

	if in.Date != nil {
		post.Date = *in.Date
	} else {
		post.Date = DateOf(s.now())
	}

	if post.Image == "" {
		post.Image = PlaceholderImage
	}

	err := s.store.Insert(ctx, post)
	if err != nil {
		return nil, err
	}

	return post, nil
}

// UpdatePost applies the non-nil fields of patch. The read time follows the content.
func (s *PostService) UpdatePost(ctx context.Context, id int64, patch *PostPatch) (*Post, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	v := common.NewValidator()
	validatePostPatch(v, patch)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	p := *patch
	p.Title = trimmed(p.Title)
	p.Excerpt = trimmed(p.Excerpt)
	p.Category = trimmed(p.Category)

	if p.Content != nil {
		content := sanitizeContent(*p.Content)
		readTime := ReadTime(content)
		p.Content = &content
		p.readTime = &readTime
	}

	if p.Image != nil && *p.Image == "" {
		placeholder := PlaceholderImage
		p.Image = &placeholder
	}

	return s.store.Update(ctx, id, p)
}

// DeletePost reports whether a post was removed.
func (s *PostService) DeletePost(ctx context.Context, id int64) (bool, error) {
	if id < 1 {
		return false, nil
	}

	return s.store.Delete(ctx, id)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
