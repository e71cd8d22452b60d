package postservice

import (
	"context"
	"slices"
	"time"
)

// NewMemoryStore returns a store holding copies of seed.
func NewMemoryStore(seed ...Post) *MemoryStore {
	s := &MemoryStore{
		posts: make([]Post, 0, len(seed)),
		now:   time.Now,
	}

	for _, p := range seed {
		s.posts = append(s.posts, p)
		s.lastID = max(s.lastID, p.ID)
	}
	sortPosts(s.posts)

	return s
}

func (s *MemoryStore) List(ctx context.Context) ([]Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.posts), nil
}

func (s *MemoryStore) Get(ctx context.Context, id int64) (*Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, ErrRecordNotFound
	}

	post := s.posts[i]
	return &post, nil
}

// Insert gives the post the next id. Ids come from a high-water mark, so the id of a
// deleted post is never handed out again.
func (s *MemoryStore) Insert(ctx context.Context, post *Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	now := s.now().UTC()

	post.ID = s.lastID
	post.CreatedAt = now
	post.UpdatedAt = now

	s.posts = insertSorted(s.posts, *post)

	return nil
}

func (s *MemoryStore) Update(ctx context.Context, id int64, patch PostPatch) (*Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, ErrRecordNotFound
	}

	post := s.posts[i]
	patch.apply(&post)

	now := s.now().UTC()
	if !now.After(post.UpdatedAt) {
		now = post.UpdatedAt.Add(time.Microsecond)
	}
	post.UpdatedAt = now

	// the date may have moved, so take the post out and put it back in order
	s.posts = slices.Delete(s.posts, i, i+1)
	s.posts = insertSorted(s.posts, post)

	return &post, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}

	s.posts = slices.Delete(s.posts, i, i+1)
	return true, nil
}

func (s *MemoryStore) indexOf(id int64) int {
	return slices.IndexFunc(s.posts, func(p Post) bool { return p.ID == id })
}

// comparePosts orders newest first: date descending, then id descending.
func comparePosts(a, b Post) int {
	if c := b.Date.Compare(a.Date); c != 0 {
		return c
	}

	switch {
	case a.ID > b.ID:
		return -1
	case a.ID < b.ID:
		return 1
	default:
		return 0
	}
}

func sortPosts(posts []Post) {
	slices.SortStableFunc(posts, comparePosts)
}

func insertSorted(posts []Post, post Post) []Post {
	i, _ := slices.BinarySearchFunc(posts, post, comparePosts)
	return slices.Insert(posts, i, post)
}
