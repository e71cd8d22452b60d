package postservice

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/folio/internal/common"
)

var errStoreDown = errors.New("connection refused")

// failingStore fails every call the way an unreachable database would.
type failingStore struct{}

func (failingStore) List(ctx context.Context) ([]Post, error) { return nil, errStoreDown }
func (failingStore) Get(ctx context.Context, id int64) (*Post, error) {
	return nil, errStoreDown
}
func (failingStore) Insert(ctx context.Context, post *Post) error { return errStoreDown }
func (failingStore) Update(ctx context.Context, id int64, patch PostPatch) (*Post, error) {
	return nil, errStoreDown
}
func (failingStore) Delete(ctx context.Context, id int64) (bool, error) { return false, errStoreDown }

func setupTestService(t *testing.T, seed ...Post) (*PostService, *MemoryStore) {
	t.Helper()

	store := NewMemoryStore(seed...)
	return NewPostService(store), store
}

func validInput() *PostInput {
	date := NewDate(2025, time.March, 15)
	return &PostInput{
		Title:    "Signals in the Noise",
		Excerpt:  "Patterns in seemingly random data.",
		Content:  "Some content here.",
		Category: "Research",
		Date:     &date,
	}
}

func TestCreatePost(t *testing.T) {
	testCases := []struct {
		name        string
		input       func() *PostInput
		expectedErr error
	}{
		{
			name:  "valid post",
			input: validInput,
		},
		{
			name: "empty title",
			input: func() *PostInput {
				in := validInput()
				in.Title = "  "
				return in
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"title": "must be provided"}},
		},
		{
			name: "empty content",
			input: func() *PostInput {
				in := validInput()
				in.Content = ""
				return in
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"content": "must be provided"}},
		},
		{
			name: "missing category",
			input: func() *PostInput {
				in := validInput()
				in.Category = ""
				return in
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"category": "must be provided"}},
		},
		{
			name: "filter sentinel as category",
			input: func() *PostInput {
				in := validInput()
				in.Category = AllCategories
				return in
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"category": "is reserved for filtering"}},
		},
		{
			name: "bad image",
			input: func() *PostInput {
				in := validInput()
				in.Image = "javascript:alert(1)"
				return in
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"image": "must be a site path, an http(s) URL or a data URI"}},
		},
		{
			name: "title too long",
			input: func() *PostInput {
				in := validInput()
				in.Title = strings.Repeat("a", 201)
				return in
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"title": "must not be more than 200 characters long"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, store := setupTestService(t)

			post, err := s.CreatePost(context.Background(), tc.input())
			assert.Equal(t, tc.expectedErr, err)

			posts, listErr := store.List(context.Background())
			require.NoError(t, listErr)

			if tc.expectedErr != nil {
				assert.Nil(t, post)
				assert.Empty(t, posts, "rejected input must not reach the store")
				return
			}

			assert.Len(t, posts, 1)
			assert.Equal(t, int64(1), post.ID)
		})
	}
}

func TestCreateThenGet(t *testing.T) {
	ctx := context.Background()
	s, _ := setupTestService(t, SamplePosts()...)

	in := validInput()
	in.Content = strings.Repeat("word ", 401)

	created, err := s.CreatePost(ctx, in)
	require.NoError(t, err)

	got, err := s.GetPost(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(5), got.ID)
	assert.Equal(t, in.Title, got.Title)
	assert.Equal(t, in.Excerpt, got.Excerpt)
	assert.Equal(t, in.Content, got.Content)
	assert.Equal(t, in.Category, got.Category)
	assert.Equal(t, *in.Date, got.Date)
	assert.Equal(t, "3 min read", got.ReadTime)
	assert.Equal(t, PlaceholderImage, got.Image)
	assert.Equal(t, *created, *got)
}

func TestCreatePostDefaultsDateToToday(t *testing.T) {
	s, _ := setupTestService(t)
	s.now = fixedClock(time.Date(2025, time.March, 15, 23, 30, 0, 0, time.UTC))

	in := validInput()
	in.Date = nil

	post, err := s.CreatePost(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, NewDate(2025, time.March, 15), post.Date)
}

func TestNewestPostListedFirst(t *testing.T) {
	ctx := context.Background()
	s, _ := setupTestService(t, Post{ID: 1, Title: "January", Date: NewDate(2025, time.January, 29)})

	created, err := s.CreatePost(ctx, validInput())
	require.NoError(t, err)

	posts, err := s.ListPosts(ctx)
	require.NoError(t, err)

	require.Len(t, posts, 2)
	assert.Equal(t, created.ID, posts[0].ID)
	assert.Equal(t, "2025-03-15", posts[0].Date.String())
}

func TestUpdatePost(t *testing.T) {
	ctx := context.Background()
	s, store := setupTestService(t)
	store.now = fixedClock(time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC))

	created, err := s.CreatePost(ctx, validInput())
	require.NoError(t, err)

	store.now = fixedClock(time.Date(2025, time.March, 16, 10, 0, 0, 0, time.UTC))

	updated, err := s.UpdatePost(ctx, created.ID, &PostPatch{Title: strptr("X")})
	require.NoError(t, err)

	got, err := s.GetPost(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "X", got.Title)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)
	assert.True(t, got.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, created.ReadTime, got.ReadTime)
	assert.Equal(t, *updated, *got)
}

func TestUpdatePostRecomputesReadTime(t *testing.T) {
	ctx := context.Background()
	s, _ := setupTestService(t)

	created, err := s.CreatePost(ctx, validInput())
	require.NoError(t, err)
	require.Equal(t, "1 min read", created.ReadTime)

	updated, err := s.UpdatePost(ctx, created.ID, &PostPatch{Content: strptr(strings.Repeat("word ", 1000))})
	require.NoError(t, err)
	assert.Equal(t, "5 min read", updated.ReadTime)
}

func TestUpdatePostErrors(t *testing.T) {
	ctx := context.Background()
	s, _ := setupTestService(t, SamplePosts()...)

	_, err := s.UpdatePost(ctx, 99, &PostPatch{Title: strptr("X")})
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = s.UpdatePost(ctx, 0, &PostPatch{Title: strptr("X")})
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = s.UpdatePost(ctx, 1, &PostPatch{Title: strptr("")})
	assert.Equal(t, common.ValidationError{Errors: map[string]string{"title": "must be provided"}}, err)

	got, err := s.GetPost(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "The Art of Finding Meaning in the Cosmos", got.Title)
}

func TestDeletePost(t *testing.T) {
	ctx := context.Background()
	s, _ := setupTestService(t, SamplePosts()...)

	removed, err := s.DeletePost(ctx, 2)
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = s.GetPost(ctx, 2)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	removed, err = s.DeletePost(ctx, 2)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestStoreFaultsAreReturned(t *testing.T) {
	ctx := context.Background()
	s := NewPostService(failingStore{})

	_, err := s.ListPosts(ctx)
	assert.ErrorIs(t, err, errStoreDown)

	_, err = s.SearchPosts(ctx, Query{Search: "x"})
	assert.ErrorIs(t, err, errStoreDown)

	_, err = s.GetPost(ctx, 1)
	assert.ErrorIs(t, err, errStoreDown)
	assert.NotErrorIs(t, err, ErrRecordNotFound)

	_, err = s.CreatePost(ctx, validInput())
	assert.ErrorIs(t, err, errStoreDown)

	_, err = s.UpdatePost(ctx, 1, &PostPatch{Title: strptr("X")})
	assert.ErrorIs(t, err, errStoreDown)

	_, err = s.DeletePost(ctx, 1)
	assert.ErrorIs(t, err, errStoreDown)
}

func TestSearchPosts(t *testing.T) {
	s, _ := setupTestService(t, SamplePosts()...)

	posts, err := s.SearchPosts(context.Background(), Query{Search: "signals", Category: AllCategories})
	require.NoError(t, err)

	require.Len(t, posts, 1)
	assert.Contains(t, posts[0].Title, "Signals in the Noise")
}
