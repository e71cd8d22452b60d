package postservice

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var postRowColumns = []string{"id", "title", "excerpt", "content", "category", "date", "read_time", "image", "created_at", "updated_at"}

func setupMockModel(t *testing.T) (*PostModel, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	return NewPostModel(db), mock
}

func TestPostModel_List(t *testing.T) {
	m, mock := setupMockModel(t)
	created := time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(postRowColumns).
		AddRow(2, "March", "e", "c", "Research", time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC), "1 min read", nil, created, created).
		AddRow(1, "January", "e", "c", "Philosophy", time.Date(2025, time.January, 29, 0, 0, 0, 0, time.UTC), "1 min read", "https://cdn.example.com/a.png", created, created)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY date DESC, id DESC")).WillReturnRows(rows)

	posts, err := m.List(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, int64(2), posts[0].ID)
	assert.Equal(t, NewDate(2025, time.March, 15), posts[0].Date)
	assert.Equal(t, PlaceholderImage, posts[0].Image)
	assert.Equal(t, "https://cdn.example.com/a.png", posts[1].Image)
}

func TestPostModel_ListEmpty(t *testing.T) {
	m, mock := setupMockModel(t)

	mock.ExpectQuery("FROM posts").WillReturnRows(sqlmock.NewRows(postRowColumns))

	posts, err := m.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestPostModel_ListError(t *testing.T) {
	m, mock := setupMockModel(t)
	dbErr := errors.New("network is unreachable")

	mock.ExpectQuery("FROM posts").WillReturnError(dbErr)

	_, err := m.List(context.Background())
	assert.ErrorIs(t, err, dbErr)
}

func TestPostModel_Get(t *testing.T) {
	testCases := []struct {
		name        string
		setup       func(mock sqlmock.Sqlmock)
		expectedErr error
	}{
		{
			name: "found",
			setup: func(mock sqlmock.Sqlmock) {
				now := time.Now()
				rows := sqlmock.NewRows(postRowColumns).
					AddRow(1, "t", "e", "c", "Research", time.Date(2025, time.January, 29, 0, 0, 0, 0, time.UTC), "1 min read", PlaceholderImage, now, now)
				mock.ExpectQuery("WHERE id = \\$1").WithArgs(int64(1)).WillReturnRows(rows)
			},
		},
		{
			name: "not found",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("WHERE id = \\$1").WithArgs(int64(1)).WillReturnRows(sqlmock.NewRows(postRowColumns))
			},
			expectedErr: ErrRecordNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, mock := setupMockModel(t)
			tc.setup(mock)

			post, err := m.Get(context.Background(), 1)
			if tc.expectedErr != nil {
				assert.Nil(t, post)
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(1), post.ID)
		})
	}
}

func TestPostModel_Insert(t *testing.T) {
	m, mock := setupMockModel(t)
	now := time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)

	post := &Post{
		Title:    "t",
		Excerpt:  "e",
		Content:  "c",
		Category: "Research",
		Date:     NewDate(2025, time.March, 15),
		ReadTime: "1 min read",
		Image:    PlaceholderImage,
	}

	mock.ExpectQuery("INSERT INTO posts").
		WithArgs("t", "e", "c", "Research", "2025-03-15", "1 min read", PlaceholderImage).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(9, now, now))

	err := m.Insert(context.Background(), post)
	require.NoError(t, err)

	assert.Equal(t, int64(9), post.ID)
	assert.Equal(t, now, post.CreatedAt)
	assert.Equal(t, now, post.UpdatedAt)
}

func TestPostModel_Update(t *testing.T) {
	m, mock := setupMockModel(t)
	created := time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	title := "X"
	rows := sqlmock.NewRows(postRowColumns).
		AddRow(1, "X", "e", "c", "Research", time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC), "1 min read", PlaceholderImage, created, updated)

	mock.ExpectQuery("UPDATE posts").
		WithArgs(int64(1), "X", nil, nil, nil, nil, nil, nil).
		WillReturnRows(rows)

	post, err := m.Update(context.Background(), 1, PostPatch{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, "X", post.Title)
	assert.Equal(t, created, post.CreatedAt)
	assert.Equal(t, updated, post.UpdatedAt)
}

func TestPostModel_UpdateNotFound(t *testing.T) {
	m, mock := setupMockModel(t)

	mock.ExpectQuery("UPDATE posts").WillReturnRows(sqlmock.NewRows(postRowColumns))

	title := "X"
	_, err := m.Update(context.Background(), 1, PostPatch{Title: &title})
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestPostModel_Delete(t *testing.T) {
	testCases := []struct {
		name        string
		result      func(mock sqlmock.Sqlmock)
		wantRemoved bool
		wantErr     bool
	}{
		{
			name: "removed",
			result: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE FROM posts").WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantRemoved: true,
		},
		{
			name: "unknown id",
			result: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE FROM posts").WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 0))
			},
		},
		{
			name: "database error",
			result: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE FROM posts").WithArgs(int64(3)).WillReturnError(errors.New("timeout"))
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, mock := setupMockModel(t)
			tc.result(mock)

			removed, err := m.Delete(context.Background(), 3)
			assert.Equal(t, tc.wantErr, err != nil)
			assert.Equal(t, tc.wantRemoved, removed)
		})
	}
}
