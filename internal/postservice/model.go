package postservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound = errors.New("record not found")
)

func NewPostModel(db *sql.DB) *PostModel {
	return &PostModel{db: db}
}

const postColumns = `id, title, excerpt, content, category, date, read_time, image, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*Post, error) {
	var (
		post  Post
		image sql.NullString
	)

	err := row.Scan(&post.ID, &post.Title, &post.Excerpt, &post.Content, &post.Category, &post.Date, &post.ReadTime, &image, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, err
	}

	post.Image = image.String
	if post.Image == "" {
		post.Image = PlaceholderImage
	}

	return &post, nil
}

// List returns every post, newest first.
func (m *PostModel) List(ctx context.Context) ([]Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		ORDER BY date DESC, id DESC`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("list posts: %w", err)
		}
		posts = append(posts, *post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	return posts, nil
}

func (m *PostModel) Get(ctx context.Context, id int64) (*Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE id = $1`

	post, err := scanPost(m.db.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, fmt.Errorf("get post %d: %w", id, err)
		}
	}

	return post, nil
}

// Insert relies on the BIGSERIAL sequence for ids, which never hands out a deleted id again.
func (m *PostModel) Insert(ctx context.Context, post *Post) error {
	query := `
		INSERT INTO posts (title, excerpt, content, category, date, read_time, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	args := []any{post.Title, post.Excerpt, post.Content, post.Category, post.Date, post.ReadTime, post.Image}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}

	return nil
}

// Update merges the non-nil patch fields in a single statement. updated_at always moves
// forward, even when two updates land within the same clock tick.
func (m *PostModel) Update(ctx context.Context, id int64, patch PostPatch) (*Post, error) {
	query := `
		UPDATE posts
		SET title = COALESCE($2, title),
			excerpt = COALESCE($3, excerpt),
			content = COALESCE($4, content),
			category = COALESCE($5, category),
			date = COALESCE($6::date, date),
			image = COALESCE($7, image),
			read_time = COALESCE($8, read_time),
			updated_at = GREATEST(NOW(), updated_at + INTERVAL '1 microsecond')
		WHERE id = $1
		RETURNING ` + postColumns

	args := []any{id, patch.Title, patch.Excerpt, patch.Content, patch.Category, patch.Date, patch.Image, patch.readTime}

	post, err := scanPost(m.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, fmt.Errorf("update post %d: %w", id, err)
		}
	}

	return post, nil
}

func (m *PostModel) Delete(ctx context.Context, id int64) (bool, error) {
	query := `
		DELETE FROM posts
		WHERE id = $1`

	res, err := m.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete post %d: %w", id, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete post %d: %w", id, err)
	}

	switch {
	case rows == 0:
		return false, nil
	case rows == 1:
		return true, nil
	default:
		return false, fmt.Errorf("expected 1 row to be affected, got %d", rows)
	}
}
