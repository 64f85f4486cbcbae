package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vaughan-dsouza/postboard/internal/db"
	"github.com/vaughan-dsouza/postboard/internal/models"
)

type Posts struct {
	DB *db.Lazy
}

func NewPosts(lazy *db.Lazy) *Posts {
	return &Posts{DB: lazy}
}

func (s *Posts) Create(ctx context.Context, title, content string, authorID int64, authorName string) (*models.Post, error) {
	conn, err := s.DB.Get(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	p := models.Post{
		Title:      title,
		Content:    content,
		AuthorID:   authorID,
		AuthorName: authorName,
	}
	err = conn.QueryRowxContext(ctx, `
		INSERT INTO posts (title, content, author_id, author_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, p.Title, p.Content, p.AuthorID, p.AuthorName).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns every post, newest first.
func (s *Posts) List(ctx context.Context) ([]models.Post, error) {
	conn, err := s.DB.Get(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	posts := []models.Post{}
	err = conn.SelectContext(ctx, &posts, `
		SELECT id, title, content, author_id, author_name, created_at, updated_at
		FROM posts
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *Posts) ByID(ctx context.Context, id int64) (*models.Post, error) {
	conn, err := s.DB.Get(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var p models.Post
	err = conn.GetContext(ctx, &p, `
		SELECT id, title, content, author_id, author_name, created_at, updated_at
		FROM posts
		WHERE id=$1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Posts) Update(ctx context.Context, id int64, title, content string) (*models.Post, error) {
	conn, err := s.DB.Get(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var p models.Post
	err = conn.QueryRowxContext(ctx, `
		UPDATE posts
		SET title=$1, content=$2, updated_at=$3
		WHERE id=$4
		RETURNING id, title, content, author_id, author_name, created_at, updated_at
	`, title, content, time.Now(), id).StructScan(&p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete is idempotent: deleting a missing post is not an error.
func (s *Posts) Delete(ctx context.Context, id int64) error {
	conn, err := s.DB.Get(ctx)
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err = conn.ExecContext(ctx, `DELETE FROM posts WHERE id=$1`, id)
	return err
}

func (s *Posts) DeleteAll(ctx context.Context) error {
	conn, err := s.DB.Get(ctx)
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err = conn.ExecContext(ctx, `DELETE FROM posts`)
	return err
}
