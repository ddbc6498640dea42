package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blogapi/internal/common"
	"blogapi/internal/domain/model"
)

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id string) (*model.Post, error)
	List(ctx context.Context, category model.PostCategory) ([]model.Post, error)
	// Update and Delete are conditional on both id and author: zero affected
	// rows collapses "absent" and "not owner" into ErrForbidden.
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id, authorID string) error
}

type pgPostRepository struct {
	db *sql.DB
}

func NewPgPostRepository(db *sql.DB) PostRepository {
	return &pgPostRepository{db: db}
}

func (r *pgPostRepository) Create(ctx context.Context, p *model.Post) error {
	query := `INSERT INTO posts (id, title, slug, description, img, category, date, author_id)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.Title, p.Slug, p.Body, p.Image, p.Category, p.Date, p.AuthorID)
	if err != nil {
		return fmt.Errorf("pgPostRepository.Create: %w", err)
	}
	return nil
}

func (r *pgPostRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	query := `
        SELECT p.id, p.title, p.slug, p.description, p.img, p.category, p.date, p.author_id,
               u.username, u.img
        FROM posts p
        JOIN users u ON u.id = p.author_id
        WHERE p.id = $1`

	post := &model.Post{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.Title, &post.Slug, &post.Body, &post.Image, &post.Category,
		&post.Date, &post.AuthorID, &post.AuthorUsername, &post.AuthorImage,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgPostRepository.FindByID: %w", err)
	}
	return post, nil
}

func (r *pgPostRepository) List(ctx context.Context, category model.PostCategory) ([]model.Post, error) {
	query := `SELECT id, title, slug, description, img, category, date, author_id FROM posts`
	var args []interface{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	// Deterministic ordering; id breaks ties between same-instant posts.
	query += ` ORDER BY date DESC, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgPostRepository.List query: %w", err)
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Body, &p.Image, &p.Category, &p.Date, &p.AuthorID); err != nil {
			return nil, fmt.Errorf("pgPostRepository.List scan: %w", err)
		}
		posts = append(posts, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgPostRepository.List rows.Err: %w", err)
	}
	return posts, nil
}

func (r *pgPostRepository) Update(ctx context.Context, p *model.Post) error {
	query := `UPDATE posts SET title = $1, slug = $2, description = $3, img = $4, category = $5
	          WHERE id = $6 AND author_id = $7`
	res, err := r.db.ExecContext(ctx, query, p.Title, p.Slug, p.Body, p.Image, p.Category, p.ID, p.AuthorID)
	if err != nil {
		return fmt.Errorf("pgPostRepository.Update: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgPostRepository.Update rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrForbidden
	}
	return nil
}

func (r *pgPostRepository) Delete(ctx context.Context, id, authorID string) error {
	query := `DELETE FROM posts WHERE id = $1 AND author_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, authorID)
	if err != nil {
		return fmt.Errorf("pgPostRepository.Delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgPostRepository.Delete rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrForbidden
	}
	return nil
}
