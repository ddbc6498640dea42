package service

import (
	"context"
	"fmt"
	"time"

	"blogapi/internal/common"
	"blogapi/internal/domain/model"
	"blogapi/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type PostService struct {
	postRepo repository.PostRepository
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

type CreatePostRequest struct {
	Title    string     `json:"title"`
	Body     string     `json:"desc"`
	Image    string     `json:"img"`
	Category string     `json:"cat"`
	Date     *time.Time `json:"date,omitempty"`
}

type UpdatePostRequest struct {
	Title    string `json:"title"`
	Body     string `json:"desc"`
	Image    string `json:"img"`
	Category string `json:"cat"`
}

func validatePostFields(title, body, category string) error {
	if title == "" || body == "" {
		return fmt.Errorf("title and desc are required: %w", common.ErrBadRequest)
	}
	if !model.PostCategory(category).Valid() {
		return fmt.Errorf("unknown category %q: %w", category, common.ErrBadRequest)
	}
	return nil
}

func (s *PostService) ListPosts(ctx context.Context, category string) ([]model.Post, error) {
	posts, err := s.postRepo.List(ctx, model.PostCategory(category))
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

func (s *PostService) GetPost(ctx context.Context, id string) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) CreatePost(ctx context.Context, authorID string, req CreatePostRequest) (*model.Post, error) {
	if err := validatePostFields(req.Title, req.Body, req.Category); err != nil {
		return nil, err
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	post := &model.Post{
		ID:       uuid.NewString(),
		Title:    req.Title,
		Slug:     slug.Make(req.Title),
		Body:     req.Body,
		Image:    req.Image,
		Category: model.PostCategory(req.Category),
		Date:     date,
		AuthorID: authorID,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// UpdatePost overwrites the mutable fields in one conditional statement keyed
// on id and author, so ownership cannot change between check and write.
func (s *PostService) UpdatePost(ctx context.Context, id, authorID string, req UpdatePostRequest) error {
	if err := validatePostFields(req.Title, req.Body, req.Category); err != nil {
		return err
	}

	post := &model.Post{
		ID:       id,
		Title:    req.Title,
		Slug:     slug.Make(req.Title),
		Body:     req.Body,
		Image:    req.Image,
		Category: model.PostCategory(req.Category),
		AuthorID: authorID,
	}
	return s.postRepo.Update(ctx, post)
}

func (s *PostService) DeletePost(ctx context.Context, id, authorID string) error {
	return s.postRepo.Delete(ctx, id, authorID)
}
