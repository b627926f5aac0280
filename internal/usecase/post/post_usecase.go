package post

import (
	"context"
	"fmt"
	"strings"

	"github.com/penpalhq/penpals-backend/internal/domain"
	"github.com/penpalhq/penpals-backend/internal/repository"
)

type PostUseCase struct {
	posts    repository.PostRepository
	profiles repository.ProfileRepository
}

func NewPostUseCase(posts repository.PostRepository, profiles repository.ProfileRepository) *PostUseCase {
	return &PostUseCase{posts: posts, profiles: profiles}
}

// CreatePostRequest represents post creation request
type CreatePostRequest struct {
	ProfileID int    `json:"profile_id" binding:"required"`
	Content   string `json:"content" binding:"required"`
}

// UpdatePostRequest represents post update request
type UpdatePostRequest struct {
	Content string `json:"content" binding:"required"`
}

func (uc *PostUseCase) Create(ctx context.Context, accountID int, req *CreatePostRequest) (*domain.Post, error) {
	profile, err := uc.profiles.GetByID(ctx, req.ProfileID)
	if err != nil {
		return nil, err
	}
	if profile.AccountID != accountID {
		return nil, domain.ErrNotProfileOwner
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("post content is required")
	}

	post := &domain.Post{
		ProfileID: req.ProfileID,
		Content:   content,
	}
	if err := uc.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

func (uc *PostUseCase) Get(ctx context.Context, id int) (*domain.Post, error) {
	return uc.posts.GetByID(ctx, id)
}

func (uc *PostUseCase) Update(ctx context.Context, accountID, id int, req *UpdatePostRequest) (*domain.Post, error) {
	post, err := uc.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.requireOwner(ctx, accountID, post.ProfileID); err != nil {
		return nil, err
	}

	post.Content = strings.TrimSpace(req.Content)
	if post.Content == "" {
		return nil, fmt.Errorf("post content is required")
	}
	if err := uc.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (uc *PostUseCase) Delete(ctx context.Context, accountID, id int) error {
	post, err := uc.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.requireOwner(ctx, accountID, post.ProfileID); err != nil {
		return err
	}
	return uc.posts.Delete(ctx, id)
}

func (uc *PostUseCase) requireOwner(ctx context.Context, accountID, profileID int) error {
	profile, err := uc.profiles.GetByID(ctx, profileID)
	if err != nil {
		return err
	}
	if profile.AccountID != accountID {
		return domain.ErrNotProfileOwner
	}
	return nil
}
