package usecase

import (
	"context"

	"ministry/internal/domain/entity"

	"github.com/google/uuid"
)

// ListBlogPostsInput filters published posts.
type ListBlogPostsInput struct {
	PageInput
	Category string `query:"category"`
	Tag      string `query:"tag"`
}

// CreateBlogPostInput defines a new post. Slug is derived from Title when empty.
type CreateBlogPostInput struct {
	Title         string   `json:"title" validate:"required,max=200"`
	Slug          string   `json:"slug" validate:"omitempty,max=200"`
	Author        string   `json:"author" validate:"required,max=100"`
	Content       string   `json:"content" validate:"required,min=100"`
	Excerpt       string   `json:"excerpt" validate:"omitempty,max=500"`
	FeaturedImage string   `json:"featured_image" validate:"omitempty,url"`
	Category      string   `json:"category" validate:"required,max=50"`
	Tags          []string `json:"tags" validate:"omitempty,max=20,dive,max=50"`
	Published     bool     `json:"published"`
}

// UpdateBlogPostInput is a partial post update; nil fields are left unchanged.
type UpdateBlogPostInput struct {
	Title         *string  `json:"title" validate:"omitempty,min=1,max=200"`
	Slug          *string  `json:"slug" validate:"omitempty,min=1,max=200"`
	Author        *string  `json:"author" validate:"omitempty,min=1,max=100"`
	Content       *string  `json:"content" validate:"omitempty,min=100"`
	Excerpt       *string  `json:"excerpt" validate:"omitempty,max=500"`
	FeaturedImage *string  `json:"featured_image" validate:"omitempty,url"`
	Category      *string  `json:"category" validate:"omitempty,min=1,max=50"`
	Tags          []string `json:"tags" validate:"omitempty,max=20,dive,max=50"`
	Published     *bool    `json:"published"`
}

// BlogUsecase manages blog posts. Unpublished posts are invisible to the public operations.
type BlogUsecase interface {
	List(ctx context.Context, input *ListBlogPostsInput) (*Page[entity.BlogPost], error)

	// GetBySlug returns a published post and counts the view.
	GetBySlug(ctx context.Context, slug string) (*entity.BlogPost, error)

	Create(ctx context.Context, input *CreateBlogPostInput) (*entity.BlogPost, error)
	Update(ctx context.Context, id uuid.UUID, input *UpdateBlogPostInput) (*entity.BlogPost, error)
}
