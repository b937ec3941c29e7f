package impl

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"
	"unicode"

	"ministry/internal/domain/entity"
	domainerrors "ministry/internal/domain/errors"
	"ministry/internal/domain/repository"
	"ministry/internal/errors"
	"ministry/internal/usecase"

	"github.com/google/uuid"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type blogService struct {
	blogRepo repository.BlogPostRepository
	now      func() time.Time
	logger   *slog.Logger
}

// NewBlogService is the constructor for blogService.
func NewBlogService(blogRepo repository.BlogPostRepository, logger *slog.Logger) usecase.BlogUsecase {
	return &blogService{
		blogRepo: blogRepo,
		now:      time.Now,
		logger:   logger,
	}
}

func (srv *blogService) List(ctx context.Context, input *usecase.ListBlogPostsInput) (*usecase.Page[entity.BlogPost], error) {
	conditions := []repository.Condition{repository.Eq("published", true)}
	conditions = optionalEq(conditions, "category", input.Category)
	if input.Tag != "" {
		conditions = append(conditions, repository.HasTag("tags", input.Tag))
	}

	return listPage(ctx, srv.blogRepo, input.PageInput, order{column: "published_at", descending: true}, conditions...)
}

// GetBySlug hides drafts behind the same not-found error as missing posts.
func (srv *blogService) GetBySlug(ctx context.Context, slug string) (*entity.BlogPost, error) {
	post, err := srv.blogRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, notFoundAs(err, repository.ErrBlogPostNotFound, domainerrors.ErrBlogPostNotFound)
	}
	if !post.Published {
		return nil, domainerrors.ErrBlogPostNotFound
	}

	if err := srv.blogRepo.IncrementCounter(ctx, post.ID, "view_count", 1); err != nil {
		return nil, notFoundAs(err, repository.ErrBlogPostNotFound, domainerrors.ErrBlogPostNotFound)
	}
	post.ViewCount++

	return post, nil
}

func (srv *blogService) Create(ctx context.Context, input *usecase.CreateBlogPostInput) (*entity.BlogPost, error) {
	slug := input.Slug
	if slug == "" {
		slug = slugify(input.Title)
	}
	if !slugPattern.MatchString(slug) {
		return nil, domainerrors.Invalid("slug", "must be lower-case words separated by hyphens")
	}

	post := &entity.BlogPost{
		Title:         input.Title,
		Slug:          slug,
		Author:        input.Author,
		Content:       input.Content,
		Excerpt:       input.Excerpt,
		FeaturedImage: input.FeaturedImage,
		Category:      input.Category,
		Tags:          stringsOrEmpty(input.Tags),
		Published:     input.Published,
	}
	if input.Published {
		publishedAt := srv.now().UTC()
		post.PublishedAt = &publishedAt
	}

	if err := srv.blogRepo.Create(ctx, post); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, domainerrors.ErrConflict.WithDetails("slug already exists: " + slug)
		}

		return nil, errors.Wrap(err, "failed to create blog post")
	}

	requestLogger(ctx, srv.logger).Info("Blog post created",
		slog.String("post_id", post.ID.String()),
		slog.String("slug", slug),
	)

	return post, nil
}

// Update stamps published_at the first time a post is published and never clears it.
func (srv *blogService) Update(ctx context.Context, id uuid.UUID, input *usecase.UpdateBlogPostInput) (*entity.BlogPost, error) {
	if input.Slug != nil && !slugPattern.MatchString(*input.Slug) {
		return nil, domainerrors.Invalid("slug", "must be lower-case words separated by hyphens")
	}

	fields := fieldSet{}
	setIfPresent(fields, "title", input.Title)
	setIfPresent(fields, "slug", input.Slug)
	setIfPresent(fields, "author", input.Author)
	setIfPresent(fields, "content", input.Content)
	setIfPresent(fields, "excerpt", input.Excerpt)
	setIfPresent(fields, "featured_image", input.FeaturedImage)
	setIfPresent(fields, "category", input.Category)
	setIfNotNil(fields, "tags", input.Tags)
	setIfPresent(fields, "published", input.Published)

	if input.Published != nil && *input.Published {
		current, err := srv.blogRepo.FindByID(ctx, id)
		if err != nil {
			return nil, notFoundAs(err, repository.ErrBlogPostNotFound, domainerrors.ErrBlogPostNotFound)
		}
		if current.PublishedAt == nil {
			fields["published_at"] = srv.now().UTC()
		}
	}

	post, err := srv.blogRepo.UpdateFields(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, domainerrors.ErrConflict.WithDetails("slug already exists")
		}

		return nil, notFoundAs(err, repository.ErrBlogPostNotFound, domainerrors.ErrBlogPostNotFound)
	}

	return post, nil
}

// slugify lower-cases title and joins its letter and digit runs with hyphens.
func slugify(title string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(title) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingHyphen = false

			continue
		}
		pendingHyphen = true
	}

	return b.String()
}
