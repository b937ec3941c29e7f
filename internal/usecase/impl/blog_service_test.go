package impl

import (
	"context"
	"strings"
	"testing"
	"time"

	domainerrors "ministry/internal/domain/errors"
	"ministry/internal/errors"
	"ministry/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBlogService(now time.Time) (*blogService, *fakeBlogRepo) {
	repo := newFakeBlogRepo()
	srv := NewBlogService(repo, newDiscardLogger()).(*blogService)
	srv.now = func() time.Time { return now }

	return srv, repo
}

func blogInput(title string, published bool) *usecase.CreateBlogPostInput {
	return &usecase.CreateBlogPostInput{
		Title:     title,
		Author:    "Pastor James",
		Content:   strings.Repeat("Grace and peace to you. ", 10),
		Category:  "devotional",
		Published: published,
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{title: "Walking in Unity", want: "walking-in-unity"},
		{title: "  John 17:22 -- We Are One!  ", want: "john-17-22-we-are-one"},
		{title: "Faith, Hope & Love", want: "faith-hope-love"},
		{title: "Café Fellowship", want: "caf-fellowship"},
		{title: "!!!", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, slugify(tt.title))
		})
	}
}

func TestBlogService_Create(t *testing.T) {
	now := time.Date(2026, 4, 5, 8, 0, 0, 0, time.UTC)

	t.Run("derives slug and stamps publication", func(t *testing.T) {
		srv, _ := newTestBlogService(now)

		post, err := srv.Create(context.Background(), blogInput("Walking in Unity", true))
		require.NoError(t, err)
		assert.Equal(t, "walking-in-unity", post.Slug)
		require.NotNil(t, post.PublishedAt)
		assert.Equal(t, now, *post.PublishedAt)
		assert.Equal(t, []string{}, post.Tags)
	})

	t.Run("drafts have no publication date", func(t *testing.T) {
		srv, _ := newTestBlogService(now)

		post, err := srv.Create(context.Background(), blogInput("Draft Thoughts", false))
		require.NoError(t, err)
		assert.Nil(t, post.PublishedAt)
	})

	t.Run("explicit slug is validated", func(t *testing.T) {
		srv, _ := newTestBlogService(now)
		input := blogInput("Anything", true)
		input.Slug = "Not A Slug"

		_, err := srv.Create(context.Background(), input)
		var validationErr *domainerrors.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "slug", validationErr.Fields[0].Field)
	})

	t.Run("title without slug characters", func(t *testing.T) {
		srv, _ := newTestBlogService(now)

		_, err := srv.Create(context.Background(), blogInput("???", true))
		var validationErr *domainerrors.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("duplicate slug conflicts", func(t *testing.T) {
		srv, _ := newTestBlogService(now)
		_, err := srv.Create(context.Background(), blogInput("Walking in Unity", true))
		require.NoError(t, err)

		_, err = srv.Create(context.Background(), blogInput("Walking in unity!", true))
		assert.True(t, isConflict(err))
		assert.ErrorIs(t, err, domainerrors.ErrConflict)
	})
}

func isConflict(err error) bool {
	var appErr domainerrors.AppError

	return errors.As(err, &appErr) && appErr.ErrorCode() == domainerrors.ErrConflict.ErrorCode()
}

func TestBlogService_GetBySlug(t *testing.T) {
	srv, _ := newTestBlogService(time.Now())
	_, err := srv.Create(context.Background(), blogInput("Published Post", true))
	require.NoError(t, err)
	_, err = srv.Create(context.Background(), blogInput("Hidden Draft", false))
	require.NoError(t, err)

	post, err := srv.GetBySlug(context.Background(), "published-post")
	require.NoError(t, err)
	assert.Equal(t, int64(1), post.ViewCount)

	post, err = srv.GetBySlug(context.Background(), "published-post")
	require.NoError(t, err)
	assert.Equal(t, int64(2), post.ViewCount)

	_, err = srv.GetBySlug(context.Background(), "hidden-draft")
	assert.True(t, errors.Is(err, domainerrors.ErrBlogPostNotFound))

	_, err = srv.GetBySlug(context.Background(), "missing")
	assert.True(t, errors.Is(err, domainerrors.ErrBlogPostNotFound))
}

func TestBlogService_List(t *testing.T) {
	srv, _ := newTestBlogService(time.Now())
	for _, in := range []*usecase.CreateBlogPostInput{
		blogInput("First", true),
		blogInput("Second", true),
		blogInput("Draft", false),
	} {
		_, err := srv.Create(context.Background(), in)
		require.NoError(t, err)
	}

	page, err := srv.List(context.Background(), &usecase.ListBlogPostsInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	for _, post := range page.Items {
		assert.True(t, post.Published)
	}
}

func TestBlogService_Update(t *testing.T) {
	first := time.Date(2026, 4, 5, 8, 0, 0, 0, time.UTC)
	srv, repo := newTestBlogService(first)

	draft, err := srv.Create(context.Background(), blogInput("Coming Soon", false))
	require.NoError(t, err)

	published, err := srv.Update(context.Background(), draft.ID, &usecase.UpdateBlogPostInput{Published: ptr(true)})
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)
	assert.Equal(t, first, *published.PublishedAt)

	srv.now = func() time.Time { return first.Add(24 * time.Hour) }
	_, err = srv.Update(context.Background(), draft.ID, &usecase.UpdateBlogPostInput{Published: ptr(false)})
	require.NoError(t, err)
	republished, err := srv.Update(context.Background(), draft.ID, &usecase.UpdateBlogPostInput{Published: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, first, *republished.PublishedAt)

	_, err = srv.Update(context.Background(), draft.ID, &usecase.UpdateBlogPostInput{Slug: ptr("Bad Slug")})
	var validationErr *domainerrors.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	stored, err := repo.FindByID(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "coming-soon", stored.Slug)
}
