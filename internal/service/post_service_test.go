package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn  func(context.Context, *models.Post) error
	getByIDFn func(context.Context, uint, uint) (*models.Post, error)
	listFn    func(context.Context, int, int, uint) ([]models.Post, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int, currentUserID uint) ([]models.Post, error) {
	return s.listFn(ctx, limit, offset, currentUserID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, _, _ uint) (*models.Post, error) { return &models.Post{}, nil },
		listFn:    func(_ context.Context, _, _ int, _ uint) ([]models.Post, error) { return nil, nil },
	}
}

// reactionRepoStub is a stub for repository.ReactionRepository.
type reactionRepoStub struct {
	getFn   func(context.Context, uint, uint) (models.ReactionKind, bool, error)
	setFn   func(context.Context, uint, uint, models.ReactionKind) error
	clearFn func(context.Context, uint, uint) error
}

func (s *reactionRepoStub) Get(ctx context.Context, userID, postID uint) (models.ReactionKind, bool, error) {
	return s.getFn(ctx, userID, postID)
}
func (s *reactionRepoStub) Set(ctx context.Context, userID, postID uint, kind models.ReactionKind) error {
	return s.setFn(ctx, userID, postID, kind)
}
func (s *reactionRepoStub) Clear(ctx context.Context, userID, postID uint) error {
	return s.clearFn(ctx, userID, postID)
}

func noopReactionRepo() *reactionRepoStub {
	return &reactionRepoStub{
		getFn:   func(_ context.Context, _, _ uint) (models.ReactionKind, bool, error) { return "", false, nil },
		setFn:   func(_ context.Context, _, _ uint, _ models.ReactionKind) error { return nil },
		clearFn: func(_ context.Context, _, _ uint) error { return nil },
	}
}

// assertAppErrorCode asserts that err is an AppError carrying the given code.
func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeValidation)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeForbidden)
}

func TestPostService_CreatePost_Validation(t *testing.T) {
	t.Parallel()

	svc := NewPostService(noopPostRepo(), noopReactionRepo(), nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreatePostInput
	}{
		{
			name:  "empty title",
			input: CreatePostInput{UserID: 1, Content: "some content"},
		},
		{
			name:  "whitespace title",
			input: CreatePostInput{UserID: 1, Title: "   ", Content: "some content"},
		},
		{
			name:  "empty content",
			input: CreatePostInput{UserID: 1, Title: "a title"},
		},
		{
			name:  "title too long",
			input: CreatePostInput{UserID: 1, Title: strings.Repeat("x", 301), Content: "content"},
		},
		{
			name:  "content too long",
			input: CreatePostInput{UserID: 1, Title: "a title", Content: strings.Repeat("x", 50001)},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.CreatePost(ctx, tt.input)
			assertValidationError(t, err)
		})
	}
}

func TestPostService_CreatePost_AdminGate(t *testing.T) {
	t.Parallel()

	t.Run("non-admin is rejected", func(t *testing.T) {
		t.Parallel()
		created := false
		postRepo := noopPostRepo()
		postRepo.createFn = func(_ context.Context, _ *models.Post) error {
			created = true
			return nil
		}
		isAdmin := func(_ context.Context, _ uint) (bool, error) { return false, nil }
		svc := NewPostService(postRepo, noopReactionRepo(), isAdmin)

		_, err := svc.CreatePost(context.Background(), CreatePostInput{UserID: 1, Title: "t", Content: "c"})
		assertForbiddenError(t, err)
		assert.False(t, created, "post must not be created for non-admins")
	})

	t.Run("admin creates and gets refreshed post", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.createFn = func(_ context.Context, p *models.Post) error {
			p.ID = 7
			return nil
		}
		postRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, Title: "t", Content: "c"}, nil
		}
		isAdmin := func(_ context.Context, _ uint) (bool, error) { return true, nil }
		svc := NewPostService(postRepo, noopReactionRepo(), isAdmin)

		post, err := svc.CreatePost(context.Background(), CreatePostInput{UserID: 1, Title: "t", Content: "c"})
		require.NoError(t, err)
		assert.Equal(t, uint(7), post.ID)
	})

	t.Run("isAdmin error propagates", func(t *testing.T) {
		t.Parallel()
		adminErr := errors.New("admin check failed")
		isAdmin := func(_ context.Context, _ uint) (bool, error) { return false, adminErr }
		svc := NewPostService(noopPostRepo(), noopReactionRepo(), isAdmin)

		_, err := svc.CreatePost(context.Background(), CreatePostInput{UserID: 1, Title: "t", Content: "c"})
		assert.ErrorIs(t, err, adminErr)
	})
}

func TestPostService_ListPosts(t *testing.T) {
	t.Parallel()

	t.Run("first page fills in viewer reaction", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.listFn = func(_ context.Context, _, _ int, _ uint) ([]models.Post, error) {
			return []models.Post{{ID: 1}, {ID: 2}, {ID: 3}}, nil
		}
		reactionRepo := noopReactionRepo()
		reactionRepo.getFn = func(_ context.Context, userID, postID uint) (models.ReactionKind, bool, error) {
			if postID == 2 {
				return models.ReactionDislike, true, nil
			}
			return "", false, nil
		}
		svc := NewPostService(postRepo, reactionRepo, nil)

		posts, err := svc.ListPosts(context.Background(), ListPostsInput{Limit: 20, CurrentUserID: 9})
		require.NoError(t, err)
		require.Len(t, posts, 3)
		assert.Empty(t, posts[0].MyReaction)
		assert.Equal(t, models.ReactionDislike, posts[1].MyReaction)
		assert.Empty(t, posts[2].MyReaction)
	})

	t.Run("deeper pages go straight to the repo with the viewer id", func(t *testing.T) {
		t.Parallel()
		var gotUserID uint
		postRepo := noopPostRepo()
		postRepo.listFn = func(_ context.Context, _, _ int, currentUserID uint) ([]models.Post, error) {
			gotUserID = currentUserID
			return []models.Post{{ID: 4}}, nil
		}
		svc := NewPostService(postRepo, noopReactionRepo(), nil)

		posts, err := svc.ListPosts(context.Background(), ListPostsInput{Limit: 20, Offset: 20, CurrentUserID: 9})
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, uint(9), gotUserID)
	})

	t.Run("repo error propagates", func(t *testing.T) {
		t.Parallel()
		repoErr := errors.New("db down")
		postRepo := noopPostRepo()
		postRepo.listFn = func(_ context.Context, _, _ int, _ uint) ([]models.Post, error) {
			return nil, repoErr
		}
		svc := NewPostService(postRepo, noopReactionRepo(), nil)

		_, err := svc.ListPosts(context.Background(), ListPostsInput{Limit: 20})
		assert.ErrorIs(t, err, repoErr)
	})
}

func TestPostService_GetPost(t *testing.T) {
	t.Parallel()

	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id, currentUserID uint) (*models.Post, error) {
		if id != 5 {
			return nil, models.NewNotFoundError("Post", id)
		}
		return &models.Post{ID: 5, MyReaction: models.ReactionLike}, nil
	}
	svc := NewPostService(postRepo, noopReactionRepo(), nil)

	post, err := svc.GetPost(context.Background(), 5, 1)
	require.NoError(t, err)
	assert.Equal(t, models.ReactionLike, post.MyReaction)

	_, err = svc.GetPost(context.Background(), 6, 1)
	assertNotFoundError(t, err)
}
