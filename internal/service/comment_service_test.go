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

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint) ([]models.Comment, error)
	deleteFn     func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:    func(_ context.Context, _ uint) (*models.Comment, error) { return &models.Comment{}, nil },
		listByPostFn: func(_ context.Context, _ uint) ([]models.Comment, error) { return nil, nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
	}
}

func TestCommentService_CreateComment_Validation(t *testing.T) {
	t.Parallel()

	svc := NewCommentService(noopCommentRepo(), noopPostRepo(), nil)
	ctx := context.Background()

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateComment(ctx, CreateCommentInput{UserID: 1, PostID: 1})
		assertValidationError(t, err)
	})

	t.Run("content too long", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateComment(ctx, CreateCommentInput{
			UserID:  1,
			PostID:  1,
			Content: strings.Repeat("x", 10001),
		})
		assertValidationError(t, err)
	})

	t.Run("missing post", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", id)
		}
		svc2 := NewCommentService(noopCommentRepo(), postRepo, nil)
		_, err := svc2.CreateComment(ctx, CreateCommentInput{UserID: 1, PostID: 99, Content: "hi"})
		assertNotFoundError(t, err)
	})
}

func TestCommentService_CreateComment_Success(t *testing.T) {
	t.Parallel()

	commentRepo := noopCommentRepo()
	commentRepo.createFn = func(_ context.Context, c *models.Comment) error {
		c.ID = 42
		return nil
	}
	commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return &models.Comment{
			ID:      id,
			Content: "hello",
			UserID:  1,
			PostID:  1,
			User:    models.User{ID: 1, Username: "alice"},
		}, nil
	}

	svc := NewCommentService(commentRepo, noopPostRepo(), nil)
	comment, err := svc.CreateComment(context.Background(), CreateCommentInput{
		UserID:  1,
		PostID:  1,
		Content: "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(42), comment.ID)
	assert.Equal(t, "hello", comment.Content)
	assert.Equal(t, "alice", comment.User.Username)
}

func TestCommentService_ListComments(t *testing.T) {
	t.Parallel()

	t.Run("missing post", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", id)
		}
		svc := NewCommentService(noopCommentRepo(), postRepo, nil)
		_, err := svc.ListComments(context.Background(), 99)
		assertNotFoundError(t, err)
	})

	t.Run("returns the repo's newest-first ordering", func(t *testing.T) {
		t.Parallel()
		commentRepo := noopCommentRepo()
		commentRepo.listByPostFn = func(_ context.Context, _ uint) ([]models.Comment, error) {
			return []models.Comment{{ID: 3}, {ID: 2}, {ID: 1}}, nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo(), nil)
		comments, err := svc.ListComments(context.Background(), 1)
		require.NoError(t, err)
		require.Len(t, comments, 3)
		assert.Equal(t, uint(3), comments[0].ID)
		assert.Equal(t, uint(1), comments[2].ID)
	})
}

func TestCommentService_DeleteComment(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	adminYes := func(_ context.Context, _ uint) (bool, error) { return true, nil }
	adminNo := func(_ context.Context, _ uint) (bool, error) { return false, nil }

	t.Run("admin delete returns remaining comments", func(t *testing.T) {
		t.Parallel()
		deleted := uint(0)
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, PostID: 1, UserID: 10}, nil
		}
		commentRepo.deleteFn = func(_ context.Context, id uint) error {
			deleted = id
			return nil
		}
		commentRepo.listByPostFn = func(_ context.Context, _ uint) ([]models.Comment, error) {
			return []models.Comment{{ID: 5}, {ID: 3}}, nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo(), adminYes)

		remaining, err := svc.DeleteComment(ctx, DeleteCommentInput{UserID: 1, PostID: 1, CommentID: 4})
		require.NoError(t, err)
		assert.Equal(t, uint(4), deleted)
		require.Len(t, remaining, 2)
		assert.Equal(t, uint(5), remaining[0].ID)
	})

	t.Run("non-admin is rejected without mutation", func(t *testing.T) {
		t.Parallel()
		deleted := false
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, PostID: 1, UserID: 10}, nil
		}
		commentRepo.deleteFn = func(_ context.Context, _ uint) error {
			deleted = true
			return nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo(), adminNo)

		_, err := svc.DeleteComment(ctx, DeleteCommentInput{UserID: 1, PostID: 1, CommentID: 4})
		assertForbiddenError(t, err)
		assert.False(t, deleted)
	})

	t.Run("missing comment is not found without mutation", func(t *testing.T) {
		t.Parallel()
		deleted := false
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		commentRepo.deleteFn = func(_ context.Context, _ uint) error {
			deleted = true
			return nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo(), adminYes)

		_, err := svc.DeleteComment(ctx, DeleteCommentInput{UserID: 1, PostID: 1, CommentID: 99})
		assertNotFoundError(t, err)
		assert.False(t, deleted)
	})

	t.Run("comment on a different post is not found", func(t *testing.T) {
		t.Parallel()
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, PostID: 2, UserID: 10}, nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo(), adminYes)

		_, err := svc.DeleteComment(ctx, DeleteCommentInput{UserID: 1, PostID: 1, CommentID: 4})
		assertNotFoundError(t, err)
	})

	t.Run("missing post is not found", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", id)
		}
		svc := NewCommentService(noopCommentRepo(), postRepo, adminYes)

		_, err := svc.DeleteComment(ctx, DeleteCommentInput{UserID: 1, PostID: 99, CommentID: 4})
		assertNotFoundError(t, err)
	})

	t.Run("isAdmin error propagates", func(t *testing.T) {
		t.Parallel()
		adminErr := errors.New("admin check failed")
		isAdmin := func(_ context.Context, _ uint) (bool, error) { return false, adminErr }
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, PostID: 1, UserID: 10}, nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo(), isAdmin)

		_, err := svc.DeleteComment(ctx, DeleteCommentInput{UserID: 1, PostID: 1, CommentID: 4})
		assert.ErrorIs(t, err, adminErr)
	})
}
