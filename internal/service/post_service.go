// Package service contains the application's business logic, sitting between
// the HTTP handlers and the repositories.
package service

import (
	"context"
	"strings"

	"quill/internal/cache"
	"quill/internal/models"
	"quill/internal/repository"
)

type PostService struct {
	postRepo     repository.PostRepository
	reactionRepo repository.ReactionRepository
	isAdmin      func(ctx context.Context, userID uint) (bool, error)
}

type CreatePostInput struct {
	UserID  uint
	Title   string
	Content string
}

type ListPostsInput struct {
	Limit         int
	Offset        int
	CurrentUserID uint
}

func NewPostService(
	postRepo repository.PostRepository,
	reactionRepo repository.ReactionRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		reactionRepo: reactionRepo,
		isAdmin:      isAdmin,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	const maxTitleLen = 300
	const maxContentLen = 50000

	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}

	if s.isAdmin != nil {
		admin, err := s.isAdmin(ctx, in.UserID)
		if err != nil {
			return nil, err
		}
		if !admin {
			return nil, models.NewForbiddenError("Only admins can create posts")
		}
	}

	userID := in.UserID
	post := &models.Post{
		Title:   in.Title,
		Content: in.Content,
		UserID:  &userID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]models.Post, error) {
	var posts []models.Post
	var err error

	// The first page of the public feed is hot, so it is served cache-aside.
	if in.Offset == 0 && in.Limit <= 20 {
		key := cache.PostsListKey()
		err = cache.Aside(ctx, key, &posts, cache.PostListTTL, func() error {
			var fetchErr error
			posts, fetchErr = s.postRepo.List(ctx, in.Limit, in.Offset, 0)
			return fetchErr
		})
		if err != nil {
			return nil, err
		}

		// The cached page is viewer-agnostic, so the caller's own reaction
		// has to be filled back in for logged-in users.
		if in.CurrentUserID != 0 {
			for i := range posts {
				kind, found, err := s.reactionRepo.Get(ctx, in.CurrentUserID, posts[i].ID)
				if err != nil {
					return nil, err
				}
				if found {
					posts[i].MyReaction = kind
				} else {
					posts[i].MyReaction = ""
				}
			}
		}
		return posts, nil
	}

	posts, err = s.postRepo.List(ctx, in.Limit, in.Offset, in.CurrentUserID)
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, currentUserID)
}
