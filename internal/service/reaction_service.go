package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/repository"
)

type ReactionService struct {
	reactionRepo repository.ReactionRepository
	postRepo     repository.PostRepository
}

func NewReactionService(
	reactionRepo repository.ReactionRepository,
	postRepo repository.PostRepository,
) *ReactionService {
	return &ReactionService{
		reactionRepo: reactionRepo,
		postRepo:     postRepo,
	}
}

// Toggle applies kind to the user's reaction on a post. Reacting with the
// kind already held clears it; reacting with the other kind replaces it.
// The refreshed post, with up-to-date counts, is returned.
func (s *ReactionService) Toggle(ctx context.Context, userID, postID uint, kind models.ReactionKind) (*models.Post, error) {
	if !kind.Valid() {
		return nil, models.NewValidationError("Invalid reaction")
	}

	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}

	current, found, err := s.reactionRepo.Get(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	if found && current == kind {
		if err := s.reactionRepo.Clear(ctx, userID, postID); err != nil {
			return nil, err
		}
	} else {
		if err := s.reactionRepo.Set(ctx, userID, postID, kind); err != nil {
			return nil, err
		}
	}

	return s.postRepo.GetByID(ctx, postID, userID)
}
