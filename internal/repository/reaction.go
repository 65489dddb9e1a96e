package repository

import (
	"context"
	"errors"

	"quill/internal/cache"
	"quill/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReactionRepository defines persistence operations for post reactions.
// A user holds at most one reaction per post, enforced by a unique index
// on (user_id, post_id).
type ReactionRepository interface {
	Get(ctx context.Context, userID, postID uint) (models.ReactionKind, bool, error)
	Set(ctx context.Context, userID, postID uint, kind models.ReactionKind) error
	Clear(ctx context.Context, userID, postID uint) error
}

type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository returns a new ReactionRepository implementation.
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) Get(ctx context.Context, userID, postID uint) (models.ReactionKind, bool, error) {
	var reaction models.Reaction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&reaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, models.NewInternalError(err)
	}
	return reaction.Kind, true, nil
}

// Set records the user's reaction, replacing any existing one in a single
// upsert so concurrent toggles cannot leave both a like and a dislike.
func (r *reactionRepository) Set(ctx context.Context, userID, postID uint, kind models.ReactionKind) error {
	reaction := models.Reaction{
		UserID: userID,
		PostID: postID,
		Kind:   kind,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"kind", "updated_at"}),
		}).
		Create(&reaction).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, postID)
	cache.InvalidatePostsList(ctx)
	return nil
}

func (r *reactionRepository) Clear(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Reaction{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, postID)
	cache.InvalidatePostsList(ctx)
	return nil
}
