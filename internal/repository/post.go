package repository

import (
	"context"
	"errors"

	"quill/internal/cache"
	"quill/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	List(ctx context.Context, limit, offset int, currentUserID uint) ([]models.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// withPostDetails annotates a posts query with reaction and comment counts,
// plus the viewer's own reaction when currentUserID is non-zero.
func (r *postRepository) withPostDetails(ctx context.Context, currentUserID uint) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Post{}).
		Select(`posts.*,
			(SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id AND reactions.kind = ?) AS likes_count,
			(SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id AND reactions.kind = ?) AS dislikes_count,
			(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) AS comments_count,
			COALESCE((SELECT kind FROM reactions WHERE reactions.post_id = posts.id AND reactions.user_id = ?), '') AS my_reaction`,
			models.ReactionLike, models.ReactionDislike, currentUserID).
		Preload("User")
	return q
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePostsList(ctx)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	var post models.Post
	err := r.withPostDetails(ctx, currentUserID).First(&post, "posts.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int, currentUserID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.withPostDetails(ctx, currentUserID).
		Order("posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}
