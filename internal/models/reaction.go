package models

import "time"

// ReactionKind is the closed set of reaction states a user can hold on a post.
type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

func (k ReactionKind) Valid() bool {
	return k == ReactionLike || k == ReactionDislike
}

// Reaction records a single user's like or dislike on a post.
// The UNIQUE (user_id, post_id) index makes mutual exclusion structural:
// a user cannot hold both a like and a dislike on the same post, and the
// per-post tallies are always COUNT(*) over this table.
type Reaction struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	UserID    uint         `gorm:"not null;uniqueIndex:idx_reaction_user_post" json:"user_id"`
	PostID    uint         `gorm:"not null;uniqueIndex:idx_reaction_user_post" json:"post_id"`
	Kind      ReactionKind `gorm:"type:varchar(16);not null" json:"kind"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Post Post `gorm:"foreignKey:PostID" json:"-"`
}
