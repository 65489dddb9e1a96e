// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"quill/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	factory := NewFactory(db)

	users, err := createUsers(factory, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d test users created", len(users))

	posts, err := createPosts(factory, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("%d posts created", len(posts))

	if err := createComments(factory, users, posts); err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}

	if err := createReactions(factory, users, posts); err != nil {
		return fmt.Errorf("failed to create reactions: %w", err)
	}

	log.Println("Database seeding complete")
	return nil
}

func clearData(db *gorm.DB) error {
	// Delete in dependency order.
	for _, model := range []any{
		&models.Reaction{},
		&models.Comment{},
		&models.Post{},
		&models.User{},
	} {
		if err := db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(f *Factory, n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	// At least one admin so post authoring works out of the box.
	if len(users) > 0 {
		admin := users[0]
		if err := f.db.Model(admin).Update("role", models.RoleAdmin).Error; err != nil {
			return nil, err
		}
		admin.Role = models.RoleAdmin
	}
	return users, nil
}

func createPosts(f *Factory, users []*models.User, n int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}
	// Only admins author posts.
	var admins []*models.User
	for _, u := range users {
		if u.Role == models.RoleAdmin {
			admins = append(admins, u)
		}
	}
	if len(admins) == 0 {
		admins = users[:1]
	}

	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := admins[f.rand.Intn(len(admins))]
		post, err := f.CreatePost(author)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func createComments(f *Factory, users []*models.User, posts []*models.Post) error {
	if len(users) == 0 || len(posts) == 0 {
		return nil
	}
	for _, post := range posts {
		numComments := f.rand.Intn(6)
		for i := 0; i < numComments; i++ {
			commenter := users[f.rand.Intn(len(users))]
			comment, err := f.CreateComment(commenter, post)
			if err != nil {
				return err
			}
			// spread comments after the post's creation time
			age := time.Since(post.CreatedAt)
			if age > 0 {
				offset := time.Duration(rand.Int63n(int64(age)))
				if err := f.db.Model(comment).
					Update("created_at", post.CreatedAt.Add(offset)).Error; err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func createReactions(f *Factory, users []*models.User, posts []*models.Post) error {
	if len(users) == 0 || len(posts) == 0 {
		return nil
	}
	for _, post := range posts {
		for _, user := range users {
			switch f.rand.Intn(4) {
			case 0:
				if err := f.CreateReaction(user, post, models.ReactionLike); err != nil {
					return err
				}
			case 1:
				if err := f.CreateReaction(user, post, models.ReactionDislike); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
