package seed

import (
	"fmt"
	"log"

	"pulse/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seed populates the database with demo users, posts, comments, likes,
// reposts and follower relationships.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := ClearAll(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	f := NewFactory(db)

	users, err := createUsers(f, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("Created %d users", len(users))

	posts, err := createPosts(f, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("Created %d posts", len(posts))

	if err := createFollows(f, users); err != nil {
		return fmt.Errorf("failed to create follows: %w", err)
	}

	if err := createEngagement(f, users, posts); err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}

	log.Println("Database seeding completed")
	return nil
}

// ClearAll removes all seedable rows in FK dependency order. DELETE is
// used instead of TRUNCATE so it works on both Postgres and SQLite.
func ClearAll(db *gorm.DB) error {
	tables := []string{
		"comment_likes", "comments", "likes", "reposts",
		"post_hashtags", "hashtags", "posts", "follows",
		"user_roles", "users",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(f *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// A couple of fixed accounts for manual testing.
	if count >= 2 {
		for _, name := range []string{"pulse", "demo"} {
			name := name
			user, err := f.CreateUser(func(u *models.User) {
				u.Username = name
				u.Email = name + "@example.com"
				u.Bio = "Official demo account."
			})
			if err != nil {
				return nil, err
			}
			users = append(users, user)
		}
	}

	for i := len(users); i < count; i++ {
		user, err := f.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, user)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}
	return users, nil
}

func createPosts(f *Factory, users []*models.User, count int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		user := users[f.r.Intn(len(users))]
		post, err := f.CreatePost(user)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d posts...", i)
		}
	}
	return posts, nil
}

// createFollows gives each user a handful of people to follow so every
// feed has some social graph behind it.
func createFollows(f *Factory, users []*models.User) error {
	for _, user := range users {
		count := f.r.Intn(6) + 1
		for i := 0; i < count; i++ {
			target := users[f.r.Intn(len(users))]
			if target.ID == user.ID {
				continue
			}
			follow := models.Follow{
				FollowerID:  user.ID,
				FollowingID: target.ID,
			}
			err := f.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow).Error
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// createEngagement adds comments, likes and reposts across the seeded posts.
func createEngagement(f *Factory, users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		for i := 0; i < f.r.Intn(4); i++ {
			user := users[f.r.Intn(len(users))]
			if _, err := f.CreateComment(user, post); err != nil {
				return err
			}
		}

		for i := 0; i < f.r.Intn(8); i++ {
			user := users[f.r.Intn(len(users))]
			like := models.Like{UserID: user.ID, PostID: post.ID}
			if err := f.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
				return err
			}
		}

		if f.r.Float32() < 0.25 {
			user := users[f.r.Intn(len(users))]
			if user.ID != post.UserID {
				repost := models.Repost{UserID: user.ID, PostID: post.ID}
				if err := f.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&repost).Error; err != nil {
					return err
				}
			}
		}
	}
	return nil
}
