// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"pulse/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// topics are appended to posts as hashtags so the feed has something to
// search and filter on.
var topics = []string{
	"golang", "webdev", "music", "gaming", "fitness", "travel", "food",
	"photography", "books", "movies", "startups", "devops", "ai", "art",
	"science", "coffee",
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	return &Factory{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// CreateUser constructs and persists a sample verified user.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	user := &models.User{
		Username:   strings.ToLower(gofakeit.Username()) + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:      gofakeit.Email(),
		Password:   string(hashedPassword),
		Bio:        gofakeit.Sentence(10),
		Avatar:     fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		IsVerified: true,
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost constructs and persists a sample post for the given user,
// linking any appended hashtags through post_hashtags.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	content := gofakeit.Paragraph(1, 3, 5, "\n")

	var tags []string
	if f.r.Float32() < 0.6 {
		count := f.r.Intn(3) + 1
		seen := make(map[string]bool, count)
		for i := 0; i < count; i++ {
			tag := topics[f.r.Intn(len(topics))]
			if seen[tag] {
				continue
			}
			seen[tag] = true
			tags = append(tags, tag)
			content += " #" + tag
		}
	}

	post := &models.Post{
		Content:  content,
		UserID:   user.ID,
		IsPublic: f.r.Float32() < 0.9,
	}

	// realistic created_at spread over the past 90 days
	daysBack := f.r.Intn(90)
	hoursBack := f.r.Intn(24)
	post.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}

	for _, tag := range tags {
		var hashtag models.Hashtag
		if err := f.db.Where(models.Hashtag{Tag: tag}).FirstOrCreate(&hashtag).Error; err != nil {
			return nil, err
		}
		if err := f.db.Model(post).Association("Hashtags").Append(&hashtag); err != nil {
			return nil, err
		}
	}
	return post, nil
}

// CreateComment constructs and persists a sample comment on the given post.
func (f *Factory) CreateComment(user *models.User, post *models.Post, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content: gofakeit.Sentence(f.r.Intn(12) + 3),
		UserID:  user.ID,
		PostID:  post.ID,
	}

	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}
