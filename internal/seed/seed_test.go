package seed

import (
	"testing"

	"pulse/internal/database"
	"pulse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func connectTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.ConnectSQLite()
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	return db
}

func TestFactory_CreateUser(t *testing.T) {
	db := connectTestDB(t)
	f := NewFactory(db)

	user, err := f.CreateUser()
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, user.Username)
	assert.NotEmpty(t, user.Email)
	assert.True(t, user.IsVerified)

	custom, err := f.CreateUser(func(u *models.User) {
		u.Username = "overridden"
		u.Email = "overridden@example.com"
	})
	require.NoError(t, err)
	assert.Equal(t, "overridden", custom.Username)
}

func TestFactory_CreatePostLinksHashtags(t *testing.T) {
	db := connectTestDB(t)
	f := NewFactory(db)

	user, err := f.CreateUser()
	require.NoError(t, err)

	post, err := f.CreatePost(user, func(p *models.Post) {
		p.Content = "seeded content #golang"
	})
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
	assert.Equal(t, user.ID, post.UserID)
}

func TestSeed(t *testing.T) {
	db := connectTestDB(t)

	err := Seed(db, Options{NumUsers: 8, NumPosts: 15, ShouldClean: true})
	require.NoError(t, err)

	var userCount, postCount, followCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)
	require.NoError(t, db.Model(&models.Follow{}).Count(&followCount).Error)

	assert.EqualValues(t, 8, userCount)
	assert.EqualValues(t, 15, postCount)
	assert.NotZero(t, followCount)

	var demo models.User
	require.NoError(t, db.Where("username = ?", "pulse").First(&demo).Error)
	assert.Equal(t, "pulse@example.com", demo.Email)
	assert.True(t, demo.IsVerified)

	// Reseeding with clean keeps counts stable.
	require.NoError(t, Seed(db, Options{NumUsers: 8, NumPosts: 15, ShouldClean: true}))
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	assert.EqualValues(t, 8, userCount)
}
