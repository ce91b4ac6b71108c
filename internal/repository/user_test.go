package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"pulse/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name          string
		userID        uint
		mockBehavior  func()
		expectedUser  *models.User
		expectedError bool
	}{
		{
			name:   "Success",
			userID: 1,
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "username", "email"}).
					AddRow(1, "testuser", "test@example.com")
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(1, 1).
					WillReturnRows(rows)
			},
			expectedUser: &models.User{ID: 1, Username: "testuser", Email: "test@example.com"},
		},
		{
			name:   "Not Found",
			userID: 99,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(99, 1).
					WillReturnError(gorm.ErrRecordNotFound)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.GetByID(ctx, tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
				var appErr *models.AppError
				assert.True(t, errors.As(err, &appErr))
				assert.Equal(t, "NOT_FOUND", appErr.Code)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedUser.Username, user.Username)
				assert.Equal(t, tt.expectedUser.Email, user.Email)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmail_Missing(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WithArgs("nobody@example.com", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	user, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindForSignup_PrefersActiveRow(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	// Active lookup runs first and wins even when an older soft-deleted
	// row also matches.
	rows := sqlmock.NewRows([]string{"id", "username", "email"}).
		AddRow(9, "alice", "alice@example.com")
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE \(username = \$1 OR email = \$2\) AND "users"\."deleted_at" IS NULL`).
		WithArgs("alice", "bob@example.com", 1).
		WillReturnRows(rows)

	user, err := repo.FindForSignup(context.Background(), "alice", "bob@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Username)
	assert.False(t, user.IsDeleted())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindForSignup_FallsBackToDeletedRow(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE \(username = \$1 OR email = \$2\) AND "users"\."deleted_at" IS NULL`).
		WithArgs("alice", "alice@example.com", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	rows := sqlmock.NewRows([]string{"id", "username", "email", "deleted_at"}).
		AddRow(4, "alice", "alice@example.com", time.Now())
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE \(username = \$1 OR email = \$2\) AND deleted_at IS NOT NULL`).
		WithArgs("alice", "alice@example.com", 1).
		WillReturnRows(rows)

	user, err := repo.FindForSignup(context.Background(), "alice", "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.True(t, user.IsDeleted())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_Conflict(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email" (SQLSTATE 23505)`))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.User{Username: "dupe", Email: "dupe@example.com"})
	assert.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "CONFLICT", appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateProfile_OnlyProfileColumns(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	// The statement must name only the profile columns. A profile edit
	// driven by a cached user, which carries no credential fields, would
	// otherwise null out the stored password hash.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET "avatar"=$1,"bio"=$2,"cover"=$3,"updated_at"=$4 WHERE id = $5 AND "users"."deleted_at" IS NULL`)).
		WithArgs("pic.png", "new bio", "banner.png", sqlmock.AnyArg(), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	user := &models.User{ID: 1, Bio: "new bio", Avatar: "pic.png", Cover: "banner.png"}
	err := repo.UpdateProfile(context.Background(), user)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Search(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "username"}).
		AddRow(1, "alice").
		AddRow(2, "alicia")
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE username LIKE`).
		WithArgs("%ali%", 5).
		WillReturnRows(rows)

	users, err := repo.Search(context.Background(), "ali", 5)
	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_HasRole(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "user_roles"`).
		WithArgs(7, "admin").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := repo.HasRole(context.Background(), 7, models.RoleAdmin)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
