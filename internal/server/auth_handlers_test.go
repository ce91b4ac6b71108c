package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pulse/internal/config"
	"pulse/internal/mailer"
	"pulse/internal/models"
	"pulse/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func gormDeletedAt(t time.Time) gorm.DeletedAt {
	return gorm.DeletedAt{Time: t, Valid: true}
}

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindForSignup(ctx context.Context, username, email string) (*models.User, error) {
	args := m.Called(ctx, username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Reactivate(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Search(ctx context.Context, query string, limit int) ([]models.User, error) {
	args := m.Called(ctx, query, limit)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) HasRole(ctx context.Context, userID uint, role string) (bool, error) {
	args := m.Called(ctx, userID, role)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) GrantRole(ctx context.Context, userID uint, role string) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

func newAuthTestServer(mockRepo *MockUserRepository) *Server {
	s := &Server{
		config:   &config.Config{JWTSecret: "test_secret"},
		userRepo: mockRepo,
	}
	s.authService = service.NewAuthService(mockRepo, mailer.NewLogSender())
	return s
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	assert.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	return resp
}

func TestSignup(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(m *MockUserRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"username": "testuser",
				"email":    "test@example.com",
				"password": "Password123!",
			},
			mockSetup: func(m *MockUserRepository) {
				m.On("FindForSignup", mock.Anything, "testuser", "test@example.com").Return(nil, nil)
				m.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Duplicate User",
			body: map[string]string{
				"username": "testuser",
				"email":    "exists@example.com",
				"password": "Password123!",
			},
			mockSetup: func(m *MockUserRepository) {
				m.On("FindForSignup", mock.Anything, "testuser", "exists@example.com").
					Return(&models.User{ID: 1, Email: "exists@example.com"}, nil)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Missing Email",
			body: map[string]string{
				"username": "testuser",
				"password": "Password123!",
			},
			mockSetup:      func(m *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Weak Password",
			body: map[string]string{
				"username": "testuser",
				"email":    "test@example.com",
				"password": "short",
			},
			mockSetup:      func(m *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			mockRepo := new(MockUserRepository)
			tt.mockSetup(mockRepo)
			s := newAuthTestServer(mockRepo)
			app.Post("/signup", s.Signup)

			resp := postJSON(t, app, "/signup", tt.body)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestSignup_ReactivatesSoftDeletedAccount(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindForSignup", mock.Anything, "ghost", "ghost@example.com").
		Return(&models.User{
			ID:        4,
			Username:  "ghost",
			Email:     "ghost@example.com",
			DeletedAt: gormDeletedAt(time.Now().Add(-48 * time.Hour)),
		}, nil)
	mockRepo.On("Reactivate", mock.Anything, mock.Anything).Return(nil)

	s := newAuthTestServer(mockRepo)
	app.Post("/signup", s.Signup)

	resp := postJSON(t, app, "/signup", map[string]string{
		"username": "ghost",
		"email":    "ghost@example.com",
		"password": "Password123!",
	})
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.MinCost)
	assert.NoError(t, err)

	verified := &models.User{
		ID:         1,
		Username:   "testuser",
		Email:      "test@example.com",
		Password:   string(hash),
		IsVerified: true,
	}
	unverified := &models.User{
		ID:       2,
		Username: "pending",
		Email:    "pending@example.com",
		Password: string(hash),
	}

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(m *MockUserRepository)
		expectedStatus int
		wantToken      bool
	}{
		{
			name: "Success",
			body: map[string]string{"email": "test@example.com", "password": "Password123!"},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "test@example.com").Return(verified, nil)
			},
			expectedStatus: http.StatusOK,
			wantToken:      true,
		},
		{
			name: "Wrong Password",
			body: map[string]string{"email": "test@example.com", "password": "nope"},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "test@example.com").Return(verified, nil)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Unknown Email",
			body: map[string]string{"email": "nobody@example.com", "password": "Password123!"},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Unverified Account",
			body: map[string]string{"email": "pending@example.com", "password": "Password123!"},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "pending@example.com").Return(unverified, nil)
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			mockRepo := new(MockUserRepository)
			tt.mockSetup(mockRepo)
			s := newAuthTestServer(mockRepo)
			app.Post("/verify", s.Login)

			resp := postJSON(t, app, "/verify", tt.body)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.wantToken {
				var body struct {
					Token string      `json:"token"`
					User  models.User `json:"user"`
				}
				assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.NotEmpty(t, body.Token)
				assert.Equal(t, "testuser", body.User.Username)
			}
		})
	}
}

func TestVerifyOTP(t *testing.T) {
	expiry := time.Now().Add(5 * time.Minute)

	tests := []struct {
		name           string
		body           map[string]string
		user           *models.User
		expectUpdate   bool
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{"email": "test@example.com", "verificationCode": "123456"},
			user: &models.User{
				ID:               1,
				Email:            "test@example.com",
				VerificationCode: "123456",
				CodeExpiresAt:    &expiry,
			},
			expectUpdate:   true,
			expectedStatus: http.StatusOK,
		},
		{
			name: "Wrong Code",
			body: map[string]string{"email": "test@example.com", "verificationCode": "000000"},
			user: &models.User{
				ID:               1,
				Email:            "test@example.com",
				VerificationCode: "123456",
				CodeExpiresAt:    &expiry,
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Unknown Email",
			body:           map[string]string{"email": "nobody@example.com", "verificationCode": "123456"},
			user:           nil,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			mockRepo := new(MockUserRepository)
			mockRepo.On("GetByEmail", mock.Anything, tt.body["email"]).Return(tt.user, nil)
			if tt.expectUpdate {
				mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
					return u.IsVerified && u.VerificationCode == ""
				})).Return(nil)
			}
			s := newAuthTestServer(mockRepo)
			app.Post("/verify-otp", s.VerifyOTP)

			resp := postJSON(t, app, "/verify-otp", tt.body)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestForgotPassword_AlwaysOK(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	mockRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

	s := newAuthTestServer(mockRepo)
	app.Post("/forgot-password", s.ForgotPassword)

	resp := postJSON(t, app, "/forgot-password", map[string]string{"email": "nobody@example.com"})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLogout_BlacklistsToken(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	app := fiber.New()
	s := &Server{
		config: &config.Config{JWTSecret: "test_secret"},
		redis:  client,
	}
	app.Post("/logout", s.Logout)

	token, err := s.generateToken(1, "testuser")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	keys := mr.Keys()
	assert.Len(t, keys, 1)
	assert.Contains(t, keys[0], "blacklist:")
}

func TestLogout_WithoutTokenStillOK(t *testing.T) {
	app := fiber.New()
	s := &Server{config: &config.Config{JWTSecret: "test_secret"}}
	app.Post("/logout", s.Logout)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
