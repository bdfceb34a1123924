package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"digimart/internal/model"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func newTestContext() echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestCurrentUser(t *testing.T) {
	t.Run("resolves the user freshly from the store", func(t *testing.T) {
		userID := uuid.New()
		mockRepo := new(MockUserRepository)
		// the token predates the promotion; the store has the current flag
		mockRepo.On("FindByID", mock.Anything, userID).Return(&model.User{
			ID:      userID,
			Email:   "buyer@example.com",
			IsAdmin: true,
		}, nil)

		c := newTestContext()
		c.Set("user", &Claims{UserID: userID.String(), Email: "buyer@example.com", IsAdmin: false})

		err := CurrentUser(mockRepo)(okHandler)(c)
		assert.NoError(t, err)

		user, ok := UserFromContext(c)
		assert.True(t, ok)
		assert.True(t, user.IsAdmin)
	})

	t.Run("missing claims", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		c := newTestContext()

		err := CurrentUser(mockRepo)(okHandler)(c)
		he, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	})

	t.Run("user no longer exists", func(t *testing.T) {
		userID := uuid.New()
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		c := newTestContext()
		c.Set("user", &Claims{UserID: userID.String()})

		err := CurrentUser(mockRepo)(okHandler)(c)
		he, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Run("admin passes", func(t *testing.T) {
		c := newTestContext()
		c.Set(ContextUserKey, &model.User{ID: uuid.New(), IsAdmin: true})

		err := RequireAdmin(okHandler)(c)
		assert.NoError(t, err)
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		c := newTestContext()
		c.Set(ContextUserKey, &model.User{ID: uuid.New(), IsAdmin: false})

		err := RequireAdmin(okHandler)(c)
		he, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusForbidden, he.Code)
	})

	t.Run("unauthenticated caller", func(t *testing.T) {
		c := newTestContext()

		err := RequireAdmin(okHandler)(c)
		he, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	})
}
