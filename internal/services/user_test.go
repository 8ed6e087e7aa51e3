package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	appErrors "github.com/example/storefront/internal/errors"
	"github.com/example/storefront/internal/models"
	service "github.com/example/storefront/internal/services"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testTokenTTL = time.Hour

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Cart Seeded From Guest Cart", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockRateLimit := new(MockRateLimitRepository)
		userService := service.NewUserService(mockUserRepo, mockRateLimit, testTokenTTL)

		productA := uuid.New()
		guestCart := []models.LineItem{
			lineItem(productA, "Keyboard", 49.99, 2),
			lineItem(productA, "Keyboard", 49.99, 3),
		}

		mockUserRepo.On("GetUserByUsername", ctx, "alice").Return(nil, sql.ErrNoRows).Once()
		mockUserRepo.On("CreateUser", ctx, mock.AnythingOfType("*models.User")).Return(nil).Once()

		user, err := userService.Register(ctx, &models.RegisterRequest{
			Username:  "alice",
			Password:  "correct horse battery",
			GuestCart: guestCart,
		})

		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, models.RoleCustomer, user.Role)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse battery")))

		// Duplicate guest lines collapse into one.
		require.Len(t, user.Cart, 1)
		assert.Equal(t, 5, user.Cart[0].Quantity)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("Failure - Username Already Taken", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockRateLimit := new(MockRateLimitRepository)
		userService := service.NewUserService(mockUserRepo, mockRateLimit, testTokenTTL)

		taken := &models.User{ID: uuid.New(), Username: "alice"}

		mockUserRepo.On("GetUserByUsername", ctx, "alice").Return(taken, nil).Once()

		user, err := userService.Register(ctx, &models.RegisterRequest{
			Username: "alice",
			Password: "whatever",
		})

		assert.Nil(t, user)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDuplicateEntry, appErr.Code)
		mockUserRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Lookup Error Surfaces As Server Error", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockRateLimit := new(MockRateLimitRepository)
		userService := service.NewUserService(mockUserRepo, mockRateLimit, testTokenTTL)

		dbError := errors.New("connection refused")

		mockUserRepo.On("GetUserByUsername", ctx, "alice").Return(nil, dbError).Once()

		user, err := userService.Register(ctx, &models.RegisterRequest{
			Username: "alice",
			Password: "whatever",
		})

		assert.Nil(t, user)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
		assert.ErrorIs(t, err, dbError)
		mockUserRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Lost Insert Race Maps To Duplicate", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockRateLimit := new(MockRateLimitRepository)
		userService := service.NewUserService(mockUserRepo, mockRateLimit, testTokenTTL)

		mockUserRepo.On("GetUserByUsername", ctx, "alice").Return(nil, sql.ErrNoRows).Once()
		mockUserRepo.On("CreateUser", ctx, mock.AnythingOfType("*models.User")).
			Return(&pq.Error{Code: "23505"}).Once()

		user, err := userService.Register(ctx, &models.RegisterRequest{
			Username: "alice",
			Password: "whatever",
		})

		assert.Nil(t, user)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDuplicateEntry, appErr.Code)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("open sesame"), bcrypt.MinCost)
	require.NoError(t, err)

	storedUser := &models.User{
		ID:           uuid.New(),
		Username:     "alice",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}

	t.Run("Success - Token Carries Identity And Role", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockRateLimit := new(MockRateLimitRepository)
		userService := service.NewUserService(mockUserRepo, mockRateLimit, testTokenTTL)

		mockRateLimit.On("CheckLoginRateLimit", ctx, "alice").Return(true, 4, 0, nil).Once()
		mockUserRepo.On("GetUserByUsername", ctx, "alice").Return(storedUser, nil).Once()

		resp, err := userService.Login(ctx, &models.LoginRequest{Username: "alice", Password: "open sesame"})

		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, storedUser, resp.User)
		assert.Equal(t, int(testTokenTTL.Seconds()), resp.ExpiresIn)

		claims := &models.Claims{}
		parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodNone.Alg()}))
		_, err = parser.ParseWithClaims(resp.Token, claims, func(t *jwt.Token) (interface{}, error) {
			return jwt.UnsafeAllowNoneSignatureType, nil
		})
		require.NoError(t, err)
		assert.Equal(t, storedUser.ID, claims.UserID)
		assert.Equal(t, models.RoleAdmin, claims.Role)
	})

	t.Run("Failure - Wrong Password And Unknown User Look Identical", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockRateLimit := new(MockRateLimitRepository)
		userService := service.NewUserService(mockUserRepo, mockRateLimit, testTokenTTL)

		mockRateLimit.On("CheckLoginRateLimit", ctx, mock.Anything).Return(true, 4, 0, nil).Twice()
		mockUserRepo.On("GetUserByUsername", ctx, "alice").Return(storedUser, nil).Once()
		mockUserRepo.On("GetUserByUsername", ctx, "nobody").Return(nil, sql.ErrNoRows).Once()

		_, wrongPassErr := userService.Login(ctx, &models.LoginRequest{Username: "alice", Password: "guess"})
		_, unknownUserErr := userService.Login(ctx, &models.LoginRequest{Username: "nobody", Password: "guess"})

		require.Error(t, wrongPassErr)
		require.Error(t, unknownUserErr)
		assert.Equal(t, wrongPassErr.Error(), unknownUserErr.Error())

		appErr, ok := appErrors.IsAppError(wrongPassErr)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
	})

	t.Run("Failure - Lookup Error Is A Server Error, Not Bad Credentials", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockRateLimit := new(MockRateLimitRepository)
		userService := service.NewUserService(mockUserRepo, mockRateLimit, testTokenTTL)

		dbError := errors.New("connection refused")

		mockRateLimit.On("CheckLoginRateLimit", ctx, "alice").Return(true, 4, 0, nil).Once()
		mockUserRepo.On("GetUserByUsername", ctx, "alice").Return(nil, dbError).Once()

		resp, err := userService.Login(ctx, &models.LoginRequest{Username: "alice", Password: "open sesame"})

		assert.Nil(t, resp)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
		assert.GreaterOrEqual(t, appErr.StatusCode, 500, "an infrastructure failure must not read as bad credentials")
		assert.NotEqual(t, "Invalid username or password", appErr.Message)
		assert.ErrorIs(t, err, dbError)
	})

	t.Run("Failure - Rate Limited", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockRateLimit := new(MockRateLimitRepository)
		userService := service.NewUserService(mockUserRepo, mockRateLimit, testTokenTTL)

		mockRateLimit.On("CheckLoginRateLimit", ctx, "alice").Return(false, 0, 42, nil).Once()

		resp, err := userService.Login(ctx, &models.LoginRequest{Username: "alice", Password: "open sesame"})

		assert.Nil(t, resp)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeTooManyRequests, appErr.Code)
		mockUserRepo.AssertNotCalled(t, "GetUserByUsername", mock.Anything, mock.Anything)
	})
}
