package service

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/example/storefront/internal/errors"
	"github.com/example/storefront/internal/models"
	repository "github.com/example/storefront/internal/repositories"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	repo      repository.UserRepository
	rateLimit repository.RateLimitRepository
	tokenTTL  time.Duration
}

func NewUserService(repo repository.UserRepository, rateLimit repository.RateLimitRepository, tokenTTL time.Duration) *UserService {
	return &UserService{
		repo:      repo,
		rateLimit: rateLimit,
		tokenTTL:  tokenTTL,
	}
}

// Register creates a new customer account. The new cart is seeded from the
// guest cart when one is supplied, with duplicate product lines collapsed.
func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {

	existingUser, err := s.repo.GetUserByUsername(ctx, req.Username)
	if err != nil && !stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.DatabaseError("Failed to look up username").WithError(err)
	}

	if existingUser != nil {
		return nil, errors.DuplicateEntryError("Username already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.InternalError("Failed to secure password").WithError(err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
		Role:         models.RoleCustomer,
		Cart:         NormalizeLineItems(req.GuestCart),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		// Two registrations can race past the lookup above; the unique index
		// on username is the arbiter.
		if repository.IsUniqueViolation(err) {
			return nil, errors.DuplicateEntryError("Username already exists").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to create user").WithError(err)
	}

	return user, nil
}

// Login checks the credentials and hands out the session token. Bad
// credentials always produce the same message so usernames cannot be probed;
// a failed lookup is a server error, never a credentials error.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {

	allowed, _, retryAfter, err := s.rateLimit.CheckLoginRateLimit(ctx, req.Username)
	if err != nil {
		return nil, errors.InternalError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return nil, errors.TooManyRequestsError(
			fmt.Sprintf("Too many login attempts. Please try again in %d seconds.", retryAfter))
	}

	user, err := s.repo.GetUserByUsername(ctx, req.Username)
	if err != nil && !stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.DatabaseError("Failed to look up user").WithError(err)
	}

	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, errors.BadRequestError("Invalid username or password")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, errors.InternalError("Failed to generate session token").WithError(err)
	}

	return &models.LoginResponse{
		User:      user,
		Token:     token,
		ExpiresIn: int(s.tokenTTL.Seconds()),
	}, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("User not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to load user").WithError(err)
	}

	return user, nil
}

// issueToken mints the session token. There is no signing infrastructure in
// this system: the token is deliberately unsigned and a client could forge
// it. The role claim inside is what the admin gate inspects.
func (s *UserService) issueToken(user *models.User) (string, error) {

	claims := &models.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)

	return token.SignedString(jwt.UnsafeAllowNoneSignatureType)
}
