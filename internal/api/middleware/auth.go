package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/storefront/internal/errors"
	"github.com/example/storefront/internal/models"
	"github.com/example/storefront/internal/utils/response"
	"github.com/golang-jwt/jwt/v5"
)

type userContextKey string

// UserContextKey holds the claims of the presented token.
const UserContextKey = userContextKey("user")

// AuthMiddleware gates the admin-only product mutations. The session token
// is an unsigned placeholder, so this is a capability check on the role
// claim, not a security mechanism: anyone able to mint a token with the
// admin marker gets through. The surrounding contract (role-gated mutation,
// Forbidden otherwise) is what the rest of the system relies on.
type AuthMiddleware struct{}

func NewAuthMiddleware() *AuthMiddleware {
	return &AuthMiddleware{}
}

func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		claims, err := m.parseToken(r)
		if err != nil {
			logger.Warn("Admin access denied", slog.String("error", err.Error()))
			response.Error(w, errors.ForbiddenError("Access denied. Admin required."))

			return
		}

		if claims.Role != models.RoleAdmin {
			logger.Warn("Admin access denied for non-admin role",
				slog.String("userId", claims.UserID.String()),
				slog.String("role", string(claims.Role)))
			response.Error(w, errors.ForbiddenError("Access denied. Admin required."))

			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func (m *AuthMiddleware) parseToken(r *http.Request) (*models.Claims, error) {

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, errors.ForbiddenError("Authorization header is required")
	}

	// Token is of format: "Bearer <token>"
	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return nil, errors.ForbiddenError("Invalid authorization format")
	}

	claims := &models.Claims{}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodNone.Alg()}))

	token, err := parser.ParseWithClaims(tokenParts[1], claims, func(t *jwt.Token) (any, error) {
		return jwt.UnsafeAllowNoneSignatureType, nil
	})
	if err != nil {
		return nil, errors.ForbiddenError("Invalid or expired token").WithError(err)
	}

	if !token.Valid {
		return nil, errors.ForbiddenError("Invalid token")
	}

	return claims, nil
}
