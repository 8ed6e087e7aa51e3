package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// User owns exactly one cart, embedded in its record. The cart is emptied
// (not deleted) when an order is placed from it.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username" validate:"required"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	Cart         []LineItem `json:"cart"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6"`
	// Cart accumulated before the account existed; seeds the new user's cart.
	GuestCart []LineItem `json:"guest_cart,omitempty" validate:"omitempty,dive"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	User      *User  `json:"user"`
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// Claims ride in the login token. The token is issued unsigned and is a
// forgeable stand-in, not a security mechanism.
type Claims struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Role     Role      `json:"role"`
	jwt.RegisteredClaims
}
