package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/frahmantamala/asset-management/internal/user"
)

// UserRepository is the narrow slice of the account store the identity
// layer needs.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

// Claims carried by every issued token. user_id and role are mandatory;
// verification rejects tokens missing either.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenGenerator mints and verifies the bearer credential.
type TokenGenerator interface {
	Generate(userID, role string) (string, error)
	Validate(tokenString string) (*Claims, error)
}

// JWTTokenGenerator signs HS256 tokens with a single symmetric secret
// configured at process start.
type JWTTokenGenerator struct {
	Secret   []byte
	TokenTTL time.Duration

	// now is swappable in tests.
	now func() time.Time
}

func NewJWTTokenGenerator(secret string, ttl time.Duration) *JWTTokenGenerator {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &JWTTokenGenerator{
		Secret:   []byte(secret),
		TokenTTL: ttl,
		now:      time.Now,
	}
}

// AuthResult is what signup and login hand back to the HTTP layer.
type AuthResult struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	Token  string `json:"token"`
}
