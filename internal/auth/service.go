package auth

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/core/storage"
	"github.com/frahmantamala/asset-management/internal/core/validation"
	"github.com/frahmantamala/asset-management/internal/user"
)

// Service is the identity layer: credential hashing, signup, login, and
// token issuance.
type Service struct {
	userRepo       UserRepository
	tokenGenerator TokenGenerator
	emailDomain    string
	bcryptCost     int
	logger         *slog.Logger
}

func NewService(userRepo UserRepository, tokenGen TokenGenerator, emailDomain string, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo:       userRepo,
		tokenGenerator: tokenGen,
		emailDomain:    emailDomain,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

// Signup registers a new account and mints a token for it. Every account
// created through signup has the regular user role.
func (s *Service) Signup(ctx context.Context, dto SignupDTO) (*AuthResult, error) {
	if err := s.validateSignup(dto); err != nil {
		return nil, err
	}

	email := strings.ToLower(dto.Email)

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, internal.ErrUserExists
	} else if !stderrors.Is(err, storage.ErrNotFound) {
		s.logger.Error("signup: email lookup failed", "error", err)
		return nil, internal.ErrDatabaseOperation.WithCause(err)
	}

	hash, err := s.HashPassword(dto.Password)
	if err != nil {
		return nil, internal.ErrSystem.WithCause(err)
	}

	now := time.Now().UTC()
	u := &user.User{
		ID:           uuid.NewString(),
		Name:         dto.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         internal.RoleUser,
		Department:   dto.Department,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		// A concurrent signup with the same email wins the race at the
		// unique index; the store's duplicate-key signal is authoritative.
		if stderrors.Is(err, storage.ErrDuplicateKey) {
			return nil, internal.ErrUserExists
		}
		s.logger.Error("signup: insert failed", "error", err, "email", email)
		return nil, internal.ErrDatabaseOperation.WithCause(err)
	}

	token, err := s.tokenGenerator.Generate(u.ID, u.Role)
	if err != nil {
		s.logger.Error("signup: token mint failed", "error", err, "user_id", u.ID)
		return nil, internal.ErrSystem.WithCause(err)
	}

	s.logger.Info("user signed up", "user_id", u.ID, "department", u.Department)
	return &AuthResult{UserID: u.ID, Role: u.Role, Token: token}, nil
}

// Login authenticates and mints a token. A missing account and a wrong
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (*AuthResult, error) {
	if dto.Email == "" {
		return nil, internal.NewValidationError("email is required", internal.CodeMissingField)
	}
	if dto.Password == "" {
		return nil, internal.NewValidationError("password is required", internal.CodeMissingField)
	}

	u, err := s.userRepo.GetByEmail(ctx, strings.ToLower(dto.Email))
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return nil, internal.ErrInvalidCredentials
		}
		s.logger.Error("login: email lookup failed", "error", err)
		return nil, internal.ErrDatabaseOperation.WithCause(err)
	}

	if !s.CheckPassword(dto.Password, u.PasswordHash) {
		return nil, internal.ErrInvalidCredentials
	}

	token, err := s.tokenGenerator.Generate(u.ID, u.Role)
	if err != nil {
		s.logger.Error("login: token mint failed", "error", err, "user_id", u.ID)
		return nil, internal.ErrSystem.WithCause(err)
	}

	s.logger.Info("user logged in", "user_id", u.ID)
	return &AuthResult{UserID: u.ID, Role: u.Role, Token: token}, nil
}

// ValidateToken verifies a bearer token and returns its claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.Validate(tokenString)
}

// HashPassword creates a bcrypt hash with a per-password random salt.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword verifies a password against the stored hash in constant
// time.
func (s *Service) CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *Service) validateSignup(dto SignupDTO) error {
	if err := validation.Name(dto.Name); err != nil {
		return err
	}
	if err := validation.Email(dto.Email, s.emailDomain); err != nil {
		return err
	}
	if err := validation.Password(dto.Password); err != nil {
		return err
	}
	if err := validation.Department(dto.Department); err != nil {
		return err
	}
	return nil
}

// Generate mints an HS256 token whose expiry is one TTL after issuance.
func (j *JWTTokenGenerator) Generate(userID, role string) (string, error) {
	issuedAt := j.now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(j.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a token, returning distinct errors for
// expiry, bad signature or shape, and missing required claims.
func (j *JWTTokenGenerator) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	}, jwt.WithTimeFunc(j.now))

	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrExpiredToken
		}
		return nil, internal.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, internal.ErrInvalidToken
	}
	if claims.UserID == "" || claims.Role == "" {
		return nil, internal.ErrInvalidTokenPayload
	}

	return claims, nil
}
