package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"github.com/frahmantamala/rbac-service/internal/user"
)

// TokenTypeBearer is the fixed token-type marker returned with every pair.
const TokenTypeBearer = "bearer"

// TokenKind discriminates access from refresh tokens. Both are structurally
// identical claim bundles; only lifetime and usage context differ.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// Claims is the signed claim bundle carried by every token.
type Claims struct {
	UserID string    `json:"user_id"`
	Email  string    `json:"email"`
	Kind   TokenKind `json:"token_kind"`
	jwt.RegisteredClaims
}

// TokenPair is issued on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// TokenGenerator creates and verifies signed tokens. Verification is a pure
// function of (token, key, current time); it never consults the store.
type TokenGenerator interface {
	GenerateAccessToken(userID string, email string) (token string, err error)
	GenerateRefreshToken(userID string, email string) (token string, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

// UserRepository is the read surface the session manager needs. Lookups return
// the user with roles and permissions already materialized.
type UserRepository interface {
	GetByID(userID int64) (*user.User, error)
	GetByEmail(email string) (*user.User, error)
	GetByUsername(username string) (*user.User, error)
	Create(u *user.User) error
	EmailExists(email string) (bool, error)
	UsernameExists(username string) (bool, error)
}

// ServiceAPI is the surface the transport layer consumes.
type ServiceAPI interface {
	Login(dto LoginDTO) (TokenPair, error)
	RefreshTokens(refreshToken string) (TokenPair, error)
	Register(dto RegisterDTO) (*user.User, error)
	Logout()
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetUserWithRoles(userID int64) (*user.User, error)
	HashPassword(password string) (string, error)
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUsernameTaken      = errors.New("username is already taken")
)
