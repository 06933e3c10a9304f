package auth

import (
	"log/slog"
	"strconv"

	"github.com/frahmantamala/rbac-service/internal/user"
)

// Service is the session manager: it verifies credentials, issues token pairs
// and resolves token subjects. It never mutates user, role or permission rows.
type Service struct {
	userRepo       UserRepository
	tokenGenerator TokenGenerator
	bcryptCost     int
	logger         *slog.Logger
}

func NewService(userRepo UserRepository, tokenGen TokenGenerator, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		userRepo:       userRepo,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

// Login verifies credentials and returns a fresh token pair. Unknown email and
// wrong password both map to ErrInvalidCredentials; only after the credential
// check succeeds does the inactive state become visible.
func (s *Service) Login(dto LoginDTO) (TokenPair, error) {
	if err := dto.Validate(); err != nil {
		return TokenPair{}, err
	}

	u, err := s.userRepo.GetByEmail(dto.Email)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}

	if err := VerifyPassword(u.PasswordHash, dto.Password); err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}

	if !u.IsActiveUser() {
		return TokenPair{}, ErrAccountInactive
	}

	return s.issuePair(u)
}

// RefreshTokens validates a refresh token and rotates the pair. The old
// refresh token is not invalidated server-side: tokens are stateless, there is
// no revocation store, and both remain valid until natural expiry.
func (s *Service) RefreshTokens(refreshToken string) (TokenPair, error) {
	claims, err := s.tokenGenerator.ValidateToken(refreshToken)
	if err != nil {
		return TokenPair{}, err
	}

	if claims.Kind != TokenKindRefresh {
		return TokenPair{}, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return TokenPair{}, ErrInvalidToken
	}

	// A vanished subject reports as an invalid token so callers cannot tell a
	// deleted account from a forged token.
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return TokenPair{}, ErrInvalidToken
	}

	if !u.IsActiveUser() {
		return TokenPair{}, ErrAccountInactive
	}

	return s.issuePair(u)
}

// Logout is a stateless acknowledgement. Without a revocation store,
// already-issued tokens stay valid until they expire.
func (s *Service) Logout() {}

// Register creates a new active account with no roles assigned.
func (s *Service) Register(dto RegisterDTO) (*user.User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.userRepo.EmailExists(dto.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	taken, err = s.userRepo.UsernameExists(dto.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		Email:        dto.Email,
		Username:     dto.Username,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.userRepo.Create(u); err != nil {
		s.logger.Error("failed to create user", "email", dto.Email, "error", err)
		return nil, err
	}

	return u, nil
}

// ValidateAccessToken verifies the token and requires the access kind; refresh
// tokens are not usable as access tokens.
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	claims, err := s.tokenGenerator.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Kind != TokenKindAccess {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GetUserWithRoles loads the subject with roles and permissions materialized.
func (s *Service) GetUserWithRoles(userID int64) (*user.User, error) {
	return s.userRepo.GetByID(userID)
}

// HashPassword hashes with the service's configured cost.
func (s *Service) HashPassword(password string) (string, error) {
	return HashPassword(password, s.bcryptCost)
}

func (s *Service) issuePair(u *user.User) (TokenPair, error) {
	userID := strconv.FormatInt(u.ID, 10)

	accessToken, err := s.tokenGenerator.GenerateAccessToken(userID, u.Email)
	if err != nil {
		return TokenPair{}, err
	}

	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(userID, u.Email)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    TokenTypeBearer,
	}, nil
}
