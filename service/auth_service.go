package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lexassist-backend/auth"
	"lexassist-backend/models"
	"lexassist-backend/notify"
	"lexassist-backend/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService handles registration, login and profile management.
type AuthService struct {
	userRepo repository.UserRepository
	jwt      *auth.JWTService
	notifier *notify.Notifier
}

// AuthServiceOption is a functional option for AuthService
type AuthServiceOption func(*AuthService)

// AuthWithUserRepository sets the user repository
func AuthWithUserRepository(repo repository.UserRepository) AuthServiceOption {
	return func(s *AuthService) {
		s.userRepo = repo
	}
}

// AuthWithJWTService sets the token service
func AuthWithJWTService(jwt *auth.JWTService) AuthServiceOption {
	return func(s *AuthService) {
		s.jwt = jwt
	}
}

// AuthWithNotifier sets the notifier
func AuthWithNotifier(n *notify.Notifier) AuthServiceOption {
	return func(s *AuthService) {
		s.notifier = n
	}
}

// NewAuthService creates a new auth service
func NewAuthService(opts ...AuthServiceOption) *AuthService {
	s := &AuthService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
	Role     models.UserRole
}

// RegisterResult represents the result of a registration
type RegisterResult struct {
	User *models.User
}

// Register creates a new account with zeroed stats and sends exactly
// one welcome email. The email is best-effort: a delivery failure does
// not roll back account creation.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	if s.userRepo == nil {
		return nil, errors.New("user repository not set")
	}

	role := req.Role
	if role == "" {
		role = models.RoleLitigant
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailInUse
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         role,
		Stats:        models.UserStats{},
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	if s.notifier != nil {
		s.notifier.SendAsync(notify.BuildWelcomeEmail(user.Email, user.Name))
	}

	return &RegisterResult{User: user}, nil
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string
	Password string
}

// LoginResult represents a successful login
type LoginResult struct {
	User  *models.User
	Token string
}

// Login exchanges credentials for a session token.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if s.userRepo == nil {
		return nil, errors.New("user repository not set")
	}
	if s.jwt == nil {
		return nil, errors.New("jwt service not set")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResult{User: user, Token: token}, nil
}

// GetProfile retrieves a user's profile.
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	if s.userRepo == nil {
		return nil, errors.New("user repository not set")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies a shallow profile update. Only the display
// name is client-mutable; concurrent updates are last-write-wins.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, name string) (*models.User, error) {
	if s.userRepo == nil {
		return nil, errors.New("user repository not set")
	}

	if name != "" {
		if err := s.userRepo.UpdateName(ctx, userID, name); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	return s.GetProfile(ctx, userID)
}
