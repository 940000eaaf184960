package service

import (
	"errors"
	"strings"
	"time"

	"github.com/finance-tracker/internal/config"
	"github.com/finance-tracker/internal/models"
	"github.com/finance-tracker/internal/repository"
	"github.com/finance-tracker/pkg/crypto"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
	ErrNoProfileUpdates   = errors.New("no valid updates provided")
)

// AuthService handles registration, login, token validation, and
// profile operations
type AuthService struct {
	userRepo  *repository.UserRepository
	jwtConfig config.JWTConfig
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo *repository.UserRepository, jwtConfig config.JWTConfig) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtConfig: jwtConfig,
	}
}

// RegisterRequest represents the registration request
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=100"`
}

// LoginRequest represents the login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries the profile fields a user may change.
// Email and role are immutable through this surface.
type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
	Currency string `json:"currency"`
}

// ListUsersRequest represents the admin user-listing request
type ListUsersRequest struct {
	Search string
	Role   models.Role
	Page   int
	Limit  int
}

// JWTClaims represents the JWT claims attached to every bearer token
type JWTClaims struct {
	UserID uint        `json:"user_id"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Register creates a new user and returns it with a signed token
func (s *AuthService) Register(req *RegisterRequest) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepo.ExistsByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", ErrEmailTaken
	}

	passwordHash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         models.RoleUser,
		Currency:     "USD",
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, "", err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login authenticates a user and returns it with a signed token
func (s *AuthService) Login(req *LoginRequest) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !crypto.CheckPassword(req.Password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// ValidateToken validates a JWT token and returns the claims
func (s *AuthService) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtConfig.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// Authenticate resolves a bearer token to a live user record. A token
// whose subject no longer exists is rejected.
func (s *AuthService) Authenticate(tokenString string) (*models.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

// GetUserByID retrieves a user by ID
func (s *AuthService) GetUserByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies the allowed profile fields for the user
func (s *AuthService) UpdateProfile(userID uint, req *UpdateProfileRequest) (*models.User, error) {
	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = strings.TrimSpace(req.Name)
	}
	if req.Avatar != "" {
		updates["avatar"] = req.Avatar
	}
	if req.Currency != "" {
		updates["currency"] = req.Currency
	}

	if len(updates) == 0 {
		return nil, ErrNoProfileUpdates
	}

	user, err := s.userRepo.UpdateFields(userID, updates)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListUsers retrieves users for the admin listing
func (s *AuthService) ListUsers(req *ListUsersRequest) ([]models.User, int64, error) {
	return s.userRepo.ListPaginated(req.Search, req.Role, req.Page, req.Limit)
}

// generateToken signs a JWT for a user
func (s *AuthService) generateToken(user *models.User) (string, error) {
	expiresIn := time.Duration(s.jwtConfig.ExpireHours) * time.Hour

	claims := &JWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "finance-tracker",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtConfig.Secret))
}
