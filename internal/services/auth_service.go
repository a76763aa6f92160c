package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"taxidesk/internal/models"
	"taxidesk/internal/repositories/interfaces"
	"taxidesk/internal/utils"
	"taxidesk/pkg/logger"
)

var (
	ErrInvalidCredentials = errors.New(utils.ErrInvalidCredentials)
	ErrUserInactive       = errors.New("user account is inactive")
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

type CreateUserRequest struct {
	Name     string              `json:"name" binding:"required"`
	Email    string              `json:"email" binding:"required,email"`
	Password string              `json:"password" binding:"required,min=8"`
	Role     models.CreatorRole  `json:"role" binding:"required"`
	VendorID *primitive.ObjectID `json:"vendor_id"`
}

type AuthService struct {
	users     interfaces.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    *logger.Logger
}

func NewAuthService(users interfaces.UserRepository, jwtSecret string, tokenTTL time.Duration, log *logger.Logger) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    log.WithField("service", "auth"),
	}
}

// Login verifies the credentials and issues a session token. Vendor logins get
// their vendor id baked into the claims so every later query is scoped.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.Status != models.UserStatusActive {
		return nil, ErrUserInactive
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	vendorID := ""
	if user.VendorID != nil {
		vendorID = user.VendorID.Hex()
	}
	token, err := utils.GenerateToken(s.jwtSecret, user.ID.Hex(), string(user.Role), vendorID, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.WithError(err).Warn("failed to record last login")
	}

	s.logger.WithFields(map[string]interface{}{
		"user": user.Email,
		"role": user.Role,
	}).Info("user logged in")

	return &LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(s.tokenTTL),
		User:      user,
	}, nil
}

// CreateUser registers a dashboard login with a hashed password.
func (s *AuthService) CreateUser(ctx context.Context, req *CreateUserRequest) (*models.User, error) {
	if !req.Role.Valid() {
		return nil, errors.New("invalid role")
	}
	if req.Role == models.RoleVendor && req.VendorID == nil {
		return nil, errors.New("vendor users require a vendor id")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Role:     req.Role,
		VendorID: req.VendorID,
		Status:   models.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword rotates a user's password after verifying the current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID primitive.ObjectID, current, next string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)) != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.Update(ctx, userID, map[string]interface{}{"password": string(hash)})
}

func (s *AuthService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}
