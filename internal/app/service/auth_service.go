package service

import (
	"context"
	"errors"
	"wastetrack/internal/common"
	"wastetrack/internal/common/security"
	"wastetrack/internal/domain/model"
	"wastetrack/internal/domain/repository"
	"wastetrack/internal/session"

	"go.uber.org/zap"
)

type AuthService struct {
	userRepo  repository.UserRepository
	adminRepo repository.AdminRepository
	sessions  session.Store
	logger    *zap.Logger
}

func NewAuthService(userRepo repository.UserRepository, adminRepo repository.AdminRepository, sessions session.Store, logger *zap.Logger) *AuthService {
	return &AuthService{userRepo: userRepo, adminRepo: adminRepo, sessions: sessions, logger: logger}
}

type RegisterRequest struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName string  `json:"fullName"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"` // Can be username or email for user login
	Password string `json:"password"`
}

// SessionInfo is the session probe result.
type SessionInfo struct {
	LoggedIn bool   `json:"loggedIn"`
	UserID   *int64 `json:"userId,omitempty"`
	Username string `json:"username,omitempty"`
	IsAdmin  bool   `json:"isAdmin"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" || req.FullName == "" {
		return nil, common.Errorf("missing required registration fields: %w", common.ErrBadRequest)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, common.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: hashedPassword,
		FullName:       req.FullName,
		Phone:          req.Phone,
		Address:        req.Address,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	user.HashedPassword = ""
	return user, nil
}

// LoginUser verifies the credentials and opens a session. Unknown identity and
// wrong password both come back as ErrUnauthorized so callers cannot tell
// which identities exist.
func (s *AuthService) LoginUser(ctx context.Context, req LoginRequest) (*model.User, string, error) {
	if req.Username == "" || req.Password == "" {
		return nil, "", common.ErrBadRequest
	}

	user, err := s.userRepo.FindByUsernameOrEmail(ctx, req.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", common.ErrUnauthorized
		}
		return nil, "", common.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, "", common.ErrUnauthorized
	}

	token, err := s.sessions.Create(ctx, model.Principal{
		Kind:     model.KindUser,
		ID:       user.ID,
		Username: user.Username,
	})
	if err != nil {
		return nil, "", common.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("user logged in", zap.Int64("user_id", user.ID))
	user.HashedPassword = ""
	return user, token, nil
}

func (s *AuthService) LoginAdmin(ctx context.Context, req LoginRequest) (*model.Admin, string, error) {
	if req.Username == "" || req.Password == "" {
		return nil, "", common.ErrBadRequest
	}

	admin, err := s.adminRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", common.ErrUnauthorized
		}
		return nil, "", common.Errorf("failed to find admin: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, admin.HashedPassword) {
		return nil, "", common.ErrUnauthorized
	}

	token, err := s.sessions.Create(ctx, model.Principal{
		Kind:     model.KindAdmin,
		ID:       admin.ID,
		Username: admin.Username,
	})
	if err != nil {
		return nil, "", common.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("admin logged in", zap.Int64("admin_id", admin.ID))
	admin.HashedPassword = ""
	return admin, token, nil
}

// Logout destroys the session. A missing or unknown token is still a success.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Destroy(ctx, token)
}

// Probe reports the identity bound to token, or loggedIn:false for a missing,
// unknown, or expired token.
func (s *AuthService) Probe(ctx context.Context, token string) SessionInfo {
	if token == "" {
		return SessionInfo{LoggedIn: false}
	}
	principal, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return SessionInfo{LoggedIn: false}
	}

	info := SessionInfo{
		LoggedIn: true,
		Username: principal.Username,
		IsAdmin:  principal.IsAdmin(),
	}
	if principal.Kind == model.KindUser {
		id := principal.ID
		info.UserID = &id
	}
	return info
}
