package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"conectacg_backend/internal/apperrors"
	"conectacg_backend/internal/auth"
	"conectacg_backend/internal/models"
	"conectacg_backend/internal/repositories"
	"conectacg_backend/internal/services/dto"

	"gorm.io/gorm"
)

// earlyAdopterLimit is the signup count under which the EARLY_ADOPTER badge
// is still handed out.
const earlyAdopterLimit = 100

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(refreshToken string) (*dto.TokenPairResponse, error)
	Logout(userID string) error
	Me(userID string) (*dto.UserResponse, error)
}

type authService struct {
	users repositories.UserRepository

	analytics repositories.AnalyticsRepository
}

func NewAuthService(users repositories.UserRepository, analytics repositories.AnalyticsRepository) AuthService {
	return &authService{users: users, analytics: analytics}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.New(apperrors.CodeWeakPassword, "A senha deve ter pelo menos 8 caracteres", http.StatusBadRequest)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.users.FindByEmail(email); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.InternalError(err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: hash,
		Role:     models.UserRoleUser,
		Address:  req.Address,
	}
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	if count, err := s.users.Count(); err == nil && count <= earlyAdopterLimit {
		bestEffort(ctx, "early adopter badge", func() error {
			return s.users.AwardBadge(user.ID, models.BadgeEarlyAdopter)
		})
	}

	if req.ReferralCode != nil && *req.ReferralCode != "" {
		bestEffort(ctx, "referral row", func() error {
			referrer, err := s.users.FindByID(*req.ReferralCode)
			if err != nil {
				return err
			}
			return s.users.CreateReferral(&models.Referral{
				ReferrerID: referrer.ID,
				ReferredID: user.ID,
			})
		})
	}

	recordEvent(ctx, s.analytics, models.EventSignupCompleted, &user.ID)

	return s.issueTokens(user, "")
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !auth.CheckPasswordHash(req.Password, user.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	providerID := ""
	membership, err := s.users.FindProviderMembership(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if membership != nil {
		providerID = membership.ProviderID
	}

	recordEvent(ctx, s.analytics, models.EventLogin, &user.ID)

	return s.issueTokens(user, providerID)
}

// Refresh rotates the token pair. The presented refresh token must match the
// one stored for the user; anything else is an invalid-token 401.
func (s *authService) Refresh(refreshToken string) (*dto.TokenPairResponse, error) {
	userID, err := auth.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		return nil, apperrors.ErrInvalidToken
	}

	providerID := ""
	if membership, err := s.users.FindProviderMembership(user.ID); err == nil && membership != nil {
		providerID = membership.ProviderID
	}

	access, err := auth.SignAccessToken(user.ID, string(user.Role), providerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	refresh, err := auth.SignRefreshToken(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.users.SetRefreshToken(user.ID, &refresh); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.TokenPairResponse{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *authService) Logout(userID string) error {
	if err := s.users.SetRefreshToken(userID, nil); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *authService) Me(userID string) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, notFoundOr(err, apperrors.ErrUserNotFound)
	}
	resp := userResponse(user)
	return &resp, nil
}

func (s *authService) issueTokens(user *models.User, providerID string) (*dto.AuthResponse, error) {
	access, err := auth.SignAccessToken(user.ID, string(user.Role), providerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	refresh, err := auth.SignRefreshToken(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.users.SetRefreshToken(user.ID, &refresh); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		User:         userResponse(user),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func userResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
	}
}
