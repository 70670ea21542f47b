package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/glon/summercourse/internal/app/models"
	"github.com/glon/summercourse/internal/app/models/dto"
	"github.com/glon/summercourse/internal/pkg/apperrors"
	"github.com/glon/summercourse/internal/pkg/auth"
	"github.com/glon/summercourse/internal/pkg/validation"
)

// AuthService handles authentication operations
type AuthService struct {
	users      UserStore
	tokens     TokenStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserStore, tokens TokenStore, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		jwtService: jwtService,
		logger:     logger,
	}
}

// RegisterStudent creates a student account with its profile record
func (s *AuthService) RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validation.IsValidEmail(email) {
		return nil, apperrors.NewBadRequestError("El correo electrónico no es válido")
	}
	if !validation.IsValidIDCard(req.IDCard) {
		return nil, apperrors.NewBadRequestError("La cédula debe contener entre 6 y 10 dígitos")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:    email,
		Password: hashed,
		Role:     models.RoleStudent,
	}
	student := &models.Student{
		Name:     strings.TrimSpace(req.Name),
		LastName: strings.TrimSpace(req.LastName),
		IDCard:   strings.TrimSpace(req.IDCard),
		Age:      req.Age,
		Major:    strings.TrimSpace(req.Major),
		Semester: req.Semester,
	}

	if err := s.users.CreateWithStudent(ctx, user, student); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrEmailAlreadyExists):
			return nil, apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "El correo ya está registrado")
		case errors.Is(err, apperrors.ErrIDCardAlreadyExists):
			return nil, apperrors.NewCustomError(apperrors.ErrIDCardAlreadyExists, "La cédula ya está registrada")
		default:
			return nil, fmt.Errorf("error registering student: %w", err)
		}
	}

	s.logger.Info().Int64("userID", user.ID).Str("email", user.Email).Msg("Student registered")
	return user, nil
}

// Login authenticates credentials and issues a token pair
func (s *AuthService) Login(ctx context.Context, email, password string) (*dto.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Credenciales inválidas")
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Credenciales inválidas")
	}

	return s.issueTokens(ctx, user)
}

// RefreshToken rotates a refresh token and issues a new token pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, err := s.tokens.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrTokenNotFound, apperrors.ErrTokenRevoked, apperrors.ErrTokenExpired) {
			return nil, apperrors.NewCustomError(err, "El token de sesión no es válido")
		}
		return nil, fmt.Errorf("error validating refresh token: %w", err)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving user for token: %w", err)
	}

	// Rotate: the presented token is revoked before a new pair is issued
	if err := s.tokens.RevokeToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("error revoking refresh token: %w", err)
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the presented refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.tokens.RevokeToken(ctx, refreshToken); err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			return apperrors.NewCustomError(apperrors.ErrTokenNotFound, "El token de sesión no existe")
		}
		return fmt.Errorf("error revoking refresh token: %w", err)
	}
	return nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, _, _, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	expiry := s.jwtService.GetRefreshTokenExpiry()
	if err := s.tokens.CreateToken(ctx, refreshToken, user.ID, expiry); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	summary := &dto.UserSummary{
		ID:    user.ID,
		Email: user.Email,
		Role:  string(user.Role),
	}
	if user.Student != nil {
		summary.Name = user.Student.FullName()
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         summary,
	}, nil
}
