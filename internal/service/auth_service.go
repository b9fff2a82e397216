package service

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"testprep-backend/internal/apperr"
	"testprep-backend/internal/model"
	"testprep-backend/internal/repository"
	"testprep-backend/utilities"
)

// AuthTokens is an access/refresh token pair.
type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthService interface {
	Register(email, name, password string) (*model.User, error)
	Login(email, password string) (*model.User, *AuthTokens, error)
	Refresh(refreshToken string) (*AuthTokens, error)
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Register(email, name, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperr.Validation("a valid email is required")
	}
	if len(password) < 8 {
		return nil, apperr.Validation("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:    email,
		Name:     name,
		Password: string(hash),
		Role:     model.RoleStudent,
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, err
	}

	user.Password = ""
	return user, nil
}

func (s *authService) Login(email, password string) (*model.User, *AuthTokens, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		// Do not reveal whether the email exists.
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, nil, apperr.Unauthorized("invalid credentials")
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, apperr.Unauthorized("invalid credentials")
	}

	access, refresh, err := utilities.GenerateTokens(user)
	if err != nil {
		return nil, nil, err
	}

	user.Password = ""
	return user, &AuthTokens{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *authService) Refresh(refreshToken string) (*AuthTokens, error) {
	access, refresh, err := utilities.RefreshTokens(refreshToken)
	if err != nil {
		return nil, apperr.Unauthorized("invalid or expired refresh token")
	}
	return &AuthTokens{AccessToken: access, RefreshToken: refresh}, nil
}
