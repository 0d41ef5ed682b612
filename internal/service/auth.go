package service

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
	"toolshare-backend/internal/security"
)

var (
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidProfile     = errors.New("invalid profile field")
)

var (
	emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)
	phoneRegex = regexp.MustCompile(`^\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}$`)
	zipRegex   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	stateRegex = regexp.MustCompile(`^[A-Z]{2}$`)
)

type authService struct {
	userRepo     repository.UserRepository
	tokenManager security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokenManager security.TokenManager) AuthService {
	return &authService{
		userRepo:     userRepo,
		tokenManager: tokenManager,
	}
}

func (s *authService) Register(ctx context.Context, email, password, firstName, lastName, phone, zipCode string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || firstName == "" || lastName == "" {
		return nil, ErrInvalidProfile
	}
	if !emailRegex.MatchString(email) {
		return nil, ErrInvalidProfile
	}
	if phone != "" && !phoneRegex.MatchString(phone) {
		return nil, ErrInvalidProfile
	}
	if zipCode != "" && !zipRegex.MatchString(zipCode) {
		return nil, ErrInvalidProfile
	}
	if len(password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        phone,
		ZipCode:      zipCode,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !security.CheckPassword(user.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokenManager.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
