package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfile(ctx context.Context, userID int32) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFoundOrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, user *domain.User) error {
	current, err := s.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFoundOrUnauthorized
		}
		return err
	}

	user.Email = strings.TrimSpace(user.Email)
	if user.Email == "" {
		user.Email = current.Email
	} else if !emailRegex.MatchString(user.Email) {
		return ErrInvalidProfile
	}
	if user.Phone != "" && !phoneRegex.MatchString(user.Phone) {
		return ErrInvalidProfile
	}
	if user.ZipCode != "" && !zipRegex.MatchString(user.ZipCode) {
		return ErrInvalidProfile
	}
	if user.State != "" && !stateRegex.MatchString(user.State) {
		return ErrInvalidProfile
	}
	if user.FirstName == "" {
		user.FirstName = current.FirstName
	}
	if user.LastName == "" {
		user.LastName = current.LastName
	}

	// The password hash never travels through profile updates.
	user.PasswordHash = current.PasswordHash

	return s.userRepo.Update(ctx, user)
}
