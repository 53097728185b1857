package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"mySmartShop/domain"
	"mySmartShop/pkg/logger"
	"mySmartShop/pkg/utils"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

type userService struct {
	userRepo UserRepository
}

func NewUserService(userRepo UserRepository) *userService {
	return &userService{
		userRepo: userRepo,
	}
}

func (s *userService) Register(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when register user")
		return fmt.Errorf("context error: %w", err)
	}

	if _, err := s.userRepo.FindByEmail(ctx, user.Email); err == nil {
		logger.Error("email already registered", "email", user.Email)
		return errors.New("email already registered")
	}

	hashed, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("failed to hash password", err)
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)

	if user.Role == "" {
		user.Role = "operator"
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.Error("failed to create user", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("user registered", "email", user.Email, "role", user.Role)

	return nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when login")
		return "", fmt.Errorf("context error: %w", err)
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("login with unknown email", "email", email)
		return "", errors.New("invalid email or password")
	}

	if !utils.CheckPassword(password, user.Password) {
		logger.Error("login with wrong password", "email", email)
		return "", errors.New("invalid email or password")
	}

	token, err := utils.GenerateJWT(strconv.FormatUint(uint64(user.ID), 10), user.Role)
	if err != nil {
		logger.Error("failed to generate token", err)
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return token, nil
}
