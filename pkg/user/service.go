package user

import (
	"context"
	"fmt"

	"github.com/hotspot-events/hotspot/internal/errdef"
	"github.com/hotspot-events/hotspot/pkg/model"
)

func NewService(repository userRepository) *Service {
	return &Service{repository: repository}
}

type userRepository interface {
	create(ctx context.Context, user *model.User) error
	findByEmail(ctx context.Context, email string) (*model.User, error)
	findById(ctx context.Context, id uint) (*model.User, error)
}

type Service struct {
	repository userRepository
}

func (s Service) SignUp(ctx context.Context, email string, password string) (*model.User, error) {
	hashedPassword, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("password hashing failed: %v", err)
	}

	user := &model.User{
		Email:    email,
		Password: hashedPassword,
	}

	if err := s.repository.create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

const unauthorizedError = "invalid email and password combination"

func (s Service) SignIn(ctx context.Context, email string, password string) (*model.User, error) {
	user, err := s.repository.findByEmail(ctx, email)
	if err != nil {
		if errdef.IsNotFound(err) {
			return nil, errdef.NewUnauthorized(unauthorizedError)
		}
		return nil, err
	}

	match, err := comparePasswords(user.Password, password)
	if err != nil {
		return nil, fmt.Errorf("password hashing failed: %v", err)
	}

	if !match {
		return nil, errdef.NewUnauthorized(unauthorizedError)
	}

	return user, nil
}

func (s Service) FindById(ctx context.Context, id uint) (*model.User, error) {
	return s.repository.findById(ctx, id)
}
