package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/compozy/carpark/pkg/logger"
)

// RegisterInput carries the raw registration answers.
type RegisterInput struct {
	ID       string
	Name     string
	Email    string
	Password string
	Role     string
}

// Service implements registration and login against a Repository.
type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Exists reports whether a user with exactly this ID is registered.
func (s *Service) Exists(id string) bool {
	_, err := s.repo.Get(id)
	return err == nil
}

// Register validates the input and appends a new user. Nothing changes on failure.
func (s *Service) Register(ctx context.Context, input *RegisterInput) (User, error) {
	log := logger.FromContext(ctx)
	log.Debug("Registering user", "user_id", input.ID, "role", input.Role)
	if s.Exists(input.ID) {
		return User{}, fmt.Errorf("%w: %s", ErrDuplicateUser, input.ID)
	}
	role, err := ParseRole(input.Role)
	if err != nil {
		return User{}, err
	}
	user := User{
		ID:       input.ID,
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Role:     role,
	}
	if err := s.repo.Add(user); err != nil {
		return User{}, err
	}
	log.Info("User registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Authenticate requires an exact ID and password match.
func (s *Service) Authenticate(ctx context.Context, id, password string) (User, error) {
	log := logger.FromContext(ctx)
	user, err := s.repo.Get(id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Debug("Login for unknown user", "user_id", id)
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if user.Password != password {
		log.Debug("Password mismatch", "user_id", id)
		return User{}, ErrInvalidCredentials
	}
	log.Info("User logged in", "user_id", user.ID, "role", user.Role)
	return user, nil
}
