package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"scribe/server/modules/user/domain/entities"
	"scribe/server/modules/user/domain/repositories"
)

// UserService orchestrates user-related operations in a single service:
// this module has no read/write-model divergence to justify a separate
// command/query handler layer.
type UserService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUserByID(id string) (*entities.User, error) {
	return s.userRepo.FindByID(id)
}

func (s *UserService) GetUserByEmail(email string) (*entities.User, error) {
	return s.userRepo.FindByEmail(email)
}

// GetOrCreate resolves a user by email, creating one on first sight. The
// login/signup flow itself lives outside this service (boundary); this is
// only the idempotent "make sure a user row exists" step it relies on.
func (s *UserService) GetOrCreate(email, name string) (*entities.User, error) {
	existing, err := s.userRepo.FindByEmail(email)
	if err == nil {
		return existing, nil
	}

	emailVO, err := entities.NewEmail(email)
	if err != nil {
		return nil, fmt.Errorf("invalid email: %w", err)
	}

	user := entities.NewUser(uuid.NewString(), name, emailVO)
	if err := s.userRepo.Create(&user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return &user, nil
}

func (s *UserService) UpdateName(id, name string) (*entities.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	user.SetName(name)
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetPlan changes a user's subscription plan. Clearing is_lifetime once set
// requires the dedicated administrative override (Invariant L), not this
// path.
func (s *UserService) SetPlan(id string, plan entities.Plan, lifetime bool) (*entities.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	user.Plan = plan
	if lifetime {
		user.IsLifetime = true
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SaveZoomCredentials caches the third-party recording-provider OAuth state
// on the user row (§4.I).
func (s *UserService) SaveZoomCredentials(id, accessToken, refreshToken string, expiresAt time.Time) error {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return err
	}
	user.ZoomAccessToken = accessToken
	user.ZoomRefreshToken = refreshToken
	user.ZoomTokenExpiresAt = expiresAt
	return s.userRepo.Update(user)
}

func (s *UserService) Delete(id string) error {
	return s.userRepo.Delete(id)
}
