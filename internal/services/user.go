package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventease/internal/domain"
)

type userService struct {
	userRepo       domain.UserRepository
	authService    domain.AuthService
	contextTimeout time.Duration
}

// NewUserService creates the administrative user management service.
// Identity creation is delegated to the auth service, mirroring the source
// where user creation went through the auth provider's sign-up.
func NewUserService(userRepo domain.UserRepository, authService domain.AuthService, timeout time.Duration) domain.UserService {
	return &userService{
		userRepo:       userRepo,
		authService:    authService,
		contextTimeout: timeout,
	}
}

func (s *userService) ListUsers(ctx context.Context) ([]*domain.UserWithStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	return users, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*domain.UserWithStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetWithStats(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return user, nil
}

func (s *userService) CreateUser(ctx context.Context, in domain.CreateUserInput) (*domain.UserWithStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	role := in.Role
	if role == "" {
		role = domain.RoleEventOwner
	}
	_, user, err := s.authService.Register(ctx, in.Email, in.Password, in.FirstName, in.LastName, role)
	if err != nil {
		return nil, err
	}
	return &domain.UserWithStats{
		User:          *user,
		EventsCreated: 0,
		LastLogin:     user.UpdatedAt,
	}, nil
}

func (s *userService) UpdateUser(ctx context.Context, id string, in domain.UpdateUserInput) (*domain.UserWithStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if in.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*in.Email))
		if !emailRegexp.MatchString(email) {
			return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
		}
		in.Email = &email
	}
	if in.Role != nil && !domain.ValidRole(*in.Role) {
		return nil, fmt.Errorf("%w: invalid role %q", domain.ErrInvalidInput, *in.Role)
	}

	if _, err := s.userRepo.Update(ctx, id, in); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return s.GetUser(ctx, id)
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Events and RSVPs created by the user are left in place, orphaned by
	// reference; only the identity and profile go away.
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *userService) ListUsersByRole(ctx context.Context, role domain.Role) ([]*domain.UserWithStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: invalid role %q", domain.ErrInvalidInput, role)
	}
	users, err := s.userRepo.ListByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users by role: %w", err)
	}
	return users, nil
}

func (s *userService) SystemStats(ctx context.Context) (*domain.SystemStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	stats, err := s.userRepo.SystemStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch system stats: %w", err)
	}
	return stats, nil
}
