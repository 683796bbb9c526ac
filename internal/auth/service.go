package auth

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/mrlokans/segmentor/internal/config"
	"github.com/mrlokans/segmentor/internal/database/users"
	"github.com/mrlokans/segmentor/internal/entities"
)

// Validation patterns
var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,64}$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

var (
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrUserNotFound        = errors.New("user not found")
	ErrUsernameInvalid     = errors.New("username must be 3-64 characters, alphanumeric and underscore/hyphen only")
	ErrEmailInvalid        = errors.New("invalid email format")
	ErrDuplicateCredential = users.ErrDuplicateCredential
	ErrNotPermitted        = errors.New("no permission to delete")
)

// UserRepository defines the user data access the service needs.
type UserRepository interface {
	Create(username, email, passwordHash string, isAdmin bool) (*entities.User, error)
	GetByUsername(username string) (*entities.User, error)
	Delete(user *entities.User) error
}

// Service handles credential verification and account management.
type Service struct {
	repo   UserRepository
	config config.Auth
}

// NewService creates a new authentication service.
func NewService(repo UserRepository, cfg config.Auth) *Service {
	return &Service{
		repo:   repo,
		config: cfg,
	}
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
}

// Register validates the input, hashes the password and creates the user.
// Duplicate usernames or emails surface as ErrDuplicateCredential from the
// storage layer's uniqueness constraints.
func (s *Service) Register(input RegisterInput) (*entities.User, error) {
	if !usernamePattern.MatchString(input.Username) {
		return nil, ErrUsernameInvalid
	}
	if len(input.Email) > 254 || !emailPattern.MatchString(input.Email) {
		return nil, ErrEmailInvalid
	}
	if err := ValidatePassword(input.Password); err != nil {
		return nil, err
	}
	if input.Password != input.PasswordConfirm {
		return nil, ErrPasswordMismatch
	}

	hash, err := HashPassword(input.Password, s.config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.repo.Create(input.Username, input.Email, hash, false)
}

// Authenticate verifies a username/password pair. Unknown usernames and
// wrong passwords both return ErrInvalidCredentials so a caller cannot
// probe which usernames exist.
func (s *Service) Authenticate(username, password string) (*entities.User, error) {
	user, err := s.repo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return user, nil
}

// ResolveSubject looks up the user a validated token's subject refers to.
// Returns ErrUserNotFound when the subject no longer exists, e.g. the
// account was deleted after the token was issued.
func (s *Service) ResolveSubject(username string) (*entities.User, error) {
	user, err := s.repo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// DeleteByUsername removes a user and their segmentations. Only the user
// themselves or an admin may delete an account.
func (s *Service) DeleteByUsername(actor *entities.User, username string) (*entities.User, error) {
	if actor.Username != username && !actor.IsAdmin {
		return nil, ErrNotPermitted
	}

	target, err := s.repo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.repo.Delete(target); err != nil {
		return nil, err
	}

	return target, nil
}
