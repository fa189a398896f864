package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vibevent/vibevent-api/internal/models"
	"github.com/vibevent/vibevent-api/internal/repository"
	"github.com/vibevent/vibevent-api/internal/utils"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserExists        = errors.New("username or email already registered")
	ErrUsernameRequired  = errors.New("username is required")
	ErrUserEmailRequired = errors.New("email is required")
)

// UserService handles student accounts
type UserService struct {
	userRepo repository.UserRepository
	tokens   *TokenService
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, tokens *TokenService) *UserService {
	return &UserService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// SignupUserInput represents the required information to create a user
type SignupUserInput struct {
	Username string
	Email    string
	Password string
	Picture  string
}

// UpdateUserInput holds the fields a user may change; nil or blank fields are kept
type UpdateUserInput struct {
	Username *string
	Email    *string
	Password *string
	Picture  *string
}

// ListUsersInput represents filters for listing users
type ListUsersInput struct {
	Search     string
	Pagination utils.PaginationParams
}

// Signup creates a new user with a hashed password
func (s *UserService) Signup(input SignupUserInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, ErrUserEmailRequired
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		if errors.Is(err, ErrPasswordTooShort) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Picture:      strings.TrimSpace(input.Picture),
	}

	if err := s.userRepo.Create(user); err != nil {
		if isDuplicate(err) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies credentials by email or username and issues a token
func (s *UserService) Authenticate(identifier, password string) (*AuthResult[models.User], error) {
	user, err := s.GetByIdentifier(identifier)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !checkPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(Principal{Kind: models.TargetUser, ID: user.ID})
	if err != nil {
		return nil, err
	}

	return &AuthResult[models.User]{Token: token, Account: user}, nil
}

func (s *UserService) find(lookup func() (*models.User, error)) (*models.User, error) {
	user, err := lookup()
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// Get returns a user by id
func (s *UserService) Get(id uint64) (*models.User, error) {
	return s.find(func() (*models.User, error) { return s.userRepo.FindByID(id) })
}

// GetByEmail returns a user by email
func (s *UserService) GetByEmail(email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return s.find(func() (*models.User, error) { return s.userRepo.FindByEmail(email) })
}

// GetByUsername returns a user by username
func (s *UserService) GetByUsername(username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	return s.find(func() (*models.User, error) { return s.userRepo.FindByUsername(username) })
}

// GetByIdentifier resolves an email address or a username
func (s *UserService) GetByIdentifier(identifier string) (*models.User, error) {
	if strings.Contains(identifier, "@") {
		return s.GetByEmail(identifier)
	}
	return s.GetByUsername(identifier)
}

// List returns users matching the search
func (s *UserService) List(input ListUsersInput) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(repository.AccountFilter{
		Search:     input.Search,
		Pagination: input.Pagination,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// Count returns the number of users
func (s *UserService) Count() (int64, error) {
	count, err := s.userRepo.Count()
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// Update merges the provided fields into the user
func (s *UserService) Update(id uint64, input UpdateUserInput) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	mergeString(&user.Username, input.Username)
	mergeString(&user.Picture, input.Picture)
	if input.Email != nil {
		if email := strings.ToLower(strings.TrimSpace(*input.Email)); email != "" {
			user.Email = email
		}
	}
	if input.Password != nil && *input.Password != "" {
		hashed, err := hashPassword(*input.Password)
		if err != nil {
			if errors.Is(err, ErrPasswordTooShort) {
				return nil, err
			}
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hashed
	}

	if err := s.userRepo.Update(user); err != nil {
		if isDuplicate(err) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// UpdatePoints adds delta to the user's points; the result never drops below zero
func (s *UserService) UpdatePoints(id uint64, delta int64) (*models.User, error) {
	if err := s.userRepo.AddPoints(id, delta); err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update points: %w", err)
	}
	return s.Get(id)
}

// Delete removes a user and everything attached to them
func (s *UserService) Delete(id uint64) error {
	if err := s.userRepo.Delete(id); err != nil {
		if isNotFound(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// Top returns the leaderboard
func (s *UserService) Top(limit int) ([]models.User, error) {
	users, err := s.userRepo.Top(clampLeaderboard(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	return users, nil
}

// Rank returns the user's leaderboard position, starting at 1
func (s *UserService) Rank(id uint64) (int64, error) {
	rank, err := s.userRepo.Rank(id)
	if err != nil {
		if isNotFound(err) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to rank user: %w", err)
	}
	return rank, nil
}

// UsernameExists reports whether the username is taken
func (s *UserService) UsernameExists(username string) (bool, error) {
	found, err := s.userRepo.ExistsByUsername(strings.TrimSpace(username))
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return found, nil
}

// EmailExists reports whether the email is taken
func (s *UserService) EmailExists(email string) (bool, error) {
	found, err := s.userRepo.ExistsByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return found, nil
}
