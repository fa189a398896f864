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
	ErrClubNotFound      = errors.New("club not found")
	ErrClubExists        = errors.New("club name or email already registered")
	ErrClubNameRequired  = errors.New("club name is required")
	ErrClubEmailRequired = errors.New("email is required")
)

// ClubService handles club organizer accounts
type ClubService struct {
	clubRepo repository.ClubRepository
	tokens   *TokenService
}

// NewClubService creates a new ClubService
func NewClubService(clubRepo repository.ClubRepository, tokens *TokenService) *ClubService {
	return &ClubService{
		clubRepo: clubRepo,
		tokens:   tokens,
	}
}

// SignupClubInput represents the required information to register a club
type SignupClubInput struct {
	Name        string
	Email       string
	Password    string
	Description string
	Picture     string
}

// UpdateClubInput holds the fields a club may change; nil or blank fields are kept
type UpdateClubInput struct {
	Name        *string
	Email       *string
	Password    *string
	Description *string
	Picture     *string
}

// ListClubsInput represents filters for listing clubs
type ListClubsInput struct {
	Search     string
	Pagination utils.PaginationParams
}

// Signup registers a new club
func (s *ClubService) Signup(input SignupClubInput) (*models.Club, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrClubNameRequired
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, ErrClubEmailRequired
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		if errors.Is(err, ErrPasswordTooShort) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	club := &models.Club{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Description:  strings.TrimSpace(input.Description),
		Picture:      strings.TrimSpace(input.Picture),
	}

	if err := s.clubRepo.Create(club); err != nil {
		if isDuplicate(err) {
			return nil, ErrClubExists
		}
		return nil, fmt.Errorf("failed to create club: %w", err)
	}

	return club, nil
}

// Authenticate verifies credentials by email or club name and issues a token
func (s *ClubService) Authenticate(identifier, password string) (*AuthResult[models.Club], error) {
	club, err := s.GetByIdentifier(identifier)
	if err != nil {
		if errors.Is(err, ErrClubNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !checkPassword(club.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(Principal{Kind: models.TargetClub, ID: club.ID})
	if err != nil {
		return nil, err
	}

	return &AuthResult[models.Club]{Token: token, Account: club}, nil
}

func (s *ClubService) find(lookup func() (*models.Club, error)) (*models.Club, error) {
	club, err := lookup()
	if err != nil {
		if isNotFound(err) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to find club: %w", err)
	}
	return club, nil
}

// Get returns a club by id
func (s *ClubService) Get(id uint64) (*models.Club, error) {
	return s.find(func() (*models.Club, error) { return s.clubRepo.FindByID(id) })
}

// GetByEmail returns a club by email
func (s *ClubService) GetByEmail(email string) (*models.Club, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return s.find(func() (*models.Club, error) { return s.clubRepo.FindByEmail(email) })
}

// GetByName returns a club by name
func (s *ClubService) GetByName(name string) (*models.Club, error) {
	name = strings.TrimSpace(name)
	return s.find(func() (*models.Club, error) { return s.clubRepo.FindByName(name) })
}

// GetByIdentifier resolves an email address or a club name
func (s *ClubService) GetByIdentifier(identifier string) (*models.Club, error) {
	if strings.Contains(identifier, "@") {
		return s.GetByEmail(identifier)
	}
	return s.GetByName(identifier)
}

// List returns clubs matching the search
func (s *ClubService) List(input ListClubsInput) ([]models.Club, int64, error) {
	clubs, total, err := s.clubRepo.List(repository.AccountFilter{
		Search:     input.Search,
		Pagination: input.Pagination,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clubs: %w", err)
	}
	return clubs, total, nil
}

// Count returns the number of clubs
func (s *ClubService) Count() (int64, error) {
	count, err := s.clubRepo.Count()
	if err != nil {
		return 0, fmt.Errorf("failed to count clubs: %w", err)
	}
	return count, nil
}

// Update merges the provided fields into the club
func (s *ClubService) Update(id uint64, input UpdateClubInput) (*models.Club, error) {
	club, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	mergeString(&club.Name, input.Name)
	mergeString(&club.Picture, input.Picture)
	if input.Description != nil {
		club.Description = strings.TrimSpace(*input.Description)
	}
	if input.Email != nil {
		if email := strings.ToLower(strings.TrimSpace(*input.Email)); email != "" {
			club.Email = email
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
		club.PasswordHash = hashed
	}

	if err := s.clubRepo.Update(club); err != nil {
		if isDuplicate(err) {
			return nil, ErrClubExists
		}
		return nil, fmt.Errorf("failed to update club: %w", err)
	}

	return club, nil
}

// UpdatePoints adds delta to the club's points; the result never drops below zero
func (s *ClubService) UpdatePoints(id uint64, delta int64) (*models.Club, error) {
	if err := s.clubRepo.AddPoints(id, delta); err != nil {
		if isNotFound(err) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to update points: %w", err)
	}
	return s.Get(id)
}

// Delete removes a club with its events
func (s *ClubService) Delete(id uint64) error {
	if err := s.clubRepo.Delete(id); err != nil {
		if isNotFound(err) {
			return ErrClubNotFound
		}
		return fmt.Errorf("failed to delete club: %w", err)
	}
	return nil
}

// Top returns the club leaderboard
func (s *ClubService) Top(limit int) ([]models.Club, error) {
	clubs, err := s.clubRepo.Top(clampLeaderboard(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	return clubs, nil
}

// Rank returns the club's leaderboard position, starting at 1
func (s *ClubService) Rank(id uint64) (int64, error) {
	rank, err := s.clubRepo.Rank(id)
	if err != nil {
		if isNotFound(err) {
			return 0, ErrClubNotFound
		}
		return 0, fmt.Errorf("failed to rank club: %w", err)
	}
	return rank, nil
}

// NameExists reports whether the club name is taken
func (s *ClubService) NameExists(name string) (bool, error) {
	found, err := s.clubRepo.ExistsByName(strings.TrimSpace(name))
	if err != nil {
		return false, fmt.Errorf("failed to check club name: %w", err)
	}
	return found, nil
}

// EmailExists reports whether the email is taken
func (s *ClubService) EmailExists(email string) (bool, error) {
	found, err := s.clubRepo.ExistsByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return found, nil
}
