package repository

import (
	"time"

	"github.com/vibevent/vibevent-api/internal/models"
	"github.com/vibevent/vibevent-api/internal/utils"
)

// AccountFilter holds search and pagination for user and club listings
type AccountFilter struct {
	Search     string
	Pagination utils.PaginationParams
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByIDs finds every user whose id is listed, ordered by id
	FindByIDs(ids []uint64) ([]models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// List retrieves users matching the filter, with the total before pagination
	List(filter AccountFilter) ([]models.User, int64, error)

	// ListIDs returns the id of every user
	ListIDs() ([]uint64, error)

	// Count counts all users
	Count() (int64, error)

	// Update saves a user
	Update(user *models.User) error

	// AddPoints applies delta to the stored points, never going below zero
	AddPoints(id uint64, delta int64) error

	// Delete removes a user with their RSVPs, attendances, achievements and notifications
	Delete(id uint64) error

	// Top returns the users with the most points
	Top(limit int) ([]models.User, error)

	// Rank returns 1 + the number of users with more points
	Rank(id uint64) (int64, error)

	// ExistsByUsername reports whether the username is taken
	ExistsByUsername(username string) (bool, error)

	// ExistsByEmail reports whether the email is taken
	ExistsByEmail(email string) (bool, error)
}

// ClubRepository defines the interface for club data access
type ClubRepository interface {
	// Create creates a new club
	Create(club *models.Club) error

	// FindByID finds a club by ID
	FindByID(id uint64) (*models.Club, error)

	// FindByEmail finds a club by email
	FindByEmail(email string) (*models.Club, error)

	// FindByName finds a club by name
	FindByName(name string) (*models.Club, error)

	// List retrieves clubs matching the filter, with the total before pagination
	List(filter AccountFilter) ([]models.Club, int64, error)

	// ListIDs returns the id of every club
	ListIDs() ([]uint64, error)

	// Count counts all clubs
	Count() (int64, error)

	// Update saves a club
	Update(club *models.Club) error

	// AddPoints applies delta to the stored points, never going below zero
	AddPoints(id uint64, delta int64) error

	// Delete removes a club with its events and everything attached to them
	Delete(id uint64) error

	// Top returns the clubs with the most points
	Top(limit int) ([]models.Club, error)

	// Rank returns 1 + the number of clubs with more points
	Rank(id uint64) (int64, error)

	// ExistsByName reports whether the name is taken
	ExistsByName(name string) (bool, error)

	// ExistsByEmail reports whether the email is taken
	ExistsByEmail(email string) (bool, error)
}

// EventWhen selects events relative to a reference time
type EventWhen string

const (
	EventsAll      EventWhen = ""
	EventsUpcoming EventWhen = "upcoming"
	EventsPast     EventWhen = "past"
)

// EventFilter holds filtering options for listing events
type EventFilter struct {
	ClubID         *uint64
	Location       string
	LocationSearch string
	Search         string
	When           EventWhen
	Now            time.Time
	Pagination     utils.PaginationParams
}

// EventRepository defines the interface for event data access
type EventRepository interface {
	// Create creates a new event
	Create(event *models.Event) error

	// FindByID finds an event by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Event, error)

	// List retrieves events with filtering and pagination
	List(filter EventFilter) ([]models.Event, int64, error)

	// Count counts events matching the filter
	Count(filter EventFilter) (int64, error)

	// ExistsByTitleAndDate reports whether an event with this title is on this date
	ExistsByTitleAndDate(title string, date time.Time) (bool, error)

	// Update saves an event
	Update(event *models.Event) error

	// Delete removes an event with its RSVPs, attendances and award ledger rows
	Delete(id uint64) error
}

// ParticipationFilter selects RSVPs or attendances
type ParticipationFilter struct {
	EventID *uint64
	UserID  *uint64
	Status  string
}

// RSVPRepository defines the interface for RSVP data access
type RSVPRepository interface {
	// Create creates an RSVP; a second RSVP for the same event and user fails with gorm.ErrDuplicatedKey
	Create(rsvp *models.RSVP) error

	// FindByID finds an RSVP by ID
	FindByID(id uint64) (*models.RSVP, error)

	// FindByEventAndUser finds the RSVP of a user for an event
	FindByEventAndUser(eventID, userID uint64) (*models.RSVP, error)

	// List retrieves RSVPs matching the filter
	List(filter ParticipationFilter) ([]models.RSVP, error)

	// Count counts RSVPs matching the filter
	Count(filter ParticipationFilter) (int64, error)

	// UserIDsByStatus returns the users that answered status for an event
	UserIDsByStatus(eventID uint64, status models.RSVPStatus) ([]uint64, error)

	// UpdateStatus changes the status of an RSVP
	UpdateStatus(id uint64, status models.RSVPStatus) error

	// Delete removes an RSVP
	Delete(id uint64) error

	// DeleteByEvent removes every RSVP of an event
	DeleteByEvent(eventID uint64) (int64, error)

	// DeleteByUser removes every RSVP of a user
	DeleteByUser(userID uint64) (int64, error)
}

// AttendanceRepository defines the interface for attendance data access
type AttendanceRepository interface {
	// Create creates an attendance; a second one for the same event and user fails with gorm.ErrDuplicatedKey
	Create(attendance *models.Attendance) error

	// FindByID finds an attendance by ID
	FindByID(id uint64) (*models.Attendance, error)

	// FindByEventAndUser finds the attendance of a user for an event
	FindByEventAndUser(eventID, userID uint64) (*models.Attendance, error)

	// List retrieves attendances matching the filter
	List(filter ParticipationFilter) ([]models.Attendance, error)

	// Count counts attendances matching the filter
	Count(filter ParticipationFilter) (int64, error)

	// UserIDsByStatus returns the users with status for an event
	UserIDsByStatus(eventID uint64, status models.AttendanceStatus) ([]uint64, error)

	// UpdateStatus changes the status of an attendance
	UpdateStatus(id uint64, status models.AttendanceStatus) error

	// Delete removes an attendance
	Delete(id uint64) error

	// DeleteByEvent removes every attendance of an event
	DeleteByEvent(eventID uint64) (int64, error)

	// DeleteByUser removes every attendance of a user
	DeleteByUser(userID uint64) (int64, error)
}

// AchievementFilter holds filtering options for listing achievements
type AchievementFilter struct {
	Search         string
	PointsRequired *int64
}

// AchievementRepository defines the interface for achievement data access
type AchievementRepository interface {
	// Create creates an achievement
	Create(achievement *models.Achievement) error

	// FindByID finds an achievement by ID
	FindByID(id uint64) (*models.Achievement, error)

	// FindByTitle finds an achievement by title
	FindByTitle(title string) (*models.Achievement, error)

	// List retrieves achievements matching the filter
	List(filter AchievementFilter) ([]models.Achievement, error)

	// Count counts achievements matching the filter
	Count(filter AchievementFilter) (int64, error)

	// ExistsByTitle reports whether the title is taken
	ExistsByTitle(title string) (bool, error)

	// Update saves an achievement
	Update(achievement *models.Achievement) error

	// Delete removes an achievement and every club and user link to it
	Delete(id uint64) error
}

// AchievementLinkFilter selects club or user achievement links
type AchievementLinkFilter struct {
	OwnerID       *uint64
	AchievementID *uint64
}

// ClubAchievementRepository defines the interface for club achievement data access
type ClubAchievementRepository interface {
	// Create links a club to an achievement; a repeated pair fails with gorm.ErrDuplicatedKey
	Create(link *models.ClubAchievement) error

	// FindByID finds a link by ID with its achievement
	FindByID(id uint64) (*models.ClubAchievement, error)

	// FindByPair finds the link between a club and an achievement
	FindByPair(clubID, achievementID uint64) (*models.ClubAchievement, error)

	// List retrieves links matching the filter
	List(filter AchievementLinkFilter) ([]models.ClubAchievement, error)

	// Count counts links matching the filter
	Count(filter AchievementLinkFilter) (int64, error)

	// Delete removes a link
	Delete(id uint64) error

	// DeleteMatching removes every link matching the filter
	DeleteMatching(filter AchievementLinkFilter) (int64, error)
}

// UserAchievementRepository defines the interface for user achievement data access
type UserAchievementRepository interface {
	// Create links a user to an achievement; a repeated pair fails with gorm.ErrDuplicatedKey
	Create(link *models.UserAchievement) error

	// FindByID finds a link by ID with its achievement
	FindByID(id uint64) (*models.UserAchievement, error)

	// FindByPair finds the link between a user and an achievement
	FindByPair(userID, achievementID uint64) (*models.UserAchievement, error)

	// List retrieves links matching the filter
	List(filter AchievementLinkFilter) ([]models.UserAchievement, error)

	// Count counts links matching the filter
	Count(filter AchievementLinkFilter) (int64, error)

	// Delete removes a link
	Delete(id uint64) error

	// DeleteMatching removes every link matching the filter
	DeleteMatching(filter AchievementLinkFilter) (int64, error)
}

// NotificationFilter holds filtering options for a recipient's notifications
type NotificationFilter struct {
	TargetKind models.TargetKind
	TargetID   uint64
	Status     models.NotificationStatus
	Type       string
	Search     string
	Before     *time.Time
	After      *time.Time
	Pagination utils.PaginationParams
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	// Create stores a notification
	Create(notification *models.Notification) error

	// FindByID finds a notification by ID
	FindByID(id uint64) (*models.Notification, error)

	// List retrieves notifications newest first, with the total before pagination
	List(filter NotificationFilter) ([]models.Notification, int64, error)

	// Count counts notifications matching the filter
	Count(filter NotificationFilter) (int64, error)

	// UpdateStatus marks a notification read or unread
	UpdateStatus(id uint64, status models.NotificationStatus) error

	// MarkAllRead marks every unread notification of a recipient read
	MarkAllRead(kind models.TargetKind, targetID uint64) (int64, error)

	// Delete removes a notification
	Delete(id uint64) error

	// DeleteMatching removes every notification matching the filter
	DeleteMatching(filter NotificationFilter) (int64, error)
}

// AwardRepository defines the interface for the points award ledger
type AwardRepository interface {
	// Find returns the ledger row for a recipient of an event
	Find(eventID uint64, kind models.TargetKind, recipientID uint64) (*models.PointsAward, error)

	// ListByEvent returns every ledger row of an event
	ListByEvent(eventID uint64) ([]models.PointsAward, error)

	// Award inserts the ledger row and adds its points to the recipient in one
	// transaction. A recipient already paid for the event fails with
	// gorm.ErrDuplicatedKey and nothing changes.
	Award(award *models.PointsAward) error
}
