package services

import (
	"errors"
	"strings"

	"github.com/vibevent/vibevent-api/internal/constants"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrEventInPast        = errors.New("event has already taken place")
	ErrWithinGraceWindow  = errors.New("points can only be awarded 30 minutes after the event starts")
	ErrInvalidTargetKind  = errors.New("target kind must be user or club")
)

// AuthResult is returned by a successful login.
type AuthResult[T any] struct {
	Token   string
	Account *T
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func hashPassword(password string) (string, error) {
	if len(password) < constants.MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// mergeString overwrites dst with a non-blank value.
func mergeString(dst *string, value *string) {
	if value == nil {
		return
	}
	if v := strings.TrimSpace(*value); v != "" {
		*dst = v
	}
}

func clampLeaderboard(limit int) int {
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		return constants.DefaultLeaderboardSize
	}
	return limit
}
