package constants

import "time"

// Context and session keys
const (
	ContextKeyUserID        = "user_id"
	ContextKeyClubID        = "club_id"
	ContextKeyPrincipalKind = "principal_kind"
	ContextKeyConnectionID  = "connection_id"

	SessionCookieName = "vibevent_session"

	HeaderConnectionID = "X-Connection-ID"
)

// Account rules
const (
	MinPasswordLength = 6
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	DefaultLeaderboardSize = 10
)

// Points award rules
const (
	AwardGraceWindow      = 30 * time.Minute
	AttendeesPerClubPoint = 5
	PointsPerAttendance   = 1
)

// Notification fan-out
const (
	FanOutConcurrency = 8
)
