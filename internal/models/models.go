package models

// All lists every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Club{},
		&Event{},
		&RSVP{},
		&Attendance{},
		&Achievement{},
		&ClubAchievement{},
		&UserAchievement{},
		&Notification{},
		&PointsAward{},
	}
}
