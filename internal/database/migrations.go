package database

import (
	"fmt"
	"log/slog"

	"github.com/vibevent/vibevent-api/internal/models"
	"gorm.io/gorm"
)

// uniqueIndexes are the composite keys that close the check-then-insert races.
// AutoMigrate creates them from struct tags; EnsureIndexes repairs databases
// created before the tags existed.
var uniqueIndexes = []struct {
	model interface{}
	name  string
}{
	{&models.Event{}, "idx_events_title_date"},
	{&models.RSVP{}, "idx_rsvps_event_user"},
	{&models.Attendance{}, "idx_attendances_event_user"},
	{&models.ClubAchievement{}, "idx_club_achievements_pair"},
	{&models.UserAchievement{}, "idx_user_achievements_pair"},
	{&models.PointsAward{}, "idx_points_awards_recipient"},
}

// EnsureIndexes creates any missing composite unique index.
func EnsureIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	for _, idx := range uniqueIndexes {
		if migrator.HasIndex(idx.model, idx.name) {
			continue
		}

		if err := migrator.CreateIndex(idx.model, idx.name); err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		slog.Info("index_created", "index", idx.name)
	}

	return nil
}
