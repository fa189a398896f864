package services

import (
	"log/slog"
	"sync/atomic"

	"github.com/vibevent/vibevent-api/internal/constants"
	"github.com/vibevent/vibevent-api/internal/dto"
	"github.com/vibevent/vibevent-api/internal/models"
	"github.com/vibevent/vibevent-api/internal/realtime"
	"github.com/vibevent/vibevent-api/internal/repository"
	"golang.org/x/sync/errgroup"
)

// DeliveryReport counts the outcome of one fan-out.
type DeliveryReport struct {
	Created int `json:"created"`
	Failed  int `json:"failed"`
}

// Notifier persists notification rows and pushes each one to its recipient's
// room. Delivery is best effort per recipient: a failed row is logged and
// skipped, and never fails the caller or the remaining recipients.
type Notifier struct {
	repo        repository.NotificationRepository
	pusher      realtime.Pusher
	logger      *slog.Logger
	concurrency int
}

// NewNotifier creates a Notifier. A nil pusher disables live pushes.
func NewNotifier(repo repository.NotificationRepository, pusher realtime.Pusher, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		repo:        repo,
		pusher:      pusher,
		logger:      logger,
		concurrency: constants.FanOutConcurrency,
	}
}

// Deliver writes and pushes every notification.
func (n *Notifier) Deliver(items []models.Notification) DeliveryReport {
	return n.write(items, true)
}

// Store writes every notification without a room push, for changes announced
// through Broadcast instead.
func (n *Notifier) Store(items []models.Notification) DeliveryReport {
	return n.write(items, false)
}

func (n *Notifier) write(items []models.Notification, push bool) DeliveryReport {
	var created, failed atomic.Int64

	var g errgroup.Group
	g.SetLimit(n.concurrency)

	for i := range items {
		item := items[i]
		g.Go(func() error {
			if err := n.repo.Create(&item); err != nil {
				failed.Add(1)
				n.logger.Error("notification_delivery_failed",
					"target_kind", item.TargetKind,
					"target_id", item.TargetID,
					"type", item.Type,
					"error", err,
				)
				return nil
			}
			created.Add(1)
			if push {
				n.push(item)
			}
			return nil
		})
	}
	_ = g.Wait()

	report := DeliveryReport{Created: int(created.Load()), Failed: int(failed.Load())}
	if len(items) > 1 {
		n.logger.Debug("notification_fan_out", "created", report.Created, "failed", report.Failed)
	}
	return report
}

// DeliverOne writes and pushes a single notification and reports the stored row.
func (n *Notifier) DeliverOne(item models.Notification) (*models.Notification, error) {
	if err := n.repo.Create(&item); err != nil {
		return nil, err
	}
	n.push(item)
	return &item, nil
}

// Broadcast pushes a notice to every live connection except the originating one.
func (n *Notifier) Broadcast(senderID, notifType, content string) {
	if n.pusher == nil {
		return
	}
	msg := realtime.Message{
		Event: realtime.EventBroadcast,
		Data:  dto.BroadcastDTO{Type: notifType, Content: content},
	}
	if err := n.pusher.BroadcastExcept(senderID, msg); err != nil {
		n.logger.Warn("notification_broadcast_failed", "type", notifType, "error", err)
	}
}

func (n *Notifier) push(item models.Notification) {
	if n.pusher == nil {
		return
	}
	msg := realtime.Message{
		Event: realtime.EventNotification,
		Data:  dto.ToNotificationDTO(item),
	}
	if err := n.pusher.PushToRoom(roomFor(item.TargetKind, item.TargetID), msg); err != nil {
		n.logger.Warn("notification_push_failed",
			"target_kind", item.TargetKind,
			"target_id", item.TargetID,
			"error", err,
		)
	}
}

func roomFor(kind models.TargetKind, id uint64) string {
	if kind == models.TargetClub {
		return realtime.ClubRoom(id)
	}
	return realtime.UserRoom(id)
}
