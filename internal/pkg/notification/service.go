// Package notification creates the in-app counterparts of the outbound
// webhook events. Notifications are best effort: a failed insert is logged
// and the triggering mutation proceeds.
package notification

import (
	"fmt"

	"github.com/gofiber/fiber/v2/log"

	"github.com/gigledger/GigLedger/app/models"
	"github.com/gigledger/GigLedger/app/repository"
)

// Service writes in-app notifications for financial events.
type Service struct {
	store repository.NotificationRepository
}

// NewService creates a notification service over the given store.
func NewService(store repository.NotificationRepository) *Service {
	return &Service{store: store}
}

// PaymentReceived records an incoming payment notification.
func (s *Service) PaymentReceived(userID uint, gigID uint, bandName string, amount float64) {
	s.create(&models.Notification{
		UserID:      userID,
		Type:        "payment_received",
		Title:       "Payment Received",
		Message:     fmt.Sprintf("Payment of %.2f from %s has arrived.", amount, bandName),
		ActionURL:   fmt.Sprintf("/gigs/%d", gigID),
		ActionLabel: "View Gig",
	})
}

// BandPaid records a payout notification covering one or more gigs.
func (s *Service) BandPaid(userID uint, bandName string, amount float64, gigCount int) {
	noun := "gig"
	if gigCount != 1 {
		noun = "gigs"
	}
	s.create(&models.Notification{
		UserID:  userID,
		Type:    "band_paid",
		Title:   "Band Paid",
		Message: fmt.Sprintf("You paid out %.2f to %s across %d %s.", amount, bandName, gigCount, noun),
	})
}

// GigAdded records a notification for a newly booked gig.
func (s *Service) GigAdded(userID uint, gigID uint, bandName string, date string) {
	s.create(&models.Notification{
		UserID:      userID,
		Type:        "gig_added",
		Title:       "New Gig",
		Message:     fmt.Sprintf("New gig with %s on %s.", bandName, date),
		ActionURL:   fmt.Sprintf("/gigs/%d", gigID),
		ActionLabel: "View Gig",
	})
}

// GigUpdated records a notification for an edited gig.
func (s *Service) GigUpdated(userID uint, gigID uint, bandName string, change string) {
	s.create(&models.Notification{
		UserID:      userID,
		Type:        "gig_updated",
		Title:       "Gig Updated",
		Message:     fmt.Sprintf("%s: %s", bandName, change),
		ActionURL:   fmt.Sprintf("/gigs/%d", gigID),
		ActionLabel: "View Gig",
	})
}

// UnreadCount returns the number of unread notifications, 0 on error.
func (s *Service) UnreadCount(userID uint) int64 {
	count, err := s.store.CountUnread(userID)
	if err != nil {
		log.Errorf("[Notification] Failed to count unread for user %d: %v", userID, err)
		return 0
	}
	return count
}

func (s *Service) create(n *models.Notification) {
	if err := s.store.Create(n); err != nil {
		log.Errorf("[Notification] Failed to create %s notification for user %d: %v", n.Type, n.UserID, err)
	}
}
