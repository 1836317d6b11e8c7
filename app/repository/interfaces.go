package repository

import (
	"time"

	"github.com/gigledger/GigLedger/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByExternalID(externalID string) (*models.User, error)
	GetOrCreateByExternalID(externalID, email, name string) (*models.User, error)
	Update(user *models.User) error
	Count() (int64, error)
}

// GigRepository defines the interface for gig-related database operations
type GigRepository interface {
	Create(gig *models.Gig) error
	GetByID(id uint) (*models.Gig, error)
	GetByUserID(userID uint, offset, limit int) ([]models.Gig, error)
	GetReceivedUnpaidByBand(userID uint, bandName string) ([]models.Gig, error)
	Update(gig *models.Gig) error
	Delete(id uint) error
	Count() (int64, error)
	CountByUserID(userID uint) (int64, error)
}

// WebhookRepository defines the interface for webhook subscription operations
type WebhookRepository interface {
	Create(webhook *models.Webhook) error
	GetByID(id uint) (*models.Webhook, error)
	GetByUserID(userID uint) ([]models.Webhook, error)
	ListEnabledForEvent(userID uint, event string) ([]models.Webhook, error)
	Update(webhook *models.Webhook) error
	DeleteWithLogs(id uint) error
	Count() (int64, error)
}

// WebhookLogRepository defines the interface for the append-only delivery log
type WebhookLogRepository interface {
	Append(entry *models.WebhookLog) error
	GetByWebhookID(webhookID uint, limit int) ([]models.WebhookLog, error)
	CountByWebhookAndEvent(webhookID uint, event string) (int64, error)
	DeleteByWebhookID(webhookID uint) error
}

// NotificationRepository defines the interface for in-app notifications
type NotificationRepository interface {
	Create(notification *models.Notification) error
	GetByUserID(userID uint, offset, limit int) ([]models.Notification, error)
	CountUnread(userID uint) (int64, error)
	MarkAsRead(id uint) error
	MarkAllAsRead(userID uint) error
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User         UserRepository
	Gig          GigRepository
	Webhook      WebhookRepository
	WebhookLog   WebhookLogRepository
	Notification NotificationRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Gig:          NewGigRepository(db),
		Webhook:      NewWebhookRepository(db),
		WebhookLog:   NewWebhookLogRepository(db),
		Notification: NewNotificationRepository(db),
	}
}
