package repository

import (
	"github.com/gigledger/GigLedger/app/models"
	"gorm.io/gorm"
)

// webhookRepository implements the WebhookRepository interface
type webhookRepository struct {
	db *gorm.DB
}

// NewWebhookRepository creates a new webhook repository instance
func NewWebhookRepository(db *gorm.DB) WebhookRepository {
	return &webhookRepository{db: db}
}

// Create creates a new webhook subscription in the database
func (r *webhookRepository) Create(webhook *models.Webhook) error {
	return r.db.Create(webhook).Error
}

// GetByID retrieves a webhook by its ID
func (r *webhookRepository) GetByID(id uint) (*models.Webhook, error) {
	var webhook models.Webhook
	err := r.db.First(&webhook, id).Error
	if err != nil {
		return nil, err
	}
	return &webhook, nil
}

// GetByUserID retrieves all webhooks owned by a user
func (r *webhookRepository) GetByUserID(userID uint) ([]models.Webhook, error) {
	var webhooks []models.Webhook
	err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&webhooks).Error
	return webhooks, err
}

// ListEnabledForEvent retrieves the enabled webhooks of a user whose event
// set contains the given event type. The events column is JSON, so the
// subset match happens in Go rather than in SQL.
func (r *webhookRepository) ListEnabledForEvent(userID uint, event string) ([]models.Webhook, error) {
	var webhooks []models.Webhook
	err := r.db.Where("user_id = ? AND enabled = ?", userID, true).Find(&webhooks).Error
	if err != nil {
		return nil, err
	}

	matched := make([]models.Webhook, 0, len(webhooks))
	for _, w := range webhooks {
		if w.SubscribedTo(event) {
			matched = append(matched, w)
		}
	}
	return matched, nil
}

// Update updates an existing webhook in the database
func (r *webhookRepository) Update(webhook *models.Webhook) error {
	return r.db.Save(webhook).Error
}

// DeleteWithLogs removes a webhook together with its delivery log entries
// in one transaction, so no log row survives its owner.
func (r *webhookRepository) DeleteWithLogs(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("webhook_id = ?", id).Delete(&models.WebhookLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Webhook{}, id).Error
	})
}

// Count returns the total number of webhook subscriptions
func (r *webhookRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Webhook{}).Count(&count).Error
	return count, err
}
