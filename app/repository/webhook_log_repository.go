package repository

import (
	"github.com/gigledger/GigLedger/app/models"
	"gorm.io/gorm"
)

// webhookLogRepository implements the WebhookLogRepository interface
type webhookLogRepository struct {
	db *gorm.DB
}

// NewWebhookLogRepository creates a new webhook log repository instance
func NewWebhookLogRepository(db *gorm.DB) WebhookLogRepository {
	return &webhookLogRepository{db: db}
}

// Append inserts one delivery attempt. Each attempt is a fresh row keyed by
// its own identifier; entries are never updated afterwards.
func (r *webhookLogRepository) Append(entry *models.WebhookLog) error {
	return r.db.Create(entry).Error
}

// GetByWebhookID retrieves the most recent delivery attempts of a webhook
func (r *webhookLogRepository) GetByWebhookID(webhookID uint, limit int) ([]models.WebhookLog, error) {
	var logs []models.WebhookLog
	err := r.db.Where("webhook_id = ?", webhookID).
		Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}

// CountByWebhookAndEvent returns the number of attempts recorded for a
// (webhook, event) pair
func (r *webhookLogRepository) CountByWebhookAndEvent(webhookID uint, event string) (int64, error) {
	var count int64
	err := r.db.Model(&models.WebhookLog{}).
		Where("webhook_id = ? AND event = ?", webhookID, event).Count(&count).Error
	return count, err
}

// DeleteByWebhookID removes all log entries of a webhook
func (r *webhookLogRepository) DeleteByWebhookID(webhookID uint) error {
	return r.db.Where("webhook_id = ?", webhookID).Delete(&models.WebhookLog{}).Error
}
