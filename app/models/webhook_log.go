package models

import "time"

// WebhookLog is one delivery attempt against a subscription, success or
// failure. Rows are append-only and never updated; a StatusCode of 0 means
// the attempt never reached the network (DNS, timeout, refused connection).
type WebhookLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	WebhookID  uint      `gorm:"index;not null" json:"webhook_id"`
	Event      string    `gorm:"type:varchar(50);index" json:"event"`
	StatusCode int       `json:"status_code"`
	Success    bool      `gorm:"index" json:"success"`
	Response   string    `gorm:"type:text" json:"response"`
	Error      string    `gorm:"type:text" json:"error"`
	Payload    string    `gorm:"type:longtext" json:"payload"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
