package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	STATUS_ACTIVE   = "active"
	STATUS_DISABLED = "disabled"
)

// User is the local record behind an externally authenticated principal.
// Authentication happens at the hosted auth provider; we only keep the
// opaque subject id it hands us plus display data.
type User struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	ExternalID string         `gorm:"uniqueIndex;type:varchar(100)" json:"external_id" validate:"required,max=100"`
	Email      string         `gorm:"type:varchar(200) CHARACTER SET utf8 COLLATE utf8_bin" json:"email" validate:"omitempty,email,max=200"`
	Name       string         `gorm:"type:varchar(150)" json:"name" validate:"max=150"`
	Status     string         `gorm:"type:varchar(50);default:'active'" json:"status" validate:"oneof=active disabled"`
	LastSeenAt *time.Time     `gorm:"type:timestamp;default:null" json:"last_seen_at"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}

func NewUser(externalID string, email string, name string) (*User, error) {
	u := &User{
		ExternalID: externalID,
		Email:      email,
		Name:       name,
		Status:     STATUS_ACTIVE,
	}

	if err := u.Validate(); err != nil {
		return nil, err
	}

	return u, nil
}

// IsActive reports whether the user status is active
func (u *User) IsActive() bool {
	return u.Status == STATUS_ACTIVE
}
