package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	BONUS_TYPE_FIXED      = "fixed"
	BONUS_TYPE_PERCENTAGE = "percentage"
)

// Gig is a single booked performance with its financial terms. The fee and
// headcount fields are the input snapshot for the settlement calculator and
// are clamped on write, so the calculator never sees negative fees or a
// musician count below one.
type Gig struct {
	ID                      uint           `gorm:"primaryKey" json:"id"`
	UserID                  uint           `gorm:"index" json:"user_id"`
	User                    User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	EventName               string         `gorm:"type:varchar(200)" json:"event_name" validate:"required,max=200"`
	BandName                string         `gorm:"type:varchar(150);index" json:"band_name" validate:"required,max=150"`
	Date                    time.Time      `gorm:"index" json:"date"`
	Performers              string         `gorm:"type:text" json:"performers"`
	NumberOfMusicians       int            `gorm:"default:1" json:"number_of_musicians" validate:"min=1"`
	PerformanceFee          float64        `json:"performance_fee" validate:"min=0"`
	TechnicalFee            float64        `json:"technical_fee" validate:"min=0"`
	ManagerBonusType        string         `gorm:"type:varchar(20);default:'fixed'" json:"manager_bonus_type" validate:"oneof=fixed percentage"`
	ManagerBonusAmount      float64        `json:"manager_bonus_amount" validate:"min=0"`
	ClaimPerformanceFee     bool           `gorm:"default:true" json:"claim_performance_fee"`
	ClaimTechnicalFee       bool           `gorm:"default:true" json:"claim_technical_fee"`
	TechnicalFeeClaimAmount *float64       `json:"technical_fee_claim_amount"`
	PaymentReceived         bool           `gorm:"default:false;index" json:"payment_received"`
	PaymentReceivedDate     *time.Time     `gorm:"type:timestamp;default:null" json:"payment_received_date"`
	BandPaid                bool           `gorm:"default:false;index" json:"band_paid"`
	BandPaidDate            *time.Time     `gorm:"type:timestamp;default:null" json:"band_paid_date"`
	Notes                   string         `gorm:"type:text" json:"notes"`
	CreatedAt               time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt               time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt               gorm.DeletedAt `gorm:"index" json:"-"`
}

func (g *Gig) Validate() error {
	v := validator.New()

	return v.Struct(g)
}

// Clamp normalizes the numeric fields to the ranges the settlement
// calculator expects: fees never negative, at least one musician, and a
// partial technical claim never above the technical fee itself.
func (g *Gig) Clamp() {
	if g.NumberOfMusicians < 1 {
		g.NumberOfMusicians = 1
	}
	if g.PerformanceFee < 0 {
		g.PerformanceFee = 0
	}
	if g.TechnicalFee < 0 {
		g.TechnicalFee = 0
	}
	if g.ManagerBonusAmount < 0 {
		g.ManagerBonusAmount = 0
	}
	if g.ManagerBonusType != BONUS_TYPE_PERCENTAGE {
		g.ManagerBonusType = BONUS_TYPE_FIXED
	}
	if g.TechnicalFeeClaimAmount != nil {
		claim := *g.TechnicalFeeClaimAmount
		if claim < 0 {
			claim = 0
		}
		if claim > g.TechnicalFee {
			claim = g.TechnicalFee
		}
		g.TechnicalFeeClaimAmount = &claim
	}
}
