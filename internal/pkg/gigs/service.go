// Package gigs holds the mutation flows around booked gigs: create, edit,
// and the two payment state changes. Each successful mutation fans out to
// the webhook dispatcher and the in-app notification service; neither can
// fail the mutation itself.
package gigs

import (
	"fmt"
	"time"

	"github.com/gigledger/GigLedger/app/models"
	"github.com/gigledger/GigLedger/app/repository"
	"github.com/gigledger/GigLedger/internal/pkg/notification"
	"github.com/gigledger/GigLedger/internal/pkg/settlement"
	"github.com/gigledger/GigLedger/internal/pkg/webhook"
)

// Service coordinates gig persistence with event fan-out.
type Service struct {
	gigs       repository.GigRepository
	dispatcher *webhook.Dispatcher
	notifier   *notification.Service
}

// NewService creates a gig service. Dispatcher and notifier may be nil, in
// which case the corresponding fan-out is skipped (used by the migration
// tool and some tests).
func NewService(gigs repository.GigRepository, dispatcher *webhook.Dispatcher, notifier *notification.Service) *Service {
	return &Service{gigs: gigs, dispatcher: dispatcher, notifier: notifier}
}

// Create validates, clamps and stores a new gig, then announces it.
func (s *Service) Create(gig *models.Gig) error {
	gig.Clamp()
	if err := gig.Validate(); err != nil {
		return fmt.Errorf("invalid gig: %w", err)
	}

	if err := s.gigs.Create(gig); err != nil {
		return fmt.Errorf("failed to create gig: %w", err)
	}

	result := s.Settlement(gig)
	dateStr := gig.Date.Format("2006-01-02")
	if s.dispatcher != nil {
		s.dispatcher.GigAdded(gig.UserID, gig.BandName, dateStr, result.TotalReceived)
	}
	if s.notifier != nil {
		s.notifier.GigAdded(gig.UserID, gig.ID, gig.BandName, dateStr)
	}

	return nil
}

// Update validates, clamps and stores an edited gig, then announces the
// change. The change description is free text shown to receivers.
func (s *Service) Update(gig *models.Gig, change string) error {
	gig.Clamp()
	if err := gig.Validate(); err != nil {
		return fmt.Errorf("invalid gig: %w", err)
	}

	if err := s.gigs.Update(gig); err != nil {
		return fmt.Errorf("failed to update gig: %w", err)
	}

	if change == "" {
		change = "details changed"
	}
	if s.dispatcher != nil {
		s.dispatcher.GigUpdated(gig.UserID, gig.BandName, change)
	}
	if s.notifier != nil {
		s.notifier.GigUpdated(gig.UserID, gig.ID, gig.BandName, change)
	}

	return nil
}

// MarkPaymentReceived flags a gig as paid by the client. A zero receivedAt
// defaults to now. Marking an already-received gig again is a no-op.
func (s *Service) MarkPaymentReceived(gigID uint, receivedAt time.Time) error {
	gig, err := s.gigs.GetByID(gigID)
	if err != nil {
		return fmt.Errorf("gig %d not found: %w", gigID, err)
	}
	if gig.PaymentReceived {
		return nil
	}

	if receivedAt.IsZero() {
		receivedAt = time.Now()
	}
	gig.PaymentReceived = true
	gig.PaymentReceivedDate = &receivedAt

	if err := s.gigs.Update(gig); err != nil {
		return fmt.Errorf("failed to mark gig %d as received: %w", gigID, err)
	}

	result := s.Settlement(gig)
	if s.dispatcher != nil {
		s.dispatcher.PaymentReceived(gig.UserID, gig.BandName, result.TotalReceived, receivedAt.Format(time.RFC3339))
	}
	if s.notifier != nil {
		s.notifier.PaymentReceived(gig.UserID, gig.ID, gig.BandName, result.TotalReceived)
	}

	return nil
}

// MarkBandPaid settles all received-but-unpaid gigs of one band at once:
// each gig gets its band-paid flag and date set, and a single event with
// the summed amount owed goes out at the end. No matching gigs means no
// event.
func (s *Service) MarkBandPaid(userID uint, bandName string) error {
	open, err := s.gigs.GetReceivedUnpaidByBand(userID, bandName)
	if err != nil {
		return fmt.Errorf("failed to load open gigs for %s: %w", bandName, err)
	}
	if len(open) == 0 {
		return nil
	}

	now := time.Now()
	totalOwed := 0.0
	paid := 0
	for i := range open {
		gig := &open[i]
		result := s.Settlement(gig)

		gig.BandPaid = true
		gig.BandPaidDate = &now
		if err := s.gigs.Update(gig); err != nil {
			return fmt.Errorf("failed to mark gig %d as band-paid: %w", gig.ID, err)
		}
		totalOwed += result.AmountOwedToOthers
		paid++
	}

	if s.dispatcher != nil {
		s.dispatcher.BandPaid(userID, bandName, totalOwed, paid)
	}
	if s.notifier != nil {
		s.notifier.BandPaid(userID, bandName, totalOwed, paid)
	}

	return nil
}

// Settlement computes the financial split for one gig.
func (s *Service) Settlement(gig *models.Gig) settlement.Result {
	return settlement.Calculate(financials(gig))
}

// SettlementByID loads a gig and computes its split, for read paths.
func (s *Service) SettlementByID(gigID uint) (settlement.Result, error) {
	gig, err := s.gigs.GetByID(gigID)
	if err != nil {
		return settlement.Result{}, fmt.Errorf("gig %d not found: %w", gigID, err)
	}
	return s.Settlement(gig), nil
}

func financials(g *models.Gig) settlement.GigFinancials {
	return settlement.GigFinancials{
		PerformanceFee:          g.PerformanceFee,
		TechnicalFee:            g.TechnicalFee,
		ManagerBonusType:        g.ManagerBonusType,
		ManagerBonusAmount:      g.ManagerBonusAmount,
		NumberOfMusicians:       g.NumberOfMusicians,
		ClaimPerformanceFee:     g.ClaimPerformanceFee,
		ClaimTechnicalFee:       g.ClaimTechnicalFee,
		TechnicalFeeClaimAmount: g.TechnicalFeeClaimAmount,
	}
}
