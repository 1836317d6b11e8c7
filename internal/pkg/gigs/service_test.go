package gigs

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gigledger/GigLedger/app/models"
	"github.com/gigledger/GigLedger/app/repository"
	"github.com/gigledger/GigLedger/internal/pkg/notification"
	"github.com/gigledger/GigLedger/internal/pkg/webhook"
)

// fakeGigRepo stores gigs in a map keyed by ID
type fakeGigRepo struct {
	gigs      map[uint]*models.Gig
	nextID    uint
	updateErr error
}

func newFakeGigRepo() *fakeGigRepo {
	return &fakeGigRepo{gigs: map[uint]*models.Gig{}, nextID: 1}
}

func (f *fakeGigRepo) Create(gig *models.Gig) error {
	gig.ID = f.nextID
	f.nextID++
	stored := *gig
	f.gigs[gig.ID] = &stored
	return nil
}

func (f *fakeGigRepo) GetByID(id uint) (*models.Gig, error) {
	gig, ok := f.gigs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *gig
	return &copied, nil
}

func (f *fakeGigRepo) GetByUserID(userID uint, offset, limit int) ([]models.Gig, error) {
	return nil, nil
}

func (f *fakeGigRepo) GetReceivedUnpaidByBand(userID uint, bandName string) ([]models.Gig, error) {
	var out []models.Gig
	for _, gig := range f.gigs {
		if gig.UserID == userID && gig.BandName == bandName && gig.PaymentReceived && !gig.BandPaid {
			out = append(out, *gig)
		}
	}
	return out, nil
}

func (f *fakeGigRepo) Update(gig *models.Gig) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	stored := *gig
	f.gigs[gig.ID] = &stored
	return nil
}

func (f *fakeGigRepo) Delete(id uint) error           { delete(f.gigs, id); return nil }
func (f *fakeGigRepo) Count() (int64, error)          { return int64(len(f.gigs)), nil }
func (f *fakeGigRepo) CountByUserID(uint) (int64, error) { return 0, nil }

// singleHookRegistry answers every event lookup with one subscription
type singleHookRegistry struct{}

func (singleHookRegistry) Create(*models.Webhook) error               { return nil }
func (singleHookRegistry) GetByID(uint) (*models.Webhook, error)      { return nil, nil }
func (singleHookRegistry) GetByUserID(uint) ([]models.Webhook, error) { return nil, nil }
func (singleHookRegistry) Update(*models.Webhook) error               { return nil }
func (singleHookRegistry) DeleteWithLogs(uint) error                  { return nil }
func (singleHookRegistry) Count() (int64, error)                      { return 0, nil }

func (singleHookRegistry) ListEnabledForEvent(userID uint, event string) ([]models.Webhook, error) {
	return []models.Webhook{{ID: 1, UserID: userID, Enabled: true}}, nil
}

// recordingEnqueuer captures dispatched event payloads
type recordingEnqueuer struct {
	payloads []webhook.EventPayload
}

func (r *recordingEnqueuer) EnqueueWebhookDelivery(webhookID uint, payload webhook.EventPayload) error {
	r.payloads = append(r.payloads, payload)
	return nil
}

// fakeNotificationStore collects created notifications
type fakeNotificationStore struct {
	created []models.Notification
}

func (f *fakeNotificationStore) Create(n *models.Notification) error {
	f.created = append(f.created, *n)
	return nil
}

func (f *fakeNotificationStore) GetByUserID(uint, int, int) ([]models.Notification, error) {
	return nil, nil
}
func (f *fakeNotificationStore) CountUnread(uint) (int64, error)          { return 0, nil }
func (f *fakeNotificationStore) MarkAsRead(uint) error                    { return nil }
func (f *fakeNotificationStore) MarkAllAsRead(uint) error                 { return nil }
func (f *fakeNotificationStore) DeleteOlderThan(time.Time) (int64, error) { return 0, nil }

var _ repository.GigRepository = (*fakeGigRepo)(nil)

func newTestService() (*Service, *fakeGigRepo, *recordingEnqueuer, *fakeNotificationStore) {
	gigRepo := newFakeGigRepo()
	queue := &recordingEnqueuer{}
	notifStore := &fakeNotificationStore{}
	svc := NewService(
		gigRepo,
		webhook.NewDispatcher(singleHookRegistry{}, queue),
		notification.NewService(notifStore),
	)
	return svc, gigRepo, queue, notifStore
}

func quartetGig() *models.Gig {
	return &models.Gig{
		UserID:              42,
		EventName:           "Spring Gala",
		BandName:            "Quartet",
		Date:                time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC),
		NumberOfMusicians:   4,
		PerformanceFee:      1200,
		TechnicalFee:        300,
		ManagerBonusType:    models.BONUS_TYPE_FIXED,
		ManagerBonusAmount:  50,
		ClaimPerformanceFee: true,
		ClaimTechnicalFee:   true,
	}
}

func TestCreate_PersistsAndAnnounces(t *testing.T) {
	svc, gigRepo, queue, notifStore := newTestService()

	gig := quartetGig()
	require.NoError(t, svc.Create(gig))

	assert.NotZero(t, gig.ID)
	stored, err := gigRepo.GetByID(gig.ID)
	require.NoError(t, err)
	assert.Equal(t, "Quartet", stored.BandName)

	require.Len(t, queue.payloads, 1)
	assert.Equal(t, webhook.EventGigAdded, queue.payloads[0].Event)
	assert.Equal(t, 1550.0, queue.payloads[0].Data["amount"])
	assert.Equal(t, "2026-06-01", queue.payloads[0].Data["date"])

	require.Len(t, notifStore.created, 1)
	assert.Equal(t, "gig_added", notifStore.created[0].Type)
}

func TestCreate_InvalidGigRejected(t *testing.T) {
	svc, _, queue, _ := newTestService()

	gig := quartetGig()
	gig.BandName = ""

	err := svc.Create(gig)
	require.Error(t, err)
	assert.Empty(t, queue.payloads, "no event for a rejected gig")
}

func TestCreate_ClampsBeforeStoring(t *testing.T) {
	svc, gigRepo, _, _ := newTestService()

	gig := quartetGig()
	gig.NumberOfMusicians = 0
	gig.PerformanceFee = -100

	require.NoError(t, svc.Create(gig))

	stored, err := gigRepo.GetByID(gig.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.NumberOfMusicians)
	assert.Zero(t, stored.PerformanceFee)
}

func TestUpdate_AnnouncesChange(t *testing.T) {
	svc, _, queue, _ := newTestService()

	gig := quartetGig()
	require.NoError(t, svc.Create(gig))
	queue.payloads = nil

	gig.PerformanceFee = 1400
	require.NoError(t, svc.Update(gig, "fee raised"))

	require.Len(t, queue.payloads, 1)
	assert.Equal(t, webhook.EventGigUpdated, queue.payloads[0].Event)
	assert.Equal(t, "fee raised", queue.payloads[0].Data["change"])
}

func TestUpdate_EmptyChangeGetsDefault(t *testing.T) {
	svc, _, queue, _ := newTestService()

	gig := quartetGig()
	require.NoError(t, svc.Create(gig))
	queue.payloads = nil

	require.NoError(t, svc.Update(gig, ""))

	require.Len(t, queue.payloads, 1)
	assert.Equal(t, "details changed", queue.payloads[0].Data["change"])
}

func TestMarkPaymentReceived(t *testing.T) {
	svc, gigRepo, queue, notifStore := newTestService()

	gig := quartetGig()
	require.NoError(t, svc.Create(gig))
	queue.payloads = nil
	notifStore.created = nil

	receivedAt := time.Date(2026, 6, 2, 9, 0, 0, 0, time.UTC)
	require.NoError(t, svc.MarkPaymentReceived(gig.ID, receivedAt))

	stored, err := gigRepo.GetByID(gig.ID)
	require.NoError(t, err)
	assert.True(t, stored.PaymentReceived)
	require.NotNil(t, stored.PaymentReceivedDate)
	assert.True(t, receivedAt.Equal(*stored.PaymentReceivedDate))

	require.Len(t, queue.payloads, 1)
	assert.Equal(t, webhook.EventPaymentReceived, queue.payloads[0].Event)
	assert.Equal(t, 1550.0, queue.payloads[0].Data["amount"])

	require.Len(t, notifStore.created, 1)
	assert.Equal(t, "payment_received", notifStore.created[0].Type)
}

func TestMarkPaymentReceived_Idempotent(t *testing.T) {
	svc, _, queue, _ := newTestService()

	gig := quartetGig()
	require.NoError(t, svc.Create(gig))
	queue.payloads = nil

	require.NoError(t, svc.MarkPaymentReceived(gig.ID, time.Time{}))
	require.NoError(t, svc.MarkPaymentReceived(gig.ID, time.Time{}))

	assert.Len(t, queue.payloads, 1, "second call must not announce again")
}

func TestMarkPaymentReceived_UnknownGig(t *testing.T) {
	svc, _, _, _ := newTestService()

	err := svc.MarkPaymentReceived(999, time.Time{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestMarkBandPaid_SettlesAllOpenGigs(t *testing.T) {
	svc, gigRepo, queue, _ := newTestService()

	// Two received gigs for the band, one still unreceived
	for i := 0; i < 3; i++ {
		gig := quartetGig()
		require.NoError(t, svc.Create(gig))
		if i < 2 {
			require.NoError(t, svc.MarkPaymentReceived(gig.ID, time.Time{}))
		}
	}
	queue.payloads = nil

	require.NoError(t, svc.MarkBandPaid(42, "Quartet"))

	require.Len(t, queue.payloads, 1)
	p := queue.payloads[0]
	assert.Equal(t, webhook.EventBandPaid, p.Event)
	// Each quartet gig owes 3 * 300 to the others
	assert.Equal(t, 1800.0, p.Data["amount"])
	assert.Equal(t, 2, p.Data["gig_count"])

	open, err := gigRepo.GetReceivedUnpaidByBand(42, "Quartet")
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestMarkBandPaid_NoOpenGigsNoEvent(t *testing.T) {
	svc, _, queue, _ := newTestService()

	require.NoError(t, svc.MarkBandPaid(42, "Quartet"))

	assert.Empty(t, queue.payloads)
}

func TestService_NilFanOut(t *testing.T) {
	svc := NewService(newFakeGigRepo(), nil, nil)

	gig := quartetGig()
	require.NoError(t, svc.Create(gig))
	require.NoError(t, svc.MarkPaymentReceived(gig.ID, time.Time{}))
	require.NoError(t, svc.MarkBandPaid(42, "Quartet"))
}

func TestSettlement(t *testing.T) {
	svc, _, _, _ := newTestService()

	result := svc.Settlement(quartetGig())
	assert.Equal(t, 1550.0, result.TotalReceived)
	assert.Equal(t, 300.0, result.AmountPerMusician)
	assert.Equal(t, 650.0, result.MyEarnings)
	assert.Equal(t, 900.0, result.AmountOwedToOthers)
}

func TestSettlementByID(t *testing.T) {
	svc, _, _, _ := newTestService()

	gig := quartetGig()
	require.NoError(t, svc.Create(gig))

	result, err := svc.SettlementByID(gig.ID)
	require.NoError(t, err)
	assert.Equal(t, 1550.0, result.TotalReceived)

	_, err = svc.SettlementByID(999)
	require.Error(t, err)
}
