package services

import (
	"context"
	"testing"
	"time"

	"prepwise-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGateway struct {
	payments    map[string]*PaymentInfo
	preferences []PreferenceRequest
}

func (g *stubGateway) CreatePreference(_ context.Context, req PreferenceRequest) (*Preference, error) {
	g.preferences = append(g.preferences, req)
	return &Preference{ID: "pref-1", InitPoint: "https://checkout.example/pref-1"}, nil
}

func (g *stubGateway) GetPayment(_ context.Context, paymentID string) (*PaymentInfo, error) {
	payment, ok := g.payments[paymentID]
	if !ok {
		return nil, ErrNotFound
	}
	return payment, nil
}

func newPaymentService(t *testing.T, gateway PaymentGateway) (*PaymentService, *time.Time) {
	t.Helper()
	db := newTestDB(t)
	svc := NewPaymentService(db, gateway, "https://app.example", "https://api.example", newTestLogger())
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }
	return svc, &clock
}

func TestWebhookApprovedPaymentGrantsPremium(t *testing.T) {
	gateway := &stubGateway{payments: map[string]*PaymentInfo{}}
	svc, _ := newPaymentService(t, gateway)
	user := createUser(t, svc.db, "alice", false)
	gateway.payments["pay-1"] = &PaymentInfo{ID: "pay-1", Status: "approved", ExternalReference: user.ID}

	notification := WebhookNotification{Type: "payment"}
	notification.Data.ID = "pay-1"
	require.NoError(t, svc.HandleWebhook(context.Background(), notification))

	var reloaded models.User
	require.NoError(t, svc.db.First(&reloaded, "id = ?", user.ID).Error)
	assert.True(t, reloaded.IsPremium)
	require.NotNil(t, reloaded.PremiumUntil)
	assert.WithinDuration(t, svc.now().Add(180*24*time.Hour), *reloaded.PremiumUntil, time.Second)
}

func TestWebhookRepeatedConfirmationResetsExpiry(t *testing.T) {
	gateway := &stubGateway{payments: map[string]*PaymentInfo{}}
	svc, clock := newPaymentService(t, gateway)
	user := createUser(t, svc.db, "alice", false)
	gateway.payments["pay-1"] = &PaymentInfo{ID: "pay-1", Status: "approved", ExternalReference: user.ID}

	notification := WebhookNotification{Type: "payment"}
	notification.Data.ID = "pay-1"
	require.NoError(t, svc.HandleWebhook(context.Background(), notification))

	// a second confirmation 30 days later re-sets the expiry, it does
	// not stack on top of the first one
	*clock = clock.Add(30 * 24 * time.Hour)
	require.NoError(t, svc.HandleWebhook(context.Background(), notification))

	var reloaded models.User
	require.NoError(t, svc.db.First(&reloaded, "id = ?", user.ID).Error)
	require.NotNil(t, reloaded.PremiumUntil)
	assert.WithinDuration(t, clock.Add(180*24*time.Hour), *reloaded.PremiumUntil, time.Second)
}

func TestWebhookIgnoresNonPaymentAndNonApproved(t *testing.T) {
	gateway := &stubGateway{payments: map[string]*PaymentInfo{}}
	svc, _ := newPaymentService(t, gateway)
	user := createUser(t, svc.db, "alice", false)
	gateway.payments["pay-1"] = &PaymentInfo{ID: "pay-1", Status: "pending", ExternalReference: user.ID}

	other := WebhookNotification{Type: "merchant_order"}
	other.Data.ID = "pay-1"
	require.NoError(t, svc.HandleWebhook(context.Background(), other))

	pending := WebhookNotification{Type: "payment"}
	pending.Data.ID = "pay-1"
	require.NoError(t, svc.HandleWebhook(context.Background(), pending))

	var reloaded models.User
	require.NoError(t, svc.db.First(&reloaded, "id = ?", user.ID).Error)
	assert.False(t, reloaded.IsPremium)
	assert.Nil(t, reloaded.PremiumUntil)
}

func TestWebhookUnknownUser(t *testing.T) {
	gateway := &stubGateway{payments: map[string]*PaymentInfo{
		"pay-1": {ID: "pay-1", Status: "approved", ExternalReference: "no-such-user"},
	}}
	svc, _ := newPaymentService(t, gateway)

	notification := WebhookNotification{Type: "payment"}
	notification.Data.ID = "pay-1"
	err := svc.HandleWebhook(context.Background(), notification)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWebhookSimulationPathWithoutGateway(t *testing.T) {
	svc, _ := newPaymentService(t, nil)
	user := createUser(t, svc.db, "alice", false)

	notification := WebhookNotification{Type: "payment", ExternalReference: user.ID}
	notification.Data.ID = "sim-1"
	require.NoError(t, svc.HandleWebhook(context.Background(), notification))

	var reloaded models.User
	require.NoError(t, svc.db.First(&reloaded, "id = ?", user.ID).Error)
	assert.True(t, reloaded.IsPremium)

	// simulated notifications without a reference are dropped
	bare := WebhookNotification{Type: "payment"}
	bare.Data.ID = "sim-2"
	require.NoError(t, svc.HandleWebhook(context.Background(), bare))
}

func TestCreatePreference(t *testing.T) {
	gateway := &stubGateway{}
	svc, _ := newPaymentService(t, gateway)
	email := "alice@example.com"
	user := createUser(t, svc.db, "alice", false)
	user.Email = &email
	user.FullName = "Alice Doe"
	require.NoError(t, svc.db.Save(user).Error)

	pref, err := svc.CreatePreference(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example/pref-1", pref.InitPoint)

	require.Len(t, gateway.preferences, 1)
	req := gateway.preferences[0]
	assert.Equal(t, user.ID, req.ExternalReference)
	assert.Equal(t, 50.00, req.UnitPrice)
	assert.Equal(t, "BRL", req.Currency)
	assert.Equal(t, "alice@example.com", req.PayerEmail)
	assert.Equal(t, "https://api.example/api/v1/payments/webhook", req.NotificationURL)
}

func TestCreatePreferenceWithoutGateway(t *testing.T) {
	svc, _ := newPaymentService(t, nil)
	user := createUser(t, svc.db, "alice", false)

	_, err := svc.CreatePreference(context.Background(), user)
	assert.Error(t, err)
	assert.False(t, svc.Configured())
}

func TestUpgradeGrantsSixMonths(t *testing.T) {
	svc, _ := newPaymentService(t, nil)
	user := createUser(t, svc.db, "alice", false)

	upgraded, err := svc.Upgrade(user)
	require.NoError(t, err)
	assert.True(t, upgraded.IsPremium)
	require.NotNil(t, upgraded.PremiumUntil)
	assert.WithinDuration(t, svc.now().Add(180*24*time.Hour), *upgraded.PremiumUntil, time.Second)
}
