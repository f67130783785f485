package services

import (
	"context"
	"fmt"
	"time"

	"prepwise-backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const premiumDuration = 180 * 24 * time.Hour

// PaymentInfo is the gateway's view of a confirmed payment. The
// external reference carries the paying user's id.
type PaymentInfo struct {
	ID                string
	Status            string
	ExternalReference string
}

type PreferenceRequest struct {
	Title             string
	UnitPrice         float64
	Currency          string
	PayerEmail        string
	PayerName         string
	ExternalReference string
	SuccessURL        string
	FailureURL        string
	PendingURL        string
	NotificationURL   string
}

type Preference struct {
	ID        string
	InitPoint string
}

// PaymentGateway abstracts the payment provider SDK.
type PaymentGateway interface {
	CreatePreference(ctx context.Context, req PreferenceRequest) (*Preference, error)
	GetPayment(ctx context.Context, paymentID string) (*PaymentInfo, error)
}

type PaymentService struct {
	db          *gorm.DB
	gateway     PaymentGateway
	frontendURL string
	webhookURL  string
	log         *logrus.Logger
	now         func() time.Time
}

func NewPaymentService(db *gorm.DB, gateway PaymentGateway, frontendURL, webhookURL string, log *logrus.Logger) *PaymentService {
	return &PaymentService{
		db:          db,
		gateway:     gateway,
		frontendURL: frontendURL,
		webhookURL:  webhookURL,
		log:         log,
		now:         time.Now,
	}
}

func (s *PaymentService) Configured() bool {
	return s.gateway != nil
}

// CreatePreference starts a checkout for the 6-month premium plan.
func (s *PaymentService) CreatePreference(ctx context.Context, user *models.User) (*Preference, error) {
	if s.gateway == nil {
		return nil, fmt.Errorf("payment gateway is not configured")
	}

	email := "unknown@example.com"
	if user.Email != nil {
		email = *user.Email
	}
	name := user.FullName
	if name == "" {
		name = user.Username
	}

	return s.gateway.CreatePreference(ctx, PreferenceRequest{
		Title:             "PrepWise Premium - 6 Month Plan",
		UnitPrice:         50.00,
		Currency:          "BRL",
		PayerEmail:        email,
		PayerName:         name,
		ExternalReference: user.ID,
		SuccessURL:        s.frontendURL + "/?payment=success",
		FailureURL:        s.frontendURL + "/?payment=failure",
		PendingURL:        s.frontendURL + "/?payment=pending",
		NotificationURL:   s.webhookURL + "/api/v1/payments/webhook",
	})
}

type WebhookNotification struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
	// ExternalReference lets simulated notifications name the user
	// directly when no gateway is configured.
	ExternalReference string `json:"external_reference"`
}

// HandleWebhook processes an asynchronous payment notification. On a
// confirmed approved payment the referenced user becomes premium until
// now + 180 days, unconditionally; a repeated confirmation re-sets the
// expiry rather than extending it.
func (s *PaymentService) HandleWebhook(ctx context.Context, notification WebhookNotification) error {
	if notification.Type != "payment" {
		return nil
	}

	if s.gateway == nil {
		// Test/simulation path: trust the external reference carried
		// by the notification itself.
		if notification.Data.ID == "" || notification.ExternalReference == "" {
			return nil
		}
		s.log.WithField("payment_id", notification.Data.ID).Info("payment gateway not configured, using simulated confirmation")
		return s.grantPremium(notification.ExternalReference)
	}

	if notification.Data.ID == "" {
		return nil
	}

	payment, err := s.gateway.GetPayment(ctx, notification.Data.ID)
	if err != nil {
		return fmt.Errorf("payment lookup failed: %w", err)
	}
	if payment.Status != "approved" {
		return nil
	}
	if payment.ExternalReference == "" {
		return nil
	}
	return s.grantPremium(payment.ExternalReference)
}

func (s *PaymentService) grantPremium(userID string) error {
	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return fmt.Errorf("user %w", ErrNotFound)
	}

	until := s.now().Add(premiumDuration)
	user.IsPremium = true
	user.PremiumUntil = &until
	if err := s.db.Save(&user).Error; err != nil {
		return err
	}
	s.log.WithField("username", user.Username).Info("payment approved, premium granted")
	return nil
}

// Upgrade simulates a premium purchase for the calling user.
func (s *PaymentService) Upgrade(user *models.User) (*models.User, error) {
	until := s.now().Add(premiumDuration)
	user.IsPremium = true
	user.PremiumUntil = &until
	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
