package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"conectacg_backend/internal/apperrors"
	"conectacg_backend/internal/logger"
	"conectacg_backend/internal/models"
	"conectacg_backend/internal/repositories"
)

// Billing gateway event types accepted on the callback endpoint.
const (
	billingSubscriptionCreated  = "subscription.created"
	billingSubscriptionUpdated  = "subscription.updated"
	billingSubscriptionCanceled = "subscription.canceled"
	billingInvoicePaid          = "invoice.paid"
	billingInvoiceFailed        = "invoice.failed"
)

type BillingService interface {
	CheckoutURL(providerID string, tier models.BillingTier) (string, error)
	PortalURL(providerID string) (string, error)
	HandleCallback(payload []byte, signature string) error
}

type billingService struct {
	providers repositories.ProviderRepository

	callbackSecret string
	checkoutURL    string
	portalURL      string
}

func NewBillingService(providers repositories.ProviderRepository, callbackSecret, checkoutURL, portalURL string) BillingService {
	return &billingService{
		providers:      providers,
		callbackSecret: callbackSecret,
		checkoutURL:    checkoutURL,
		portalURL:      portalURL,
	}
}

// CheckoutURL hands the client off to the hosted checkout page for a paid
// tier. Without a configured gateway the endpoint is unavailable, not broken.
func (s *billingService) CheckoutURL(providerID string, tier models.BillingTier) (string, error) {
	if s.checkoutURL == "" {
		return "", apperrors.ErrBillingUnavailable
	}
	if !models.ValidBillingTier(tier) || tier == models.TierFree {
		return "", apperrors.NewBadRequestError("Plano de assinatura inválido")
	}
	if _, err := s.providers.FindByID(providerID); err != nil {
		return "", notFoundOr(err, apperrors.ErrAccountNotFound)
	}
	return fmt.Sprintf("%s?provider=%s&tier=%s", s.checkoutURL, providerID, tier), nil
}

func (s *billingService) PortalURL(providerID string) (string, error) {
	if s.portalURL == "" {
		return "", apperrors.ErrBillingUnavailable
	}
	account, err := s.providers.FindAccountByProvider(providerID)
	if err != nil {
		return "", notFoundOr(err, apperrors.ErrAccountNotFound)
	}
	if account.BillingCustomerID == nil {
		return "", apperrors.NewBadRequestError("Operadora sem assinatura ativa")
	}
	return fmt.Sprintf("%s?customer=%s", s.portalURL, *account.BillingCustomerID), nil
}

type billingEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		ProviderID     string  `json:"providerId"`
		CustomerID     string  `json:"customerId"`
		SubscriptionID string  `json:"subscriptionId"`
		Tier           string  `json:"tier"`
		Amount         float64 `json:"amount"`
		Description    string  `json:"description"`
	} `json:"data"`
}

// HandleCallback applies a signed billing-gateway event. Tier changes only
// ever enter the system through here. Redelivered invoice events are absorbed
// by the transaction's unique external ID; unknown event types are
// acknowledged and ignored.
func (s *billingService) HandleCallback(payload []byte, signature string) error {
	if s.callbackSecret == "" {
		return apperrors.ErrBillingUnavailable
	}
	if !s.verifySignature(payload, signature) {
		return apperrors.ErrInvalidSignature
	}

	var event billingEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return apperrors.NewBadRequestError("Payload de webhook inválido")
	}

	switch event.Type {
	case billingSubscriptionCreated, billingSubscriptionUpdated:
		return s.applySubscription(&event)
	case billingSubscriptionCanceled:
		return s.cancelSubscription(&event)
	case billingInvoicePaid:
		return s.recordInvoice(&event, models.PaymentStatusSucceeded)
	case billingInvoiceFailed:
		return s.recordInvoice(&event, models.PaymentStatusFailed)
	default:
		logger.Warn("unhandled billing event type", "type", event.Type, "id", event.ID)
		return nil
	}
}

func (s *billingService) verifySignature(payload []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.callbackSecret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (s *billingService) applySubscription(event *billingEvent) error {
	account, err := s.findAccount(event)
	if err != nil {
		return err
	}

	tier := models.BillingTier(event.Data.Tier)
	if !models.ValidBillingTier(tier) {
		return apperrors.NewBadRequestError("Tier de assinatura inválido")
	}

	account.Tier = tier
	account.MonthlyFee = models.TierMonthlyFee[tier]
	account.IsActive = true
	if event.Data.CustomerID != "" {
		account.BillingCustomerID = &event.Data.CustomerID
	}
	if event.Data.SubscriptionID != "" {
		account.BillingSubID = &event.Data.SubscriptionID
	}

	if err := s.providers.UpdateAccount(account); err != nil {
		return apperrors.InternalError(err)
	}
	logger.Info("provider tier updated", "providerId", account.ProviderID, "tier", tier)
	return nil
}

func (s *billingService) cancelSubscription(event *billingEvent) error {
	account, err := s.findAccount(event)
	if err != nil {
		return err
	}

	account.Tier = models.TierFree
	account.MonthlyFee = 0
	account.BillingSubID = nil

	if err := s.providers.UpdateAccount(account); err != nil {
		return apperrors.InternalError(err)
	}
	logger.Info("provider downgraded to free", "providerId", account.ProviderID)
	return nil
}

func (s *billingService) recordInvoice(event *billingEvent, status models.PaymentStatus) error {
	tx := &models.PaymentTransaction{
		ExternalID:  event.ID,
		Amount:      event.Data.Amount,
		Status:      status,
		Description: event.Data.Description,
	}
	if event.Data.ProviderID != "" {
		tx.ProviderID = &event.Data.ProviderID
	}
	if err := s.providers.CreatePaymentTransaction(tx); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// findAccount resolves the target account by provider ID when present,
// falling back to the billing subscription reference.
func (s *billingService) findAccount(event *billingEvent) (*models.ProviderAccount, error) {
	if event.Data.ProviderID != "" {
		account, err := s.providers.FindAccountByProvider(event.Data.ProviderID)
		if err != nil {
			return nil, notFoundOr(err, apperrors.ErrAccountNotFound)
		}
		return account, nil
	}
	if event.Data.SubscriptionID != "" {
		account, err := s.providers.FindAccountByBillingSub(event.Data.SubscriptionID)
		if err != nil {
			return nil, notFoundOr(err, apperrors.ErrAccountNotFound)
		}
		return account, nil
	}
	return nil, apperrors.NewBadRequestError("Evento sem referência de operadora")
}
