// internal/domain/payment/service.go
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"github.com/stripe/stripe-go/v81/webhook"

	"github.com/soulmedev/AromeNoir/internal/config"
	"github.com/soulmedev/AromeNoir/internal/domain/order"
)

// decimalHundred converts major currency units to minor ones
var decimalHundred = decimal.NewFromInt(100)

// ErrAlreadyPaid is returned when creating an intent for a paid order
var ErrAlreadyPaid = errors.New("order is already paid")

// ErrInvalidSignature is returned when a webhook signature does not verify
var ErrInvalidSignature = errors.New("invalid webhook signature")

// IntentResponse carries what the storefront needs to collect payment
type IntentResponse struct {
	IntentID       string `json:"intent_id"`
	ClientSecret   string `json:"client_secret"`
	PublishableKey string `json:"publishable_key"`
}

// StatusResponse reports the payment state of an order
type StatusResponse struct {
	OrderID uint   `json:"order_id"`
	Paid    bool   `json:"paid"`
	Status  string `json:"status"`
}

// Service handles payment intents and webhook processing
type Service struct {
	orders *order.Service
	config *config.Config
	logger *logrus.Logger
}

// NewService creates a new payment service and configures the Stripe
// client key
func NewService(orders *order.Service, cfg *config.Config, logger *logrus.Logger) *Service {
	stripe.Key = cfg.Stripe.SecretKey
	return &Service{
		orders: orders,
		config: cfg,
		logger: logger,
	}
}

// CreateIntent creates a payment intent for an order, or returns the
// existing one so refreshing the checkout page stays safe
func (s *Service) CreateIntent(ctx context.Context, orderID uint, userID *uint, sessionID string) (*IntentResponse, error) {
	ord, err := s.orders.Get(ctx, orderID, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if ord.Paid {
		return nil, ErrAlreadyPaid
	}

	if ord.PaymentIntentID != "" {
		existing, err := paymentintent.Get(ord.PaymentIntentID, nil)
		if err == nil && existing.Status != stripe.PaymentIntentStatusCanceled {
			return &IntentResponse{
				IntentID:       existing.ID,
				ClientSecret:   existing.ClientSecret,
				PublishableKey: s.config.Stripe.PublishableKey,
			}, nil
		}
	}

	amount := ord.TotalPrice.Mul(decimalHundred).IntPart()
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(s.config.Stripe.Currency),
		Metadata: map[string]string{
			"order_id":     fmt.Sprintf("%d", ord.ID),
			"order_number": ord.OrderNumber,
		},
	}
	params.Context = ctx

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	if err := s.orders.AttachPaymentIntent(ord.ID, intent.ID); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"order_id":  ord.ID,
		"intent_id": intent.ID,
		"amount":    amount,
	}).Info("Payment intent created")

	return &IntentResponse{
		IntentID:       intent.ID,
		ClientSecret:   intent.ClientSecret,
		PublishableKey: s.config.Stripe.PublishableKey,
	}, nil
}

// Confirm polls the payment intent state. The success page calls this
// until the webhook has landed or the intent itself reports success.
func (s *Service) Confirm(ctx context.Context, orderID uint, userID *uint, sessionID string) (*StatusResponse, error) {
	ord, err := s.orders.Get(ctx, orderID, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if ord.Paid {
		return &StatusResponse{OrderID: ord.ID, Paid: true, Status: string(ord.Status)}, nil
	}

	if ord.PaymentIntentID != "" {
		params := &stripe.PaymentIntentParams{}
		params.Context = ctx
		intent, err := paymentintent.Get(ord.PaymentIntentID, params)
		if err != nil {
			return nil, fmt.Errorf("failed to get payment intent: %w", err)
		}
		if intent.Status == stripe.PaymentIntentStatusSucceeded {
			if err := s.orders.MarkPaid(ord.ID, intent.ID); err != nil {
				return nil, err
			}
			return &StatusResponse{OrderID: ord.ID, Paid: true, Status: string(order.StatusProcessing)}, nil
		}
	}

	return &StatusResponse{OrderID: ord.ID, Paid: false, Status: string(ord.Status)}, nil
}

// ProcessWebhook verifies the signature and applies the event.
// Processing failures after verification are logged and swallowed so
// Stripe does not retry forever.
func (s *Service) ProcessWebhook(payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, s.config.Stripe.WebhookSecret)
	if err != nil {
		return ErrInvalidSignature
	}

	if err := s.handleEvent(event); err != nil {
		s.logger.WithError(err).WithField("event_type", event.Type).Warn("Webhook event not applied")
	}
	return nil
}

func (s *Service) handleEvent(event stripe.Event) error {
	switch event.Type {
	case "payment_intent.succeeded":
		return s.handleIntentSucceeded(event)
	case "payment_intent.payment_failed":
		return s.handleIntentFailed(event)
	default:
		s.logger.WithField("event_type", event.Type).Debug("Ignoring webhook event")
		return nil
	}
}

func (s *Service) handleIntentSucceeded(event stripe.Event) error {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return fmt.Errorf("failed to decode payment intent: %w", err)
	}

	ord, err := s.orders.GetByPaymentIntent(intent.ID)
	if err != nil {
		return err
	}

	if err := s.orders.MarkPaid(ord.ID, intent.ID); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"order_id":  ord.ID,
		"intent_id": intent.ID,
	}).Info("Order marked paid")
	return nil
}

func (s *Service) handleIntentFailed(event stripe.Event) error {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return fmt.Errorf("failed to decode payment intent: %w", err)
	}

	s.logger.WithField("intent_id", intent.ID).Warn("Payment failed")
	return nil
}
