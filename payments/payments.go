package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
)

var (
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	ErrNotConfigured = errors.New("payment processor is not configured")
)

// IntentCreator creates a payment intent for amount (in major currency
// units) and returns its client secret.
type IntentCreator interface {
	CreatePaymentIntent(ctx context.Context, amount decimal.Decimal) (string, error)
}

// ToMinorUnits converts an amount such as 7.54 into 754, rounding half away
// from zero.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

type StripeCreator struct {
	api      *client.API
	currency string
	logger   *zap.Logger
}

func NewStripeCreator(secretKey, currency string, logger *zap.Logger) *StripeCreator {
	s := &StripeCreator{
		currency: strings.ToLower(currency),
		logger:   logger.Named("stripe"),
	}
	if secretKey != "" {
		s.api = client.New(secretKey, nil)
	}
	return s
}

func (s *StripeCreator) CreatePaymentIntent(ctx context.Context, amount decimal.Decimal) (string, error) {
	cents := ToMinorUnits(amount)
	if cents <= 0 {
		return "", ErrInvalidAmount
	}
	if s.api == nil {
		return "", ErrNotConfigured
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(cents),
		Currency: stripe.String(s.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	intent, err := s.api.PaymentIntents.New(params)
	if err != nil {
		s.logger.Error("Failed to create payment intent", zap.Int64("amount", cents), zap.Error(err))
		return "", fmt.Errorf("create payment intent: %w", err)
	}

	s.logger.Info("Payment intent created", zap.String("intent_id", intent.ID), zap.Int64("amount", cents))
	return intent.ClientSecret, nil
}
