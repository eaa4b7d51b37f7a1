package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/caioolkk/semcensura-loja/internal/domain"
	"github.com/caioolkk/semcensura-loja/internal/infrastructure/mercadopago"
	"github.com/caioolkk/semcensura-loja/internal/pkg/id"
	"github.com/caioolkk/semcensura-loja/internal/pkg/validate"
	"github.com/shopspring/decimal"
)

type Service interface {
	// Checkout persists the order, requests a payment preference from the
	// gateway and returns the preference id.
	Checkout(ctx context.Context, req domain.CheckoutRequest) (string, error)
	List(ctx context.Context) ([]domain.Order, error)
}

type orderStore interface {
	Put(ctx context.Context, o *domain.Order) error
	Update(ctx context.Context, orderID string, updates map[string]interface{}) error
	List(ctx context.Context) ([]domain.Order, error)
}

type preferenceCreator interface {
	CreatePreference(ctx context.Context, items []mercadopago.Item, payerEmail, externalRef string) (string, error)
}

type service struct {
	repo     orderStore
	payments preferenceCreator
	currency string
}

type ServiceDeps struct {
	OrderRepo orderStore
	Payments  preferenceCreator
	Currency  string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:     deps.OrderRepo,
		payments: deps.Payments,
		currency: deps.Currency,
	}
}

// Checkout persists the order before any external call: a gateway outage must
// never lose a submitted cart. On gateway failure the order stays pending
// with no preference id, left for reconciliation rather than rolled back.
func (s *service) Checkout(ctx context.Context, req domain.CheckoutRequest) (string, error) {
	if err := validate.Struct(req); err != nil {
		return "", fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	// Translate the cart up front so a malformed price is rejected before
	// anything is written.
	prefItems, err := s.toPreferenceItems(req.Items)
	if err != nil {
		return "", err
	}

	referral := req.ReferralCode
	if referral == "" {
		referral = domain.ReferralNone
	}
	order := &domain.Order{
		OrderID:      id.New(),
		BuyerEmail:   req.BuyerEmail,
		Items:        req.Items,
		ReferralCode: referral,
		Status:       domain.OrderStatusPending,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, order); err != nil {
		slog.Error("persist order", "order_id", order.OrderID, "err", err)
		return "", fmt.Errorf("persist order: %w", domain.ErrStorage)
	}

	prefID, err := s.payments.CreatePreference(ctx, prefItems, req.BuyerEmail, order.OrderID)
	if err != nil {
		slog.Error("create payment preference", "order_id", order.OrderID, "err", err)
		return "", fmt.Errorf("create payment preference: %w", domain.ErrGateway)
	}

	if err := s.repo.Update(ctx, order.OrderID, map[string]interface{}{"payment_preference_id": prefID}); err != nil {
		// The preference exists and the caller can still pay with it; keep
		// the id in the response and leave the order for reconciliation.
		slog.Warn("attach preference id", "order_id", order.OrderID, "preference_id", prefID, "err", err)
	}
	return prefID, nil
}

func (s *service) toPreferenceItems(items []domain.LineItem) ([]mercadopago.Item, error) {
	out := make([]mercadopago.Item, len(items))
	for i, it := range items {
		price, err := decimal.NewFromString(it.UnitPrice)
		if err != nil || price.IsNegative() {
			return nil, fmt.Errorf("item %q has invalid price %q: %w", it.Name, it.UnitPrice, domain.ErrBadRequest)
		}
		amount, _ := price.Float64()
		out[i] = mercadopago.Item{
			Title:      it.Name,
			Quantity:   it.Quantity,
			UnitPrice:  amount,
			CurrencyID: s.currency,
		}
	}
	return out, nil
}

func (s *service) List(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx)
}
