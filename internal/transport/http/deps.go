package http

import (
	"context"

	"github.com/caioolkk/semcensura-loja/internal/domain"
	"github.com/caioolkk/semcensura-loja/internal/infrastructure/mercadopago"
	"github.com/caioolkk/semcensura-loja/internal/infrastructure/smtp"
)

// AccountRepository is the persistence contract the router requires for
// accounts. Both the jsonfile and the dynamo backends satisfy it.
type AccountRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByToken(ctx context.Context, token string) (*domain.Account, error)
	Put(ctx context.Context, a *domain.Account) error
	Update(ctx context.Context, email string, updates map[string]interface{}) error
	List(ctx context.Context) ([]domain.Account, error)
}

// OrderRepository is the persistence contract the router requires for orders.
type OrderRepository interface {
	Put(ctx context.Context, o *domain.Order) error
	Update(ctx context.Context, orderID string, updates map[string]interface{}) error
	List(ctx context.Context) ([]domain.Order, error)
}

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	AccountRepo AccountRepository
	OrderRepo   OrderRepository
	Mailer      smtp.Mailer
	Payments    mercadopago.Client
}
