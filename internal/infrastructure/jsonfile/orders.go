package jsonfile

import (
	"context"
	"fmt"
	"time"

	"github.com/caioolkk/semcensura-loja/internal/domain"
)

// Order statuses were stored in Portuguese before this backend existed;
// keep that on disk and translate at the boundary.
const statusPendingLegacy = "pendente"

type itemRecord struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"price"`
}

// orderRecord is the on-disk shape of an order, compatible with the
// pedidos.json files the storefront already has.
type orderRecord struct {
	ID           string       `json:"id"`
	BuyerEmail   string       `json:"usuario"`
	Items        []itemRecord `json:"itens"`
	ReferralCode string       `json:"codigoIndicacao"`
	Status       string       `json:"status"`
	PreferenceID string       `json:"preferencia_id,omitempty"`
	CreatedAt    time.Time    `json:"data"`
}

func toOrderRecord(o *domain.Order) orderRecord {
	items := make([]itemRecord, len(o.Items))
	for i, it := range o.Items {
		items[i] = itemRecord{Name: it.Name, Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}
	status := o.Status
	if status == domain.OrderStatusPending {
		status = statusPendingLegacy
	}
	return orderRecord{
		ID:           o.OrderID,
		BuyerEmail:   o.BuyerEmail,
		Items:        items,
		ReferralCode: o.ReferralCode,
		Status:       status,
		PreferenceID: o.PreferenceID,
		CreatedAt:    o.CreatedAt,
	}
}

func (r orderRecord) toDomain() domain.Order {
	items := make([]domain.LineItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = domain.LineItem{Name: it.Name, Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}
	status := r.Status
	if status == statusPendingLegacy {
		status = domain.OrderStatusPending
	}
	return domain.Order{
		OrderID:      r.ID,
		BuyerEmail:   r.BuyerEmail,
		Items:        items,
		ReferralCode: r.ReferralCode,
		Status:       status,
		PreferenceID: r.PreferenceID,
		CreatedAt:    r.CreatedAt,
	}
}

// OrderRepo provides order operations over the pedidos.json collection.
type OrderRepo struct {
	store *Store[orderRecord]
}

func NewOrderRepo(path string) (*OrderRepo, error) {
	store, err := NewStore[orderRecord](path)
	if err != nil {
		return nil, err
	}
	return &OrderRepo{store: store}, nil
}

func (r *OrderRepo) Put(_ context.Context, o *domain.Order) error {
	return r.store.Mutate(func(records []orderRecord) ([]orderRecord, error) {
		for i := range records {
			if records[i].ID == o.OrderID {
				return nil, fmt.Errorf("order id already exists: %w", domain.ErrConflict)
			}
		}
		return append(records, toOrderRecord(o)), nil
	})
}

func (r *OrderRepo) Update(_ context.Context, orderID string, updates map[string]interface{}) error {
	return r.store.Mutate(func(records []orderRecord) ([]orderRecord, error) {
		for i := range records {
			if records[i].ID != orderID {
				continue
			}
			if err := applyOrderUpdates(&records[i], updates); err != nil {
				return nil, err
			}
			return records, nil
		}
		return nil, fmt.Errorf("order not found: %w", domain.ErrNotFound)
	})
}

func applyOrderUpdates(rec *orderRecord, updates map[string]interface{}) error {
	for field, value := range updates {
		switch field {
		case "payment_preference_id":
			v, ok := value.(string)
			if !ok {
				return fmt.Errorf("field %s expects string", field)
			}
			rec.PreferenceID = v
		case "status":
			v, ok := value.(string)
			if !ok {
				return fmt.Errorf("field %s expects string", field)
			}
			if v == domain.OrderStatusPending {
				v = statusPendingLegacy
			}
			rec.Status = v
		default:
			return fmt.Errorf("unknown order field %s", field)
		}
	}
	return nil
}

func (r *OrderRepo) List(_ context.Context) ([]domain.Order, error) {
	records, err := r.store.All()
	if err != nil {
		return nil, err
	}
	orders := make([]domain.Order, len(records))
	for i := range records {
		orders[i] = records[i].toDomain()
	}
	return orders, nil
}
