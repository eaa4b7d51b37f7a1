package jsonfile

import (
	"context"
	"fmt"
	"time"

	"github.com/caioolkk/semcensura-loja/internal/domain"
)

// accountRecord is the on-disk shape of an account. It keeps the field names
// the storefront has always used in usuarios.json so existing data files keep
// loading unchanged.
type accountRecord struct {
	Name         string    `json:"nome"`
	Email        string    `json:"email"`
	Phone        string    `json:"telefone,omitempty"`
	PasswordHash string    `json:"senha"`
	Token        string    `json:"token"`
	Verified     bool      `json:"verificado"`
	CreatedAt    time.Time `json:"criado_em"`
	UpdatedAt    time.Time `json:"atualizado_em"`
}

func toAccountRecord(a *domain.Account) accountRecord {
	return accountRecord{
		Name:         a.Name,
		Email:        a.Email,
		Phone:        a.Phone,
		PasswordHash: a.PasswordHash,
		Token:        a.VerificationToken,
		Verified:     a.Verified,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func (r accountRecord) toDomain() domain.Account {
	return domain.Account{
		Name:              r.Name,
		Email:             r.Email,
		Phone:             r.Phone,
		PasswordHash:      r.PasswordHash,
		VerificationToken: r.Token,
		Verified:          r.Verified,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

// AccountRepo provides account operations over the usuarios.json collection.
type AccountRepo struct {
	store *Store[accountRecord]
}

func NewAccountRepo(path string) (*AccountRepo, error) {
	store, err := NewStore[accountRecord](path)
	if err != nil {
		return nil, err
	}
	return &AccountRepo{store: store}, nil
}

func (r *AccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	records, err := r.store.All()
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].Email == email {
			a := records[i].toDomain()
			return &a, nil
		}
	}
	return nil, fmt.Errorf("account not found: %w", domain.ErrNotFound)
}

func (r *AccountRepo) GetByToken(_ context.Context, token string) (*domain.Account, error) {
	records, err := r.store.All()
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].Token == token {
			a := records[i].toDomain()
			return &a, nil
		}
	}
	return nil, fmt.Errorf("account not found: %w", domain.ErrNotFound)
}

// Put inserts a new account. Uniqueness on email is enforced here, under the
// collection lock, so two interleaved registrations cannot both slip past the
// service-level check.
func (r *AccountRepo) Put(_ context.Context, a *domain.Account) error {
	return r.store.Mutate(func(records []accountRecord) ([]accountRecord, error) {
		for i := range records {
			if records[i].Email == a.Email {
				return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
			}
		}
		return append(records, toAccountRecord(a)), nil
	})
}

func (r *AccountRepo) Update(_ context.Context, email string, updates map[string]interface{}) error {
	return r.store.Mutate(func(records []accountRecord) ([]accountRecord, error) {
		for i := range records {
			if records[i].Email != email {
				continue
			}
			if err := applyAccountUpdates(&records[i], updates); err != nil {
				return nil, err
			}
			records[i].UpdatedAt = time.Now().UTC()
			return records, nil
		}
		return nil, fmt.Errorf("account not found: %w", domain.ErrNotFound)
	})
}

func applyAccountUpdates(rec *accountRecord, updates map[string]interface{}) error {
	for field, value := range updates {
		switch field {
		case "verified":
			v, ok := value.(bool)
			if !ok {
				return fmt.Errorf("field %s expects bool", field)
			}
			rec.Verified = v
		case "password_hash":
			v, ok := value.(string)
			if !ok {
				return fmt.Errorf("field %s expects string", field)
			}
			rec.PasswordHash = v
		case "verification_token":
			v, ok := value.(string)
			if !ok {
				return fmt.Errorf("field %s expects string", field)
			}
			rec.Token = v
		default:
			return fmt.Errorf("unknown account field %s", field)
		}
	}
	return nil
}

func (r *AccountRepo) List(_ context.Context) ([]domain.Account, error) {
	records, err := r.store.All()
	if err != nil {
		return nil, err
	}
	accounts := make([]domain.Account, len(records))
	for i := range records {
		accounts[i] = records[i].toDomain()
	}
	return accounts, nil
}
