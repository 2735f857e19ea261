package transaction

import (
	"context"
)

// Store is the persistence the service depends on. *Repository satisfies it.
type Store interface {
	List(ctx context.Context) ([]Transaction, error)
	Create(ctx context.Context, tx *Transaction) (int64, error)
}

// Service validates and records transactions
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context) ([]Transaction, error) {
	return s.store.List(ctx)
}

// Create records a transaction. Every field is required and a zero amount
// counts as missing.
func (s *Service) Create(ctx context.Context, in NewTransaction) (int64, error) {
	if in.Type == "" || in.Mobile == "" || in.Amount == 0 || in.Date == "" || in.Paybill == "" {
		return 0, ErrMissingFields
	}

	date, err := ParseDate(in.Date)
	if err != nil {
		return 0, err
	}

	return s.store.Create(ctx, &Transaction{
		Type:    in.Type,
		Mobile:  in.Mobile,
		Amount:  in.Amount,
		Date:    date,
		Paybill: in.Paybill,
	})
}
