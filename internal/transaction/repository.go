package transaction

import (
	"context"

	"github.com/samber/oops"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/ledger-api/internal/database"
)

// Repository handles transaction persistence
type Repository struct {
	db bun.IDB
}

func NewRepository(db bun.IDB) *Repository {
	return &Repository{db: db}
}

// List returns every transaction, newest date first.
func (r *Repository) List(ctx context.Context) ([]Transaction, error) {
	var rows []database.Transaction
	err := r.db.NewSelect().
		Model(&rows).
		OrderExpr("date DESC, id DESC").
		Scan(ctx)
	if err != nil {
		return nil, oops.In("transaction").Code("DB_QUERY_FAILED").Wrapf(err, "failed to list transactions")
	}

	out := make([]Transaction, 0, len(rows))
	for i := range rows {
		out = append(out, mapDBTransactionToModel(&rows[i]))
	}
	return out, nil
}

// Create inserts a transaction and returns its id.
func (r *Repository) Create(ctx context.Context, tx *Transaction) (int64, error) {
	row := &database.Transaction{
		Type:    tx.Type,
		Mobile:  tx.Mobile,
		Amount:  tx.Amount,
		Date:    tx.Date,
		Paybill: tx.Paybill,
	}

	_, err := r.db.NewInsert().
		Model(row).
		Returning("id").
		Exec(ctx)
	if err != nil {
		return 0, oops.In("transaction").Code("DB_INSERT_FAILED").Wrapf(err, "failed to create transaction")
	}

	return row.ID, nil
}

func mapDBTransactionToModel(row *database.Transaction) Transaction {
	return Transaction{
		ID:        row.ID,
		Type:      row.Type,
		Mobile:    row.Mobile,
		Amount:    row.Amount,
		Date:      row.Date,
		Paybill:   row.Paybill,
		CreatedAt: row.CreatedAt,
	}
}
