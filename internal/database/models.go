package database

import (
	"time"

	"github.com/uptrace/bun"
)

// User is the bun model for the users table.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64     `bun:"id,pk,autoincrement"`
	Name         string    `bun:"name,notnull"`
	Email        string    `bun:"email,notnull"`
	PasswordHash string    `bun:"password_hash,notnull"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// Transaction is the bun model for the transactions table.
type Transaction struct {
	bun.BaseModel `bun:"table:transactions,alias:t"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Type      string    `bun:"type,notnull"`
	Mobile    string    `bun:"mobile,notnull"`
	Amount    float64   `bun:"amount,notnull"`
	Date      time.Time `bun:"date,notnull"`
	Paybill   string    `bun:"paybill,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
