package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/samber/oops"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/ledger-api/internal/database"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// Repository handles user data persistence
type Repository struct {
	db bun.IDB
}

func NewRepository(db bun.IDB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user. A unique-index violation on email is reported as
// ErrDuplicateEmail; whether the index exists is up to the schema.
func (r *Repository) Create(ctx context.Context, name, email, passwordHash string) (*User, error) {
	dbUser := &database.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}

	_, err := r.db.NewInsert().
		Model(dbUser).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, oops.In("user").Code("DB_INSERT_FAILED").Wrapf(err, "failed to create user")
	}

	return mapDBUserToModel(dbUser), nil
}

// GetByEmail retrieves a user by exact email match
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		Where("email = ?", email).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, oops.In("user").Code("DB_QUERY_FAILED").Wrapf(err, "failed to get user by email")
	}

	return mapDBUserToModel(dbUser), nil
}

// GetByID retrieves a user by ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, oops.In("user").Code("DB_QUERY_FAILED").With("user_id", id).Wrapf(err, "failed to get user by id")
	}

	return mapDBUserToModel(dbUser), nil
}

// mapDBUserToModel converts database model to domain model
func mapDBUserToModel(dbu *database.User) *User {
	return &User{
		ID:           dbu.ID,
		Name:         dbu.Name,
		Email:        dbu.Email,
		PasswordHash: dbu.PasswordHash,
		CreatedAt:    dbu.CreatedAt,
	}
}
