package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/confdesk/confreg-backend/internal/model"
)

// Sentinel errors surfaced by admin account data access.
var (
	ErrDuplicateAdmin = errors.New("admin with this username or email already exists")
	ErrAdminNotFound  = errors.New("admin account not found")
)

// AdminRepository handles admin account data access.
type AdminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository creates a new AdminRepository.
func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

// GetActiveByLogin retrieves an active admin whose username or email
// equals login. Inactive accounts are filtered out here so a disabled
// admin is indistinguishable from an unknown one further up the stack.
// A missing account is ErrAdminNotFound; anything else is a storage
// failure and passes through untranslated.
func (r *AdminRepository) GetActiveByLogin(ctx context.Context, login string) (*model.AdminUser, error) {
	a := &model.AdminUser{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, email, password_hash, full_name, role, is_active, last_login, created_at
		 FROM admin_users
		 WHERE (username = $1 OR email = $1) AND is_active = TRUE`, login,
	).Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.FullName, &a.Role,
		&a.IsActive, &a.LastLogin, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return a, nil
}

// UpdateLastLogin stamps the admin's last successful login time.
func (r *AdminRepository) UpdateLastLogin(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE admin_users SET last_login = NOW() WHERE id = $1`, id)
	return err
}

// Create inserts a new admin account.
func (r *AdminRepository) Create(ctx context.Context, a *model.AdminUser) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO admin_users (username, email, password_hash, full_name, role)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, is_active, created_at`,
		a.Username, a.Email, a.PasswordHash, a.FullName, a.Role,
	).Scan(&a.ID, &a.IsActive, &a.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateAdmin
		}
		return err
	}
	return nil
}
