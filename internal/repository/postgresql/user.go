package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/peopleops/hrms-backend-go/internal/domain/user"
	"github.com/peopleops/hrms-backend-go/internal/pkg/database"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.Repository {
	return &userRepository{db: db}
}

const userColumns = `
	id, email, password_hash, role, employee_id, is_active, last_login,
	created_at, updated_at
`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.EmployeeID, &u.IsActive, &u.LastLogin,
		&u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

// GetByEmail implements user.Repository.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	u, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return u, nil
}

// GetByID implements user.Repository.
func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return u, nil
}

// TouchLastLogin implements user.Repository.
func (r *userRepository) TouchLastLogin(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `UPDATE users SET last_login = NOW(), updated_at = NOW() WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}
