package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventease/internal/domain"
)

const profileColumns = "id, email, first_name, last_name, role, password_hash, salt, created_at, updated_at"

// profileEmailConstraint is the unique index on profiles(email).
const profileEmailConstraint = "profiles_email_key"

type profileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) domain.UserRepository {
	return &profileRepository{DB: db}
}

func scanProfile(row interface{ Scan(...any) error }) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Role,
		&u.PasswordHash, &u.Salt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *profileRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO profiles (id, email, first_name, last_name, role, password_hash, salt, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.DB.ExecContext(ctx, query,
		u.ID, u.Email, u.FirstName, u.LastName, u.Role,
		u.PasswordHash, u.Salt, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, profileEmailConstraint) {
			return domain.ErrDuplicateEmail
		}
		if isUndefinedTable(err) {
			return domain.ErrStorageNotProvisioned
		}
		return err
	}
	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	u, err := scanProfile(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isUndefinedTable(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE email = $1`
	u, err := scanProfile(r.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isUndefinedTable(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// listWithStats runs a profiles query joined against events so that
// events_created comes back in the same result set instead of one count
// query per user.
func (r *profileRepository) listWithStats(ctx context.Context, where string, args ...any) ([]*domain.UserWithStats, error) {
	query := fmt.Sprintf(`
		SELECT p.id, p.email, p.first_name, p.last_name, p.role, p.created_at, p.updated_at,
			COUNT(e.id) AS events_created
		FROM profiles p
		LEFT JOIN events e ON e.created_by = p.id
		%s
		GROUP BY p.id, p.email, p.first_name, p.last_name, p.role, p.created_at, p.updated_at
		ORDER BY p.created_at DESC
	`, where)
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		if isUndefinedTable(err) {
			return []*domain.UserWithStats{}, nil
		}
		return nil, err
	}
	defer rows.Close()
	users := make([]*domain.UserWithStats, 0)
	for rows.Next() {
		u := &domain.UserWithStats{}
		if err := rows.Scan(
			&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Role,
			&u.CreatedAt, &u.UpdatedAt, &u.EventsCreated,
		); err != nil {
			return nil, err
		}
		u.LastLogin = u.UpdatedAt
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *profileRepository) ListAll(ctx context.Context) ([]*domain.UserWithStats, error) {
	return r.listWithStats(ctx, "")
}

func (r *profileRepository) ListByRole(ctx context.Context, role domain.Role) ([]*domain.UserWithStats, error) {
	return r.listWithStats(ctx, "WHERE p.role = $1", role)
}

func (r *profileRepository) GetWithStats(ctx context.Context, id string) (*domain.UserWithStats, error) {
	query := `
		SELECT p.id, p.email, p.first_name, p.last_name, p.role, p.created_at, p.updated_at,
			(SELECT COUNT(*) FROM events e WHERE e.created_by = p.id) AS events_created
		FROM profiles p
		WHERE p.id = $1
	`
	u := &domain.UserWithStats{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Role,
		&u.CreatedAt, &u.UpdatedAt, &u.EventsCreated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isUndefinedTable(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	u.LastLogin = u.UpdatedAt
	return u, nil
}

func (r *profileRepository) Update(ctx context.Context, id string, in domain.UpdateUserInput) (*domain.User, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []any{}
	n := 1
	if in.Email != nil {
		setClauses = append(setClauses, fmt.Sprintf("email = $%d", n))
		args = append(args, *in.Email)
		n++
	}
	if in.FirstName != nil {
		setClauses = append(setClauses, fmt.Sprintf("first_name = $%d", n))
		args = append(args, *in.FirstName)
		n++
	}
	if in.LastName != nil {
		setClauses = append(setClauses, fmt.Sprintf("last_name = $%d", n))
		args = append(args, *in.LastName)
		n++
	}
	if in.Role != nil {
		setClauses = append(setClauses, fmt.Sprintf("role = $%d", n))
		args = append(args, *in.Role)
		n++
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE profiles SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, profileColumns)
	u, err := scanProfile(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		if isUniqueViolation(err, profileEmailConstraint) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, err
	}
	return u, nil
}

func (r *profileRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM profiles WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *profileRepository) SystemStats(ctx context.Context) (*domain.SystemStats, error) {
	query := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE role = 'admin'),
			COUNT(*) FILTER (WHERE role = 'staff'),
			COUNT(*) FILTER (WHERE role = 'event_owner'),
			COUNT(*) FILTER (WHERE created_at > NOW() - INTERVAL '7 days')
		FROM profiles
	`
	stats := &domain.SystemStats{}
	err := r.DB.QueryRowContext(ctx, query).Scan(
		&stats.TotalUsers, &stats.AdminCount, &stats.StaffCount,
		&stats.OwnerCount, &stats.ActiveUsers,
	)
	if err != nil {
		if isUndefinedTable(err) {
			return &domain.SystemStats{}, nil
		}
		return nil, err
	}
	return stats, nil
}
