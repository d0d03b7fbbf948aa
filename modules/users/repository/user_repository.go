package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/seeg/recruiting-platform/modules/users/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository implements ports.UserRepository
type UserRepository struct {
	pool DBTX
}

// NewUserRepository creates a new user repository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// WithTx returns a UserRepository bound to an in-flight transaction, used by
// register_candidate to insert the User row alongside CandidateProfile and
// AccessRequest rows atomically.
func (r *UserRepository) WithTx(tx pgx.Tx) *UserRepository {
	return &UserRepository{pool: tx}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (
			id, email, password_hash, role, status, first_name, last_name, phone,
			sexe, date_of_birth, matricule, candidate_status, no_corporate_email,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	user.ID = uuid.New().String()

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Status,
		user.FirstName,
		user.LastName,
		user.Phone,
		user.Sexe,
		user.DateOfBirth,
		user.Matricule,
		user.CandidateStatus,
		user.NoCorporateEmail,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return mapUniqueViolation(err)
	}

	return nil
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "matricule") {
			return model.ErrMatriculeAlreadyExists
		}
		return model.ErrUserAlreadyExists
	}
	return err
}

func scanUser(row pgx.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Status,
		&user.FirstName,
		&user.LastName,
		&user.Phone,
		&user.Sexe,
		&user.DateOfBirth,
		&user.Matricule,
		&user.CandidateStatus,
		&user.NoCorporateEmail,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

const selectUserColumns = `
	id, email, password_hash, role, status, first_name, last_name, phone,
	sexe, date_of_birth, matricule, candidate_status, no_corporate_email,
	created_at, updated_at
`

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*model.User, error) {
	query := `SELECT ` + selectUserColumns + ` FROM users WHERE id = $1`
	return scanUser(r.pool.QueryRow(ctx, query, userID))
}

// GetEmailByID resolves a user id to its email. Used by notification
// triggers that only hold the id and don't need the full row.
func (r *UserRepository) GetEmailByID(ctx context.Context, userID string) (string, error) {
	var email string
	err := r.pool.QueryRow(ctx, `SELECT email FROM users WHERE id = $1`, userID).Scan(&email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", model.ErrUserNotFound
		}
		return "", err
	}
	return email, nil
}

// GetByEmail retrieves a user by email (case-insensitive).
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + selectUserColumns + ` FROM users WHERE lower(email) = lower($1)`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

// List retrieves users, optionally filtered by role, with pagination.
func (r *UserRepository) List(ctx context.Context, roleFilter *model.Role, limit, offset int) ([]*model.User, int, error) {
	whereClause := "TRUE"
	args := []interface{}{}
	argN := 1
	if roleFilter != nil {
		whereClause = "role = $1"
		args = append(args, *roleFilter)
		argN++
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM users WHERE ` + whereClause
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + selectUserColumns + ` FROM users WHERE ` + whereClause +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(argN) + ` OFFSET $` + strconv.Itoa(argN+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

// Update updates a user's mutable profile fields.
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET first_name = $2, last_name = $3, phone = $4, matricule = $5, updated_at = $6
		WHERE id = $1
	`
	user.UpdatedAt = time.Now().UTC()

	result, err := r.pool.Exec(ctx, query, user.ID, user.FirstName, user.LastName, user.Phone, user.Matricule, user.UpdatedAt)
	if err != nil {
		return mapUniqueViolation(err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}

	return nil
}

// SetStatus transitions a user's account status (e.g. admin activation of a
// pending internal-without-corporate-email candidate).
func (r *UserRepository) SetStatus(ctx context.Context, userID string, status model.Status) error {
	query := `UPDATE users SET status = $2, updated_at = $3 WHERE id = $1`
	result, err := r.pool.Exec(ctx, query, userID, status, time.Now().UTC())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

// Delete deletes a user
func (r *UserRepository) Delete(ctx context.Context, userID string) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, userID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}

	return nil
}

