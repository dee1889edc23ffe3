package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"triviaquiz/internal/common"
	"triviaquiz/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	CreateMany(ctx context.Context, tx *sql.Tx, users []model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
	DeleteByRole(ctx context.Context, tx *sql.Tx, role string) error
	DeleteByUsernames(ctx context.Context, tx *sql.Tx, usernames []string) error
}

const userColumns = `id, first_name, last_name, username, email, profile_picture, hashed_password, role, created_at, updated_at`

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, first_name, last_name, username, email, profile_picture, hashed_password, role)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Username, user.Email,
		user.ProfilePicture, user.HashedPassword, user.Role)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint violation
			return fmt.Errorf("user with given username or email already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) CreateMany(ctx context.Context, tx *sql.Tx, users []model.User) error {
	query := `INSERT INTO users (id, first_name, last_name, username, email, profile_picture, hashed_password, role)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for i := range users {
		u := &users[i]
		_, err := tx.ExecContext(ctx, query,
			u.ID, u.FirstName, u.LastName, u.Username, u.Email,
			u.ProfilePicture, u.HashedPassword, u.Role)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return fmt.Errorf("user %s already exists: %w", u.Username, common.ErrConflict)
			}
			return fmt.Errorf("pgUserRepository.CreateMany: %w", err)
		}
	}
	return nil
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *pgUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *pgUserRepository) findOne(ctx context.Context, query string, arg interface{}) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Username, &user.Email,
		&user.ProfilePicture, &user.HashedPassword, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.findOne: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) List(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgUserRepository.List: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(
			&u.ID, &u.FirstName, &u.LastName, &u.Username, &u.Email,
			&u.ProfilePicture, &u.HashedPassword, &u.Role, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgUserRepository.List: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *pgUserRepository) Update(ctx context.Context, user *model.User) error {
	query := `UPDATE users SET
	            first_name = $1, last_name = $2, username = $3, email = $4,
	            profile_picture = $5, hashed_password = $6, role = $7,
	            updated_at = CURRENT_TIMESTAMP
	          WHERE id = $8`
	_, err := r.db.ExecContext(ctx, query,
		user.FirstName, user.LastName, user.Username, user.Email,
		user.ProfilePicture, user.HashedPassword, user.Role, user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("user with given username or email already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Update: %w", err)
	}
	return nil
}

func (r *pgUserRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgUserRepository.Delete: %w", err)
	}
	return nil
}

func (r *pgUserRepository) DeleteByRole(ctx context.Context, tx *sql.Tx, role string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM users WHERE role = $1`, role)
	if err != nil {
		return fmt.Errorf("pgUserRepository.DeleteByRole: %w", err)
	}
	return nil
}

func (r *pgUserRepository) DeleteByUsernames(ctx context.Context, tx *sql.Tx, usernames []string) error {
	for _, username := range usernames {
		if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE username = $1`, username); err != nil {
			return fmt.Errorf("pgUserRepository.DeleteByUsernames: %w", err)
		}
	}
	return nil
}
