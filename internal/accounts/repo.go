package accounts

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Create(ctx context.Context, u User) (User, error) {
	if u.ID == "" {
		u.ID = "U-" + uuid.NewString()
	}
	u.CreatedAt = time.Now().UTC()
	_, err := r.DB.Exec(ctx, `
		INSERT INTO users(id, name, email, phone, password, role, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		u.ID, u.Name, u.Email, u.Phone, u.Password, string(u.Role), u.CreatedAt,
	)
	return u, err
}

// FindByCredentials does the storefront's plain-text email+password match.
func (r *Repo) FindByCredentials(ctx context.Context, email, password string) (User, error) {
	row := r.DB.QueryRow(ctx, `
		SELECT id, name, email, phone, password, role, created_at
		FROM users WHERE email=$1 AND password=$2`, email, password)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrInvalidCredentials
	}
	return u, err
}

func (r *Repo) List(ctx context.Context) ([]User, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, name, email, phone, password, role, created_at
		FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *Repo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	var role string
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Password, &role, &u.CreatedAt)
	u.Role = Role(role)
	return u, err
}
