package notify

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("notification not found")

type Repo struct{ DB *pgxpool.Pool }

const cols = `id, target, title, message, read, created_at`

func (r *Repo) Append(ctx context.Context, n Notification) (Notification, error) {
	if n.ID == "" {
		n.ID = "N-" + uuid.NewString()
	}
	n.CreatedAt = time.Now().UTC()
	n.Date = DisplayStamp(n.CreatedAt)
	_, err := r.DB.Exec(ctx, `
		INSERT INTO notifications(id, target, title, message, read, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		n.ID, n.Target, n.Title, n.Message, n.Read, n.CreatedAt,
	)
	return n, err
}

func (r *Repo) Broadcast(ctx context.Context, title, message string) (Notification, error) {
	return r.Append(ctx, Notification{Target: TargetAll, Title: title, Message: message})
}

// VisibleTo returns broadcasts plus the viewer's own notifications,
// newest first.
func (r *Repo) VisibleTo(ctx context.Context, userID string) ([]Notification, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT `+cols+` FROM notifications
		WHERE target=$1 OR target=$2
		ORDER BY created_at DESC`, TargetAll, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (r *Repo) List(ctx context.Context) ([]Notification, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+cols+` FROM notifications ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

// Open flips the read flag and returns the notification. Re-opening an
// already-read notification is a state no-op.
func (r *Repo) Open(ctx context.Context, id string) (Notification, error) {
	row := r.DB.QueryRow(ctx, `
		UPDATE notifications SET read=TRUE WHERE id=$1
		RETURNING `+cols, id)
	n, err := scan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Notification{}, ErrNotFound
	}
	return n, err
}

// Seed inserts the storefront's built-in opening broadcast once.
func (r *Repo) Seed(ctx context.Context) error {
	var n int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM notifications`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	_, err := r.Append(ctx, Notification{
		ID:      "promo-1",
		Target:  TargetAll,
		Title:   "Grand Opening Sale!",
		Message: "Enjoy up to 20% off on all metal craft items this week only!",
	})
	return err
}

func scan(row pgx.Row) (Notification, error) {
	var n Notification
	err := row.Scan(&n.ID, &n.Target, &n.Title, &n.Message, &n.Read, &n.CreatedAt)
	if err != nil {
		return Notification{}, err
	}
	n.Date = DisplayStamp(n.CreatedAt)
	return n, nil
}

func collect(rows pgx.Rows) ([]Notification, error) {
	var out []Notification
	for rows.Next() {
		n, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
