package orders

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound      = errors.New("order not found")
	ErrBadTransition = errors.New("status transition not allowed")
	ErrIDExhausted   = errors.New("could not derive a unique order id")
)

const maxIDAttempts = 5

type Repo struct{ DB *pgxpool.Pool }

const orderCols = `id, user_id, customer_name, phone, email, address,
	subtotal, delivery_charge, total, status, created_at`

// Create derives the order id, stamps status pending and inserts the order
// with its item snapshots in one transaction. A primary-key collision on
// the derived id retries with a fresh timestamp suffix.
func (r *Repo) Create(ctx context.Context, o Order) (Order, error) {
	o.Status = StatusPending
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		now := time.Now().UTC()
		o.ID = DeriveID(o.Phone, now)
		o.CreatedAt = now
		o.Date = DisplayDate(now)

		err := r.insert(ctx, o)
		if err == nil {
			return o, nil
		}
		if !isUniqueViolation(err) {
			return Order{}, err
		}
		time.Sleep(time.Millisecond) // shift the time suffix
	}
	return Order{}, ErrIDExhausted
}

func (r *Repo) insert(ctx context.Context, o Order) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO orders(id, user_id, customer_name, phone, email, address,
		                   subtotal, delivery_charge, total, status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		o.ID, o.UserID, o.CustomerName, o.Phone, o.Email, o.Address,
		o.Subtotal, o.DeliveryCharge, o.Total, string(o.Status), o.CreatedAt,
	)
	if err != nil {
		return err
	}
	for _, it := range o.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items(order_id, product_id, product_name, quantity, unit_price)
			VALUES ($1,$2,$3,$4,$5)`,
			o.ID, it.ProductID, it.ProductName, it.Quantity, it.UnitPrice,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *Repo) Get(ctx context.Context, id string) (Order, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+orderCols+` FROM orders WHERE id=$1`, id)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}
	o.Items, err = r.items(ctx, o.ID)
	return o, err
}

// Track returns the newest order whose id or phone equals the query
// verbatim. No normalization is applied to either side.
func (r *Repo) Track(ctx context.Context, query string) (Order, error) {
	row := r.DB.QueryRow(ctx, `
		SELECT `+orderCols+` FROM orders
		WHERE id=$1 OR phone=$1
		ORDER BY created_at DESC LIMIT 1`, query)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}
	o.Items, err = r.items(ctx, o.ID)
	return o, err
}

func (r *Repo) List(ctx context.Context) ([]Order, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+orderCols+` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list, err := collectOrders(rows)
	if err != nil {
		return nil, err
	}
	return r.hydrate(ctx, list)
}

// ListByOwner matches the account view: orders tied to the user id or to
// the phone number the account registered with.
func (r *Repo) ListByOwner(ctx context.Context, userID, phone string) ([]Order, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT `+orderCols+` FROM orders
		WHERE user_id=$1 OR phone=$2
		ORDER BY created_at DESC`, userID, phone)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list, err := collectOrders(rows)
	if err != nil {
		return nil, err
	}
	return r.hydrate(ctx, list)
}

// UpdateStatus applies a guarded transition and returns the updated order
// so the caller can address the status notification.
func (r *Repo) UpdateStatus(ctx context.Context, id string, next Status) (Order, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Order{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `SELECT `+orderCols+` FROM orders WHERE id=$1 FOR UPDATE`, id)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}
	if !CanTransition(o.Status, next) {
		return Order{}, ErrBadTransition
	}
	if _, err := tx.Exec(ctx, `UPDATE orders SET status=$2 WHERE id=$1`, id, string(next)); err != nil {
		return Order{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Order{}, err
	}
	o.Status = next
	return o, nil
}

type Stats struct {
	Revenue int64 `json:"revenue"`
	Orders  int64 `json:"orders"`
	Pending int64 `json:"pending"`
}

func (r *Repo) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	err := r.DB.QueryRow(ctx, `
		SELECT COALESCE(SUM(total),0), COUNT(*),
		       COUNT(*) FILTER (WHERE status='pending')
		FROM orders`).Scan(&s.Revenue, &s.Orders, &s.Pending)
	return s, err
}

// hydrate attaches item snapshots to every listed order in one query,
// so list views carry the same shape as single-order reads.
func (r *Repo) hydrate(ctx context.Context, list []Order) ([]Order, error) {
	if len(list) == 0 {
		return list, nil
	}
	ids := make([]string, len(list))
	for i, o := range list {
		ids[i] = o.ID
	}
	rows, err := r.DB.Query(ctx, `
		SELECT order_id, product_id, product_name, quantity, unit_price
		FROM order_items WHERE order_id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byOrder := make(map[string][]Item, len(list))
	for rows.Next() {
		var id string
		var it Item
		if err := rows.Scan(&id, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, err
		}
		byOrder[id] = append(byOrder[id], it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range list {
		list[i].Items = byOrder[list[i].ID]
	}
	return list, nil
}

func (r *Repo) items(ctx context.Context, orderID string) ([]Item, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT product_id, product_name, quantity, unit_price
		FROM order_items WHERE order_id=$1`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	var status string
	err := row.Scan(&o.ID, &o.UserID, &o.CustomerName, &o.Phone, &o.Email, &o.Address,
		&o.Subtotal, &o.DeliveryCharge, &o.Total, &status, &o.CreatedAt)
	if err != nil {
		return Order{}, err
	}
	o.Status = Status(status)
	o.Date = DisplayDate(o.CreatedAt)
	return o, nil
}

func collectOrders(rows pgx.Rows) ([]Order, error) {
	var out []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
