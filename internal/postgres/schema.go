package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Idempotent DDL; applied on startup. One table per store.
const schema = `
CREATE TABLE IF NOT EXISTS products (
	id             TEXT PRIMARY KEY,
	name           TEXT NOT NULL,
	price          BIGINT NOT NULL,
	original_price BIGINT NOT NULL DEFAULT 0,
	images         TEXT[] NOT NULL DEFAULT '{}',
	description    TEXT[] NOT NULL DEFAULT '{}',
	features       TEXT[] NOT NULL DEFAULT '{}',
	sku            TEXT NOT NULL,
	category       TEXT NOT NULL,
	in_stock       BOOLEAN NOT NULL DEFAULT TRUE,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS categories (
	name TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS orders (
	id              TEXT PRIMARY KEY,
	user_id         TEXT NOT NULL,
	customer_name   TEXT NOT NULL,
	phone           TEXT NOT NULL,
	email           TEXT NOT NULL,
	address         TEXT NOT NULL,
	subtotal        BIGINT NOT NULL,
	delivery_charge BIGINT NOT NULL,
	total           BIGINT NOT NULL,
	status          TEXT NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS orders_phone_idx ON orders (phone);
CREATE INDEX IF NOT EXISTS orders_created_idx ON orders (created_at DESC);

CREATE TABLE IF NOT EXISTS order_items (
	order_id     TEXT NOT NULL REFERENCES orders(id),
	product_id   TEXT NOT NULL,
	product_name TEXT NOT NULL,
	quantity     BIGINT NOT NULL,
	unit_price   BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS order_items_order_idx ON order_items (order_id);

CREATE TABLE IF NOT EXISTS users (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL,
	phone      TEXT NOT NULL,
	password   TEXT NOT NULL,
	role       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS users_email_idx ON users (email);

CREATE TABLE IF NOT EXISTS notifications (
	id         TEXT PRIMARY KEY,
	target     TEXT NOT NULL,
	title      TEXT NOT NULL,
	message    TEXT NOT NULL,
	read       BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS notifications_target_idx ON notifications (target);

CREATE TABLE IF NOT EXISTS wishlist (
	user_id    TEXT NOT NULL,
	product_id TEXT NOT NULL,
	product    JSONB NOT NULL,
	added_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (user_id, product_id)
);
`

func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, schema)
	return err
}
