package catalog

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
)

// WishlistRepo stores denormalized product snapshots per user, not
// references into the catalog.
type WishlistRepo struct{ DB *pgxpool.Pool }

// Toggle adds the product if absent and removes it if present. Returns
// true when the product was added.
func (r *WishlistRepo) Toggle(ctx context.Context, userID string, p Product) (bool, error) {
	ct, err := r.DB.Exec(ctx, `DELETE FROM wishlist WHERE user_id=$1 AND product_id=$2`, userID, p.ID)
	if err != nil {
		return false, err
	}
	if ct.RowsAffected() > 0 {
		return false, nil
	}
	snap, err := json.Marshal(p)
	if err != nil {
		return false, err
	}
	_, err = r.DB.Exec(ctx, `
		INSERT INTO wishlist(user_id, product_id, product) VALUES ($1,$2,$3)`,
		userID, p.ID, snap)
	return true, err
}

func (r *WishlistRepo) List(ctx context.Context, userID string) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT product FROM wishlist WHERE user_id=$1 ORDER BY added_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var p Product
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
