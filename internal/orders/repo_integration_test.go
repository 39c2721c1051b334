//go:build integration
// +build integration

package orders

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	storedb "github.com/nobih83/bn-storefront/internal/postgres"
)

func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pg, err := tcpostgres.Run(ctx,
		"postgres:alpine",
		tcpostgres.WithDatabase("storefront"),
		tcpostgres.WithUsername("app"),
		tcpostgres.WithPassword("secret"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := storedb.Connect(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, storedb.EnsureSchema(ctx, db))
	return db
}

func TestCreateTrackAndListCarryItems(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()
	repo := &Repo{DB: db}

	o, err := repo.Create(ctx, Order{
		UserID:       GuestUser,
		CustomerName: "Rahim Uddin",
		Phone:        "+8801712345678",
		Email:        "r@x.com",
		Address:      "House 7, Road 3, Dhaka",
		Items: []Item{
			{ProductID: "BM161", ProductName: "Premium Leather Handbag - BM161", Quantity: 1, UnitPrice: 1250},
		},
		Subtotal:       1250,
		DeliveryCharge: 150,
		Total:          1400,
	})
	require.NoError(t, err)
	assert.Regexp(t, `^BN-5678-\d{1,4}$`, o.ID)
	assert.Equal(t, StatusPending, o.Status)

	// list views carry the same item snapshots as single-order reads
	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].Items, 1)
	assert.Equal(t, "BM161", list[0].Items[0].ProductID)

	mine, err := repo.ListByOwner(ctx, GuestUser, "+8801712345678")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Len(t, mine[0].Items, 1)

	tracked, err := repo.Track(ctx, "+8801712345678")
	require.NoError(t, err)
	assert.Equal(t, o.ID, tracked.ID)
	assert.Len(t, tracked.Items, 1)
}

func TestUpdateStatusGuards(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()
	repo := &Repo{DB: db}

	o, err := repo.Create(ctx, Order{
		UserID: GuestUser, CustomerName: "Rahim Uddin", Phone: "+8801712345678",
		Email: "r@x.com", Address: "House 7, Road 3, Dhaka",
		Subtotal: 1250, DeliveryCharge: 150, Total: 1400,
	})
	require.NoError(t, err)

	_, err = repo.UpdateStatus(ctx, o.ID, StatusShipped)
	assert.ErrorIs(t, err, ErrBadTransition)

	upd, err := repo.UpdateStatus(ctx, o.ID, StatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, upd.Status)

	_, err = repo.UpdateStatus(ctx, "BN-0000-0000", StatusProcessing)
	assert.ErrorIs(t, err, ErrNotFound)
}
