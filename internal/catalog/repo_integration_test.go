//go:build integration
// +build integration

package catalog

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

func TestCategoryLifecycle(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()
	repo := &Repo{DB: db}
	require.NoError(t, repo.Seed(ctx))

	// duplicate and blank adds are silent no-ops
	added, err := repo.AddCategory(ctx, "Bags")
	require.NoError(t, err)
	assert.False(t, added)
	added, err = repo.AddCategory(ctx, "   ")
	require.NoError(t, err)
	assert.False(t, added)
	added, err = repo.AddCategory(ctx, "Garden")
	require.NoError(t, err)
	assert.True(t, added)

	// rename rewrites the row and cascades to referencing products
	require.NoError(t, repo.RenameCategory(ctx, "Bags", "Leather Goods"))
	cats, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	assert.Contains(t, cats, "Leather Goods")
	assert.NotContains(t, cats, "Bags")
	p, err := repo.GetProduct(ctx, "BM161")
	require.NoError(t, err)
	assert.Equal(t, "Leather Goods", p.Category)

	// renaming onto an existing name conflicts, unknown names miss,
	// blank or identical names are no-ops
	assert.ErrorIs(t, repo.RenameCategory(ctx, "Leather Goods", "Garden"), ErrCatTaken)
	assert.ErrorIs(t, repo.RenameCategory(ctx, "Bags", "Anything"), ErrNoCat)
	assert.NoError(t, repo.RenameCategory(ctx, "Leather Goods", ""))
	assert.NoError(t, repo.RenameCategory(ctx, "Leather Goods", "Leather Goods"))

	// delete removes only the category row; products keep the string
	require.NoError(t, repo.DeleteCategory(ctx, "Leather Goods"))
	cats, err = repo.ListCategories(ctx)
	require.NoError(t, err)
	assert.NotContains(t, cats, "Leather Goods")
	p, err = repo.GetProduct(ctx, "BM161")
	require.NoError(t, err)
	assert.Equal(t, "Leather Goods", p.Category)

	assert.ErrorIs(t, repo.DeleteCategory(ctx, "Leather Goods"), ErrNoCat)
}
