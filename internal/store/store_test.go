package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herodex/pkg/database"
)

func openRepo(t *testing.T) *Repo {
	t.Helper()
	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db))
	return NewRepo(db)
}

func TestSaveAllKeepsOrder(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	rows := []Row{
		{ID: 3, Name: "Zatanna", Doc: []byte(`{"id":3}`)},
		{ID: 1, Name: "Abomination", Doc: []byte(`{"id":1}`)},
		{ID: 2, Name: "Batman", Doc: []byte(`{"id":2}`)},
	}
	require.NoError(t, repo.SaveAll(ctx, rows))

	got, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, rows, got)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestSaveAllReplacesSnapshot(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveAll(ctx, []Row{
		{ID: 1, Name: "A", Doc: []byte(`{}`)},
		{ID: 2, Name: "B", Doc: []byte(`{}`)},
	}))
	require.NoError(t, repo.SaveAll(ctx, []Row{
		{ID: 2, Name: "B2", Doc: []byte(`{"id":2}`)},
	}))

	got, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "B2", got[0].Name)
}

func TestMigrateIsIdempotent(t *testing.T) {
	repo := openRepo(t)
	assert.NoError(t, database.Migrate(repo.DB))
}
