package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/santeh/storefront/internal/adapter/storage"
	"github.com/santeh/storefront/internal/core/domain"
)

func testSnapshot() domain.Snapshot {
	return domain.Snapshot{
		Cart: []domain.CartItem{
			{
				Product: domain.Product{
					ID:          1,
					Name:        "Смеситель Grohe Eurosmart",
					Price:       5900,
					OldPrice:    7400,
					Image:       "/images/mixer.jpg",
					Category:    "Смесители",
					Description: "Однорычажный смеситель",
					Brand:       "Grohe",
					InStock:     true,
				},
				Quantity: 2,
			},
			{
				Product:  domain.Product{ID: 3, Name: "Ванна Santek", Price: 15900},
				Quantity: 1,
			},
		},
		Wishlist: []domain.Product{
			{ID: 2, Name: "Унитаз Santek", Price: 8900, InStock: true},
		},
	}
}

func TestSnapshotStorage(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		s, err := storage.NewSnapshotStorage(t.Context(), t.TempDir())
		require.NoError(t, err)
		defer s.Close()

		want := testSnapshot()
		require.NoError(t, s.SaveSnapshot(t.Context(), want))

		got, err := s.LoadSnapshot(t.Context())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("SurvivesReopen", func(t *testing.T) {
		dir := t.TempDir()

		s, err := storage.NewSnapshotStorage(t.Context(), dir)
		require.NoError(t, err)

		want := testSnapshot()
		require.NoError(t, s.SaveSnapshot(t.Context(), want))
		s.Close()

		reopened, err := storage.NewSnapshotStorage(t.Context(), dir)
		require.NoError(t, err)
		defer reopened.Close()

		got, err := reopened.LoadSnapshot(t.Context())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("OverwriteKeepsLatest", func(t *testing.T) {
		s, err := storage.NewSnapshotStorage(t.Context(), t.TempDir())
		require.NoError(t, err)
		defer s.Close()

		require.NoError(t, s.SaveSnapshot(t.Context(), testSnapshot()))
		require.NoError(t, s.SaveSnapshot(t.Context(), domain.Snapshot{}))

		got, err := s.LoadSnapshot(t.Context())
		require.NoError(t, err)
		assert.Empty(t, got.Cart)
		assert.Empty(t, got.Wishlist)
	})

	t.Run("NoSnapshot", func(t *testing.T) {
		s, err := storage.NewSnapshotStorage(t.Context(), t.TempDir())
		require.NoError(t, err)
		defer s.Close()

		_, err = s.LoadSnapshot(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, storage.ErrNoSnapshot)
	})

	t.Run("CorruptData", func(t *testing.T) {
		dir := t.TempDir()

		db, err := leveldb.OpenFile(dir, nil)
		require.NoError(t, err)
		require.NoError(t, db.Put([]byte("shop/state"), []byte("garbage"), nil))
		require.NoError(t, db.Close())

		s, err := storage.NewSnapshotStorage(t.Context(), dir)
		require.NoError(t, err)
		defer s.Close()

		_, err = s.LoadSnapshot(t.Context())
		require.Error(t, err)
	})
}
