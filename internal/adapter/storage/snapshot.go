// Package storage provides the durable local state snapshot and the
// static catalog seed.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/santeh/storefront/internal/core/domain"
	"github.com/santeh/storefront/internal/core/port"
	"github.com/santeh/storefront/pkg/retry"
	"github.com/santeh/storefront/pkg/schema"
)

var _ port.SnapshotStorage = (*SnapshotStorage)(nil)

// ErrNoSnapshot reports that no state has been persisted yet.
var ErrNoSnapshot = errors.New("no snapshot")

// snapshotKey is the single namespaced key holding the serialized
// {cart, wishlist} state.
var snapshotKey = []byte("shop/state")

// SnapshotStorage keeps the shop state snapshot in a local LevelDB
// area surviving process restarts.
type SnapshotStorage struct {
	db        *leveldb.DB
	marshaler schema.SnapshotMarshaler
}

func NewSnapshotStorage(ctx context.Context, path string) (*SnapshotStorage, error) {
	const op = "NewSnapshotStorage"

	marshaler, err := schema.NewSnapshotMarshaler()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// The file lock is released with a lag when the previous process
	// is still shutting down.
	openCfg := retry.RetryConfig{
		MaxAttempts: 5,
		Backoff:     retry.LinearBackoff(100 * time.Millisecond),
	}
	db, err := retry.DoWithResult(ctx, openCfg, func() (*leveldb.DB, error) {
		return leveldb.OpenFile(path, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &SnapshotStorage{db: db, marshaler: marshaler}, nil
}

func (s *SnapshotStorage) Close() {
	const op = "SnapshotStorage.Close"
	log := slog.With("op", op)

	log.Info("closing snapshot storage...")
	if err := s.db.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("snapshot storage is closed")
}

// SaveSnapshot overwrites the persisted state with the given snapshot.
func (s *SnapshotStorage) SaveSnapshot(
	ctx context.Context, snap domain.Snapshot,
) error {
	const op = "SnapshotStorage.SaveSnapshot"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	data, err := s.marshaler.Encode(snapshotToSchemaV1(snap))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.db.Put(snapshotKey, data, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// LoadSnapshot reads the persisted state. It returns [ErrNoSnapshot]
// when nothing is stored and a decode error when the stored data is
// corrupt; the caller falls back to empty collections either way.
func (s *SnapshotStorage) LoadSnapshot(
	ctx context.Context,
) (domain.Snapshot, error) {
	const op = "SnapshotStorage.LoadSnapshot"

	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	data, err := s.db.Get(snapshotKey, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return domain.Snapshot{}, fmt.Errorf("%s: %w", op, ErrNoSnapshot)
		}
		return domain.Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	var v schema.SnapshotV1
	if err := s.marshaler.Decode(data, &v); err != nil {
		return domain.Snapshot{}, fmt.Errorf("%s: corrupt snapshot: %w", op, err)
	}

	return snapshotToDomain(v), nil
}

func snapshotToSchemaV1(snap domain.Snapshot) (v schema.SnapshotV1) {
	v.Cart = make([]schema.CartItemV1, len(snap.Cart))
	for i, it := range snap.Cart {
		v.Cart[i].Product = productToSchemaV1(it.Product)
		v.Cart[i].Quantity = it.Quantity
	}

	v.Wishlist = make([]schema.ProductV1, len(snap.Wishlist))
	for i, p := range snap.Wishlist {
		v.Wishlist[i] = productToSchemaV1(p)
	}
	return
}

func snapshotToDomain(v schema.SnapshotV1) (snap domain.Snapshot) {
	for _, it := range v.Cart {
		snap.Cart = append(snap.Cart, domain.CartItem{
			Product:  productToDomain(it.Product),
			Quantity: it.Quantity,
		})
	}
	for _, p := range v.Wishlist {
		snap.Wishlist = append(snap.Wishlist, productToDomain(p))
	}
	return
}

func productToSchemaV1(p domain.Product) (v schema.ProductV1) {
	v.ID = p.ID
	v.Name = p.Name
	v.Price = p.Price
	v.OldPrice = p.OldPrice
	v.Image = p.Image
	v.Category = p.Category
	v.Description = p.Description
	v.Brand = p.Brand
	v.InStock = p.InStock
	return
}

func productToDomain(v schema.ProductV1) (p domain.Product) {
	p.ID = v.ID
	p.Name = v.Name
	p.Price = v.Price
	p.OldPrice = v.OldPrice
	p.Image = v.Image
	p.Category = v.Category
	p.Description = v.Description
	p.Brand = v.Brand
	p.InStock = v.InStock
	return
}
