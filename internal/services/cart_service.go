package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"farmfresh/internal/caching"
	"farmfresh/internal/models"
)

// CartServiceInterface owns the cart lifecycle for a session: restore the
// persisted snapshot, mutate through cart operations only, persist after
// every mutation. All handlers route through these operations; nothing
// else touches cart state.
type CartServiceInterface interface {
	Get(ctx context.Context, sessionID string) (*models.Cart, error)
	Add(ctx context.Context, sessionID string, id int64, name string, price float64, image string) (*models.Cart, error)
	Increase(ctx context.Context, sessionID string, id int64) (*models.Cart, error)
	Decrease(ctx context.Context, sessionID string, id int64) (*models.Cart, error)
	Remove(ctx context.Context, sessionID string, id int64) (*models.Cart, error)
	SerializeForCheckout(ctx context.Context, sessionID string) (string, int, error)
	Clear(ctx context.Context, sessionID string) error
}

type cartService struct {
	snapshots   caching.SnapshotStore
	snapshotTTL time.Duration
}

// NewCartService creates a cart service persisting snapshots with the
// given TTL. A zero TTL keeps snapshots until the purge job collects them.
func NewCartService(snapshots caching.SnapshotStore, snapshotTTL time.Duration) CartServiceInterface {
	return &cartService{snapshots: snapshots, snapshotTTL: snapshotTTL}
}

// Get restores the session's cart from its persisted snapshot. A missing,
// unreadable or corrupt snapshot restores as an empty cart: corrupted
// persisted state must never fail a request.
func (s *cartService) Get(ctx context.Context, sessionID string) (*models.Cart, error) {
	snapshot, err := s.snapshots.Get(ctx, sessionID)
	if err != nil {
		log.Printf("WARN: cart snapshot for session %s unreadable, starting empty: %v", sessionID, err)
		return models.NewCart(), nil
	}
	if snapshot == nil {
		return models.NewCart(), nil
	}
	return models.NewCartFromItems(snapshot.Items), nil
}

func (s *cartService) persist(ctx context.Context, sessionID string, cart *models.Cart) error {
	snapshot := &models.CartSnapshot{Items: cart.Items(), UpdatedAt: time.Now().UTC()}
	return s.snapshots.Set(ctx, sessionID, snapshot, s.snapshotTTL)
}

func (s *cartService) mutate(ctx context.Context, sessionID string, op func(*models.Cart)) (*models.Cart, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	op(cart)
	if err := s.persist(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *cartService) Add(ctx context.Context, sessionID string, id int64, name string, price float64, image string) (*models.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *models.Cart) { c.Add(id, name, price, image) })
}

func (s *cartService) Increase(ctx context.Context, sessionID string, id int64) (*models.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *models.Cart) { c.Increase(id) })
}

func (s *cartService) Decrease(ctx context.Context, sessionID string, id int64) (*models.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *models.Cart) { c.Decrease(id) })
}

func (s *cartService) Remove(ctx context.Context, sessionID string, id int64) (*models.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *models.Cart) { c.Remove(id) })
}

// SerializeForCheckout produces the JSON array posted as cart_data plus
// the number of line items. It does not mutate the cart; clearing happens
// only after the server confirms the order.
func (s *cartService) SerializeForCheckout(ctx context.Context, sessionID string) (string, int, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return "", 0, err
	}
	items := cart.Items()
	data, err := json.Marshal(items)
	if err != nil {
		return "", 0, err
	}
	return string(data), len(items), nil
}

// Clear empties the cart and removes the persisted snapshot. Called only
// after a confirmed order success.
func (s *cartService) Clear(ctx context.Context, sessionID string) error {
	return s.snapshots.Delete(ctx, sessionID)
}
