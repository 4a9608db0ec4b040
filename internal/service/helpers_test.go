package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shop_api/internal/models"
	"github.com/Skotchmaster/shop_api/internal/repo"
	pkgdb "github.com/Skotchmaster/shop_api/pkg/db"
)

var errStoreDown = errors.New("store down")

type recordedEvent struct {
	Topic string
	Key   string
	Event any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
	err    error
}

func (p *recordingPublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{Topic: topic, Key: key, Event: event})
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) all() []recordedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]recordedEvent(nil), p.events...)
}

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := pkgdb.Open(context.Background(), pkgdb.Options{Driver: pkgdb.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, pkgdb.EnsureTables(db, &models.Product{}, &models.User{}))
	t.Cleanup(func() { _ = pkgdb.Close(db) })

	return repo.New(db)
}

// brokenStore fails every call.
type brokenStore struct{}

func (brokenStore) ListProducts(context.Context) ([]models.Product, error) { return nil, errStoreDown }
func (brokenStore) GetProduct(context.Context, uint) (*models.Product, error) {
	return nil, errStoreDown
}
func (brokenStore) CreateProduct(context.Context, *models.Product) (repo.Result, error) {
	return repo.Result{}, errStoreDown
}
func (brokenStore) UpdateProduct(context.Context, uint, *models.Product) (repo.Result, error) {
	return repo.Result{}, errStoreDown
}
func (brokenStore) DeleteProduct(context.Context, uint) (repo.Result, error) {
	return repo.Result{}, errStoreDown
}
func (brokenStore) CreateUser(context.Context, *models.User) (repo.Result, error) {
	return repo.Result{}, errStoreDown
}
func (brokenStore) GetUserByEmail(context.Context, string) (*models.User, error) {
	return nil, errStoreDown
}

func strPtr(s string) *string      { return &s }
func floatPtr(f float64) *float64 { return &f }
