package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Skotchmaster/resto_pos/internal/domain"
	"github.com/Skotchmaster/resto_pos/internal/models"
	"github.com/Skotchmaster/resto_pos/internal/repo"
	"github.com/Skotchmaster/resto_pos/pkg/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) types() []domain.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.EventType, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

type testEnv struct {
	Repo   *repo.GormRepo
	Events *recordingPublisher
	Orders *OrderService
	Tables *TableService
	Menu   *MenuService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	gdb, err := db.Open(ctx, db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	r := repo.New(gdb)
	require.NoError(t, r.Migrate(ctx))

	events := &recordingPublisher{}
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return &testEnv{
		Repo:   r,
		Events: events,
		Orders: &OrderService{Repo: r, Events: events, Now: func() time.Time { return fixed }},
		Tables: &TableService{Repo: r},
		Menu:   &MenuService{Repo: r},
	}
}

func (env *testEnv) table(t *testing.T, code string) *models.Table {
	t.Helper()
	tb, err := env.Tables.Create(context.Background(), code, 4, models.TableAvailable)
	require.NoError(t, err)
	return tb
}

func (env *testEnv) food(t *testing.T, name, price string, category models.FoodCategory, active bool) *models.Food {
	t.Helper()
	f, err := env.Menu.Create(context.Background(),
		models.NewFood(name, nil, decimal.RequireFromString(price), category, active))
	require.NoError(t, err)
	return f
}

// requireTotalsConsistent checks the stored total of every order against its stored lines.
func (env *testEnv) requireTotalsConsistent(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	_, orders, err := env.Repo.ListOrders(ctx, repo.OrderFilter{}, 0, 100)
	require.NoError(t, err)
	for _, o := range orders {
		items, err := env.Repo.OrderItems(ctx, o.ID)
		require.NoError(t, err)
		require.True(t, o.TotalPrice.Equal(domain.Total(items)),
			"order %s total %s, lines sum %s", o.ID, o.TotalPrice, domain.Total(items))
	}
}

var errBrokerDown = errors.New("broker down")

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
