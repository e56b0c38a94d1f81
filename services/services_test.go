package services

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Modeva-Ecommerce/modeva-storefront/history"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

func TestCanTransition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from, to string
		want     bool
	}{
		{models.OrderStatusPending, models.OrderStatusProcessing, true},
		{models.OrderStatusPending, models.OrderStatusCancelled, true},
		{models.OrderStatusPending, models.OrderStatusShipped, false},
		{models.OrderStatusProcessing, models.OrderStatusShipped, true},
		{models.OrderStatusShipped, models.OrderStatusCompleted, true},
		{models.OrderStatusShipped, models.OrderStatusCancelled, false},
		{models.OrderStatusCompleted, models.OrderStatusPending, false},
		{models.OrderStatusCancelled, models.OrderStatusProcessing, false},
		{models.OrderStatusPending, models.OrderStatusPending, false},
	}
	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestPriceItems(t *testing.T) {
	t.Parallel()

	shoe := models.Product{ID: uuid.New(), Name: "Runner", Slug: "runner", Price: 49.99, CountInStock: 5, IsPublished: true}
	hat := models.Product{ID: uuid.New(), Name: "Cap", Slug: "cap", Price: 10, CountInStock: 1, IsPublished: true}
	hidden := models.Product{ID: uuid.New(), Name: "Hidden", Slug: "hidden", Price: 1, CountInStock: 9}
	catalog := map[uuid.UUID]models.Product{shoe.ID: shoe, hat.ID: hat, hidden.ID: hidden}

	t.Run("merges quantities and computes totals", func(t *testing.T) {
		t.Parallel()
		lines, totals, err := PriceItems(catalog, []models.OrderItemInput{
			{ProductID: shoe.ID.String(), Quantity: 1},
			{ProductID: hat.ID.String(), Quantity: 1},
			{ProductID: shoe.ID.String(), Quantity: 1},
		})
		require.NoError(t, err)
		require.Len(t, lines, 2)
		assert.Equal(t, shoe.ID, lines[0].ProductID)
		assert.Equal(t, 2, lines[0].Quantity)
		assert.Equal(t, "99.98", lines[0].Subtotal.StringFixed(2))

		assert.Equal(t, "109.98", totals.Subtotal.StringFixed(2))
		assert.Equal(t, "11.00", totals.Tax.StringFixed(2))
		assert.Equal(t, "5.50", totals.ShippingCost.StringFixed(2))
		assert.Equal(t, "126.48", totals.Total.StringFixed(2))
	})

	t.Run("insufficient stock", func(t *testing.T) {
		t.Parallel()
		_, _, err := PriceItems(catalog, []models.OrderItemInput{{ProductID: hat.ID.String(), Quantity: 2}})
		assert.ErrorIs(t, err, ErrInsufficientStock)
	})

	t.Run("unpublished product", func(t *testing.T) {
		t.Parallel()
		_, _, err := PriceItems(catalog, []models.OrderItemInput{{ProductID: hidden.ID.String(), Quantity: 1}})
		assert.ErrorIs(t, err, ErrProductUnavailable)
	})

	t.Run("unknown and malformed ids", func(t *testing.T) {
		t.Parallel()
		_, _, err := PriceItems(catalog, []models.OrderItemInput{{ProductID: uuid.NewString(), Quantity: 1}})
		assert.ErrorIs(t, err, ErrProductUnavailable)
		_, _, err = PriceItems(catalog, []models.OrderItemInput{{ProductID: "not-a-uuid", Quantity: 1}})
		assert.ErrorIs(t, err, ErrProductUnavailable)
	})
}

func TestNewOrderNumber(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	a, b := NewOrderNumber(now), NewOrderNumber(now)
	assert.Regexp(t, `^MOD-20260304-[0-9A-F]{8}$`, a)
	assert.NotEqual(t, a, b)
}

func TestGenerateInvoicePDF(t *testing.T) {
	t.Parallel()

	order := &models.Order{
		OrderNumber:   "MOD-20260304-ABCD1234",
		CustomerName:  "Ada Obi",
		CustomerEmail: "ada@example.com",
		ShippingAddress: models.ShippingAddress{
			FullName: "Ada Obi", Street: "1 Marina", City: "Lagos", PostalCode: "100001", Country: "NG",
		},
		Status:       models.OrderStatusProcessing,
		Subtotal:     decimal.RequireFromString("100"),
		Tax:          decimal.RequireFromString("10"),
		ShippingCost: decimal.RequireFromString("5"),
		TotalAmount:  decimal.RequireFromString("115"),
		CreatedAt:    time.Now(),
		Items: []models.OrderItem{{
			ProductName: "Runner",
			Price:       decimal.RequireFromString("50"),
			Quantity:    2,
			Subtotal:    decimal.RequireFromString("100"),
		}},
	}

	buf, err := GenerateInvoicePDF(order)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Equal(t, "invoice-MOD-20260304-ABCD1234.pdf", InvoiceFilename(order))
}

func TestMemoryHistoryStorage(t *testing.T) {
	t.Parallel()
	factory := MemoryHistoryStorage()
	ctx := context.Background()

	a := factory("visitor-a")
	_, err := a.Update(ctx, func(cur []history.Entry) []history.Entry {
		return history.Push(cur, history.Entry{ID: "p1", Category: "shoes"})
	})
	require.NoError(t, err)

	got, err := factory("visitor-a").Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []history.Entry{{ID: "p1", Category: "shoes"}}, got)

	other, err := factory("visitor-b").Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, other)
}

type slowLoadStorage struct {
	history.Storage
}

func (s slowLoadStorage) Load(ctx context.Context) ([]history.Entry, error) {
	time.Sleep(5 * time.Millisecond)
	return s.Storage.Load(ctx)
}

func TestVisitorHistory_ConcurrentViewsAreKept(t *testing.T) {
	memory := MemoryHistoryStorage()
	InitVisitorHistory(func(visitorID string) history.Storage {
		return slowLoadStorage{memory(visitorID)}
	})
	t.Cleanup(func() { InitVisitorHistory(MemoryHistoryStorage()) })

	ctx := context.Background()
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store, err := VisitorHistory(ctx, "v1")
			if !assert.NoError(t, err) {
				return
			}
			assert.NoError(t, store.Add(ctx, history.Entry{ID: fmt.Sprintf("p%d", i), Category: "shoes"}))
		}()
	}
	wg.Wait()

	store, err := VisitorHistory(ctx, "v1")
	require.NoError(t, err)
	ids := history.IDs(store.Entries())
	assert.Len(t, ids, 8)
	assert.ElementsMatch(t, []string{"p0", "p1", "p2", "p3", "p4", "p5", "p6", "p7"}, ids)
}

type countingViews struct {
	mu  sync.Mutex
	ids []string
	err error
}

func (c *countingViews) Increment(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ids = append(c.ids, id)
	return c.err
}

func TestRecordView(t *testing.T) {
	counter := &countingViews{}
	InitViewCounter(counter)
	t.Cleanup(func() { InitViewCounter(nil) })

	RecordView("p1")
	RecordView("p2")
	WaitForViews()
	assert.ElementsMatch(t, []string{"p1", "p2"}, counter.ids)

	counter.err = errors.New("db down")
	RecordView("p3")
	WaitForViews()
	assert.Len(t, counter.ids, 3)
}
