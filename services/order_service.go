package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

var (
	TaxRate      = decimal.RequireFromString("0.10")
	ShippingRate = decimal.RequireFromString("0.05")
)

var (
	ErrProductUnavailable = errors.New("product not found or unpublished")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
)

// orderTransitions lists the statuses an order may move to from each status.
var orderTransitions = map[string][]string{
	models.OrderStatusPending:    {models.OrderStatusProcessing, models.OrderStatusCancelled},
	models.OrderStatusProcessing: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:    {models.OrderStatusCompleted},
}

// CanTransition reports whether an order in status from may move to status to.
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OrderTotals are the money amounts stored on an order.
type OrderTotals struct {
	Subtotal     decimal.Decimal
	Tax          decimal.Decimal
	ShippingCost decimal.Decimal
	Total        decimal.Decimal
}

// PriceItems builds order lines from catalog products and computes totals.
// Quantities for the same product are merged.
func PriceItems(products map[uuid.UUID]models.Product, items []models.OrderItemInput) ([]models.OrderItem, OrderTotals, error) {
	quantities := make(map[uuid.UUID]int, len(items))
	var order []uuid.UUID
	for _, item := range items {
		id, err := uuid.Parse(strings.TrimSpace(item.ProductID))
		if err != nil {
			return nil, OrderTotals{}, errors.Wrapf(ErrProductUnavailable, "product %q", item.ProductID)
		}
		if _, seen := quantities[id]; !seen {
			order = append(order, id)
		}
		quantities[id] += item.Quantity
	}

	lines := make([]models.OrderItem, 0, len(order))
	subtotal := decimal.Zero
	for _, id := range order {
		p, ok := products[id]
		if !ok || !p.IsPublished {
			return nil, OrderTotals{}, errors.Wrapf(ErrProductUnavailable, "product %s", id)
		}
		qty := quantities[id]
		if p.CountInStock < qty {
			return nil, OrderTotals{}, errors.Wrapf(ErrInsufficientStock, "%s: %d requested, %d available", p.Name, qty, p.CountInStock)
		}
		price := decimal.NewFromFloat(p.Price).Round(2)
		lineTotal := price.Mul(decimal.NewFromInt(int64(qty)))
		subtotal = subtotal.Add(lineTotal)
		lines = append(lines, models.OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			ProductSlug: p.Slug,
			ImageURL:    p.ImageURL,
			Price:       price,
			Quantity:    qty,
			Subtotal:    lineTotal,
		})
	}

	totals := OrderTotals{
		Subtotal:     subtotal,
		Tax:          subtotal.Mul(TaxRate).Round(2),
		ShippingCost: subtotal.Mul(ShippingRate).Round(2),
	}
	totals.Total = totals.Subtotal.Add(totals.Tax).Add(totals.ShippingCost)
	return lines, totals, nil
}

// NewOrderNumber returns a human readable order number such as MOD-20260102-1A2B3C4D.
func NewOrderNumber(now time.Time) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("MOD-%s-%s", now.Format("20060102"), strings.ToUpper(id[:8]))
}

// PlaceOrder prices the request against current catalog data and stores the
// order. Stock is decremented and sales counted in the same transaction.
func PlaceOrder(ctx context.Context, db *gorm.DB, visitorID uuid.UUID, req models.CreateOrderRequest) (*models.Order, error) {
	ids := make([]uuid.UUID, 0, len(req.Items))
	for _, item := range req.Items {
		if id, err := uuid.Parse(strings.TrimSpace(item.ProductID)); err == nil {
			ids = append(ids, id)
		}
	}

	var order *models.Order
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var found []models.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ?", ids).
			Find(&found).Error; err != nil {
			return errors.Wrap(err, "load products")
		}
		products := make(map[uuid.UUID]models.Product, len(found))
		for _, p := range found {
			products[p.ID] = p
		}

		lines, totals, err := PriceItems(products, req.Items)
		if err != nil {
			return err
		}

		order = &models.Order{
			VisitorID:       visitorID,
			OrderNumber:     NewOrderNumber(time.Now()),
			CustomerName:    strings.TrimSpace(req.CustomerName),
			CustomerEmail:   strings.ToLower(strings.TrimSpace(req.CustomerEmail)),
			ShippingAddress: req.ShippingAddress,
			Subtotal:        totals.Subtotal,
			Tax:             totals.Tax,
			ShippingCost:    totals.ShippingCost,
			TotalAmount:     totals.Total,
			Status:          models.OrderStatusPending,
			CustomerNotes:   req.CustomerNotes,
			Items:           lines,
		}
		if err := tx.Create(order).Error; err != nil {
			return errors.Wrap(err, "create order")
		}

		for _, line := range lines {
			if err := tx.Model(&models.Product{}).
				Where("id = ?", line.ProductID).
				Updates(map[string]any{
					"count_in_stock": gorm.Expr("count_in_stock - ?", line.Quantity),
					"num_sales":      gorm.Expr("num_sales + ?", line.Quantity),
				}).Error; err != nil {
				return errors.Wrapf(err, "update stock for %s", line.ProductID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateOrderStatus moves an order to a new status. Cancelling restores the
// stock and sales counts taken when the order was placed.
func UpdateOrderStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, status string, adminNotes *string) (*models.Order, error) {
	var order models.Order
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Items").
			First(&order, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return errors.Wrap(err, "load order")
		}
		return transitionOrder(tx, &order, status, adminNotes)
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func transitionOrder(tx *gorm.DB, order *models.Order, status string, adminNotes *string) error {
	if !CanTransition(order.Status, status) {
		return errors.Wrapf(ErrInvalidTransition, "%s -> %s", order.Status, status)
	}

	now := time.Now()
	updates := map[string]any{"status": status}
	switch status {
	case models.OrderStatusShipped:
		updates["shipped_at"] = now
		order.ShippedAt = &now
	case models.OrderStatusCompleted:
		updates["completed_at"] = now
		order.CompletedAt = &now
	case models.OrderStatusCancelled:
		if err := restock(tx, order.Items); err != nil {
			return err
		}
	}
	if adminNotes != nil {
		updates["admin_notes"] = *adminNotes
		order.AdminNotes = adminNotes
	}

	if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(updates).Error; err != nil {
		return errors.Wrap(err, "update order status")
	}
	order.Status = status
	return nil
}

func restock(tx *gorm.DB, items []models.OrderItem) error {
	for _, item := range items {
		if err := tx.Model(&models.Product{}).
			Where("id = ?", item.ProductID).
			Updates(map[string]any{
				"count_in_stock": gorm.Expr("count_in_stock + ?", item.Quantity),
				"num_sales":      gorm.Expr("GREATEST(num_sales - ?, 0)", item.Quantity),
			}).Error; err != nil {
			return errors.Wrapf(err, "restock %s", item.ProductID)
		}
	}
	return nil
}

// ExpirePendingOrders cancels pending orders created before cutoff and
// returns how many were cancelled.
func ExpirePendingOrders(ctx context.Context, db *gorm.DB, cutoff time.Time) (int, error) {
	var stale []models.Order
	if err := db.WithContext(ctx).
		Where("status = ? AND created_at < ?", models.OrderStatusPending, cutoff).
		Find(&stale).Error; err != nil {
		return 0, errors.Wrap(err, "find stale orders")
	}

	note := "expired: not processed within the allowed window"
	expired := 0
	for _, o := range stale {
		if _, err := UpdateOrderStatus(ctx, db, o.ID, models.OrderStatusCancelled, &note); err != nil {
			if errors.Is(err, ErrInvalidTransition) {
				continue
			}
			return expired, errors.Wrapf(err, "expire order %s", o.OrderNumber)
		}
		expired++
	}
	return expired, nil
}
