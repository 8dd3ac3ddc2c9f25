package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sushii-shop/storefront/internal/catalog"
	"github.com/sushii-shop/storefront/internal/events"
	"github.com/sushii-shop/storefront/internal/models"
	"github.com/sushii-shop/storefront/internal/store"
	"github.com/sushii-shop/storefront/internal/transport"
	"github.com/sushii-shop/storefront/pkg/logging"
)

const OrderCollection = "orders"

// LegacyPayloadNote is attached to the response when an order arrives with
// the old {cart:[{id,qty}]} shape. Informational only.
const LegacyPayloadNote = "Ancienne clé cart détectée. Le format attendu est désormais { items: [{ productId, quantity }] }."

const maxQuantity = 25

// ValidationError carries the user-facing rejection message for a 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

type OrderService struct {
	Store    *store.Store
	Catalog  *catalog.Service
	Producer *events.Producer
}

// PlaceOrder reconciles an untrusted submission against the catalog,
// persists the resulting order and reports whether the legacy payload
// shape was used.
func (s *OrderService) PlaceOrder(ctx context.Context, req transport.OrderRequest) (*models.Order, bool, error) {
	products, err := s.Catalog.Products(ctx)
	if err != nil {
		return nil, false, err
	}

	order, err := normalize(req, products)
	if err != nil {
		return nil, false, err
	}

	order.Ref = newOrderRef()
	order.CreatedAt = time.Now().UTC()

	if err := s.Store.Append(OrderCollection, order); err != nil {
		return nil, false, err
	}

	if err := s.Producer.PublishEvent(ctx, order.Ref, events.OrderCreated{
		Type:      "order_created",
		Ref:       order.Ref,
		Total:     order.Total,
		ItemCount: len(order.Items),
	}); err != nil {
		logging.FromContext(ctx).Warn("order_event_publish_failed", "ref", order.Ref, "error", err)
	}

	usedLegacy := req.Items == nil && req.Cart != nil
	return order, usedLegacy, nil
}

// ListOrders returns the persisted order log, oldest first.
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := s.Store.ReadCollection(OrderCollection, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

type candidate struct {
	productID int64
	quantity  int64
}

// normalize converts a raw submission into an order-ready payload. Unit
// prices always come from the catalog; whatever the client sent is
// ignored. Duplicate product ids are kept as separate lines in input
// order.
func normalize(req transport.OrderRequest, products []models.Product) (*models.Order, error) {
	order := &models.Order{
		Customer: models.Customer{
			Name:  truncateDefault(req.Customer.Name, 120, "Client invité"),
			Email: truncateOptional(req.Customer.Email, 160),
			Phone: truncateOptional(req.Customer.Phone, 32),
		},
		Notes: truncateOptional(req.Notes, 240),
	}

	for _, c := range collectCandidates(req) {
		product, ok := catalog.FindByID(products, c.productID)
		if !ok {
			continue
		}
		order.Items = append(order.Items, models.OrderItem{
			ProductID: product.ID,
			Quantity:  min(c.quantity, maxQuantity),
			UnitPrice: product.Price,
		})
	}

	if len(order.Items) == 0 {
		return nil, &ValidationError{Message: "Panier vide ou produits inconnus."}
	}

	var total float64
	for _, item := range order.Items {
		total += float64(item.Quantity) * item.UnitPrice
	}
	order.Total = round2(total)

	if order.Total <= 0 {
		return nil, &ValidationError{Message: "Total invalide."}
	}

	return order, nil
}

// collectCandidates coerces the raw items. Entries without a positive
// integer product id are dropped; an unusable quantity falls back to 1.
// The legacy cart shape prefers the legacy field names.
func collectCandidates(req transport.OrderRequest) []candidate {
	var raw []transport.OrderItemPayload
	legacy := false
	switch {
	case req.Items != nil:
		raw = *req.Items
	case req.Cart != nil:
		raw = *req.Cart
		legacy = true
	}

	out := make([]candidate, 0, len(raw))
	for _, item := range raw {
		pidField, qtyField := item.ProductID, item.Quantity
		if legacy {
			if _, ok := item.LegacyID.Float64(); ok {
				pidField = item.LegacyID
			}
			if _, ok := item.LegacyQty.Float64(); ok {
				qtyField = item.LegacyQty
			}
		} else {
			if _, ok := pidField.Float64(); !ok {
				pidField = item.LegacyID
			}
			if _, ok := qtyField.Float64(); !ok {
				qtyField = item.LegacyQty
			}
		}

		pid, ok := pidField.PositiveInt()
		if !ok {
			continue
		}

		qty := int64(1)
		if q, ok := qtyField.Float64(); ok && q > 0 {
			qty = int64(math.Trunc(q))
			if qty < 1 {
				qty = 1
			}
		}

		out = append(out, candidate{productID: pid, quantity: qty})
	}
	return out
}

func truncateDefault(s string, max int, def string) string {
	v := truncate(strings.TrimSpace(s), max)
	if v == "" {
		return def
	}
	return v
}

func truncateOptional(s string, max int) *string {
	v := truncate(strings.TrimSpace(s), max)
	if v == "" {
		return nil
	}
	return &v
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func newOrderRef() string {
	head, _, _ := strings.Cut(uuid.NewString(), "-")
	return "ORD-" + strings.ToUpper(head)
}
