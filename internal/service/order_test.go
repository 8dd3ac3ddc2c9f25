package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sushii-shop/storefront/internal/catalog"
	"github.com/sushii-shop/storefront/internal/models"
	"github.com/sushii-shop/storefront/internal/store"
	"github.com/sushii-shop/storefront/internal/transport"
)

const testProducts = `[
	{"id": 1, "name": "Maki saumon", "price": 10.00},
	{"id": 2, "name": "Plateau mixte", "price": 5.00},
	{"id": 3, "name": "Soupe miso", "price": "3.50"},
	{"id": 9, "name": "Offre découverte", "price": 0}
]`

func newTestOrderService(t *testing.T) *OrderService {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "products.json"), []byte(testProducts), 0o644))

	st := store.New(dir)
	return &OrderService{
		Store:   st,
		Catalog: &catalog.Service{Store: st},
	}
}

func placeOrder(t *testing.T, svc *OrderService, body string) (*models.Order, bool, error) {
	t.Helper()
	var req transport.OrderRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return svc.PlaceOrder(context.Background(), req)
}

func TestPlaceOrder_UnitPriceComesFromCatalog(t *testing.T) {
	t.Parallel()

	svc := newTestOrderService(t)

	order, usedLegacy, err := placeOrder(t, svc,
		`{"items": [{"productId": 1, "quantity": 2, "unitPrice": 0.01}]}`)
	require.NoError(t, err)
	assert.False(t, usedLegacy)

	require.Len(t, order.Items, 1)
	assert.InDelta(t, 10.00, order.Items[0].UnitPrice, 1e-9)
	assert.InDelta(t, 20.00, order.Total, 1e-9)
}

func TestPlaceOrder_UnknownProductsOnlyRejected(t *testing.T) {
	t.Parallel()

	svc := newTestOrderService(t)

	_, _, err := placeOrder(t, svc, `{"items": [{"productId": 42, "quantity": 1}]}`)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Panier vide ou produits inconnus.", verr.Message)
}

func TestPlaceOrder_EmptyPayloadVariantsRejected(t *testing.T) {
	t.Parallel()

	svc := newTestOrderService(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "no items key", body: `{}`},
		{name: "empty items", body: `{"items": []}`},
		{name: "empty legacy cart", body: `{"cart": []}`},
		{name: "items array wins over cart", body: `{"items": [], "cart": [{"id": 1, "qty": 2}]}`},
		{name: "items without usable ids", body: `{"items": [{"productId": 0}, {"productId": -3}, {"quantity": 2}]}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := placeOrder(t, svc, tt.body)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "Panier vide ou produits inconnus.", verr.Message)
		})
	}
}

func TestPlaceOrder_LegacyCartShape(t *testing.T) {
	t.Parallel()

	svc := newTestOrderService(t)

	order, usedLegacy, err := placeOrder(t, svc, `{"cart": [{"id": 2, "qty": 3}]}`)
	require.NoError(t, err)
	assert.True(t, usedLegacy)

	require.Len(t, order.Items, 1)
	assert.Equal(t, int64(2), order.Items[0].ProductID)
	assert.EqualValues(t, 3, order.Items[0].Quantity)
	assert.InDelta(t, 15.00, order.Total, 1e-9)
}

func TestPlaceOrder_QuantityClampAndDefault(t *testing.T) {
	t.Parallel()

	svc := newTestOrderService(t)

	order, _, err := placeOrder(t, svc, `{"items": [
		{"productId": 1, "quantity": 100},
		{"productId": 2, "quantity": -4},
		{"productId": 3}
	]}`)
	require.NoError(t, err)

	require.Len(t, order.Items, 3)
	assert.EqualValues(t, 25, order.Items[0].Quantity)
	assert.EqualValues(t, 1, order.Items[1].Quantity)
	assert.EqualValues(t, 1, order.Items[2].Quantity)
}

func TestPlaceOrder_DuplicateProductIDsStaySeparate(t *testing.T) {
	t.Parallel()

	svc := newTestOrderService(t)

	order, _, err := placeOrder(t, svc, `{"items": [
		{"productId": 1, "quantity": 1},
		{"productId": 2, "quantity": 1},
		{"productId": 1, "quantity": 2}
	]}`)
	require.NoError(t, err)

	require.Len(t, order.Items, 3)
	assert.Equal(t, int64(1), order.Items[0].ProductID)
	assert.Equal(t, int64(2), order.Items[1].ProductID)
	assert.Equal(t, int64(1), order.Items[2].ProductID)
	assert.InDelta(t, 35.00, order.Total, 1e-9)
}

func TestPlaceOrder_ZeroPricedItemsOnlyInvalidTotal(t *testing.T) {
	t.Parallel()

	svc := newTestOrderService(t)

	_, _, err := placeOrder(t, svc, `{"items": [{"productId": 9, "quantity": 3}]}`)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Total invalide.", verr.Message)
}

func TestPlaceOrder_CustomerSanitization(t *testing.T) {
	t.Parallel()

	svc := newTestOrderService(t)

	longName := strings.Repeat("a", 150)
	order, _, err := placeOrder(t, svc, `{
		"items": [{"productId": 1, "quantity": 1}],
		"customer": {"name": "`+longName+`", "email": "  jean@example.fr  ", "phone": "   "},
		"notes": "`+strings.Repeat("n", 300)+`"
	}`)
	require.NoError(t, err)

	assert.Len(t, order.Customer.Name, 120)
	require.NotNil(t, order.Customer.Email)
	assert.Equal(t, "jean@example.fr", *order.Customer.Email)
	assert.Nil(t, order.Customer.Phone)
	require.NotNil(t, order.Notes)
	assert.Len(t, *order.Notes, 240)
}

func TestPlaceOrder_BlankCustomerDefaults(t *testing.T) {
	t.Parallel()

	svc := newTestOrderService(t)

	order, _, err := placeOrder(t, svc, `{"items": [{"productId": 1, "quantity": 1}]}`)
	require.NoError(t, err)

	assert.Equal(t, "Client invité", order.Customer.Name)
	assert.Nil(t, order.Customer.Email)
	assert.Nil(t, order.Customer.Phone)
	assert.Nil(t, order.Notes)
}

func TestPlaceOrder_TotalRoundedToCents(t *testing.T) {
	t.Parallel()

	svc := newTestOrderService(t)

	// 3 × 3.50 exercises the string-priced product too.
	order, _, err := placeOrder(t, svc, `{"items": [{"productId": 3, "quantity": 3}]}`)
	require.NoError(t, err)
	assert.InDelta(t, 10.50, order.Total, 1e-9)
}

func TestPlaceOrder_PersistsOrderWithRefAndTimestamp(t *testing.T) {
	t.Parallel()

	svc := newTestOrderService(t)

	order, _, err := placeOrder(t, svc, `{"items": [{"productId": 1, "quantity": 2}]}`)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.Ref, "ORD-"))
	assert.Len(t, order.Ref, len("ORD-")+8)
	assert.False(t, order.CreatedAt.IsZero())

	persisted, err := svc.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, order.Ref, persisted[0].Ref)
	assert.InDelta(t, order.Total, persisted[0].Total, 1e-9)
}

func TestPlaceOrder_StringNumbersCoerced(t *testing.T) {
	t.Parallel()

	svc := newTestOrderService(t)

	order, _, err := placeOrder(t, svc, `{"items": [{"productId": "1", "quantity": "2"}]}`)
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, int64(1), order.Items[0].ProductID)
	assert.EqualValues(t, 2, order.Items[0].Quantity)
}

func TestPlaceOrder_LegacyFieldNamesTakePrecedenceInCart(t *testing.T) {
	t.Parallel()

	svc := newTestOrderService(t)

	order, usedLegacy, err := placeOrder(t, svc,
		`{"cart": [{"id": 2, "productId": 1, "qty": 4, "quantity": 1}]}`)
	require.NoError(t, err)
	assert.True(t, usedLegacy)

	require.Len(t, order.Items, 1)
	assert.Equal(t, int64(2), order.Items[0].ProductID)
	assert.EqualValues(t, 4, order.Items[0].Quantity)
}
