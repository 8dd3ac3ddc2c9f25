package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/sushii-shop/storefront/pkg/apiclient"
)

// Notifier receives user-facing notices (the client's feedback zone).
type Notifier func(message string)

// Manager owns the client cart: current state, its persisted mirror, the
// known catalog and the API client used for submission. Every successful
// mutation persists the full cart and invokes the change hook so cart-
// derived views stay in sync.
type Manager struct {
	storage  Storage
	api      *apiclient.Client
	notify   Notifier
	onChange func()

	products   []apiclient.Product
	items      []Item
	submitting bool
}

type Option func(*Manager)

// WithNotifier routes user-facing notices; the default discards them.
func WithNotifier(n Notifier) Option {
	return func(m *Manager) { m.notify = n }
}

// WithChangeHook is called after every cart mutation, for re-rendering.
func WithChangeHook(fn func()) Option {
	return func(m *Manager) { m.onChange = fn }
}

func NewManager(storage Storage, api *apiclient.Client, opts ...Option) *Manager {
	m := &Manager{
		storage:  storage,
		api:      api,
		notify:   func(string) {},
		onChange: func() {},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load restores the persisted cart (migrating the legacy format if
// needed) and fetches the catalog.
func (m *Manager) Load(ctx context.Context) error {
	m.items = Load(m.storage)
	m.onChange()

	products, err := m.api.FetchProducts(ctx)
	if err != nil {
		return fmt.Errorf("fetch products: %w", err)
	}
	m.products = products
	m.onChange()
	return nil
}

func (m *Manager) Items() []Item {
	out := make([]Item, len(m.items))
	copy(out, m.items)
	return out
}

func (m *Manager) Products() []apiclient.Product {
	return m.products
}

func (m *Manager) Submitting() bool {
	return m.submitting
}

func (m *Manager) findProduct(productID int64) (apiclient.Product, bool) {
	for _, p := range m.products {
		if p.ID == productID {
			return p, true
		}
	}
	return apiclient.Product{}, false
}

// AddItem adds quantity of a product to the cart. An unknown product id
// leaves the cart untouched and surfaces a notice.
func (m *Manager) AddItem(productID int64, quantity int) {
	product, ok := m.findProduct(productID)
	if !ok {
		m.notify("Ce produit n'est plus disponible.")
		return
	}

	m.setItems(Add(m.items, productID, quantity))
	m.notify(product.Name + " ajouté au panier.")
}

// ChangeQuantity shifts a line's quantity by delta within [1,MaxQuantity].
func (m *Manager) ChangeQuantity(productID int64, delta int) {
	m.setItems(ChangeQuantity(m.items, productID, delta))
}

// RemoveItem drops the product's line. Persists and re-renders even when
// the product was absent.
func (m *Manager) RemoveItem(productID int64) {
	m.setItems(Remove(m.items, productID))
	if product, ok := m.findProduct(productID); ok {
		m.notify(product.Name + " retiré du panier.")
	}
}

func (m *Manager) Count() int {
	return Count(m.items)
}

// Total prices the cart against the fetched catalog.
func (m *Manager) Total() float64 {
	return Total(m.items, func(productID int64) (float64, bool) {
		p, ok := m.findProduct(productID)
		return p.Price, ok
	})
}

var errEmptyCart = errors.New("cart is empty")

// SubmitOrder sends the cart for ordering. Only product ids and
// quantities go over the wire; pricing is the server's business. On
// success the cart and its persisted mirror are cleared; on any failure
// the cart is left untouched and the server's message (or a generic
// network notice) is surfaced. The submitting flag covers the whole
// round trip and is always cleared.
func (m *Manager) SubmitOrder(ctx context.Context) (*apiclient.OrderResult, error) {
	if len(m.items) == 0 {
		m.notify("Ton panier est vide.")
		return nil, errEmptyCart
	}

	m.submitting = true
	m.onChange()
	defer func() {
		m.submitting = false
		m.onChange()
	}()

	payload := apiclient.OrderPayload{Items: make([]apiclient.OrderItem, 0, len(m.items))}
	for _, item := range m.items {
		payload.Items = append(payload.Items, apiclient.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	result, err := m.api.SubmitOrder(ctx, payload)
	if err != nil {
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			m.notify(apiErr.Message)
		} else {
			m.notify("Erreur réseau.")
		}
		return nil, err
	}

	m.items = nil
	_ = Clear(m.storage)
	m.notify("Commande enregistrée ! Référence : " + result.Ref + ".")
	return result, nil
}

func (m *Manager) setItems(items []Item) {
	m.items = items
	_ = Save(m.storage, m.items)
	m.onChange()
}
