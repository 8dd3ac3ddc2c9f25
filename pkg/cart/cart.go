// Package cart is the client-side cart: pure state transitions over a
// list of items, persistence with legacy-format migration, and a Manager
// tying state to storage and the storefront API.
package cart

// MaxQuantity caps every line; additions past it clamp rather than fail.
const MaxQuantity = 25

type Item struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// Add returns a new list with quantity added for the product, clamped to
// MaxQuantity. At most one entry per product id exists; a new product is
// appended at the end.
func Add(items []Item, productID int64, quantity int) []Item {
	next := make([]Item, len(items))
	copy(next, items)

	for i := range next {
		if next[i].ProductID == productID {
			next[i].Quantity = clampQuantity(next[i].Quantity + quantity)
			return next
		}
	}
	return append(next, Item{ProductID: productID, Quantity: clampQuantity(quantity)})
}

// ChangeQuantity applies delta to the product's quantity, clamped to
// [1,MaxQuantity]. Entries with a non-positive quantity are then filtered
// out; with the floor at 1 that filter never fires, and removal only ever
// happens through Remove. Kept as-is.
func ChangeQuantity(items []Item, productID int64, delta int) []Item {
	next := make([]Item, 0, len(items))
	for _, item := range items {
		if item.ProductID == productID {
			q := item.Quantity + delta
			if q < 1 {
				q = 1
			}
			item.Quantity = clampQuantity(q)
		}
		if item.Quantity > 0 {
			next = append(next, item)
		}
	}
	return next
}

// Remove drops the product's entry. Removing an absent product returns an
// equivalent list.
func Remove(items []Item, productID int64) []Item {
	next := make([]Item, 0, len(items))
	for _, item := range items {
		if item.ProductID != productID {
			next = append(next, item)
		}
	}
	return next
}

// Count is the total number of articles across all lines.
func Count(items []Item) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

// Total prices the cart against a unit-price lookup. Items whose price is
// unknown (product gone from the catalog) contribute nothing.
func Total(items []Item, price func(productID int64) (float64, bool)) float64 {
	var total float64
	for _, item := range items {
		if p, ok := price(item.ProductID); ok {
			total += float64(item.Quantity) * p
		}
	}
	return total
}

func clampQuantity(q int) int {
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}
