// Package cart holds the session cart as a plain value. Operations take
// the current cart plus a read-only product snapshot and return a new
// cart, so the logic is independent of where the session actually lives.
//
// The stock checks here are advisory: they see quantity_available as it
// was at the moment of the call. The authoritative check happens inside
// the checkout transaction.
package cart

import "errors"

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("invalid quantity")
)

// Line is one product entry in a cart. Price and the display fields are
// snapshotted when the product is first added and are not refreshed by
// later catalog edits.
type Line struct {
	ProductID uint    `json:"product_id"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
	Name      string  `json:"name"`
	ImagePath string  `json:"image_path"`
	UnitType  string  `json:"unit_type"`
}

func (l Line) Subtotal() float64 {
	return l.Price * l.Quantity
}

// Snapshot is the read-only product state a cart operation needs.
type Snapshot struct {
	Price     float64
	Name      string
	ImagePath string
	UnitType  string
	Available float64
}

type Cart struct {
	Lines []Line `json:"lines"`
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Count returns the number of distinct lines, which is what the cart
// badge shows.
func (c Cart) Count() int {
	return len(c.Lines)
}

func (c Cart) Find(productID uint) (Line, bool) {
	for _, l := range c.Lines {
		if l.ProductID == productID {
			return l, true
		}
	}
	return Line{}, false
}

func (c Cart) clone() Cart {
	out := Cart{Lines: make([]Line, len(c.Lines))}
	copy(out.Lines, c.Lines)
	return out
}

// Add puts quantity of a product into the cart, merging into an existing
// line by summing quantities. The merged quantity must not exceed the
// product's availability, else ErrInsufficientStock and the cart is
// returned unchanged.
func (c Cart) Add(productID uint, quantity float64, p Snapshot) (Cart, error) {
	if quantity <= 0 {
		quantity = 1
	}
	if quantity > p.Available {
		return c, ErrInsufficientStock
	}

	out := c.clone()
	for i := range out.Lines {
		if out.Lines[i].ProductID != productID {
			continue
		}
		merged := out.Lines[i].Quantity + quantity
		if merged > p.Available {
			return c, ErrInsufficientStock
		}
		out.Lines[i].Quantity = merged
		return out, nil
	}

	out.Lines = append(out.Lines, Line{
		ProductID: productID,
		Quantity:  quantity,
		Price:     p.Price,
		Name:      p.Name,
		ImagePath: p.ImagePath,
		UnitType:  p.UnitType,
	})
	return out, nil
}

// Update replaces a line's quantity outright. Zero removes the line,
// negatives are rejected. The new quantity is checked against
// availability, not added to the old one.
func (c Cart) Update(productID uint, quantity, available float64) (Cart, error) {
	if quantity < 0 {
		return c, ErrInvalidQuantity
	}
	if quantity == 0 {
		return c.Remove(productID), nil
	}
	if quantity > available {
		return c, ErrInsufficientStock
	}

	out := c.clone()
	for i := range out.Lines {
		if out.Lines[i].ProductID == productID {
			out.Lines[i].Quantity = quantity
			break
		}
	}
	return out, nil
}

// Remove drops the line for productID. Removing an absent product is a
// no-op.
func (c Cart) Remove(productID uint) Cart {
	out := Cart{Lines: make([]Line, 0, len(c.Lines))}
	for _, l := range c.Lines {
		if l.ProductID != productID {
			out.Lines = append(out.Lines, l)
		}
	}
	return out
}
