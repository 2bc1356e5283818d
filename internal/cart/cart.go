package cart

import (
	"github.com/fjod/go_storefront/internal/domain"
)

// Line is one product-quantity pair. Name, price and category are snapshotted
// at add time so later catalog edits do not change what the customer agreed to.
type Line struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
	Quantity  int     `json:"quantity"`
}

// Cart is an ordered collection of lines, one per product. All mutation goes
// through the reducer methods; the total is always derived from the lines.
type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// Add inserts a line for the product, or increments the quantity if a line
// for it already exists.
func (c *Cart) Add(product domain.Product) {
	id := product.ID.Hex()
	for i := range c.lines {
		if c.lines[i].ProductID == id {
			c.lines[i].Quantity++
			return
		}
	}

	c.lines = append(c.lines, Line{
		ProductID: id,
		Name:      product.Name,
		Price:     product.Price,
		Category:  product.Category,
		Quantity:  1,
	})
}

// SetQuantity replaces a line's quantity. A quantity of zero or below removes
// the line entirely.
func (c *Cart) SetQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

func (c *Cart) Remove(productID string) {
	for i, line := range c.lines {
		if line.ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Subtotal is recomputed from the lines on every call and never stored, so it
// cannot drift from its constituents.
func (c *Cart) Subtotal() float64 {
	var total float64
	for _, line := range c.lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

// Items converts the cart lines into the order-item shape the payment flow
// submits and the order record stores.
func (c *Cart) Items() []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(c.lines))
	for _, line := range c.lines {
		items = append(items, domain.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
	}
	return items
}
