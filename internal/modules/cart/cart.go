package cart

import "github.com/shopspring/decimal"

// ProductSnapshot is the product data copied into the cart at add time.
// Later changes to the catalog are not reflected in items built from it.
type ProductSnapshot struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

type Item struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"qty"`
	Stock    int             `json:"stock"`
}

// LineTotal is price × quantity.
func (it Item) LineTotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Cart keeps items in first-added order. Every item present has Quantity >= 1.
//
// Quantities are not checked against the snapshotted stock.
type Cart struct {
	Items []Item `json:"items"`
}

func New() *Cart {
	return &Cart{Items: []Item{}}
}

// Add increments the matching item or appends a new one with quantity 1.
func (c *Cart) Add(p ProductSnapshot) {
	for i := range c.Items {
		if c.Items[i].ID == p.ID {
			c.Items[i].Quantity++
			return
		}
	}
	c.Items = append(c.Items, Item{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Quantity: 1,
		Stock:    p.Stock,
	})
}

func (c *Cart) Increase(id int64) {
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items[i].Quantity++
		}
	}
}

// Decrease lowers the matching quantity and drops anything that reached zero.
func (c *Cart) Decrease(id int64) {
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items[i].Quantity--
		}
	}
	c.keep(func(it Item) bool { return it.Quantity > 0 })
}

func (c *Cart) Remove(id int64) {
	c.keep(func(it Item) bool { return it.ID != id })
}

// Count is the sum of quantities.
func (c *Cart) Count() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// Total is recomputed from the items on every call.
func (c *Cart) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range c.Items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

func (c *Cart) Len() int { return len(c.Items) }

func (c *Cart) Has(id int64) bool {
	for _, it := range c.Items {
		if it.ID == id {
			return true
		}
	}
	return false
}

// Normalize drops entries that could only come from a hand-edited payload
// (non-positive quantity or id) and merges duplicates, keeping first position.
func (c *Cart) Normalize() {
	seen := make(map[int64]int, len(c.Items))
	out := make([]Item, 0, len(c.Items))
	for _, it := range c.Items {
		if it.ID <= 0 || it.Quantity <= 0 {
			continue
		}
		if idx, ok := seen[it.ID]; ok {
			out[idx].Quantity += it.Quantity
			continue
		}
		seen[it.ID] = len(out)
		out = append(out, it)
	}
	c.Items = out
}

func (c *Cart) keep(pred func(Item) bool) {
	out := c.Items[:0]
	for _, it := range c.Items {
		if pred(it) {
			out = append(out, it)
		}
	}
	c.Items = out
}
