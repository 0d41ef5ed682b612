package domain

import "sync"

// LineKey identifies a cart line. Date is a yyyy-mm-dd string for dated
// rentals and empty for undated ones; the two namespaces never collide
// because the date participates in the key.
type LineKey struct {
	ToolID int32  `json:"tool_id"`
	Date   string `json:"date,omitempty"`
}

// CartLine is N units of one tool on one date. Price and deposit are
// snapshots taken when the line was first added; a later price change on
// the tool does not affect lines already in the cart.
type CartLine struct {
	Key              LineKey `json:"key"`
	Name             string  `json:"name"`
	UnitPriceCents   int64   `json:"unit_price_cents"`
	UnitDepositCents int64   `json:"unit_deposit_cents"`
	Quantity         int64   `json:"quantity"`
}

// CartTotals is a pure summary of the current cart state.
type CartTotals struct {
	RentalSubtotalCents  int64 `json:"rental_subtotal_cents"`
	DepositSubtotalCents int64 `json:"deposit_subtotal_cents"`
	GrandTotalCents      int64 `json:"grand_total_cents"`
}

// LineItem is one payable charge handed to the payment gateway at
// checkout, in minor currency units.
type LineItem struct {
	Name        string `json:"name"`
	AmountCents int64  `json:"amount_cents"`
	Quantity    int64  `json:"quantity"`
}

// Cart is a session-scoped aggregate of rental lines. It lives only for
// the session; nothing here touches durable storage. Methods are safe for
// concurrent requests sharing one session.
type Cart struct {
	mu    sync.Mutex
	lines map[LineKey]*CartLine
	order []LineKey
}

func NewCart() *Cart {
	return &Cart{lines: make(map[LineKey]*CartLine)}
}

// Add merges the given line into the cart: an existing line for the same
// key has its quantity incremented, otherwise the line is inserted as-is.
// The stored snapshot prices of an existing line win over the ones passed
// in, honoring the price the user saw when the line was first added.
func (c *Cart) Add(line CartLine) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.lines[line.Key]; ok {
		existing.Quantity += line.Quantity
		return
	}
	l := line
	c.lines[line.Key] = &l
	c.order = append(c.order, line.Key)
}

// RemoveOne decrements the quantity for the key by one and drops the line
// entirely at zero. An absent key is a no-op.
func (c *Cart) RemoveOne(key LineKey) {
	c.mu.Lock()
	defer c.mu.Unlock()

	line, ok := c.lines[key]
	if !ok {
		return
	}
	line.Quantity--
	if line.Quantity > 0 {
		return
	}
	delete(c.lines, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Lines returns the cart lines in insertion order.
func (c *Cart) Lines() []CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]CartLine, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, *c.lines[k])
	}
	return out
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Totals sums unit price and unit deposit across all lines.
func (c *Cart) Totals() CartTotals {
	c.mu.Lock()
	defer c.mu.Unlock()

	var t CartTotals
	for _, line := range c.lines {
		t.RentalSubtotalCents += line.UnitPriceCents * line.Quantity
		t.DepositSubtotalCents += line.UnitDepositCents * line.Quantity
	}
	t.GrandTotalCents = t.RentalSubtotalCents + t.DepositSubtotalCents
	return t
}

// LineItems flattens the cart into payable gateway line items: up to two
// per cart line, one for the rental charge and one for the refundable
// deposit. Zero-amount items are omitted, so a cart of free tools with no
// deposits yields an empty slice.
func (c *Cart) LineItems() []LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]LineItem, 0, 2*len(c.order))
	for _, k := range c.order {
		line := c.lines[k]
		if line.UnitPriceCents > 0 {
			items = append(items, LineItem{
				Name:        line.Name,
				AmountCents: line.UnitPriceCents,
				Quantity:    line.Quantity,
			})
		}
		if line.UnitDepositCents > 0 {
			items = append(items, LineItem{
				Name:        line.Name + " – Refundable deposit",
				AmountCents: line.UnitDepositCents,
				Quantity:    line.Quantity,
			})
		}
	}
	return items
}
