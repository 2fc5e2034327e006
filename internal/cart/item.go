package cart

// LineItem is one product entry in the cart. Name is the merge key.
type LineItem struct {
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
	Image    string `json:"image"`
}

// Cart is the insertion-ordered collection of line items for one visitor.
type Cart []LineItem

// IndexOf returns the position of the item with the given name, or -1.
func (c Cart) IndexOf(name string) int {
	for i, item := range c {
		if item.Name == name {
			return i
		}
	}
	return -1
}

// Valid reports whether index addresses an existing line item.
func (c Cart) Valid(index int) bool {
	return index >= 0 && index < len(c)
}

// Without returns a copy of the cart with the item at index removed,
// keeping the order of the remaining items.
func (c Cart) Without(index int) Cart {
	if !c.Valid(index) {
		return c.Clone()
	}
	out := make(Cart, 0, len(c)-1)
	out = append(out, c[:index]...)
	return append(out, c[index+1:]...)
}

func (c Cart) Clone() Cart {
	if c == nil {
		return Cart{}
	}
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

// Count sums the quantities of every line item.
func (c Cart) Count() int {
	n := 0
	for _, item := range c {
		n += item.Quantity
	}
	return n
}
