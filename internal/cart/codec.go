package cart

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// record mirrors the persisted JSON shape. Quantity is a pointer so a
// missing field can be told apart from an explicit zero.
type record struct {
	Name     string `json:"name" validate:"required"`
	Price    int    `json:"price" validate:"gte=0,lte=1000000000"`
	Quantity *int   `json:"quantity" validate:"omitempty,gte=1"`
	Image    string `json:"image"`
}

// Decode parses a persisted slot value. An empty value or JSON null is an
// empty cart; anything that is not an array of well-formed line items with
// unique names is rejected as a whole.
func Decode(raw string) (Cart, error) {
	if strings.TrimSpace(raw) == "" {
		return Cart{}, nil
	}

	var records []record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}

	out := make(Cart, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i := range records {
		rec := records[i]
		if err := validate.Struct(&rec); err != nil {
			return nil, fmt.Errorf("decode cart item %d: %w", i, err)
		}
		if _, dup := seen[rec.Name]; dup {
			return nil, fmt.Errorf("decode cart: duplicate item %q", rec.Name)
		}
		seen[rec.Name] = struct{}{}

		qty := 1
		if rec.Quantity != nil {
			qty = *rec.Quantity
		}
		out = append(out, LineItem{Name: rec.Name, Price: rec.Price, Quantity: qty, Image: rec.Image})
	}
	if _, err := CheckedTotal(out); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return out, nil
}

// Encode serializes a cart for the slot, refusing carts that break the
// one-item-per-name and quantity >= 1 invariants or whose totals overflow.
func Encode(c Cart) (string, error) {
	seen := make(map[string]struct{}, len(c))
	for i, item := range c {
		if item.Name == "" {
			return "", fmt.Errorf("encode cart item %d: name is required", i)
		}
		if item.Quantity < 1 {
			return "", fmt.Errorf("encode cart item %q: quantity %d below 1", item.Name, item.Quantity)
		}
		if item.Price < 0 || item.Price > MaxPrice {
			return "", fmt.Errorf("encode cart item %q: price %d out of range", item.Name, item.Price)
		}
		if _, dup := seen[item.Name]; dup {
			return "", fmt.Errorf("encode cart: duplicate item %q", item.Name)
		}
		seen[item.Name] = struct{}{}
	}
	if _, err := CheckedTotal(c); err != nil {
		return "", fmt.Errorf("encode cart: %w", err)
	}
	if c == nil {
		c = Cart{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode cart: %w", err)
	}
	return string(data), nil
}
