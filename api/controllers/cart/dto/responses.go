package cartdto

import cartsvc "github.com/angelmondragon/shopcart/internal/cart"

// Cart is the JSON shape of the visitor's cart.
type Cart struct {
	Items    []cartsvc.LineItem   `json:"items"`
	View     cartsvc.View         `json:"view"`
	Total    int                  `json:"total"`
	Count    int                  `json:"count"`
	Currency string               `json:"currency"`
	Summary  cartsvc.OrderSummary `json:"summary"`
}

// Mutation reports what an action did next to the resulting cart.
type Mutation struct {
	Outcome cartsvc.Outcome `json:"outcome"`
	Cart    Cart            `json:"cart"`
}

// ConfirmationRequired is the error detail sent when an action needs an
// explicit confirm flag.
type ConfirmationRequired struct {
	Prompt   cartsvc.Prompt `json:"prompt"`
	Question string         `json:"question"`
}

// NewCart builds the response from a cart snapshot.
func NewCart(c cartsvc.Cart, l cartsvc.Labels) Cart {
	if c == nil {
		c = cartsvc.Cart{}
	}
	return Cart{
		Items:    c,
		View:     cartsvc.BuildView(c),
		Total:    cartsvc.Total(c),
		Count:    c.Count(),
		Currency: l.Currency,
		Summary:  cartsvc.SummaryOf(c, l),
	}
}
