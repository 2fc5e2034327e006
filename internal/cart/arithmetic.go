package cart

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// MaxPrice is the highest unit price a line item may carry.
const MaxPrice = 1_000_000_000

// ErrTotalOverflow is returned when a line total or the cart total does not
// fit in an int.
var ErrTotalOverflow = errors.New("cart total overflows")

// LineTotal is price × quantity.
func LineTotal(item LineItem) int {
	return item.Price * item.Quantity
}

// Total sums LineTotal over the cart; an empty cart totals 0.
func Total(c Cart) int {
	sum := 0
	for _, item := range c {
		sum += LineTotal(item)
	}
	return sum
}

// CheckedTotal is Total with overflow detection on every line and on the sum.
func CheckedTotal(c Cart) (int, error) {
	sum := 0
	for _, item := range c {
		if item.Price < 0 || item.Quantity < 0 {
			return 0, fmt.Errorf("item %q: negative price or quantity", item.Name)
		}
		if item.Quantity > 0 && item.Price > math.MaxInt/item.Quantity {
			return 0, fmt.Errorf("item %q: %w", item.Name, ErrTotalOverflow)
		}
		line := item.Price * item.Quantity
		if sum > math.MaxInt-line {
			return 0, ErrTotalOverflow
		}
		sum += line
	}
	return sum, nil
}

// Render produces the order text submitted with the order form:
//
//	1. Pen — 50 ден x 2 = 100 ден
//	---------------------------
//	Вкупно: 100 ден
//
// An empty cart renders as the single empty-cart sentence.
func Render(c Cart, l Labels) string {
	if len(c) == 0 {
		return l.EmptyCart
	}
	lines := make([]string, 0, len(c)+2)
	for i, item := range c {
		lines = append(lines, fmt.Sprintf("%d. %s — %d %s x %d = %d %s",
			i+1, item.Name, item.Price, l.Currency, item.Quantity, LineTotal(item), l.Currency))
	}
	lines = append(lines, l.Separator)
	lines = append(lines, fmt.Sprintf("%s: %d %s", l.TotalLabel, Total(c), l.Currency))
	return strings.Join(lines, "\n")
}
