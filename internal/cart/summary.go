package cart

import (
	"context"
	"time"
)

// OrderSummary holds the visible order summary and the value of the hidden
// order_details form field.
type OrderSummary struct {
	Display string `json:"display"`
	Field   string `json:"field"`
}

// SummaryOf renders both values from a cart snapshot.
func SummaryOf(c Cart, l Labels) OrderSummary {
	text := Render(c, l)
	return OrderSummary{Display: text, Field: text}
}

// Summary renders the summary from the persisted cart. It runs on page
// load and whenever the order page becomes visible again.
func (s *Store) Summary(ctx context.Context, l Labels) OrderSummary {
	return SummaryOf(s.Load(ctx), l)
}

// PrepareSubmission refreshes the summary right before the order form is
// handed off and stamps the submission time onto the field only.
func (s *Store) PrepareSubmission(ctx context.Context, l Labels, now time.Time) OrderSummary {
	sum := s.Summary(ctx, l)
	sum.Field = AppendTimestamp(sum.Field, l, now)
	return sum
}

// AppendTimestamp adds "\n\n<label>: <time>" to an order field value.
func AppendTimestamp(field string, l Labels, now time.Time) string {
	return field + "\n\n" + l.TimestampLabel + ": " + l.FormatTimestamp(now)
}
