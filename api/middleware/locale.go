package middleware

import (
	"context"
	"net/http"

	"github.com/angelmondragon/shopcart/internal/cart"
)

const ctxLabels contextKey = "labels"

// Locale negotiates the label set from Accept-Language, falling back to
// the configured locale.
func Locale(fallback string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			labels := cart.Negotiate(r.Header.Get("Accept-Language"), fallback)
			w.Header().Set("Content-Language", labels.Locale)
			next.ServeHTTP(w, r.WithContext(WithLabels(r.Context(), labels)))
		})
	}
}

// WithLabels injects the visitor's label set into the context.
func WithLabels(ctx context.Context, l cart.Labels) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxLabels, l)
}

// LabelsFromContext returns the negotiated labels, or the default set.
func LabelsFromContext(ctx context.Context) cart.Labels {
	if ctx != nil {
		if l, ok := ctx.Value(ctxLabels).(cart.Labels); ok {
			return l
		}
	}
	return cart.LabelsFor("")
}
