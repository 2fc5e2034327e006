package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/angelmondragon/shopcart/pkg/errors"
)

// ParseIndexParam reads a zero-based line index from the route.
func ParseIndexParam(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(chi.URLParam(r, key))
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "line index must be a non-negative integer").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}

// ParseFormInt reads an integer form field, using defaultVal when absent.
func ParseFormInt(r *http.Request, key string, defaultVal int) (int, error) {
	raw := strings.TrimSpace(r.PostFormValue(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "form field must be numeric").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}

// ParseDecision reads an optional yes/no confirmation field. ok is false
// when the request carries no decision at all.
func ParseDecision(raw string) (accepted, ok bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "true", "1", "on":
		return true, true
	case "no", "false", "0", "off":
		return false, true
	}
	return false, false
}
