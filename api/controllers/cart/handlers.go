package cart

import (
	"net/http"

	cartdto "github.com/angelmondragon/shopcart/api/controllers/cart/dto"
	"github.com/angelmondragon/shopcart/api/middleware"
	"github.com/angelmondragon/shopcart/api/responses"
	"github.com/angelmondragon/shopcart/api/validators"
	"github.com/angelmondragon/shopcart/internal/catalog"
	cartsvc "github.com/angelmondragon/shopcart/internal/cart"
	pkgerrors "github.com/angelmondragon/shopcart/pkg/errors"
	"github.com/angelmondragon/shopcart/pkg/logger"
)

// StoreProvider resolves the cart store of a visitor session.
type StoreProvider interface {
	Store(sessionID string) *cartsvc.Store
}

// ProductLookup resolves catalog products by name.
type ProductLookup interface {
	Lookup(name string) (catalog.Product, bool)
}

// CartFetch returns the visitor's cart.
func CartFetch(stores StoreProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := storeFor(r, stores)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		labels := middleware.LabelsFromContext(r.Context())
		responses.WriteSuccess(w, cartdto.NewCart(store.Load(r.Context()), labels))
	}
}

// CartAddItem adds one unit of a product, merging by name.
func CartAddItem(stores StoreProvider, products ProductLookup, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := storeFor(r, stores)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartdto.AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		name, price, image := resolveProduct(products, payload)

		if err := store.AddOrIncrement(r.Context(), name, price, image); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		labels := middleware.LabelsFromContext(r.Context())
		responses.WriteSuccessStatus(w, http.StatusCreated, cartdto.NewCart(store.Load(r.Context()), labels))
	}
}

// CartLineAction applies increase, decrease or remove to the line at {index}.
func CartLineAction(stores StoreProvider, action cartsvc.Action, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, err := validators.ParseIndexParam(r, "index")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dispatch(w, r, stores, cartsvc.Binding{Action: action, Index: index}, logg)
	}
}

// CartClear empties the cart once confirmed.
func CartClear(stores StoreProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dispatch(w, r, stores, cartsvc.Binding{Action: cartsvc.ActionClear, Index: -1}, logg)
	}
}

// CartSummary returns the order summary text and the order field value.
func CartSummary(stores StoreProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := storeFor(r, stores)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, store.Summary(r.Context(), middleware.LabelsFromContext(r.Context())))
	}
}

func dispatch(w http.ResponseWriter, r *http.Request, stores StoreProvider, binding cartsvc.Binding, logg *logger.Logger) {
	ctx := r.Context()
	store, err := storeFor(r, stores)
	if err != nil {
		responses.WriteError(ctx, logg, w, err)
		return
	}

	var payload cartdto.ConfirmRequest
	if err := validators.DecodeOptionalJSONBody(r, &payload); err != nil {
		responses.WriteError(ctx, logg, w, err)
		return
	}

	labels := middleware.LabelsFromContext(ctx)
	current := store.Load(ctx)
	if !current.Valid(binding.Index) && binding.Action != cartsvc.ActionClear {
		responses.WriteError(ctx, logg, w, cartsvc.ErrLineNotFound)
		return
	}

	var confirm cartsvc.Confirmer
	if prompt, needed := cartsvc.NeedsConfirmation(current, binding); needed {
		if payload.Confirm == nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeStateConflict, "confirmation required").
					WithDetails(cartdto.ConfirmationRequired{Prompt: prompt, Question: labels.PromptText(prompt)}))
			return
		}
		confirm = cartsvc.Decision(*payload.Confirm)
	}

	_, outcome, err := store.Dispatch(ctx, binding, confirm)
	if err != nil {
		responses.WriteError(ctx, logg, w, err)
		return
	}
	responses.WriteSuccess(w, cartdto.Mutation{
		Outcome: outcome,
		Cart:    cartdto.NewCart(store.Load(ctx), labels),
	})
}

func storeFor(r *http.Request, stores StoreProvider) (*cartsvc.Store, error) {
	if stores == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable")
	}
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "missing visitor session")
	}
	return stores.Store(sessionID), nil
}

// resolveProduct prefers catalog data over client supplied price and image.
func resolveProduct(products ProductLookup, req cartdto.AddItemRequest) (string, int, string) {
	name := validators.SanitizeString(req.Name, 200)
	if products != nil {
		if p, ok := products.Lookup(name); ok {
			return p.Name, p.Price, p.Image
		}
	}
	return name, req.Price, validators.SanitizeString(req.Image, 2048)
}
