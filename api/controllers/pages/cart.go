package pages

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/shopcart/api/middleware"
	"github.com/angelmondragon/shopcart/api/responses"
	"github.com/angelmondragon/shopcart/api/validators"
	cartsvc "github.com/angelmondragon/shopcart/internal/cart"
)

type cartPage struct {
	page
	View cartsvc.View
}

type confirmPage struct {
	page
	Question string
	Target   string
	Name     string
}

// Cart renders the cart view built from a fresh load of the slot.
func (h *Handlers) Cart(w http.ResponseWriter, r *http.Request) {
	labels := middleware.LabelsFromContext(r.Context())
	c := load(r, h.store(r))
	data := cartPage{
		page: h.page(r, labels.CartTitle, c),
		View: cartsvc.BuildView(c),
	}
	responses.WriteHTML(r.Context(), h.logg, w, http.StatusOK, h.tmpl, "cart.html", data)
}

// LineAction handles the increase, decrease and remove controls of a line.
func (h *Handlers) LineAction(w http.ResponseWriter, r *http.Request) {
	action, ok := cartsvc.ParseAction(chi.URLParam(r, "action"))
	if !ok || action == cartsvc.ActionClear {
		responses.Redirect(w, r, withNotice("/cart", NoticeInvalid))
		return
	}
	index, err := validators.ParseIndexParam(r, "index")
	if err != nil {
		responses.Redirect(w, r, withNotice("/cart", NoticeInvalid))
		return
	}
	h.dispatch(w, r, cartsvc.Binding{Action: action, Index: index})
}

// Clear empties the cart after confirmation.
func (h *Handlers) Clear(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, cartsvc.Binding{Action: cartsvc.ActionClear, Index: -1})
}

// dispatch runs a bound control. When the action needs confirmation and
// the form carries no decision, the confirm page is rendered instead and
// posts back to the same URL with the answer.
func (h *Handlers) dispatch(w http.ResponseWriter, r *http.Request, b cartsvc.Binding) {
	ctx := r.Context()
	store := h.store(r)
	if store == nil {
		responses.Redirect(w, r, withNotice("/cart", NoticeSaveFailed))
		return
	}
	if err := r.ParseForm(); err != nil {
		responses.Redirect(w, r, withNotice("/cart", NoticeInvalid))
		return
	}

	// Line controls post the name they were rendered for; a mismatch means
	// the index now points at a different line.
	current := store.Load(ctx)
	name := validators.SanitizeString(r.PostFormValue("name"), 200)
	if b.Action != cartsvc.ActionClear {
		if !current.Valid(b.Index) || (name != "" && current[b.Index].Name != name) {
			responses.Redirect(w, r, withNotice("/cart", NoticeStale))
			return
		}
		name = current[b.Index].Name
	}

	var confirm cartsvc.Confirmer
	if prompt, needed := cartsvc.NeedsConfirmation(current, b); needed {
		accepted, decided := validators.ParseDecision(r.PostFormValue("confirm"))
		if !decided {
			labels := middleware.LabelsFromContext(ctx)
			data := confirmPage{
				page:     h.page(r, labels.CartTitle, current),
				Question: labels.PromptText(prompt),
				Target:   r.URL.Path,
				Name:     name,
			}
			responses.WriteHTML(ctx, h.logg, w, http.StatusOK, h.tmpl, "confirm.html", data)
			return
		}
		confirm = cartsvc.Decision(accepted)
	}

	if _, _, err := store.Dispatch(ctx, b, confirm); err != nil {
		h.logg.Warn(h.logg.WithFields(ctx, map[string]any{"action": string(b.Action), "index": b.Index}), "cart.action_failed")
		responses.Redirect(w, r, withNotice("/cart", noticeForError(err)))
		return
	}
	responses.Redirect(w, r, "/cart")
}
