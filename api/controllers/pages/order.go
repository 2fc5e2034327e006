package pages

import (
	"net/http"

	"github.com/angelmondragon/shopcart/api/middleware"
	"github.com/angelmondragon/shopcart/api/responses"
	"github.com/angelmondragon/shopcart/api/validators"
	cartsvc "github.com/angelmondragon/shopcart/internal/cart"
	pkgerrors "github.com/angelmondragon/shopcart/pkg/errors"
)

// OrderForm is the customer part of the order form.
type OrderForm struct {
	Name    string `form:"name" validate:"required,max=200"`
	Email   string `form:"email" validate:"required,email,max=254"`
	Phone   string `form:"phone" validate:"required,max=40"`
	Address string `form:"address" validate:"required,max=500"`
	Note    string `form:"note" validate:"max=2000"`
}

func orderFormFrom(r *http.Request) OrderForm {
	return OrderForm{
		Name:    validators.SanitizeString(r.PostFormValue("name"), 0),
		Email:   validators.SanitizeString(r.PostFormValue("email"), 0),
		Phone:   validators.SanitizeString(r.PostFormValue("phone"), 0),
		Address: validators.SanitizeString(r.PostFormValue("address"), 0),
		Note:    validators.SanitizeString(r.PostFormValue("note"), 0),
	}
}

type orderPage struct {
	page
	Summary cartsvc.OrderSummary
	Form    OrderForm
	Errors  map[string]string
}

type handoffPage struct {
	Labels  cartsvc.Labels
	Action  string
	Subject string
	Next    string
	Form    OrderForm
	Details string
}

// Order renders the order page with the summary box and the hidden
// order_details field filled from the persisted cart.
func (h *Handlers) Order(w http.ResponseWriter, r *http.Request) {
	h.renderOrder(w, r, http.StatusOK, OrderForm{}, nil)
}

// OrderSummary returns the current summary so the order page can refresh
// itself when it becomes visible again.
func (h *Handlers) OrderSummary(w http.ResponseWriter, r *http.Request) {
	labels := middleware.LabelsFromContext(r.Context())
	responses.WriteSuccess(w, cartsvc.SummaryOf(load(r, h.store(r)), labels))
}

// Submit validates the customer fields, recomputes the order text with a
// timestamp and hands the order off to the external form endpoint.
func (h *Handlers) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		h.renderOrder(w, r, http.StatusBadRequest, OrderForm{}, map[string]string{})
		return
	}
	form := orderFormFrom(r)
	if err := validators.Validate(&form); err != nil {
		fieldErrs, _ := pkgerrors.As(err).Details().(map[string]string)
		if fieldErrs == nil {
			fieldErrs = map[string]string{}
		}
		h.renderOrder(w, r, http.StatusUnprocessableEntity, form, fieldErrs)
		return
	}

	labels := middleware.LabelsFromContext(ctx)
	now := h.now().In(h.loc)
	var summary cartsvc.OrderSummary
	if store := h.store(r); store != nil {
		summary = store.PrepareSubmission(ctx, labels, now)
	} else {
		summary = cartsvc.SummaryOf(cartsvc.Cart{}, labels)
		summary.Field = cartsvc.AppendTimestamp(summary.Field, labels, now)
	}

	h.logg.Info(h.logg.WithField(ctx, "form_action", h.order.FormAction), "order.handoff")
	data := handoffPage{
		Labels:  labels,
		Action:  h.order.FormAction,
		Subject: h.order.Subject,
		Next:    h.order.NextURL,
		Form:    form,
		Details: summary.Field,
	}
	responses.WriteHTML(ctx, h.logg, w, http.StatusOK, h.tmpl, "handoff.html", data)
}

func (h *Handlers) renderOrder(w http.ResponseWriter, r *http.Request, status int, form OrderForm, fieldErrs map[string]string) {
	labels := middleware.LabelsFromContext(r.Context())
	c := load(r, h.store(r))
	data := orderPage{
		page:    h.page(r, labels.OrderTitle, c),
		Summary: cartsvc.SummaryOf(c, labels),
		Form:    form,
		Errors:  fieldErrs,
	}
	if fieldErrs != nil {
		data.Notice = noticeFor(NoticeInvalid, labels)
	}
	responses.WriteHTML(r.Context(), h.logg, w, status, h.tmpl, "order.html", data)
}
