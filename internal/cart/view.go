package cart

import (
	"context"

	pkgerrors "github.com/angelmondragon/shopcart/pkg/errors"
)

// Action is a control a visitor can trigger on the cart view.
type Action string

const (
	ActionIncrease Action = "increase"
	ActionDecrease Action = "decrease"
	ActionRemove   Action = "remove"
	ActionClear    Action = "clear"
)

// ParseAction maps a route or form value onto an Action.
func ParseAction(v string) (Action, bool) {
	switch a := Action(v); a {
	case ActionIncrease, ActionDecrease, ActionRemove, ActionClear:
		return a, true
	}
	return "", false
}

// Binding ties a control to the line position it was rendered for.
// Clear is not tied to a line and uses index -1.
type Binding struct {
	Action Action `json:"action"`
	Index  int    `json:"index"`
}

// LineView is one rendered cart line.
type LineView struct {
	Position  int       `json:"position"`
	Index     int       `json:"index"`
	Name      string    `json:"name"`
	Image     string    `json:"image,omitempty"`
	Price     int       `json:"price"`
	Quantity  int       `json:"quantity"`
	LineTotal int       `json:"line_total"`
	Controls  []Binding `json:"controls"`
}

// Control returns the line's binding for a, or false when the line has none.
func (l LineView) Control(a Action) (Binding, bool) {
	for _, b := range l.Controls {
		if b.Action == a {
			return b, true
		}
	}
	return Binding{}, false
}

// View is the cart page model, a pure function of the persisted cart.
type View struct {
	Empty bool       `json:"empty"`
	Lines []LineView `json:"lines"`
	Total int        `json:"total"`
	Clear Binding    `json:"clear"`
}

// BuildView renders the cart into lines with controls bound to the
// current positions. Positions shift after removals, so a view is only
// valid for the cart it was built from.
func BuildView(c Cart) View {
	v := View{Clear: Binding{Action: ActionClear, Index: -1}}
	if len(c) == 0 {
		v.Empty = true
		v.Lines = []LineView{}
		return v
	}
	v.Lines = make([]LineView, 0, len(c))
	for i, item := range c {
		v.Lines = append(v.Lines, LineView{
			Position:  i + 1,
			Index:     i,
			Name:      item.Name,
			Image:     item.Image,
			Price:     item.Price,
			Quantity:  item.Quantity,
			LineTotal: LineTotal(item),
			Controls: []Binding{
				{Action: ActionDecrease, Index: i},
				{Action: ActionIncrease, Index: i},
				{Action: ActionRemove, Index: i},
			},
		})
	}
	v.Total = Total(c)
	return v
}

// Bindings flattens every control of the view.
func (v View) Bindings() []Binding {
	out := make([]Binding, 0, len(v.Lines)*3+1)
	for _, line := range v.Lines {
		out = append(out, line.Controls...)
	}
	if !v.Empty {
		out = append(out, v.Clear)
	}
	return out
}

// NeedsConfirmation reports whether dispatching b against c will ask a
// question, and which one.
func NeedsConfirmation(c Cart, b Binding) (Prompt, bool) {
	switch b.Action {
	case ActionClear:
		return PromptClear, true
	case ActionRemove:
		return PromptRemove, c.Valid(b.Index)
	case ActionDecrease:
		if c.Valid(b.Index) && c[b.Index].Quantity <= 1 {
			return PromptDecrementToZero, true
		}
	}
	return "", false
}

// Dispatch applies a bound control and returns the view rebuilt from the
// slot. The view is returned on error too so the page can still render.
func (s *Store) Dispatch(ctx context.Context, b Binding, confirm Confirmer) (View, Outcome, error) {
	var (
		outcome Outcome
		err     error
	)
	switch b.Action {
	case ActionIncrease:
		outcome, err = s.Increment(ctx, b.Index)
	case ActionDecrease:
		outcome, err = s.Decrement(ctx, b.Index, confirm)
	case ActionRemove:
		outcome, err = s.Remove(ctx, b.Index, confirm)
	case ActionClear:
		outcome, err = s.Clear(ctx, confirm)
	default:
		outcome, err = OutcomeUnchanged, pkgerrors.New(pkgerrors.CodeValidation, "unknown cart action")
	}
	return BuildView(s.Load(ctx)), outcome, err
}
