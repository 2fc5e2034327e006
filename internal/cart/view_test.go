package cart

import (
	"context"
	"errors"
	"testing"

	pkgerrors "github.com/angelmondragon/shopcart/pkg/errors"
)

func TestBuildViewEmpty(t *testing.T) {
	v := BuildView(nil)
	if !v.Empty || v.Total != 0 || v.Lines == nil || len(v.Lines) != 0 {
		t.Fatalf("unexpected empty view %+v", v)
	}
	if got := v.Bindings(); len(got) != 0 {
		t.Fatalf("empty view must expose no controls, got %v", got)
	}
}

func TestBuildView(t *testing.T) {
	c := Cart{
		{Name: "Pen", Price: 50, Quantity: 2, Image: "pen.png"},
		{Name: "Bag", Price: 300, Quantity: 1},
	}
	v := BuildView(c)
	if v.Empty || v.Total != 400 || len(v.Lines) != 2 {
		t.Fatalf("unexpected view %+v", v)
	}
	first := v.Lines[0]
	if first.Position != 1 || first.Index != 0 || first.LineTotal != 100 || first.Image != "pen.png" {
		t.Fatalf("unexpected first line %+v", first)
	}
	if len(first.Controls) != 3 ||
		first.Controls[0] != (Binding{ActionDecrease, 0}) ||
		first.Controls[1] != (Binding{ActionIncrease, 0}) ||
		first.Controls[2] != (Binding{ActionRemove, 0}) {
		t.Fatalf("unexpected controls %+v", first.Controls)
	}
	if v.Lines[1].Controls[2] != (Binding{ActionRemove, 1}) {
		t.Fatalf("second line bound to wrong index: %+v", v.Lines[1].Controls)
	}
	if b, ok := v.Lines[1].Control(ActionIncrease); !ok || b != (Binding{ActionIncrease, 1}) {
		t.Fatalf("Control(increase) = %+v, %v", b, ok)
	}
	if _, ok := first.Control(ActionClear); ok {
		t.Fatal("lines must not carry the clear control")
	}
	bindings := v.Bindings()
	if len(bindings) != 7 || bindings[6] != (Binding{ActionClear, -1}) {
		t.Fatalf("unexpected bindings %+v", bindings)
	}
}

func TestParseAction(t *testing.T) {
	for _, v := range []string{"increase", "decrease", "remove", "clear"} {
		if a, ok := ParseAction(v); !ok || string(a) != v {
			t.Fatalf("ParseAction(%q) = %q, %v", v, a, ok)
		}
	}
	if _, ok := ParseAction("explode"); ok {
		t.Fatal("unknown action accepted")
	}
}

func TestNeedsConfirmation(t *testing.T) {
	c := Cart{{Name: "Pen", Quantity: 1}, {Name: "Bag", Quantity: 3}}
	tests := []struct {
		binding Binding
		prompt  Prompt
		needs   bool
	}{
		{Binding{ActionClear, -1}, PromptClear, true},
		{Binding{ActionRemove, 1}, PromptRemove, true},
		{Binding{ActionRemove, 5}, PromptRemove, false},
		{Binding{ActionDecrease, 0}, PromptDecrementToZero, true},
		{Binding{ActionDecrease, 1}, "", false},
		{Binding{ActionIncrease, 0}, "", false},
	}
	for _, tc := range tests {
		p, ok := NeedsConfirmation(c, tc.binding)
		if ok != tc.needs || (ok && p != tc.prompt) {
			t.Fatalf("NeedsConfirmation(%+v) = %q, %v; want %q, %v", tc.binding, p, ok, tc.prompt, tc.needs)
		}
	}
}

func TestDispatch(t *testing.T) {
	ctx := context.Background()
	s, slot, _ := newTestStore(t)
	seed(t, slot, testKey, Cart{{Name: "Pen", Price: 50, Quantity: 1}, {Name: "Bag", Price: 300, Quantity: 1}})

	v, out, err := s.Dispatch(ctx, Binding{ActionIncrease, 1}, nil)
	if err != nil || out != OutcomeIncremented {
		t.Fatalf("increase = %v, %v", out, err)
	}
	if v.Lines[1].Quantity != 2 || v.Total != 650 {
		t.Fatalf("view not rebuilt: %+v", v)
	}

	v, out, err = s.Dispatch(ctx, Binding{ActionRemove, 0}, Accept)
	if err != nil || out != OutcomeRemoved {
		t.Fatalf("remove = %v, %v", out, err)
	}
	if len(v.Lines) != 1 || v.Lines[0].Name != "Bag" || v.Lines[0].Index != 0 {
		t.Fatalf("positions must be rebound after removal: %+v", v.Lines)
	}

	v, _, err = s.Dispatch(ctx, Binding{ActionDecrease, 3}, Accept)
	if !errors.Is(err, ErrLineNotFound) {
		t.Fatalf("stale binding err = %v", err)
	}
	if len(v.Lines) != 1 {
		t.Fatal("view must still be returned on error")
	}

	_, _, err = s.Dispatch(ctx, Binding{Action: "explode"}, nil)
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("unknown action err = %v", err)
	}

	v, out, err = s.Dispatch(ctx, Binding{ActionClear, -1}, Accept)
	if err != nil || out != OutcomeCleared || !v.Empty {
		t.Fatalf("clear = %+v, %v, %v", v, out, err)
	}
}
