package cart

import (
	"errors"
	"math"
	"testing"
)

func TestTotals(t *testing.T) {
	c := Cart{
		{Name: "Pen", Price: 50, Quantity: 2},
		{Name: "Bag", Price: 300, Quantity: 1},
	}
	if got := LineTotal(c[0]); got != 100 {
		t.Fatalf("LineTotal = %d, want 100", got)
	}
	if got := Total(c); got != 400 {
		t.Fatalf("Total = %d, want 400", got)
	}
	if got := Total(nil); got != 0 {
		t.Fatalf("Total(empty) = %d, want 0", got)
	}
	if got := c.Count(); got != 3 {
		t.Fatalf("Count = %d, want 3", got)
	}
}

func TestRender(t *testing.T) {
	c := Cart{
		{Name: "Pen", Price: 50, Quantity: 2},
		{Name: "Bag", Price: 300, Quantity: 1},
	}

	want := "1. Pen — 50 ден x 2 = 100 ден\n" +
		"2. Bag — 300 ден x 1 = 300 ден\n" +
		"---------------------------\n" +
		"Вкупно: 400 ден"
	if got := Render(c, LabelsFor("mk")); got != want {
		t.Fatalf("Render mk:\n%s\nwant:\n%s", got, want)
	}

	wantEN := "1. Pen — 50 MKD x 2 = 100 MKD\n" +
		"2. Bag — 300 MKD x 1 = 300 MKD\n" +
		"---------------------------\n" +
		"Total: 400 MKD"
	if got := Render(c, LabelsFor("en")); got != wantEN {
		t.Fatalf("Render en:\n%s\nwant:\n%s", got, wantEN)
	}
}

func TestRenderEmpty(t *testing.T) {
	if got := Render(Cart{}, LabelsFor("mk")); got != "Кошничката е празна." {
		t.Fatalf("unexpected empty render %q", got)
	}
}

func TestWithoutKeepsOrder(t *testing.T) {
	c := Cart{{Name: "A", Quantity: 1}, {Name: "B", Quantity: 1}, {Name: "C", Quantity: 1}}
	got := c.Without(1)
	if len(got) != 2 || got[0].Name != "A" || got[1].Name != "C" {
		t.Fatalf("unexpected result %+v", got)
	}
	if len(c) != 3 || c[1].Name != "B" {
		t.Fatalf("Without mutated its receiver: %+v", c)
	}
	if same := c.Without(7); len(same) != 3 {
		t.Fatalf("out of range Without should copy, got %+v", same)
	}
}

func TestCheckedTotal(t *testing.T) {
	got, err := CheckedTotal(Cart{{Name: "Pen", Price: 50, Quantity: 2}, {Name: "Bag", Price: 300, Quantity: 1}})
	if err != nil || got != 400 {
		t.Fatalf("CheckedTotal = %d, %v; want 400", got, err)
	}

	line := Cart{{Name: "TV", Price: math.MaxInt/2 + 1, Quantity: 2}}
	if _, err := CheckedTotal(line); !errors.Is(err, ErrTotalOverflow) {
		t.Fatalf("expected line overflow, got %v", err)
	}

	sum := Cart{
		{Name: "TV", Price: math.MaxInt / 2, Quantity: 1},
		{Name: "Radio", Price: math.MaxInt / 2, Quantity: 1},
		{Name: "Pen", Price: 2, Quantity: 1},
	}
	if _, err := CheckedTotal(sum); !errors.Is(err, ErrTotalOverflow) {
		t.Fatalf("expected sum overflow, got %v", err)
	}
}
