package cart

import "context"

// Prompt identifies one of the destructive actions that need a yes/no
// decision from the visitor before they run.
type Prompt string

const (
	PromptClear           Prompt = "clear"
	PromptRemove          Prompt = "remove"
	PromptDecrementToZero Prompt = "decrement_to_zero"
)

// Confirmer answers a confirmation prompt. A nil Confirmer declines.
type Confirmer interface {
	Confirm(ctx context.Context, p Prompt) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, p Prompt) bool

func (f ConfirmFunc) Confirm(ctx context.Context, p Prompt) bool {
	if f == nil {
		return false
	}
	return f(ctx, p)
}

// Decision is a fixed answer, usually parsed from a submitted form.
type Decision bool

const (
	Accept  Decision = true
	Decline Decision = false
)

func (d Decision) Confirm(context.Context, Prompt) bool {
	return bool(d)
}

func confirmed(ctx context.Context, c Confirmer, p Prompt) bool {
	if c == nil {
		return false
	}
	return c.Confirm(ctx, p)
}
