package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/angelmondragon/shopcart/pkg/errors"
	"github.com/angelmondragon/shopcart/pkg/logger"
)

// ErrSlotEmpty is returned by a Slot when the key holds no value.
var ErrSlotEmpty = errors.New("cart slot empty")

// ErrLineNotFound is returned when a binding points past the end of the
// cart, typically because another page changed it since the last render.
var ErrLineNotFound = pkgerrors.New(pkgerrors.CodeNotFound, "line item not found")

// Slot is the persisted key-value location holding serialized carts.
// Consumers define this interface; internal/slots provides backends.
type Slot interface {
	Read(ctx context.Context, key string) (string, error)
	Write(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Recorder receives mutation and slot failure events, usually Prometheus counters.
type Recorder interface {
	ObserveMutation(action, outcome string)
	ObserveSlotError(op string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveMutation(string, string) {}
func (nopRecorder) ObserveSlotError(string)        {}

// Outcome describes what a mutation did to the cart.
type Outcome string

const (
	OutcomeAdded       Outcome = "added"
	OutcomeIncremented Outcome = "incremented"
	OutcomeDecremented Outcome = "decremented"
	OutcomeUnchanged   Outcome = "unchanged"
	OutcomeRemoved     Outcome = "removed"
	OutcomeResetToOne  Outcome = "reset_to_one"
	OutcomeDeclined    Outcome = "declined"
	OutcomeCleared     Outcome = "cleared"
	OutcomeFailed      Outcome = "failed"
)

// ManagerParams wires a Manager.
type ManagerParams struct {
	Slot     Slot
	SlotName string
	Logger   *logger.Logger
	Recorder Recorder
}

// Manager hands out a Store per visitor session. All stores share the
// same backend; each one owns a single key in it.
type Manager struct {
	slot     Slot
	slotName string
	logg     *logger.Logger
	recorder Recorder
}

func NewManager(p ManagerParams) (*Manager, error) {
	if p.Slot == nil {
		return nil, fmt.Errorf("cart slot required")
	}
	name := strings.TrimSpace(p.SlotName)
	if name == "" {
		name = "cart"
	}
	logg := p.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	var rec Recorder = nopRecorder{}
	if p.Recorder != nil {
		rec = p.Recorder
	}
	return &Manager{slot: p.Slot, slotName: name, logg: logg, recorder: rec}, nil
}

// SlotKey names the slot for a session, e.g. "cart:3f1c…".
func (m *Manager) SlotKey(sessionID string) string {
	return m.slotName + ":" + sessionID
}

// Store returns the cart store bound to the session's slot.
func (m *Manager) Store(sessionID string) *Store {
	return &Store{
		slot:     m.slot,
		key:      m.SlotKey(sessionID),
		logg:     m.logg,
		recorder: m.recorder,
	}
}

// Store owns one persisted cart. It keeps no copy of its own: every read
// goes back to the slot.
type Store struct {
	slot     Slot
	key      string
	logg     *logger.Logger
	recorder Recorder
}

// NewStore binds a store to an explicit slot key.
func NewStore(slot Slot, key string) *Store {
	return &Store{slot: slot, key: key, logg: logger.Nop(), recorder: nopRecorder{}}
}

// Key returns the slot key this store reads and writes.
func (s *Store) Key() string {
	return s.key
}

// Load reads and decodes the persisted cart. Absent, corrupt and
// unreadable values all come back as an empty cart.
func (s *Store) Load(ctx context.Context) Cart {
	raw, err := s.slot.Read(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ErrSlotEmpty) {
			s.recorder.ObserveSlotError("read")
			s.logg.Warn(s.logg.WithFields(ctx, map[string]any{"slot_key": s.key, "error": err.Error()}), "cart.slot.read_failed")
		}
		return Cart{}
	}
	c, err := Decode(raw)
	if err != nil {
		s.logg.Debug(s.logg.WithFields(ctx, map[string]any{"slot_key": s.key, "error": err.Error()}), "cart.slot.corrupt")
		return Cart{}
	}
	return c
}

// Save replaces the persisted cart with c.
func (s *Store) Save(ctx context.Context, c Cart) error {
	raw, err := Encode(c)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cart")
	}
	if err := s.slot.Write(ctx, s.key, raw); err != nil {
		s.recorder.ObserveSlotError("write")
		s.logg.Error(s.logg.WithField(ctx, "slot_key", s.key), "cart.slot.write_failed", err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "could not save cart")
	}
	return nil
}

// AddOrIncrement adds one unit of the named product. An existing line
// keeps its original price and image.
func (s *Store) AddOrIncrement(ctx context.Context, name string, price int, image string) error {
	if name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if price < 0 || price > MaxPrice {
		return pkgerrors.New(pkgerrors.CodeValidation, "price out of range").
			WithDetails(map[string]any{"price": price, "max": MaxPrice})
	}
	c := s.Load(ctx)
	outcome := OutcomeAdded
	if i := c.IndexOf(name); i >= 0 {
		c[i].Quantity++
		outcome = OutcomeIncremented
	} else {
		c = append(c, LineItem{Name: name, Price: price, Quantity: 1, Image: image})
	}
	if err := s.Save(ctx, c); err != nil {
		s.recorder.ObserveMutation("add", string(OutcomeFailed))
		return err
	}
	s.recorder.ObserveMutation("add", string(outcome))
	return nil
}

// SetQuantity sets the quantity of the line at index. A quantity of zero
// or less asks PromptDecrementToZero: on yes the line is removed, on no it
// is pinned to 1.
func (s *Store) SetQuantity(ctx context.Context, index, quantity int, confirm Confirmer) (Outcome, error) {
	c := s.Load(ctx)
	if !c.Valid(index) {
		return OutcomeUnchanged, ErrLineNotFound
	}

	current := c[index].Quantity
	var outcome Outcome
	switch {
	case quantity <= 0:
		if confirmed(ctx, confirm, PromptDecrementToZero) {
			c = c.Without(index)
			outcome = OutcomeRemoved
		} else {
			c[index].Quantity = 1
			outcome = OutcomeResetToOne
		}
	case quantity > current:
		c[index].Quantity = quantity
		outcome = OutcomeIncremented
	case quantity < current:
		c[index].Quantity = quantity
		outcome = OutcomeDecremented
	default:
		return OutcomeUnchanged, nil
	}

	if err := s.Save(ctx, c); err != nil {
		s.recorder.ObserveMutation("set_quantity", string(OutcomeFailed))
		return OutcomeFailed, err
	}
	s.recorder.ObserveMutation("set_quantity", string(outcome))
	return outcome, nil
}

// Increment raises the line's quantity by one.
func (s *Store) Increment(ctx context.Context, index int) (Outcome, error) {
	c := s.Load(ctx)
	if !c.Valid(index) {
		return OutcomeUnchanged, ErrLineNotFound
	}
	return s.SetQuantity(ctx, index, c[index].Quantity+1, nil)
}

// Decrement lowers the line's quantity by one, going through the
// confirm-or-reset rule when it would reach zero.
func (s *Store) Decrement(ctx context.Context, index int, confirm Confirmer) (Outcome, error) {
	c := s.Load(ctx)
	if !c.Valid(index) {
		return OutcomeUnchanged, ErrLineNotFound
	}
	return s.SetQuantity(ctx, index, c[index].Quantity-1, confirm)
}

// Remove deletes the line at index once confirmed. Declining writes nothing.
func (s *Store) Remove(ctx context.Context, index int, confirm Confirmer) (Outcome, error) {
	c := s.Load(ctx)
	if !c.Valid(index) {
		return OutcomeUnchanged, ErrLineNotFound
	}
	if !confirmed(ctx, confirm, PromptRemove) {
		s.recorder.ObserveMutation("remove", string(OutcomeDeclined))
		return OutcomeDeclined, nil
	}
	if err := s.Save(ctx, c.Without(index)); err != nil {
		s.recorder.ObserveMutation("remove", string(OutcomeFailed))
		return OutcomeFailed, err
	}
	s.recorder.ObserveMutation("remove", string(OutcomeRemoved))
	return OutcomeRemoved, nil
}

// Clear empties the cart once confirmed by deleting the slot.
func (s *Store) Clear(ctx context.Context, confirm Confirmer) (Outcome, error) {
	if !confirmed(ctx, confirm, PromptClear) {
		s.recorder.ObserveMutation("clear", string(OutcomeDeclined))
		return OutcomeDeclined, nil
	}
	if err := s.slot.Delete(ctx, s.key); err != nil {
		s.recorder.ObserveSlotError("delete")
		s.recorder.ObserveMutation("clear", string(OutcomeFailed))
		s.logg.Error(s.logg.WithField(ctx, "slot_key", s.key), "cart.slot.delete_failed", err)
		return OutcomeFailed, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "could not save cart")
	}
	s.recorder.ObserveMutation("clear", string(OutcomeCleared))
	return OutcomeCleared, nil
}
