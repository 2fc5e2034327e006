package cart

import (
	"context"
	"sync"
)

type fakeSlot struct {
	mu        sync.Mutex
	data      map[string]string
	writes    int
	failWrite error
	failRead  error
	failDel   error
}

func newFakeSlot() *fakeSlot {
	return &fakeSlot{data: map[string]string{}}
}

func (f *fakeSlot) Read(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRead != nil {
		return "", f.failRead
	}
	v, ok := f.data[key]
	if !ok {
		return "", ErrSlotEmpty
	}
	return v, nil
}

func (f *fakeSlot) Write(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrite != nil {
		return f.failWrite
	}
	f.writes++
	f.data[key] = value
	return nil
}

func (f *fakeSlot) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDel != nil {
		return f.failDel
	}
	delete(f.data, key)
	return nil
}

type recordedEvent struct {
	action  string
	outcome string
}

type fakeRecorder struct {
	mu         sync.Mutex
	mutations  []recordedEvent
	slotErrors []string
}

func (r *fakeRecorder) ObserveMutation(action, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mutations = append(r.mutations, recordedEvent{action, outcome})
}

func (r *fakeRecorder) ObserveSlotError(op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slotErrors = append(r.slotErrors, op)
}

// seed writes a cart straight into the slot.
func seed(t interface{ Fatalf(string, ...any) }, slot *fakeSlot, key string, c Cart) {
	raw, err := Encode(c)
	if err != nil {
		t.Fatalf("encode seed: %v", err)
	}
	slot.data[key] = raw
}
