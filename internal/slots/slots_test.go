package slots

import (
	"context"
	"errors"
	"testing"

	"github.com/angelmondragon/shopcart/internal/cart"
	"github.com/angelmondragon/shopcart/pkg/config"
	"github.com/angelmondragon/shopcart/pkg/logger"
)

// exerciseSlot runs the read/write/delete contract every backend honours.
func exerciseSlot(t *testing.T, slot cart.Slot) {
	t.Helper()
	ctx := context.Background()

	if _, err := slot.Read(ctx, "cart:a"); !errors.Is(err, cart.ErrSlotEmpty) {
		t.Fatalf("expected ErrSlotEmpty for missing key, got %v", err)
	}

	if err := slot.Write(ctx, "cart:a", `[{"name":"Pen","price":100,"quantity":1}]`); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := slot.Read(ctx, "cart:a")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != `[{"name":"Pen","price":100,"quantity":1}]` {
		t.Fatalf("unexpected payload %q", got)
	}

	if err := slot.Write(ctx, "cart:a", "[]"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if got, _ := slot.Read(ctx, "cart:a"); got != "[]" {
		t.Fatalf("expected overwrite to replace payload, got %q", got)
	}

	if err := slot.Write(ctx, "cart:b", "other"); err != nil {
		t.Fatalf("write second key: %v", err)
	}

	if err := slot.Delete(ctx, "cart:a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := slot.Read(ctx, "cart:a"); !errors.Is(err, cart.ErrSlotEmpty) {
		t.Fatalf("expected ErrSlotEmpty after delete, got %v", err)
	}
	if got, _ := slot.Read(ctx, "cart:b"); got != "other" {
		t.Fatalf("delete touched another key: %q", got)
	}
	if err := slot.Delete(ctx, "cart:missing"); err != nil {
		t.Fatalf("deleting a missing key should succeed: %v", err)
	}
}

func TestMemorySlot(t *testing.T) {
	exerciseSlot(t, NewMemory())
}

func TestMemorySlotBacksCartStore(t *testing.T) {
	ctx := context.Background()
	slot := NewMemory()
	manager, err := cart.NewManager(cart.ManagerParams{Slot: slot})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}

	a := manager.Store("session-a")
	b := manager.Store("session-b")
	if err := a.AddOrIncrement(ctx, "Pen", 100, ""); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := b.Load(ctx); len(got) != 0 {
		t.Fatalf("sessions must not share carts, got %v", got)
	}
	raw, err := slot.Read(ctx, "cart:session-a")
	if err != nil {
		t.Fatalf("read slot: %v", err)
	}
	if raw != `[{"name":"Pen","price":100,"quantity":1}]` {
		t.Fatalf("unexpected serialized cart %q", raw)
	}
}

func TestOpenMemoryBackend(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: " Memory "}}
	backend, closeFn, err := Open(context.Background(), cfg, logger.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, ok := backend.(*Memory); !ok {
		t.Fatalf("expected memory backend, got %T", backend)
	}
	if err := closeFn(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestOpenSQLiteRunsMigrations(t *testing.T) {
	cfg := &config.Config{
		Storage: config.StorageConfig{Driver: config.DriverSQLite, AutoMigrate: true},
		DB:      config.DBConfig{DSN: "file:open_test?mode=memory&cache=shared", MaxOpenConns: 1},
	}
	backend, closeFn, err := Open(context.Background(), cfg, logger.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer closeFn(context.Background())
	exerciseSlot(t, backend)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: "etcd"}}
	if _, _, err := Open(context.Background(), cfg, logger.Nop()); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
