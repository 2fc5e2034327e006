package slots

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/shopcart/pkg/config"
	"github.com/angelmondragon/shopcart/pkg/db"
	"github.com/angelmondragon/shopcart/pkg/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newSQLSlot(t *testing.T) (*SQL, *gorm.DB) {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	conn, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.CartSlot{}))
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return NewSQL(db.Wrap(conn, config.DriverSQLite)), conn
}

func TestSQLSlot(t *testing.T) {
	slot, _ := newSQLSlot(t)
	exerciseSlot(t, slot)
}

func TestSQLSlotUpsertRefreshesTimestamp(t *testing.T) {
	slot, conn := newSQLSlot(t)
	ctx := context.Background()

	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	slot.now = func() time.Time { return first }
	require.NoError(t, slot.Write(ctx, "cart:t", "[]"))

	second := first.Add(time.Hour)
	slot.now = func() time.Time { return second }
	require.NoError(t, slot.Write(ctx, "cart:t", `[{"name":"Bag","price":200,"quantity":1}]`))

	var rows []models.CartSlot
	require.NoError(t, conn.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, `[{"name":"Bag","price":200,"quantity":1}]`, rows[0].Payload)
	assert.True(t, rows[0].UpdatedAt.Equal(second), "updated_at = %v", rows[0].UpdatedAt)
}

func TestSQLSlotPing(t *testing.T) {
	slot, _ := newSQLSlot(t)
	assert.NoError(t, slot.Ping(context.Background()))
}

func TestSQLSlotPurgeOlderThan(t *testing.T) {
	slot, conn := newSQLSlot(t)
	ctx := context.Background()
	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	slot.now = func() time.Time { return base }
	require.NoError(t, slot.Write(ctx, "cart:old", "[]"))
	slot.now = func() time.Time { return base.Add(72 * time.Hour) }
	require.NoError(t, slot.Write(ctx, "cart:fresh", "[]"))

	n, err := slot.PurgeOlderThan(ctx, base.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var keys []string
	require.NoError(t, conn.Model(&models.CartSlot{}).Pluck("slot_key", &keys).Error)
	assert.Equal(t, []string{"cart:fresh"}, keys)
}
