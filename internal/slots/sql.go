package slots

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/shopcart/internal/cart"
	"github.com/angelmondragon/shopcart/pkg/db"
	"github.com/angelmondragon/shopcart/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQL stores slots as rows of the cart_slots table.
type SQL struct {
	client *db.Client
	now    func() time.Time
}

func NewSQL(client *db.Client) *SQL {
	return &SQL{client: client, now: time.Now}
}

func (s *SQL) Read(ctx context.Context, key string) (string, error) {
	var row models.CartSlot
	err := s.client.DB().WithContext(ctx).
		Where("slot_key = ?", key).
		Take(&row).Error
	if err != nil {
		if db.IsNotFound(err) {
			return "", cart.ErrSlotEmpty
		}
		return "", fmt.Errorf("select cart slot: %w", err)
	}
	return row.Payload, nil
}

func (s *SQL) Write(ctx context.Context, key, value string) error {
	row := models.CartSlot{Key: key, Payload: value, UpdatedAt: s.now().UTC()}
	err := s.client.DB().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slot_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert cart slot: %w", err)
	}
	return nil
}

func (s *SQL) Delete(ctx context.Context, key string) error {
	err := s.client.DB().WithContext(ctx).
		Where("slot_key = ?", key).
		Delete(&models.CartSlot{}).Error
	if err != nil {
		return fmt.Errorf("delete cart slot: %w", err)
	}
	return nil
}

// PurgeOlderThan deletes slots untouched since cutoff.
func (s *SQL) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		res := tx.Where("updated_at < ?", cutoff.UTC()).Delete(&models.CartSlot{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("purge cart slots: %w", err)
	}
	return deleted, nil
}

func (s *SQL) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

var _ cart.Slot = (*SQL)(nil)
