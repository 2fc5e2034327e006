package models

import "time"

// CartSlot is one persisted cart: the serialized line items under a slot key.
type CartSlot struct {
	Key       string    `gorm:"column:slot_key;type:varchar(255);primaryKey"`
	Payload   string    `gorm:"column:payload;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime:false"`
}

func (CartSlot) TableName() string {
	return "cart_slots"
}
