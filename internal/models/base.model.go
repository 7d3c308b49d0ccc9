package models

import (
	"time"
)

type BaseModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime"           json:"createdAt,omitzero"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"           json:"updatedAt,omitzero"`
}
