package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Sweet struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	ShopID uint `gorm:"not null;index" json:"shop_id"`
	Shop   Shop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name     string          `gorm:"size:100;not null" json:"name"`
	Category string          `gorm:"size:50;not null" json:"category"`
	Price    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`

	// quantity never goes below zero; the check constraint backs the
	// conditional decrement in the repository.
	Quantity int `gorm:"not null;default:0;check:quantity >= 0" json:"quantity"`

	Image string `gorm:"size:500" json:"image"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
