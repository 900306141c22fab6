package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sweetworks/sweetshop-api/internal/models"
)

type ShopRefDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type SweetWithShopDTO struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image"`
	CreatedAt time.Time       `json:"created_at"`
	Shop      ShopRefDTO      `json:"shop"`
}

func SweetWithShop(s models.Sweet) SweetWithShopDTO {
	return SweetWithShopDTO{
		ID:        s.ID,
		Name:      s.Name,
		Category:  s.Category,
		Price:     s.Price,
		Quantity:  s.Quantity,
		Image:     s.Image,
		CreatedAt: s.CreatedAt,
		Shop: ShopRefDTO{
			ID:   s.Shop.ID,
			Name: s.Shop.Name,
		},
	}
}

func SweetsWithShop(sweets []models.Sweet) []SweetWithShopDTO {
	out := make([]SweetWithShopDTO, len(sweets))
	for i, s := range sweets {
		out[i] = SweetWithShop(s)
	}
	return out
}
