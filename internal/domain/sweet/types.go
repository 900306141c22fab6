package sweet

import (
	"github.com/shopspring/decimal"

	"github.com/sweetworks/sweetshop-api/internal/models"
)

// SearchFilter narrows the catalog listing. Zero values mean "no
// filter": empty strings skip the text matches, nil prices skip the
// range bounds.
type SearchFilter struct {
	Name     string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// UpdateFields carries the partial update for a sweet. Nil fields are
// left untouched.
type UpdateFields struct {
	Name     *string
	Category *string
	Price    *decimal.Decimal
	Quantity *int
	Image    *string
}

func (f UpdateFields) Empty() bool {
	return f.Name == nil && f.Category == nil && f.Price == nil &&
		f.Quantity == nil && f.Image == nil
}

// Receipt is the result of a successful purchase.
type Receipt struct {
	Sweet             models.Sweet    `json:"sweet"`
	QuantityPurchased int             `json:"quantityPurchased"`
	TotalPrice        decimal.Decimal `json:"totalPrice"`
	PreviousQuantity  int             `json:"previousQuantity"`
	RemainingQuantity int             `json:"remainingQuantity"`
}
