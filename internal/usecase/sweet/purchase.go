package sweet

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sweetworks/sweetshop-api/internal/audit"
	domain "github.com/sweetworks/sweetshop-api/internal/domain/sweet"
	"github.com/sweetworks/sweetshop-api/internal/httperr"
)

// ======================================================
// INPUT
// ======================================================

type PurchaseInput struct {
	SweetID  uint
	Quantity int

	// actor, for the audit trail
	UserID *uint
	ShopID *uint
}

// ======================================================
// USE CASE
// ======================================================

type PurchaseSweet struct {
	repo  domain.Repository
	audit Auditor
}

func NewPurchaseSweet(repo domain.Repository, auditor Auditor) *PurchaseSweet {
	return &PurchaseSweet{repo: repo, audit: auditor}
}

func (uc *PurchaseSweet) Execute(
	ctx context.Context,
	in PurchaseInput,
) (*domain.Receipt, error) {

	if in.Quantity <= 0 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidQuantity)
	}

	existing, err := uc.repo.GetByIDWithShop(ctx, in.SweetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeSweetNotFound)
		}
		return nil, err
	}

	// One bound check covers the out-of-stock case: zero stock can
	// never satisfy a positive quantity.
	if existing.Quantity < in.Quantity {
		return nil, domain.InsufficientStockError{
			Available: existing.Quantity,
			Requested: in.Quantity,
		}
	}

	updated, err := uc.repo.DecrementStock(ctx, in.SweetID, in.Quantity)
	if err != nil {
		if errors.Is(err, domain.ErrStockConflict) {
			// A concurrent purchase got there first. Re-read for an
			// accurate availability figure.
			return nil, uc.conflictError(ctx, in)
		}
		return nil, err
	}
	updated.Shop = existing.Shop

	totalPrice := existing.Price.Mul(decimal.NewFromInt(int64(in.Quantity)))

	uc.audit.Dispatch(audit.Event{
		ShopID:   in.ShopID,
		UserID:   in.UserID,
		Action:   audit.ActionSweetPurchased,
		Entity:   "sweet",
		EntityID: &updated.ID,
		Metadata: map[string]any{
			"quantity":   in.Quantity,
			"totalPrice": totalPrice.String(),
		},
	})

	return &domain.Receipt{
		Sweet:             *updated,
		QuantityPurchased: in.Quantity,
		TotalPrice:        totalPrice,
		PreviousQuantity:  updated.Quantity + in.Quantity,
		RemainingQuantity: updated.Quantity,
	}, nil
}

func (uc *PurchaseSweet) conflictError(ctx context.Context, in PurchaseInput) error {
	current, err := uc.repo.GetByID(ctx, in.SweetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness(httperr.CodeSweetNotFound)
		}
		return err
	}
	return domain.InsufficientStockError{
		Available: current.Quantity,
		Requested: in.Quantity,
	}
}
