package sweet

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sweetworks/sweetshop-api/internal/audit"
	domain "github.com/sweetworks/sweetshop-api/internal/domain/sweet"
	"github.com/sweetworks/sweetshop-api/internal/httperr"
	"github.com/sweetworks/sweetshop-api/internal/models"
)

// ======================================================
// INPUT / RESULT
// ======================================================

type RestockInput struct {
	SweetID  uint
	Quantity int

	// actor, for the audit trail
	ShopID *uint
	UserID *uint
}

type RestockResult struct {
	Sweet            models.Sweet `json:"sweet"`
	PreviousQuantity int          `json:"previousQuantity"`
	NewQuantity      int          `json:"newQuantity"`
	RestockedAmount  int          `json:"restockedAmount"`
}

// ======================================================
// USE CASE
// ======================================================

type RestockSweet struct {
	repo  domain.Repository
	audit Auditor
}

func NewRestockSweet(repo domain.Repository, auditor Auditor) *RestockSweet {
	return &RestockSweet{repo: repo, audit: auditor}
}

func (uc *RestockSweet) Execute(
	ctx context.Context,
	in RestockInput,
) (*RestockResult, error) {

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

	updated, err := uc.repo.IncrementStock(ctx, in.SweetID, in.Quantity)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeSweetNotFound)
		}
		return nil, err
	}
	updated.Shop = existing.Shop

	uc.audit.Dispatch(audit.Event{
		ShopID:   in.ShopID,
		UserID:   in.UserID,
		Action:   audit.ActionSweetRestocked,
		Entity:   "sweet",
		EntityID: &updated.ID,
		Metadata: map[string]any{"quantity": in.Quantity},
	})

	// previous derived from the written row, so the arithmetic holds
	// even when restocks race.
	return &RestockResult{
		Sweet:            *updated,
		PreviousQuantity: updated.Quantity - in.Quantity,
		NewQuantity:      updated.Quantity,
		RestockedAmount:  in.Quantity,
	}, nil
}
