package sweet

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/sweetworks/sweetshop-api/internal/audit"
	domain "github.com/sweetworks/sweetshop-api/internal/domain/sweet"
	"github.com/sweetworks/sweetshop-api/internal/httperr"
	"github.com/sweetworks/sweetshop-api/internal/storage"
)

type DeleteSweet struct {
	repo   domain.Repository
	images storage.ImageStore
	audit  Auditor
	log    zerolog.Logger
}

func NewDeleteSweet(
	repo domain.Repository,
	images storage.ImageStore,
	auditor Auditor,
	log zerolog.Logger,
) *DeleteSweet {
	return &DeleteSweet{
		repo:   repo,
		images: images,
		audit:  auditor,
		log:    log,
	}
}

// Execute removes a sweet owned by the requesting shop. The hosted
// image is deleted best-effort: a relay failure is logged and never
// blocks the record deletion.
func (uc *DeleteSweet) Execute(
	ctx context.Context,
	sweetID uint,
	shopID uint,
) (uint, error) {

	existing, err := uc.repo.GetByID(ctx, sweetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, httperr.ErrBusiness(httperr.CodeSweetNotFound)
		}
		return 0, err
	}

	if existing.ShopID != shopID {
		return 0, httperr.ErrBusiness(httperr.CodeNotOwner)
	}

	if existing.Image != "" {
		if err := uc.images.Delete(ctx, existing.Image); err != nil {
			uc.log.Warn().Err(err).Uint("sweet_id", sweetID).Msg("image delete failed, record removed anyway")
		}
	}

	if err := uc.repo.Delete(ctx, sweetID); err != nil {
		return 0, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   &shopID,
		Action:   audit.ActionSweetDeleted,
		Entity:   "sweet",
		EntityID: &sweetID,
	})

	return sweetID, nil
}
