package sweet

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/sweetworks/sweetshop-api/internal/audit"
	domain "github.com/sweetworks/sweetshop-api/internal/domain/sweet"
	"github.com/sweetworks/sweetshop-api/internal/httperr"
	"github.com/sweetworks/sweetshop-api/internal/models"
	"github.com/sweetworks/sweetshop-api/internal/storage"
)

// ======================================================
// INPUT
// ======================================================

type UpdateSweetInput struct {
	SweetID uint
	ShopID  uint

	Fields domain.UpdateFields

	// NewImage, when set, is processed and uploaded; the resulting URL
	// replaces the stored reference (and wins over Fields.Image).
	NewImage io.Reader
}

// ======================================================
// USE CASE
// ======================================================

type UpdateSweet struct {
	repo   domain.Repository
	images storage.ImageStore
	audit  Auditor
	log    zerolog.Logger
}

func NewUpdateSweet(
	repo domain.Repository,
	images storage.ImageStore,
	auditor Auditor,
	log zerolog.Logger,
) *UpdateSweet {
	return &UpdateSweet{
		repo:   repo,
		images: images,
		audit:  auditor,
		log:    log,
	}
}

func (uc *UpdateSweet) Execute(
	ctx context.Context,
	in UpdateSweetInput,
) (*models.Sweet, error) {

	existing, err := uc.repo.GetByID(ctx, in.SweetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeSweetNotFound)
		}
		return nil, err
	}

	if existing.ShopID != in.ShopID {
		return nil, httperr.ErrBusiness(httperr.CodeNotOwner)
	}

	fields := in.Fields
	if err := validateFields(&fields); err != nil {
		return nil, err
	}

	if in.NewImage != nil {
		imageURL, err := uc.images.Upload(ctx, in.NewImage)
		if err != nil {
			uc.log.Warn().Err(err).Uint("sweet_id", in.SweetID).Msg("image upload failed, sweet not updated")
			return nil, httperr.ErrBusiness(httperr.CodeUploadFailed)
		}
		fields.Image = &imageURL
	}

	updated, err := uc.repo.ApplyUpdate(ctx, in.SweetID, fields)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   &in.ShopID,
		Action:   audit.ActionSweetUpdated,
		Entity:   "sweet",
		EntityID: &updated.ID,
	})

	return updated, nil
}

func validateFields(f *domain.UpdateFields) error {
	if f.Name != nil {
		trimmed := strings.TrimSpace(*f.Name)
		if trimmed == "" {
			return httperr.ErrBusiness(httperr.CodeInvalidSweet)
		}
		f.Name = &trimmed
	}
	if f.Category != nil {
		trimmed := strings.TrimSpace(*f.Category)
		if trimmed == "" {
			return httperr.ErrBusiness(httperr.CodeInvalidSweet)
		}
		f.Category = &trimmed
	}
	if f.Price != nil && f.Price.IsNegative() {
		return httperr.ErrBusiness(httperr.CodeInvalidPrice)
	}
	if f.Quantity != nil && *f.Quantity < 0 {
		return httperr.ErrBusiness(httperr.CodeInvalidQuantity)
	}
	return nil
}
