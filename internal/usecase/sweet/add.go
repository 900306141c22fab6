package sweet

import (
	"context"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/sweetworks/sweetshop-api/internal/audit"
	domain "github.com/sweetworks/sweetshop-api/internal/domain/sweet"
	"github.com/sweetworks/sweetshop-api/internal/httperr"
	"github.com/sweetworks/sweetshop-api/internal/models"
	"github.com/sweetworks/sweetshop-api/internal/storage"
)

// ======================================================
// INPUT
// ======================================================

type AddSweetInput struct {
	ShopID uint

	Name     string
	Category string
	Price    decimal.Decimal
	Quantity int

	// Image is the raw uploaded file. Required: a sweet is never
	// persisted without a hosted image.
	Image io.Reader
}

// ======================================================
// USE CASE
// ======================================================

type AddSweet struct {
	repo   domain.Repository
	images storage.ImageStore
	audit  Auditor
	log    zerolog.Logger
}

func NewAddSweet(
	repo domain.Repository,
	images storage.ImageStore,
	auditor Auditor,
	log zerolog.Logger,
) *AddSweet {
	return &AddSweet{
		repo:   repo,
		images: images,
		audit:  auditor,
		log:    log,
	}
}

func (uc *AddSweet) Execute(
	ctx context.Context,
	in AddSweetInput,
) (*models.Sweet, error) {

	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)

	if name == "" || category == "" {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidSweet)
	}
	if in.Price.IsNegative() {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidPrice)
	}
	if in.Quantity < 0 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidQuantity)
	}
	if in.Image == nil {
		return nil, httperr.ErrBusiness(httperr.CodeImageRequired)
	}

	// Upload first: a failed upload must leave no sweet behind.
	imageURL, err := uc.images.Upload(ctx, in.Image)
	if err != nil {
		uc.log.Warn().Err(err).Str("sweet", name).Msg("image upload failed, sweet not created")
		return nil, httperr.ErrBusiness(httperr.CodeUploadFailed)
	}

	s := &models.Sweet{
		ShopID:   in.ShopID,
		Name:     name,
		Category: category,
		Price:    in.Price,
		Quantity: in.Quantity,
		Image:    imageURL,
	}

	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   &in.ShopID,
		Action:   audit.ActionSweetCreated,
		Entity:   "sweet",
		EntityID: &s.ID,
		Metadata: map[string]any{"name": s.Name, "quantity": s.Quantity},
	})

	return s, nil
}
