package sweet

import (
	"context"

	domain "github.com/sweetworks/sweetshop-api/internal/domain/sweet"
	"github.com/sweetworks/sweetshop-api/internal/models"
)

// ListSweets returns the whole catalog across every shop. Listing is
// deliberately not scoped to the requester: customers browse all
// inventory.
type ListSweets struct {
	repo domain.Repository
}

func NewListSweets(repo domain.Repository) *ListSweets {
	return &ListSweets{repo: repo}
}

func (uc *ListSweets) Execute(ctx context.Context) ([]models.Sweet, error) {
	return uc.repo.ListAll(ctx)
}
