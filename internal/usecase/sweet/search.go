package sweet

import (
	"context"
	"strings"

	domain "github.com/sweetworks/sweetshop-api/internal/domain/sweet"
	"github.com/sweetworks/sweetshop-api/internal/models"
)

type SearchSweets struct {
	repo domain.Repository
}

func NewSearchSweets(repo domain.Repository) *SearchSweets {
	return &SearchSweets{repo: repo}
}

// Execute applies whichever filters are set; unset filters are no-ops.
// Results come back newest first with the owning shop attached.
func (uc *SearchSweets) Execute(
	ctx context.Context,
	f domain.SearchFilter,
) ([]models.Sweet, error) {

	f.Name = strings.TrimSpace(f.Name)
	f.Category = strings.TrimSpace(f.Category)

	return uc.repo.Search(ctx, f)
}
