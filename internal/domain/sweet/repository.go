package sweet

import (
	"context"
	"errors"

	"github.com/sweetworks/sweetshop-api/internal/models"
)

// ErrStockConflict is returned by DecrementStock when the conditional
// update matched no row, meaning available stock changed underneath us.
var ErrStockConflict = errors.New("stock conflict")

type Repository interface {
	// -------- Sweet --------
	Create(ctx context.Context, s *models.Sweet) error

	GetByID(ctx context.Context, id uint) (*models.Sweet, error)

	GetByIDWithShop(ctx context.Context, id uint) (*models.Sweet, error)

	ListAll(ctx context.Context) ([]models.Sweet, error)

	Search(ctx context.Context, f SearchFilter) ([]models.Sweet, error)

	ApplyUpdate(ctx context.Context, id uint, fields UpdateFields) (*models.Sweet, error)

	Delete(ctx context.Context, id uint) error

	// -------- Stock (atomic conditional updates) --------

	// IncrementStock adds qty unconditionally and returns the row as
	// written by the database.
	IncrementStock(ctx context.Context, id uint, qty int) (*models.Sweet, error)

	// DecrementStock subtracts qty only while quantity stays
	// non-negative. Returns ErrStockConflict when stock is short.
	DecrementStock(ctx context.Context, id uint, qty int) (*models.Sweet, error)
}
