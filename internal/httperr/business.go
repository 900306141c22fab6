package httperr

import "errors"

// Business rule failures travel up from the usecases as codes and are
// mapped to HTTP statuses at the handler boundary.
const (
	CodeSweetNotFound     = "sweet_not_found"
	CodeInsufficientStock = "insufficient_stock"
	CodeNotOwner          = "not_sweet_owner"
	CodeInvalidQuantity   = "invalid_quantity"
	CodeInvalidPrice      = "invalid_price"
	CodeInvalidSweet      = "invalid_sweet"
	CodeImageRequired     = "image_required"
	CodeUploadFailed      = "upload_failed"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
