package sweet

import "fmt"

// InsufficientStockError reports a purchase that asked for more units
// than the sweet has left. Available reflects the stock level observed
// when the purchase was refused.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: only %d units available, %d requested", e.Available, e.Requested)
}
