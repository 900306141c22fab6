package sweet

import "github.com/sweetworks/sweetshop-api/internal/audit"

// Auditor is the slice of the audit dispatcher the usecases need.
type Auditor interface {
	Dispatch(ev audit.Event)
}
