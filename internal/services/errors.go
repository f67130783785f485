package services

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicate          = errors.New("already exists")
)

// QuotaError reports an entitlement limit violation. It carries a
// human-readable reason and rejects the write; it is never fatal.
type QuotaError struct {
	Reason string
}

func (e *QuotaError) Error() string {
	return e.Reason
}

// IsQuotaError reports whether err is an entitlement violation.
func IsQuotaError(err error) bool {
	var qe *QuotaError
	return errors.As(err, &qe)
}
