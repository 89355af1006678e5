package loan

import "errors"

var (
	ErrUnknownLoanType   = errors.New("unknown loan type")
	ErrPrincipalTooSmall = errors.New("principal is below the minimum")
	ErrTenureOutOfRange  = errors.New("tenure is out of range")
	ErrLoanNotFound      = errors.New("loan not found")
	ErrLoanNotPending    = errors.New("loan is not pending")
)
