package errs

import (
	"errors"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrLoginRequired    = errors.New("login is required")
	ErrUserMismatch     = errors.New("user fields don't match, check them")
	ErrWrongPassword    = errors.New("wrong password")
	ErrBookNotAvailable = errors.New("book is not available")
	ErrBookNotReserved  = errors.New("book is not reserved, maybe already returned")
	ErrNoReservations   = errors.New("no reservations yet")
)

type ValidationErrorResponse struct {
	Message string `json:"message"`
	Errors  struct {
		AdditionalProperties string `json:"additionalProperties"`
	} `json:"errors"`
}
