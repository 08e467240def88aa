package company

import "errors"

var (
	ErrCompanyNotFound       = errors.New("company not found")
	ErrRequiredFieldsMissing = errors.New("required fields missing")
)
