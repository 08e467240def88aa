package user

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserExists        = errors.New("user already exists")
	ErrPasswordMismatch  = errors.New("passwords do not match")
	ErrAllFieldsRequired = errors.New("all fields are required")
)
