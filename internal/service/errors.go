package service

import "errors"

// Domain errors, translated to HTTP status codes once, in the handlers.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailExists          = errors.New("email already in use")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidSignature     = errors.New("invalid signature")
	ErrInvalidPaymentData   = errors.New("invalid payment data")
	ErrDuplicateTransaction = errors.New("transaction already processed")
	ErrInvalidEmail         = errors.New("invalid email address")
	ErrInvalidFullName      = errors.New("invalid full name")
	ErrWeakPassword         = errors.New("password must contain at least 8 characters, a letter and a digit")
)
