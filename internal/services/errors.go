package services

import (
	"errors"
	"fmt"

	"github.com/sbilibin2017/gw-account-service/internal/basicauth"
)

var (
	// ErrValidation is returned for missing or malformed request input.
	ErrValidation = errors.New("validation failed")
	// ErrAccountAlreadyExists is returned when a live account already uses the identifier.
	ErrAccountAlreadyExists = fmt.Errorf("%w: identifier already in use", ErrValidation)
	// ErrAuthenticationFailed is returned for a wrong secret or an identity mismatch at read time.
	ErrAuthenticationFailed = basicauth.ErrAuthenticationFailed
	// ErrMalformedCredentials is returned when the authorization header cannot be decoded.
	ErrMalformedCredentials = basicauth.ErrMalformedHeader
	// ErrForbidden is returned when an authenticated caller targets someone else's account.
	ErrForbidden = errors.New("no permission for this account")
	// ErrAccountNotFound is returned when there is no live account for the identifier.
	ErrAccountNotFound = errors.New("account not found")
)
