package service

import (
	"errors"
	"fmt"
)

// The error taxonomy the HTTP boundary maps onto status codes. Wrapped
// variants stay matchable with errors.Is against their base.
var (
	ErrValidation         = errors.New("bad request")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrQuestionsMismatch = fmt.Errorf("%w: security questions do not match", ErrValidation)
	ErrRecoveryToken     = fmt.Errorf("%w: invalid or expired recovery token", ErrValidation)
)

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
