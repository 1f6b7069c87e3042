package domain

import (
	"errors"
	"fmt"
)

const (
	RoleOwner = "owner"
	RoleStaff = "staff"
)

var (
	MessageUserNotAllowed       = "user not allowed"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to process body request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"

	ErrParseUUID      = errors.New("failed to parse UUID")
	ErrUserNotAllowed = errors.New("user not allowed")
	ErrTokenNotFound  = errors.New("failed to token not found")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
)

// PartialWriteError marks a multi-row write that failed after the
// transaction started. The transaction is rolled back before this is
// returned, so no partial rows survive, but callers report it
// distinctly from a clean failure.
type PartialWriteError struct {
	Op  string
	Err error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("partial write during %s rolled back: %v", e.Op, e.Err)
}

func (e *PartialWriteError) Unwrap() error {
	return e.Err
}
