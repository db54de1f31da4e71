package services

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindBadRequest
	KindNotFound
	KindConflict
	KindForbidden
)

// Error — ошибка сервиса с публичным сообщением.
// Err (если есть) наружу не отдаётся, только в лог.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

var (
	ErrJobNotFound        = &Error{Kind: KindNotFound, Message: "Job not found"}
	ErrUserNotFound       = &Error{Kind: KindNotFound, Message: "User not found"}
	ErrDepartmentNotFound = &Error{Kind: KindNotFound, Message: "Department not found"}

	ErrEmailTaken          = &Error{Kind: KindBadRequest, Message: "User with this email already exists"}
	ErrInvalidCategoryIDs  = &Error{Kind: KindBadRequest, Message: "Invalid category IDs"}
	ErrUnknownCategoryIDs  = &Error{Kind: KindBadRequest, Message: "One or more category IDs do not exist"}
	ErrTeamLeaderNotFound  = &Error{Kind: KindBadRequest, Message: "Team leader does not exist"}
	ErrChiefNotFound       = &Error{Kind: KindBadRequest, Message: "Chief does not exist"}
	ErrInvalidCredentials  = &Error{Kind: KindBadRequest, Message: "Invalid email or password"}
	ErrUserStillReferenced = &Error{Kind: KindConflict, Message: "User still leads jobs or chairs departments"}
	ErrForbidden           = &Error{Kind: KindForbidden, Message: "Access denied"}
)

func badRequest(format string, args ...any) *Error {
	return &Error{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

func missingField(name string) *Error {
	return badRequest("Missing required field: %s", name)
}

func internal(op string, err error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal server error", Err: fmt.Errorf("%s: %w", op, err)}
}

// KindOf достаёт вид ошибки; всё, что не *Error, считается внутренней.
func KindOf(err error) ErrorKind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

// PublicMessage — то, что можно показать клиенту.
func PublicMessage(err error) string {
	var se *Error
	if errors.As(err, &se) && se.Kind != KindInternal {
		return se.Message
	}
	return "Internal server error"
}

// asServiceError пропускает *Error как есть, остальное заворачивает во внутреннюю.
func asServiceError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	return internal(op, err)
}
