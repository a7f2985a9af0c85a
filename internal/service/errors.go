package service

import "errors"

// ForbiddenError: the caller is authenticated but may not perform this
// mutation. Distinct from repo.ErrNotFound (target absent) and from the 401
// path, which never reaches a service.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string { return e.Reason }

func forbidden(reason string) error { return &ForbiddenError{Reason: reason} }

// IsForbidden reports whether err is an authorization denial.
func IsForbidden(err error) bool {
	var fe *ForbiddenError
	return errors.As(err, &fe)
}

var ErrInvalidCredentials = errors.New("invalid credentials")

// errNoChange is returned by a mutation closure to signal that the aggregate
// is already in the requested state and must not be written.
var errNoChange = errors.New("no change")
