package people

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrNoOwner        = errors.New("person has no owning client")
)
