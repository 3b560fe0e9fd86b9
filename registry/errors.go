package registry

import "errors"

// Registry errors. Duplicate and lookup failures wrap these sentinels with
// the kind, name/id and context involved; callers test with errors.Is.
var (
	ErrNotFound       = errors.New("object not found")
	ErrDuplicateName  = errors.New("duplicate name")
	ErrDuplicateID    = errors.New("duplicate id")
	ErrInvalidName    = errors.New("invalid name")
	ErrInvalidID      = errors.New("invalid id")
	ErrInvalidContext = errors.New("invalid context name")
	ErrKeyMismatch    = errors.New("name and id refer to different objects")
	ErrNilEntry       = errors.New("entry cannot be nil")
	ErrNotRegistered  = errors.New("object not registered in context")
	ErrAutoID         = errors.New("auto id cannot be assigned")
)
