package user

import (
	"errors"
	"strings"
)

// Record is the fixed-shape user record. It is converted to the store's JSON
// item encoding only at the repository boundary. An empty ManagerID uniformly
// means unmanaged, so the field is omitted from responses when unset.
type Record struct {
	UserID    string `json:"user_id"`
	FullName  string `json:"full_name"`
	MobNum    string `json:"mob_num"`
	PanNum    string `json:"pan_num"`
	ManagerID string `json:"manager_id,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	IsActive  bool   `json:"is_active"`
}

// ErrNotFound is the repository-level miss; the service translates it into
// the caller-facing errors below.
var ErrNotFound = errors.New("user not found")

// Validation and policy errors double as response messages, so their text is
// part of the wire contract.
var (
	ErrFullNameRequired = errors.New("Full name is required")
	ErrMobileRequired   = errors.New("Mobile number is required")
	ErrPanRequired      = errors.New("Pan number is required")
	ErrInvalidMobile    = errors.New("Invalid mobile number")
	ErrInvalidPan       = errors.New("Invalid PAN number")
	ErrInvalidManager   = errors.New("Invalid manager_id")

	ErrNoUserWithID       = errors.New("No user exists with given id")
	ErrNoUserWithMobile   = errors.New("No user exists with given mobile number")
	ErrLookupFieldMissing = errors.New("user_id or mob_num is required")

	ErrUserIDsRequired    = errors.New("user_ids is required")
	ErrUpdateDataRequired = errors.New("update_data must contain at least one field")
	ErrManagerOnlyBulk    = errors.New("manager_id must be the only field in update_data when updating multiple users")
)

// BatchError aggregates per-user failures from a bulk update. Updates that
// completed before a failing user are not rolled back; callers only learn
// which users failed.
type BatchError struct {
	Errors []string
}

func (e *BatchError) Error() string {
	return strings.Join(e.Errors, "; ")
}
