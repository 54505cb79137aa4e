package services

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrGuestNotFound      = errors.New("guest_not_found")
	ErrStayNotFound       = errors.New("stay_not_found")
	ErrRoomNotFound       = errors.New("room_not_found")
	ErrStayNotActive      = errors.New("stay_not_active")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrUserExists         = errors.New("user_exists")
)

// ValidationError carries one message per offending input field. Operations
// that return it have not written anything.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation: " + strings.Join(parts, "; ")
}

// add keeps the first message recorded for a field.
func (e *ValidationError) add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
}

func (e *ValidationError) merge(other *ValidationError) {
	if other == nil {
		return
	}
	for k, v := range other.Fields {
		e.add(k, v)
	}
}

// orNil returns nil when nothing was recorded, so callers can return it directly.
func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// IsValidation reports whether err is a *ValidationError and returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
