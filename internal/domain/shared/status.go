package shared

import "strings"

// Status is the active/inactive flag shared by most storefront records
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// IsValid reports whether s is one of the known statuses
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

// ParseStatus parses a status value, defaulting to active when blank.
func ParseStatus(raw string) (Status, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return StatusActive, nil
	}
	s := Status(raw)
	if !s.IsValid() {
		return "", NewValidationError("status must be 'active' or 'inactive'")
	}
	return s, nil
}

// StatusFilter returns the status to filter a list on. Only the literal
// strings "active" and "inactive" produce a filter; anything else is ignored.
func StatusFilter(raw string) (Status, bool) {
	s := Status(raw)
	if s.IsValid() {
		return s, true
	}
	return "", false
}
