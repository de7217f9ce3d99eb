package models

import "strings"

// Status marks whether a record is shown on the public site.
type Status string

const (
	StatusValid   Status = "valid"
	StatusInvalid Status = "invalid"
)

// Statuses lists every accepted status in display order.
var Statuses = []Status{StatusValid, StatusInvalid}

func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusValid:
		return StatusValid, true
	case StatusInvalid:
		return StatusInvalid, true
	}
	return "", false
}

func (s Status) IsValid() bool {
	return s == StatusValid || s == StatusInvalid
}
