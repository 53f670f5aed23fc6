package box

import (
	"errors"
	"strings"
)

var (
	ErrInvalidStatus = errors.New("invalid box status")
	ErrEmptyModel    = errors.New("box model cannot be empty")
	ErrModelTooLong  = errors.New("box model is too long (max 64 characters)")
)

const MaxModelLength = 64

type Status string

const (
	StatusActive      Status = "active"
	StatusMaintenance Status = "maintenance"
	StatusRetired     Status = "retired"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusMaintenance, StatusRetired:
		return true
	default:
		return false
	}
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// Model tags a box with its hardware class. Boxes are interchangeable
// only within the same model.
type Model string

func NewModel(s string) (Model, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyModel
	}
	if len(s) > MaxModelLength {
		return "", ErrModelTooLong
	}
	return Model(s), nil
}

func (m Model) String() string {
	return string(m)
}
