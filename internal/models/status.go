package models

import (
	"fmt"

	"github.com/julianstephens/tinyhabits/internal/constants"
)

// EntryStatus is the closed set of states a habit entry can be in.
// The zero value is StatusPending.
type EntryStatus uint8

const (
	StatusPending EntryStatus = iota
	StatusDone
	StatusSkipped
)

// ParseEntryStatus decodes a stored status. Unknown values are an error.
func ParseEntryStatus(s string) (EntryStatus, error) {
	switch s {
	case constants.StatusPending:
		return StatusPending, nil
	case constants.StatusDone:
		return StatusDone, nil
	case constants.StatusSkipped:
		return StatusSkipped, nil
	default:
		return StatusPending, fmt.Errorf("unknown entry status %q", s)
	}
}

func (s EntryStatus) String() string {
	switch s {
	case StatusPending:
		return constants.StatusPending
	case StatusDone:
		return constants.StatusDone
	case StatusSkipped:
		return constants.StatusSkipped
	default:
		return fmt.Sprintf("EntryStatus(%d)", uint8(s))
	}
}

func (s EntryStatus) Valid() bool {
	return s <= StatusSkipped
}

func (s EntryStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid entry status %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *EntryStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseEntryStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
