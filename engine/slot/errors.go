package slot

import "errors"

var (
	ErrSlotNotFound    = errors.New("slot not found")
	ErrDuplicateSlot   = errors.New("slot ID already exists")
	ErrNoAvailableSlot = errors.New("no available parking slots")
	ErrSlotEmpty       = errors.New("slot is already empty")
	ErrEmptyCarNumber  = errors.New("car number cannot be empty")
	ErrInvalidStatus   = errors.New("invalid slot status")
	ErrInvalidSlotID   = errors.New("invalid slot ID")
	ErrFieldCount      = errors.New("unexpected number of fields")
	ErrInconsistent    = errors.New("status and car number disagree")
)
