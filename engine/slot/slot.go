package slot

import (
	"fmt"
	"strconv"
	"strings"
)

// Status is the occupancy state of a slot.
type Status string

const (
	StatusAvailable Status = "Available"
	StatusOccupied  Status = "Occupied"
)

// ParseStatus accepts either status in any case and returns the canonical value.
func ParseStatus(s string) (Status, error) {
	switch {
	case strings.EqualFold(s, string(StatusAvailable)):
		return StatusAvailable, nil
	case strings.EqualFold(s, string(StatusOccupied)):
		return StatusOccupied, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

func (s Status) String() string {
	return string(s)
}

// Slot is a single parking space. Occupied slots always carry a car number
// and available slots never do.
type Slot struct {
	ID        int
	Status    Status
	CarNumber string
}

// New returns an available slot with no car.
func New(id int) *Slot {
	return &Slot{ID: id, Status: StatusAvailable}
}

func (s *Slot) Available() bool {
	return s.Status == StatusAvailable
}

// Park marks the slot occupied by carNumber, replacing any current occupant.
func (s *Slot) Park(carNumber string) {
	s.Status = StatusOccupied
	s.CarNumber = carNumber
}

// Unpark frees the slot.
func (s *Slot) Unpark() {
	s.Status = StatusAvailable
	s.CarNumber = ""
}

const (
	fieldSeparator = ","
	slotFieldCount = 3
)

// Codec converts slots to and from their store line: slotId,status,carNumber.
type Codec struct{}

func (Codec) Encode(s Slot) string {
	return strings.Join([]string{strconv.Itoa(s.ID), s.Status.String(), s.CarNumber}, fieldSeparator)
}

func (Codec) Decode(line string) (Slot, error) {
	parts := strings.Split(line, fieldSeparator)
	if len(parts) != slotFieldCount {
		return Slot{}, fmt.Errorf("%w: want %d, got %d", ErrFieldCount, slotFieldCount, len(parts))
	}
	id, err := strconv.Atoi(parts[0])
	if err != nil {
		return Slot{}, fmt.Errorf("%w: %q", ErrInvalidSlotID, parts[0])
	}
	status, err := ParseStatus(parts[1])
	if err != nil {
		return Slot{}, err
	}
	if (status == StatusOccupied) != (parts[2] != "") {
		return Slot{}, fmt.Errorf("%w: %s with car number %q", ErrInconsistent, status, parts[2])
	}
	return Slot{ID: id, Status: status, CarNumber: parts[2]}, nil
}
