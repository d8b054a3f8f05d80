package session

import (
	"context"
	"errors"

	"github.com/compozy/carpark/engine/slot"
)

func (s *Session) userMenu() []menuItem {
	return []menuItem{
		{label: "Park Car", action: s.parkCar},
		{label: "View Parking Slots", action: s.viewSlots},
		{label: "Logout", action: s.logout},
	}
}

func (s *Session) parkCar(ctx context.Context) (bool, error) {
	car, err := s.console.ask(msgCarNumberPrompt)
	if err != nil {
		return false, err
	}
	parked, err := s.slots.Park(ctx, car)
	switch {
	case err == nil:
		s.console.success(msgCarParked, parked.ID)
	case errors.Is(err, slot.ErrNoAvailableSlot):
		s.console.fail(msgNoFreeSlot)
	case errors.Is(err, slot.ErrEmptyCarNumber):
		s.console.fail(msgEmptyCarNumber)
	default:
		s.console.fail("%v", err)
	}
	return false, nil
}
