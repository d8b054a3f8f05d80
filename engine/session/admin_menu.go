package session

import (
	"context"
	"errors"

	"github.com/compozy/carpark/engine/slot"
)

func (s *Session) adminMenu() []menuItem {
	return []menuItem{
		{label: "Add Parking Slot", action: s.addSlot},
		{label: "View Parking Slots", action: s.viewSlots},
		{label: "Remove Car from Slot", action: s.removeCar},
		{label: "Logout", action: s.logout},
	}
}

func (s *Session) addSlot(ctx context.Context) (bool, error) {
	id, ok, err := s.console.askInt(msgSlotIDPrompt)
	if err != nil {
		return false, err
	}
	if !ok {
		s.console.fail(msgInvalidSlotID)
		return false, nil
	}
	if _, err := s.slots.AddSlot(ctx, id); err != nil {
		if errors.Is(err, slot.ErrDuplicateSlot) {
			s.console.fail(msgDuplicateSlot)
			return false, nil
		}
		s.console.fail("%v", err)
		return false, nil
	}
	s.console.success(msgSlotAdded)
	return false, nil
}

func (s *Session) removeCar(ctx context.Context) (bool, error) {
	id, ok, err := s.console.askInt(msgSlotIDPrompt)
	if err != nil {
		return false, err
	}
	if !ok {
		s.console.fail(msgInvalidSlotID)
		return false, nil
	}
	if _, err := s.slots.RemoveCar(ctx, id); err != nil {
		s.console.fail(msgCannotRemove)
		return false, nil
	}
	s.console.success(msgCarRemoved, id)
	return false, nil
}
