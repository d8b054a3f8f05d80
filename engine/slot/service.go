package slot

import (
	"context"
	"fmt"

	"github.com/compozy/carpark/pkg/logger"
)

// Service implements the admin and user slot operations.
type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// AddSlot appends a new available slot.
func (s *Service) AddSlot(ctx context.Context, id int) (Slot, error) {
	log := logger.FromContext(ctx)
	log.Debug("Adding slot", "slot_id", id)
	slot := New(id)
	if err := s.repo.Add(slot); err != nil {
		return Slot{}, err
	}
	log.Info("Slot added", "slot_id", id)
	return *slot, nil
}

// Park assigns carNumber to the first available slot.
func (s *Service) Park(ctx context.Context, carNumber string) (Slot, error) {
	log := logger.FromContext(ctx)
	if carNumber == "" {
		return Slot{}, ErrEmptyCarNumber
	}
	slot, err := s.repo.FirstAvailable()
	if err != nil {
		log.Debug("No free slot", "car_number", carNumber)
		return Slot{}, err
	}
	slot.Park(carNumber)
	log.Info("Car parked", "slot_id", slot.ID, "car_number", carNumber)
	return *slot, nil
}

// RemoveCar frees an occupied slot.
func (s *Service) RemoveCar(ctx context.Context, id int) (Slot, error) {
	log := logger.FromContext(ctx)
	slot, err := s.repo.Get(id)
	if err != nil {
		return Slot{}, fmt.Errorf("%w: %d", err, id)
	}
	if slot.Available() {
		return Slot{}, fmt.Errorf("%w: %d", ErrSlotEmpty, id)
	}
	car := slot.CarNumber
	slot.Unpark()
	log.Info("Car removed", "slot_id", id, "car_number", car)
	return *slot, nil
}

func (s *Service) List() []Slot {
	return s.repo.List()
}
