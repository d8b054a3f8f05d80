package slot

import "fmt"

// Repository owns the insertion-ordered slot list for a run.
type Repository struct {
	slots []*Slot
}

// NewRepository seeds the repository with slots as loaded from the store.
func NewRepository(slots ...Slot) *Repository {
	r := &Repository{slots: make([]*Slot, 0, len(slots))}
	for i := range slots {
		s := slots[i]
		r.slots = append(r.slots, &s)
	}
	return r
}

func (r *Repository) Add(s *Slot) error {
	if _, err := r.Get(s.ID); err == nil {
		return fmt.Errorf("%w: %d", ErrDuplicateSlot, s.ID)
	}
	r.slots = append(r.slots, s)
	return nil
}

// Get returns the first slot with the given ID.
func (r *Repository) Get(id int) (*Slot, error) {
	for _, s := range r.slots {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, ErrSlotNotFound
}

// FirstAvailable scans in insertion order and returns the first free slot.
func (r *Repository) FirstAvailable() (*Slot, error) {
	for _, s := range r.slots {
		if s.Available() {
			return s, nil
		}
	}
	return nil, ErrNoAvailableSlot
}

// List returns value copies of all slots in insertion order.
func (r *Repository) List() []Slot {
	out := make([]Slot, len(r.slots))
	for i, s := range r.slots {
		out[i] = *s
	}
	return out
}

func (r *Repository) Len() int {
	return len(r.slots)
}

// DuplicateIDs reports IDs that appear more than once, in first-seen order.
func (r *Repository) DuplicateIDs() []int {
	seen := make(map[int]int, len(r.slots))
	var dups []int
	for _, s := range r.slots {
		seen[s.ID]++
		if seen[s.ID] == 2 {
			dups = append(dups, s.ID)
		}
	}
	return dups
}
