package account

import "fmt"

// Repository owns the insertion-ordered user list for a run.
type Repository struct {
	users []User
}

// NewRepository seeds the repository with users as loaded from the store.
// Duplicates in the seed are kept; uniqueness is enforced by Add.
func NewRepository(users ...User) *Repository {
	seed := make([]User, len(users))
	copy(seed, users)
	return &Repository{users: seed}
}

func (r *Repository) Add(u User) error {
	if _, err := r.Get(u.ID); err == nil {
		return fmt.Errorf("%w: %s", ErrDuplicateUser, u.ID)
	}
	r.users = append(r.users, u)
	return nil
}

// Get returns the first user whose ID matches exactly.
func (r *Repository) Get(id string) (User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

// List returns a copy of all users in insertion order.
func (r *Repository) List() []User {
	out := make([]User, len(r.users))
	copy(out, r.users)
	return out
}

func (r *Repository) Len() int {
	return len(r.users)
}

// DuplicateIDs reports IDs that appear more than once, in first-seen order.
func (r *Repository) DuplicateIDs() []string {
	seen := make(map[string]int, len(r.users))
	var dups []string
	for _, u := range r.users {
		seen[u.ID]++
		if seen[u.ID] == 2 {
			dups = append(dups, u.ID)
		}
	}
	return dups
}
