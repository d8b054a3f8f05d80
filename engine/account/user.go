package account

import (
	"fmt"
	"strings"
)

const (
	fieldSeparator = ","
	userFieldCount = 5
)

// User is a registered account. Values are never mutated after registration.
type User struct {
	ID       string
	Name     string
	Email    string
	Password string
	Role     Role
}

// Codec converts users to and from their store line: userId,name,email,password,role.
// Fields containing the separator are not representable.
type Codec struct{}

func (Codec) Encode(u User) string {
	return strings.Join([]string{u.ID, u.Name, u.Email, u.Password, u.Role.String()}, fieldSeparator)
}

func (Codec) Decode(line string) (User, error) {
	parts := strings.Split(line, fieldSeparator)
	if len(parts) != userFieldCount {
		return User{}, fmt.Errorf("%w: want %d, got %d", ErrFieldCount, userFieldCount, len(parts))
	}
	role, err := ParseRole(parts[4])
	if err != nil {
		return User{}, err
	}
	return User{
		ID:       parts[0],
		Name:     parts[1],
		Email:    parts[2],
		Password: parts[3],
		Role:     role,
	}, nil
}
