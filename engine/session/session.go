// Package session runs the interactive parking menus over any reader/writer pair.
package session

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/compozy/carpark/engine/account"
	"github.com/compozy/carpark/engine/slot"
	"github.com/compozy/carpark/pkg/logger"
)

// Persister flushes the in-memory collections when the operator exits.
type Persister interface {
	SaveUsers(ctx context.Context) error
	SaveSlots(ctx context.Context) error
}

type Option func(*Session)

// WithSecretReader reads passwords through fn instead of the plain input stream.
func WithSecretReader(fn SecretReader) Option {
	return func(s *Session) {
		s.console.secret = fn
	}
}

// Session is a single-operator menu loop. It is not safe for concurrent use.
type Session struct {
	accounts  *account.Service
	slots     *slot.Service
	persister Persister
	console   *console
}

func New(
	accounts *account.Service,
	slots *slot.Service,
	persister Persister,
	in io.Reader,
	out io.Writer,
	opts ...Option,
) *Session {
	s := &Session{
		accounts:  accounts,
		slots:     slots,
		persister: persister,
		console:   newConsole(in, out, nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run shows the main menu until Exit is chosen. It returns ErrInputClosed when
// input ends first; nothing is saved in that case.
func (s *Session) Run(ctx context.Context) error {
	s.console.println(s.console.styles.banner.Render(msgWelcome))
	return s.runMenu(ctx, "main", s.mainMenu())
}

type menuItem struct {
	label string
	// action returns true when the menu should close.
	action func(ctx context.Context) (bool, error)
}

func (s *Session) runMenu(ctx context.Context, name string, items []menuItem) error {
	log := logger.FromContext(ctx).With("menu", name)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.console.println("")
		for i, item := range items {
			s.console.println(fmt.Sprintf("%d. %s", i+1, item.label))
		}
		line, err := s.console.ask(msgChoicePrompt)
		if err != nil {
			return err
		}
		choice, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr != nil || choice < 1 || choice > len(items) {
			log.Debug("Invalid menu choice", "input", line)
			s.console.println(msgInvalidChoice)
			continue
		}
		log.Debug("Menu choice", "choice", items[choice-1].label)
		done, err := items[choice-1].action(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func (s *Session) logout(_ context.Context) (bool, error) {
	s.console.println(msgLoggedOut)
	return true, nil
}

func (s *Session) viewSlots(_ context.Context) (bool, error) {
	renderSlots(s.console, s.slots.List())
	return false, nil
}

func renderSlots(c *console, slots []slot.Slot) {
	if len(slots) == 0 {
		c.println(msgNoSlots)
		return
	}
	c.println(slotTableHeader)
	c.println(slotTableRule)
	for _, sl := range slots {
		c.println(fmt.Sprintf(slotTableRow, sl.ID, sl.Status, sl.CarNumber))
	}
}
