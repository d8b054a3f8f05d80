package session

import (
	"context"
	"errors"

	"github.com/compozy/carpark/engine/account"
	"github.com/compozy/carpark/pkg/logger"
)

func (s *Session) mainMenu() []menuItem {
	return []menuItem{
		{label: "Register", action: s.register},
		{label: "Login", action: s.login},
		{label: "Exit", action: s.exit},
	}
}

func (s *Session) register(ctx context.Context) (bool, error) {
	id, err := s.console.ask(msgUserIDPrompt)
	if err != nil {
		return false, err
	}
	if s.accounts.Exists(id) {
		s.console.fail(msgDuplicateUser)
		return false, nil
	}
	input := &account.RegisterInput{ID: id}
	if input.Name, err = s.console.ask(msgNamePrompt); err != nil {
		return false, err
	}
	if input.Email, err = s.console.ask(msgEmailPrompt); err != nil {
		return false, err
	}
	if input.Password, err = s.console.askSecret(msgPasswordPrompt); err != nil {
		return false, err
	}
	if input.Role, err = s.console.ask(msgRolePrompt); err != nil {
		return false, err
	}
	_, err = s.accounts.Register(ctx, input)
	switch {
	case err == nil:
		s.console.success(msgRegistered)
	case errors.Is(err, account.ErrDuplicateUser):
		s.console.fail(msgDuplicateUser)
	case errors.Is(err, account.ErrInvalidRole):
		s.console.fail(msgInvalidRole)
	default:
		s.console.fail("Registration failed: %v", err)
	}
	return false, nil
}

func (s *Session) login(ctx context.Context) (bool, error) {
	id, err := s.console.ask(msgUserIDPrompt)
	if err != nil {
		return false, err
	}
	password, err := s.console.askSecret(msgPasswordPrompt)
	if err != nil {
		return false, err
	}
	user, err := s.accounts.Authenticate(ctx, id, password)
	if err != nil {
		s.console.fail(msgBadCredentials)
		return false, nil
	}
	ctx = logger.ContextWithLogger(ctx, logger.FromContext(ctx).With("user_id", user.ID))
	if user.Role.IsAdmin() {
		s.console.success(msgAdminLoggedIn)
		return false, s.runMenu(ctx, "admin", s.adminMenu())
	}
	s.console.success(msgUserLoggedIn)
	return false, s.runMenu(ctx, "user", s.userMenu())
}

// exit flushes both collections; a failed save is reported and does not block the other.
func (s *Session) exit(ctx context.Context) (bool, error) {
	log := logger.FromContext(ctx)
	if err := s.persister.SaveUsers(ctx); err != nil {
		log.Error("Failed to save users", "error", err)
		s.console.fail(msgSaveUsersFailed, err)
	}
	if err := s.persister.SaveSlots(ctx); err != nil {
		log.Error("Failed to save slots", "error", err)
		s.console.fail(msgSaveSlotsFailed, err)
	}
	s.console.println(s.console.styles.banner.Render(msgFarewell))
	return true, nil
}
