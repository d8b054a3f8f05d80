// Package app wires the stores, repositories and services for one carpark run.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/compozy/carpark/engine/account"
	"github.com/compozy/carpark/engine/slot"
	"github.com/compozy/carpark/engine/store"
	"github.com/compozy/carpark/pkg/config"
	"github.com/compozy/carpark/pkg/logger"
	"github.com/spf13/afero"
)

// App owns the in-memory collections and the files that back them.
type App struct {
	log       logger.Logger
	userStore *store.Store[account.User]
	slotStore *store.Store[slot.Slot]
	users     *account.Repository
	slots     *slot.Repository
	accounts  *account.Service
	parking   *slot.Service
}

// New builds an App with empty collections. Call Open to load the stores.
func New(cfg *config.Config, fs afero.Fs, log logger.Logger) *App {
	if log == nil {
		log = logger.GetDefault()
	}
	opts := store.Options{
		AtomicWrite: cfg.Storage.AtomicWrite,
		Policy:      store.ParsePolicy(cfg.Storage.MalformedPolicy),
	}
	a := &App{
		log:       log,
		userStore: store.New[account.User](fs, cfg.Storage.UsersFile, account.Codec{}, opts),
		slotStore: store.New[slot.Slot](fs, cfg.Storage.SlotsFile, slot.Codec{}, opts),
	}
	a.seed(nil, nil)
	return a
}

func (a *App) seed(users []account.User, slots []slot.Slot) {
	a.users = account.NewRepository(users...)
	a.slots = slot.NewRepository(slots...)
	a.accounts = account.NewService(a.users)
	a.parking = slot.NewService(a.slots)
}

func (a *App) withLogger(ctx context.Context) context.Context {
	return logger.ContextWithLogger(ctx, a.log)
}

// Open creates missing stores and loads users, then slots. Failures are
// reported on out and the run continues with whatever was read.
func (a *App) Open(ctx context.Context, out io.Writer) {
	ctx = a.withLogger(ctx)
	if err := a.ensure(); err != nil {
		a.log.Error("Failed to ensure stores", "error", err)
		fmt.Fprintf(out, "Error ensuring files exist: %v\n", err)
	}
	users, err := a.userStore.Load(ctx)
	if err != nil {
		a.log.Error("Failed to load users", "store", a.userStore.Path(), "error", err)
		fmt.Fprintf(out, "Error loading users: %v\n", err)
	}
	slots, err := a.slotStore.Load(ctx)
	if err != nil {
		a.log.Error("Failed to load slots", "store", a.slotStore.Path(), "error", err)
		fmt.Fprintf(out, "Error loading parking slots: %v\n", err)
	}
	a.seed(users, slots)
	if dups := a.users.DuplicateIDs(); len(dups) > 0 {
		a.log.Warn("Duplicate user IDs in store", "store", a.userStore.Path(), "ids", dups)
	}
	if dups := a.slots.DuplicateIDs(); len(dups) > 0 {
		a.log.Warn("Duplicate slot IDs in store", "store", a.slotStore.Path(), "ids", dups)
	}
	a.log.Info("Stores loaded", "users", a.users.Len(), "slots", a.slots.Len())
}

func (a *App) ensure() error {
	if err := a.userStore.Ensure(); err != nil {
		return err
	}
	return a.slotStore.Ensure()
}

// SaveUsers overwrites the user store with the current collection.
func (a *App) SaveUsers(ctx context.Context) error {
	return a.userStore.Save(a.withLogger(ctx), a.users.List())
}

// SaveSlots overwrites the slot store with the current collection.
func (a *App) SaveSlots(ctx context.Context) error {
	return a.slotStore.Save(a.withLogger(ctx), a.slots.List())
}

func (a *App) Accounts() *account.Service {
	return a.accounts
}

func (a *App) Parking() *slot.Service {
	return a.parking
}
