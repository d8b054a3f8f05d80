package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/compozy/carpark/engine/account"
	"github.com/compozy/carpark/engine/session"
	"github.com/compozy/carpark/engine/slot"
	"github.com/compozy/carpark/pkg/config"
	"github.com/compozy/carpark/pkg/logger"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logger.Logger {
	return logger.NewLogger(logger.TestConfig())
}

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

func TestApp_Open(t *testing.T) {
	t.Run("Should create missing stores as empty files", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		cfg := config.Default()
		cfg.Storage.UsersFile = "data/users.txt"
		a := New(cfg, fs, testLogger())
		out := &bytes.Buffer{}

		a.Open(t.Context(), out)

		assert.Empty(t, out.String())
		assert.Empty(t, readFile(t, fs, "data/users.txt"))
		assert.Empty(t, readFile(t, fs, "slots.txt"))
		assert.Empty(t, a.Parking().List())
	})

	t.Run("Should load existing records and skip malformed lines", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		writeFile(t, fs, "users.txt", "u1,Alice,a@x.com,pw1,admin\nbroken\n\nu2,Bob,b@x.com,pw2,User\n")
		writeFile(t, fs, "slots.txt", "1,Occupied,KA-01\n2,Available,\n3,Occupied,\n")
		a := New(config.Default(), fs, testLogger())
		out := &bytes.Buffer{}

		a.Open(t.Context(), out)

		assert.Empty(t, out.String())
		user, err := a.Accounts().Authenticate(t.Context(), "u1", "pw1")
		require.NoError(t, err)
		assert.Equal(t, account.RoleAdmin, user.Role)
		assert.True(t, a.Accounts().Exists("u2"))
		assert.Equal(t, []slot.Slot{
			{ID: 1, Status: slot.StatusOccupied, CarNumber: "KA-01"},
			{ID: 2, Status: slot.StatusAvailable},
		}, a.Parking().List())
	})

	t.Run("Should report malformed lines under the abort policy", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		writeFile(t, fs, "users.txt", "u1,Alice,a@x.com,pw1,Admin\nbroken\nu2,Bob,b@x.com,pw2,User\n")
		writeFile(t, fs, "slots.txt", "x,Available,\n")
		cfg := config.Default()
		cfg.Storage.MalformedPolicy = config.MalformedAbort
		a := New(cfg, fs, testLogger())
		out := &bytes.Buffer{}

		a.Open(t.Context(), out)

		assert.Contains(t, out.String(), "Error loading users: malformed record at users.txt:2")
		assert.Contains(t, out.String(), "Error loading parking slots: malformed record at slots.txt:1")
		assert.True(t, a.Accounts().Exists("u1"))
		assert.False(t, a.Accounts().Exists("u2"))
		assert.Empty(t, a.Parking().List())
	})

	t.Run("Should keep running when stores cannot be created", func(t *testing.T) {
		fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
		a := New(config.Default(), fs, testLogger())
		out := &bytes.Buffer{}

		a.Open(t.Context(), out)

		assert.True(t, strings.HasPrefix(out.String(), "Error ensuring files exist: "))
		assert.NotContains(t, out.String(), "Error loading")
	})

	t.Run("Should keep duplicate IDs found in the stores", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		writeFile(t, fs, "slots.txt", "1,Available,\n1,Occupied,X\n")
		a := New(config.Default(), fs, testLogger())

		a.Open(t.Context(), &bytes.Buffer{})

		assert.Len(t, a.Parking().List(), 2)
	})
}

func TestApp_Save(t *testing.T) {
	t.Run("Should write both stores in order", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		a := New(config.Default(), fs, testLogger())
		a.Open(t.Context(), &bytes.Buffer{})
		_, err := a.Accounts().Register(t.Context(), &account.RegisterInput{
			ID: "u1", Name: "Alice", Email: "a@x.com", Password: "pw1", Role: "user",
		})
		require.NoError(t, err)
		_, err = a.Parking().AddSlot(t.Context(), 5)
		require.NoError(t, err)
		_, err = a.Parking().Park(t.Context(), "CAR-9")
		require.NoError(t, err)

		require.NoError(t, a.SaveUsers(t.Context()))
		require.NoError(t, a.SaveSlots(t.Context()))

		assert.Equal(t, "u1,Alice,a@x.com,pw1,User\n", readFile(t, fs, "users.txt"))
		assert.Equal(t, "5,Occupied,CAR-9\n", readFile(t, fs, "slots.txt"))
	})

	t.Run("Should report save failures per store", func(t *testing.T) {
		fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
		a := New(config.Default(), fs, testLogger())

		usersErr := a.SaveUsers(t.Context())
		slotsErr := a.SaveSlots(t.Context())

		require.Error(t, usersErr)
		require.Error(t, slotsErr)
		assert.Contains(t, usersErr.Error(), "users.txt")
		assert.Contains(t, slotsErr.Error(), "slots.txt")
	})

	t.Run("Should replace the store atomically when configured", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		writeFile(t, fs, "slots.txt", "1,Available,\n2,Available,\n")
		cfg := config.Default()
		cfg.Storage.AtomicWrite = true
		a := New(cfg, fs, testLogger())
		a.Open(t.Context(), &bytes.Buffer{})
		_, err := a.Parking().Park(t.Context(), "ZZ")
		require.NoError(t, err)

		require.NoError(t, a.SaveSlots(t.Context()))

		assert.Equal(t, "1,Occupied,ZZ\n2,Available,\n", readFile(t, fs, "slots.txt"))
		exists, err := afero.Exists(fs, "slots.txt.tmp")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestApp_EndToEnd(t *testing.T) {
	t.Run("Should persist the final state of a full session", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		a := New(config.Default(), fs, testLogger())
		a.Open(t.Context(), &bytes.Buffer{})
		script := strings.Join([]string{
			"1", "u1", "Alice", "a@x.com", "pw1", "Admin",
			"1", "u2", "Bob", "b@x.com", "pw2", "User",
			"2", "u1", "pw1", "1", "1", "1", "2", "4",
			"2", "u2", "pw2", "1", "CAR-1", "3",
			"2", "u1", "pw1", "3", "1", "4",
			"3",
		}, "\n") + "\n"
		out := &bytes.Buffer{}
		s := session.New(a.Accounts(), a.Parking(), a, strings.NewReader(script), out)

		require.NoError(t, s.Run(t.Context()))

		assert.Contains(t, out.String(), "Car parked successfully in slot 1")
		assert.Contains(t, out.String(), "Car removed from slot 1")
		assert.Equal(t, "u1,Alice,a@x.com,pw1,Admin\nu2,Bob,b@x.com,pw2,User\n", readFile(t, fs, "users.txt"))
		assert.Equal(t, "1,Available,\n2,Available,\n", readFile(t, fs, "slots.txt"))

		reopened := New(config.Default(), fs, testLogger())
		reopened.Open(t.Context(), &bytes.Buffer{})
		assert.Equal(t, a.Parking().List(), reopened.Parking().List())
		assert.True(t, reopened.Accounts().Exists("u2"))
	})

	t.Run("Should reload users with very long fields", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		a := New(config.Default(), fs, testLogger())
		a.Open(t.Context(), &bytes.Buffer{})
		longName := strings.Repeat("x", 70*1024)
		script := strings.Join([]string{
			"1", "u1", longName, "a@x.com", "pw1", "Admin",
			"1", "u2", "Bob", "b@x.com", "pw2", "User",
			"3",
		}, "\n") + "\n"
		s := session.New(a.Accounts(), a.Parking(), a, strings.NewReader(script), &bytes.Buffer{})
		require.NoError(t, s.Run(t.Context()))

		reopened := New(config.Default(), fs, testLogger())
		out := &bytes.Buffer{}
		reopened.Open(t.Context(), out)

		assert.Empty(t, out.String())
		assert.True(t, reopened.Accounts().Exists("u1"))
		assert.True(t, reopened.Accounts().Exists("u2"))
	})

	t.Run("Should lose unsaved changes when input ends early", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		a := New(config.Default(), fs, testLogger())
		a.Open(t.Context(), &bytes.Buffer{})
		script := "1\nu1\nAlice\na@x.com\npw1\nAdmin\n"
		s := session.New(a.Accounts(), a.Parking(), a, strings.NewReader(script), &bytes.Buffer{})

		assert.ErrorIs(t, s.Run(t.Context()), session.ErrInputClosed)
		assert.Empty(t, readFile(t, fs, "users.txt"))
	})
}
