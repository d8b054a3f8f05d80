package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/compozy/carpark/engine/app"
	"github.com/compozy/carpark/engine/session"
	"github.com/compozy/carpark/pkg/config"
	"github.com/compozy/carpark/pkg/logger"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "carpark",
		Short:         "Interactive car parking system",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return SetupGlobalConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSession(cmd, afero.NewOsFs())
		},
	}

	root.PersistentFlags().String("config", "carpark.yaml", "Path to configuration file")
	root.PersistentFlags().String("env-file", ".env", "Path to environment file")
	registerConfigFlags(root)

	root.AddCommand(
		ConfigCmd(),
		VersionCmd(),
	)

	return root
}

// SetupGlobalConfig loads the env file and configuration, builds the logger
// and attaches both to the command context.
func SetupGlobalConfig(cmd *cobra.Command) error {
	if _, err := loadEnvFile(cmd); err != nil {
		return err
	}
	configFile, err := stringFlag(cmd, "config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, _, err := loadConfigWithSources(ctx, cmd, configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log := logger.SetupLogger(cfg.Runtime.LogLevel, cfg.Runtime.LogJSON, cmd.ErrOrStderr())
	log.Debug("Configuration loaded",
		"users_file", cfg.Storage.UsersFile,
		"slots_file", cfg.Storage.SlotsFile,
		"atomic_write", cfg.Storage.AtomicWrite,
		"malformed_policy", cfg.Storage.MalformedPolicy,
	)
	ctx = logger.ContextWithLogger(ctx, log)
	ctx = config.ContextWithConfig(ctx, cfg)
	cmd.SetContext(ctx)
	return nil
}

func runSession(cmd *cobra.Command, fs afero.Fs) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	log := logger.FromContext(ctx)
	in := cmd.InOrStdin()
	out := cmd.OutOrStdout()

	a := app.New(cfg, fs, log)
	a.Open(ctx, out)
	s := session.New(a.Accounts(), a.Parking(), a, in, out, sessionOptions(in, out)...)
	err := s.Run(ctx)
	if errors.Is(err, session.ErrInputClosed) {
		log.Warn("Input closed before exit, changes were not saved")
		return nil
	}
	return err
}

// sessionOptions hides password entry when stdin is a terminal.
func sessionOptions(in io.Reader, out io.Writer) []session.Option {
	f, ok := in.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return nil
	}
	fd := int(f.Fd())
	return []session.Option{
		session.WithSecretReader(func() (string, error) {
			password, err := term.ReadPassword(fd)
			fmt.Fprintln(out)
			if err != nil {
				return "", err
			}
			return string(password), nil
		}),
	}
}
