package commands

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"maturity-assessment/internal/assessment/navigator"
	"maturity-assessment/internal/assessment/storage"
	"maturity-assessment/internal/assessment/store"
	"maturity-assessment/internal/assessment/wizard"
	"maturity-assessment/internal/common/errors"
	"maturity-assessment/internal/common/logger"
)

// app is the per-invocation wiring shared by every subcommand.
type app struct {
	fs       afero.Fs
	session  *wizard.Session
	flow     navigator.Flow
	backend  *storage.Backend
	logger   logger.Logger
	jsonMode bool
}

func Execute() error {
	return NewRootCommand(afero.NewOsFs()).Execute()
}

// NewRootCommand builds the command tree. fs backs the file storage backend.
func NewRootCommand(fs afero.Fs) *cobra.Command {
	a := &app{fs: fs}

	root := &cobra.Command{
		Use:           "assessctl",
		Short:         "Walk the AI maturity assessment from the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !needsSession(cmd) {
				return nil
			}
			return a.open(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.backend == nil {
				return nil
			}
			return a.backend.Close()
		},
	}
	root.PersistentFlags().BoolVar(&a.jsonMode, "json", false, "print JSON instead of text")

	root.AddCommand(
		startCmd(a),
		showCmd(a),
		setCmd(a),
		nextCmd(a),
		backCmd(a),
		restartCmd(a),
		resultsCmd(a),
		optionsCmd(a),
		workersCmd(a),
	)
	return root
}

func (a *app) open(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	e, err := parseEnv()
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(e)
	if err != nil {
		return err
	}

	a.logger = logger.NewStructured(e.LogLevel, "console", "stderr")

	flow, err := navigator.ForName(cfg.Assessment.Flow)
	if err != nil {
		return err
	}
	a.flow = flow

	backend, err := storage.Open(ctx, cfg, a.fs)
	if err != nil {
		if !errors.HasCode(err, errors.ErrCodeStorageUnavailable) {
			return err
		}
		a.logger.Warn("storage unavailable, progress will not be saved", map[string]interface{}{
			"backend": cfg.Storage.Backend,
			"error":   err.Error(),
		})
		backend = &storage.Backend{Storage: storage.NewMemory(), Name: "memory"}
	}
	a.backend = backend

	st := store.New(backend.Storage, a.logger)
	a.session = wizard.New(st, flow, nil, nil, a.logger)
	a.session.Open(ctx)
	return nil
}

func (a *app) requireSession() error {
	if a.session == nil {
		return fmt.Errorf("no assessment session")
	}
	return nil
}
