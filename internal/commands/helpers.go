package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/settled-dev/settled/internal/config"
	"github.com/settled-dev/settled/internal/gitops"
	"github.com/settled-dev/settled/internal/logging"
	"github.com/settled-dev/settled/internal/recon"
)

// env bundles the data directory, its config, and a logger for one
// command invocation.
type env struct {
	dir string
	cfg *config.Config
	log zerolog.Logger
}

// loadEnv resolves the --dir flag and loads settled.yaml. A missing
// config file falls back to defaults so read-only commands work in any
// directory.
func loadEnv(cmd *cobra.Command) (*env, error) {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return nil, err
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	log := logging.New(verbose)

	cfg, err := config.Load(filepath.Join(absDir, config.FileName))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = config.Default("")
	}

	return &env{dir: absDir, cfg: cfg, log: log}, nil
}

func (e *env) store() *recon.Store {
	return recon.NewStore(e.dir)
}

// maybeCommit auto-commits the data directory after a mutation when
// git integration is enabled. Failures are logged, never fatal: the
// data change already happened.
func (e *env) maybeCommit(message string) {
	if !e.cfg.Git.AutoCommit || !gitops.IsRepo(e.dir) {
		return
	}
	hash, err := gitops.CommitAll(e.dir, message, e.cfg.Git.AuthorName, e.cfg.Git.AuthorEmail)
	if err != nil {
		if errors.Is(err, gitops.ErrNothingToCommit) {
			return
		}
		e.log.Warn().Err(err).Msg("auto-commit failed")
		return
	}
	e.log.Debug().Str("commit", hash).Msg("auto-committed")
}
