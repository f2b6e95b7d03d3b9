// git-p4son bridges a git mirror onto a Perforce workspace: it syncs depot
// changelists into checkpointed git commits and opens local git changes in
// p4 changelists.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/p4son/git-p4son/internal/config"
	"github.com/p4son/git-p4son/internal/git"
	"github.com/p4son/git-p4son/internal/logging"
	"github.com/p4son/git-p4son/internal/p4"
	"github.com/p4son/git-p4son/internal/proc"
	"github.com/p4son/git-p4son/internal/ui"
)

var version = "dev"

// Shared state wired up once per invocation in the root PersistentPreRunE.
var (
	workspaceDir string
	cfg          *config.Config
	logger       *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "git-p4son",
	Short: "Bridge a git mirror onto a Perforce workspace",
	Long: `git-p4son keeps a git repository in lockstep with a Perforce workspace.

p4 sync results become checkpointed git commits, so git history records
which depot changelist the workspace matches. Local git commits can be
opened in p4 changelists for submission and review.

Run it from anywhere inside the git workspace that shadows the p4 client.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}

		workspaceDir, err = git.FindRoot(cwd)
		if err != nil {
			return err
		}

		cfg, err = config.Load(workspaceDir)
		if err != nil {
			return err
		}

		logger = logging.Setup(cfg.Logging)
		logger.Debug("starting", "version", version, "workspace", workspaceDir, "args", os.Args[1:])
		return nil
	},
}

// newRunner returns the process runner every command shells out through.
func newRunner() *proc.Runner {
	return &proc.Runner{
		Dir:    workspaceDir,
		Grace:  cfg.Sync.GracePeriod,
		Logger: logger,
	}
}

func newDepot() *p4.Depot {
	return p4.New(newRunner())
}

func newRepo() *git.Repo {
	repo := git.New(newRunner())
	repo.Scan = git.ScanStrategy(cfg.Sync.Scan)
	return repo
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", ui.RenderFail("Error:"), err)
		os.Exit(1)
	}
}
