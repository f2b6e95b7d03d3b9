package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/p4son/git-p4son/internal/alias"
	"github.com/p4son/git-p4son/internal/syncer"
)

var syncCmd = &cobra.Command{
	Use:   "sync <changelist>",
	Short: "Sync the workspace to a changelist and checkpoint it in git",
	Long: `Sync the p4 workspace to a changelist and record the result as a git commit.

The changelist argument is a number, a stored alias, or a keyword:

  latest       the newest submitted changelist affecting the workspace
  last-synced  re-apply the previous checkpoint without recording a new one

Both git and p4 must be clean before syncing. The previous checkpoint is
re-applied first to heal state disturbed since the last run, then the
target is synced and committed with a checkpoint message.

Example usage:
  git-p4son sync latest
  git-p4son sync 12345
  git-p4son sync my-feature --force`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		requested := args[0]
		switch strings.ToLower(requested) {
		case syncer.KeywordLatest, syncer.KeywordLastSynced:
			// Keywords are resolved by the syncer itself.
		default:
			resolved, err := alias.NewStore(workspaceDir).Resolve(requested)
			if err != nil {
				return err
			}
			requested = resolved
		}

		s := syncer.New(newDepot(), newRepo(), os.Stdout, logger)
		return s.Sync(cmd.Context(), requested, force)
	},
}

func init() {
	syncCmd.Flags().Bool("force", false, "overwrite writable files and allow syncing to an older changelist")
	rootCmd.AddCommand(syncCmd)
}
