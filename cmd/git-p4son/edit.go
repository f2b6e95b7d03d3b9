package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/p4son/git-p4son/internal/alias"
	"github.com/p4son/git-p4son/internal/edit"
	"github.com/p4son/git-p4son/internal/ui"
)

var editCmd = &cobra.Command{
	Use:   "edit <changelist>",
	Short: "Open local git changes in a p4 changelist",
	Long: `Open the files changed by local git commits in a p4 changelist.

The changes are computed between the merge-base with the base branch and
HEAD. New files are opened for add, modified files for edit (or reopened
when already checked out in another changelist), deleted files for
delete, and renames become a delete plus an add.

Example usage:
  git-p4son edit 12345
  git-p4son edit my-feature --dry-run
  git-p4son edit 12345 --base origin/main`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		base, _ := cmd.Flags().GetString("base")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		if base == "" {
			base = cfg.Edit.BaseBranch
		}

		changelist, err := alias.NewStore(workspaceDir).Resolve(args[0])
		if err != nil {
			return err
		}

		changes, err := edit.LocalChanges(cmd.Context(), newRepo(), base)
		if err != nil {
			return err
		}
		if changes.Empty() {
			fmt.Println("No local changes to open")
			return nil
		}

		opener := edit.NewOpener(newDepot())
		opener.DryRun = dryRun
		if err := opener.Open(cmd.Context(), changes, changelist); err != nil {
			return err
		}

		if !dryRun {
			fmt.Printf("%s opened local changes in changelist %s\n", ui.RenderPass("Finished:"), changelist)
		}
		return nil
	},
}

func init() {
	editCmd.Flags().String("base", "", "revision where git and p4 are in sync (default from config)")
	editCmd.Flags().Bool("dry-run", false, "print the p4 operations without running them")
	rootCmd.AddCommand(editCmd)
}
