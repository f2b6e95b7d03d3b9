package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/p4son/git-p4son/internal/git"
)

var listChangesCmd = &cobra.Command{
	Use:   "list-changes",
	Short: "List local git commits not yet in p4",
	Long: `List the commit subjects between the merge-base with the base branch
and HEAD, numbered the way changelist descriptions list them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		base, _ := cmd.Flags().GetString("base")
		if base == "" {
			base = cfg.Edit.BaseBranch
		}

		ctx := cmd.Context()
		repo := newRepo()

		ancestor, err := repo.MergeBase(ctx, base, "HEAD")
		if err != nil {
			return err
		}
		subjects, err := repo.CommitSubjectsSince(ctx, ancestor)
		if err != nil {
			return err
		}
		if len(subjects) == 0 {
			fmt.Println("No local commits")
			return nil
		}

		for _, line := range git.EnumerateSubjects(subjects, 1) {
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	listChangesCmd.Flags().String("base", "", "revision where git and p4 are in sync (default from config)")
	rootCmd.AddCommand(listChangesCmd)
}
