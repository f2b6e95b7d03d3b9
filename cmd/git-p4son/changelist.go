package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/p4son/git-p4son/internal/alias"
	"github.com/p4son/git-p4son/internal/edit"
	"github.com/p4son/git-p4son/internal/git"
	"github.com/p4son/git-p4son/internal/p4"
	"github.com/p4son/git-p4son/internal/ui"
)

var changelistCmd = &cobra.Command{
	Use:     "changelist",
	Aliases: []string{"cl"},
	Short:   "Create and update p4 changelists from git commits",
}

var changelistNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a changelist describing the local git commits",
	Long: `Create a p4 changelist whose description lists the local git commits.

The description starts with the message given via -m, followed by a
numbered list of commit subjects between the merge-base with the base
branch and HEAD. Unless --no-edit is given, the changed files are opened
in the new changelist.

Example usage:
  git-p4son changelist new -m "Fix renderer crash"
  git-p4son changelist new -m "Fix renderer crash" --alias fix-crash
  git-p4son changelist new -m "Fix renderer crash" --review`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChangelistNew(cmd.Context(), readChangelistFlags(cmd))
	},
}

var changelistUpdateCmd = &cobra.Command{
	Use:   "update <changelist>",
	Short: "Refresh a changelist from the local git commits",
	Long: `Append commit subjects that are not yet listed in the changelist
description, continuing its numbered list. The user message and any
trailing text such as review keywords are preserved.

Unless --no-edit is given, files changed since the merge-base are opened
in the changelist, so commits made after the changelist was created are
picked up. With --shelve the changelist is re-shelved afterwards.

Example usage:
  git-p4son changelist update 12345
  git-p4son changelist update my-feature --shelve`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChangelistUpdate(cmd.Context(), args[0], readChangelistFlags(cmd))
	},
}

// changelistFlags collects the options shared by the changelist and review
// commands. Flags a command does not define read as zero values.
type changelistFlags struct {
	message   string
	base      string
	aliasName string
	review    bool
	shelve    bool
	noEdit    bool
	dryRun    bool
}

func readChangelistFlags(cmd *cobra.Command) changelistFlags {
	var f changelistFlags
	f.message, _ = cmd.Flags().GetString("message")
	f.base, _ = cmd.Flags().GetString("base")
	f.aliasName, _ = cmd.Flags().GetString("alias")
	f.review, _ = cmd.Flags().GetBool("review")
	f.shelve, _ = cmd.Flags().GetBool("shelve")
	f.noEdit, _ = cmd.Flags().GetBool("no-edit")
	f.dryRun, _ = cmd.Flags().GetBool("dry-run")
	if f.base == "" {
		f.base = cfg.Edit.BaseBranch
	}
	return f
}

func runChangelistNew(ctx context.Context, f changelistFlags) error {
	repo := newRepo()
	depot := newDepot()

	ancestor, err := repo.MergeBase(ctx, f.base, "HEAD")
	if err != nil {
		return err
	}
	subjects, err := repo.CommitSubjectsSince(ctx, ancestor)
	if err != nil {
		return err
	}

	description := []string{f.message, ""}
	description = append(description, git.EnumerateSubjects(subjects, 1)...)

	if f.dryRun {
		fmt.Println("Would create changelist with description:")
		for _, line := range description {
			fmt.Printf("  %s\n", line)
		}
		return nil
	}

	changelist, err := depot.CreateChangelist(ctx, description)
	if err != nil {
		return err
	}
	fmt.Printf("%s changelist %s\n", ui.RenderPass("Created:"), changelist)

	if f.aliasName != "" {
		if err := alias.NewStore(workspaceDir).Save(f.aliasName, changelist, false); err != nil {
			return err
		}
		fmt.Printf("%s %s -> @%s\n", ui.RenderPass("Saved:"), f.aliasName, changelist)
	}

	if !f.noEdit {
		if err := openLocalChanges(ctx, repo, depot, ancestor, changelist); err != nil {
			return err
		}
	}

	return finishReview(ctx, depot, changelist, f)
}

func runChangelistUpdate(ctx context.Context, target string, f changelistFlags) error {
	repo := newRepo()
	depot := newDepot()

	changelist, err := alias.NewStore(workspaceDir).Resolve(target)
	if err != nil {
		return err
	}

	ancestor, err := repo.MergeBase(ctx, f.base, "HEAD")
	if err != nil {
		return err
	}
	subjects, err := repo.CommitSubjectsSince(ctx, ancestor)
	if err != nil {
		return err
	}

	err = depot.UpdateDescription(ctx, changelist, func(startNumber int) ([]string, error) {
		if startNumber > len(subjects) {
			return nil, nil
		}
		return git.EnumerateSubjects(subjects[startNumber-1:], startNumber), nil
	})
	if err != nil {
		return err
	}
	fmt.Printf("%s changelist %s\n", ui.RenderPass("Updated:"), changelist)

	if !f.noEdit {
		if err := openLocalChanges(ctx, repo, depot, ancestor, changelist); err != nil {
			return err
		}
	}

	return finishReview(ctx, depot, changelist, f)
}

// openLocalChanges opens the files changed between ancestor and HEAD in the
// changelist.
func openLocalChanges(ctx context.Context, repo *git.Repo, depot *p4.Depot, ancestor, changelist string) error {
	lines, err := repo.DiffNameStatus(ctx, ancestor, "HEAD")
	if err != nil {
		return err
	}
	changes, err := edit.ParseNameStatus(lines)
	if err != nil {
		return err
	}
	if changes.Empty() {
		fmt.Println("No local changes to open")
		return nil
	}
	return edit.NewOpener(depot).Open(ctx, changes, changelist)
}

// finishReview applies the review keyword and shelves when requested.
func finishReview(ctx context.Context, depot *p4.Depot, changelist string, f changelistFlags) error {
	if f.review {
		if _, err := depot.AddReviewKeyword(ctx, changelist); err != nil {
			return err
		}
	}
	if f.review || f.shelve {
		if err := depot.Shelve(ctx, changelist); err != nil {
			return err
		}
		fmt.Printf("%s changelist %s\n", ui.RenderPass("Shelved:"), changelist)
	}
	return nil
}

func init() {
	changelistNewCmd.Flags().StringP("message", "m", "", "changelist description message")
	changelistNewCmd.Flags().String("base", "", "revision where git and p4 are in sync (default from config)")
	changelistNewCmd.Flags().String("alias", "", "store an alias for the new changelist")
	changelistNewCmd.Flags().Bool("review", false, "add the #review keyword and shelve for review")
	changelistNewCmd.Flags().Bool("shelve", false, "shelve the changelist after opening files")
	changelistNewCmd.Flags().Bool("no-edit", false, "create the changelist without opening files")
	changelistNewCmd.Flags().Bool("dry-run", false, "print the description without creating anything")
	changelistNewCmd.MarkFlagRequired("message")

	changelistUpdateCmd.Flags().String("base", "", "revision where git and p4 are in sync (default from config)")
	changelistUpdateCmd.Flags().Bool("shelve", false, "re-shelve the changelist after updating")
	changelistUpdateCmd.Flags().Bool("no-edit", false, "update the description without opening files")

	changelistCmd.AddCommand(changelistNewCmd)
	changelistCmd.AddCommand(changelistUpdateCmd)
	rootCmd.AddCommand(changelistCmd)
}
