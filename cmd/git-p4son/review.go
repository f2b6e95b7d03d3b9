package main

import (
	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Create and refresh changelists for review",
	Long: `Create or refresh a p4 changelist and put it up for review.

These are the changelist new and update flows with the review steps
applied: the #review keyword is added to the description and the
changelist is shelved so the review system picks it up.`,
}

var reviewNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a changelist and shelve it for review",
	Long: `Create a changelist from the local git commits, open the changed
files in it, add the #review keyword, and shelve it.

Example usage:
  git-p4son review new -m "Fix renderer crash"
  git-p4son review new -m "Fix renderer crash" --alias fix-crash`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := readChangelistFlags(cmd)
		f.review = true
		return runChangelistNew(cmd.Context(), f)
	},
}

var reviewUpdateCmd = &cobra.Command{
	Use:   "update <changelist>",
	Short: "Refresh a changelist and re-shelve it for review",
	Long: `Append new commit subjects to the changelist description, open
files changed since the merge-base, and re-shelve. The #review keyword is
added if the description lost it.

Example usage:
  git-p4son review update 12345
  git-p4son review update fix-crash`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := readChangelistFlags(cmd)
		f.review = true
		return runChangelistUpdate(cmd.Context(), args[0], f)
	},
}

func init() {
	reviewNewCmd.Flags().StringP("message", "m", "", "changelist description message")
	reviewNewCmd.Flags().String("base", "", "revision where git and p4 are in sync (default from config)")
	reviewNewCmd.Flags().String("alias", "", "store an alias for the new changelist")
	reviewNewCmd.Flags().Bool("no-edit", false, "create the changelist without opening files")
	reviewNewCmd.Flags().Bool("dry-run", false, "print the description without creating anything")
	reviewNewCmd.MarkFlagRequired("message")

	reviewUpdateCmd.Flags().String("base", "", "revision where git and p4 are in sync (default from config)")
	reviewUpdateCmd.Flags().Bool("no-edit", false, "update the description without opening files")

	reviewCmd.AddCommand(reviewNewCmd)
	reviewCmd.AddCommand(reviewUpdateCmd)
	rootCmd.AddCommand(reviewCmd)
}
