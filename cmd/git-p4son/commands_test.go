package main

import (
	"testing"

	"github.com/spf13/cobra"
)

func findCommand(t *testing.T, parent *cobra.Command, name string) *cobra.Command {
	t.Helper()
	for _, c := range parent.Commands() {
		if c.Name() == name {
			return c
		}
	}
	t.Fatalf("command %q not registered under %q", name, parent.Name())
	return nil
}

func requireFlags(t *testing.T, cmd *cobra.Command, names ...string) {
	t.Helper()
	for _, name := range names {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("command %q missing flag --%s", cmd.Name(), name)
		}
	}
}

func TestReviewCommandWiring(t *testing.T) {
	review := findCommand(t, rootCmd, "review")

	reviewNew := findCommand(t, review, "new")
	requireFlags(t, reviewNew, "message", "base", "alias", "no-edit", "dry-run")

	reviewUpdate := findCommand(t, review, "update")
	requireFlags(t, reviewUpdate, "base", "no-edit")
}

func TestChangelistUpdateFlags(t *testing.T) {
	changelist := findCommand(t, rootCmd, "changelist")
	update := findCommand(t, changelist, "update")

	// update opens changed files and can re-shelve, like new.
	requireFlags(t, update, "base", "shelve", "no-edit")
}
