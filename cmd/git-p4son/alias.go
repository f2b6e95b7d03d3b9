package main

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/p4son/git-p4son/internal/alias"
	"github.com/p4son/git-p4son/internal/ui"
)

var aliasCmd = &cobra.Command{
	Use:   "alias",
	Short: "Manage named changelist aliases",
	Long: `Manage named aliases for changelist numbers.

Aliases can be used wherever a changelist number is expected, for example
"git-p4son sync my-feature". They are stored per workspace under
` + "`.git-p4son/changelists/`" + `.`,
}

var aliasSetCmd = &cobra.Command{
	Use:   "set <name> <changelist>",
	Short: "Bind a name to a changelist number",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		store := alias.NewStore(workspaceDir)
		if err := store.Save(args[0], args[1], force); err != nil {
			return err
		}
		fmt.Printf("%s %s -> @%s\n", ui.RenderPass("Saved:"), args[0], args[1])
		return nil
	},
}

var aliasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored aliases",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		aliases, err := alias.NewStore(workspaceDir).List()
		if err != nil {
			return err
		}
		if len(aliases) == 0 {
			fmt.Println("No aliases stored")
			return nil
		}

		for _, a := range aliases {
			fmt.Printf("%s\t@%s\n", ui.RenderAccent(a.Name), a.Changelist)
		}
		return nil
	},
}

var aliasDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete an alias",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := alias.NewStore(workspaceDir).Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("%s %s\n", ui.RenderPass("Deleted:"), args[0])
		return nil
	},
}

var aliasCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Interactively delete stored aliases",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

		store := alias.NewStore(workspaceDir)
		aliases, err := store.List()
		if err != nil {
			return err
		}
		if len(aliases) == 0 {
			fmt.Println("No aliases stored")
			return nil
		}

		deleted := 0
		for _, a := range aliases {
			if !all {
				remove := false
				err := huh.NewConfirm().
					Title(fmt.Sprintf("Delete alias %q (@%s)?", a.Name, a.Changelist)).
					Value(&remove).
					Run()
				if err != nil {
					return err
				}
				if !remove {
					continue
				}
			}

			if err := store.Delete(a.Name); err != nil {
				return err
			}
			deleted++
		}

		fmt.Printf("%s deleted %d of %d aliases\n", ui.RenderPass("Done:"), deleted, len(aliases))
		return nil
	},
}

func init() {
	aliasSetCmd.Flags().Bool("force", false, "overwrite an existing alias")
	aliasCleanCmd.Flags().Bool("all", false, "delete every alias without prompting")

	aliasCmd.AddCommand(aliasSetCmd)
	aliasCmd.AddCommand(aliasListCmd)
	aliasCmd.AddCommand(aliasDeleteCmd)
	aliasCmd.AddCommand(aliasCleanCmd)
	rootCmd.AddCommand(aliasCmd)
}
