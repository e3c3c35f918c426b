// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/catalog-builder/internal/groups"
	"github.com/pdiddy/catalog-builder/pkg/types"
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Manage the product groups of the principal and secundario catalogs",
	Long: `Groups edits the named prefix groups that grouped builds visit. Each
catalog (principal, secundario) has its own ordered set; the stored order is
the default build order. Every change is saved to paths.groups_file right
away. Without that file the built-in groups are used.`,
}

var groupsListCmd = &cobra.Command{
	Use:   "list [catalog]",
	Short: "List groups and their prefixes",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGroupsList,
}

func runGroupsList(cmd *cobra.Command, args []string) error {
	store, err := openGroups()
	if err != nil {
		return err
	}
	kinds := types.CatalogKinds
	if len(args) == 1 {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}
		kinds = []types.CatalogKind{kind}
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		out := make(map[types.CatalogKind]types.GroupSet, len(kinds))
		for _, k := range kinds {
			out[k] = store.Set(k)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for _, k := range kinds {
		set := store.Set(k)
		fmt.Fprintf(os.Stdout, "%s (%d groups)\n", k, len(set))
		for i, g := range set {
			fmt.Fprintf(os.Stdout, "  %2d. %-30s %s\n", i+1, g.Name, strings.Join(g.Prefixes, ", "))
		}
	}
	return nil
}

var groupsAddCmd = &cobra.Command{
	Use:   "add <catalog> <group> [prefix...]",
	Short: "Create a group at the end of the catalog's order",
	Args:  cobra.MinimumNArgs(2),
	RunE: groupsEdit(func(s *groups.Store, k types.CatalogKind, args []string) error {
		return s.Add(k, args[0], args[1:]...)
	}),
}

var groupsRemoveCmd = &cobra.Command{
	Use:   "remove <catalog> <group>",
	Short: "Delete a group",
	Args:  cobra.ExactArgs(2),
	RunE: groupsEdit(func(s *groups.Store, k types.CatalogKind, args []string) error {
		return s.Remove(k, args[0])
	}),
}

var groupsRenameCmd = &cobra.Command{
	Use:   "rename <catalog> <group> <new-name>",
	Short: "Rename a group, keeping its prefixes and position",
	Args:  cobra.ExactArgs(3),
	RunE: groupsEdit(func(s *groups.Store, k types.CatalogKind, args []string) error {
		return s.Rename(k, args[0], args[1])
	}),
}

var groupsAddPrefixCmd = &cobra.Command{
	Use:   "add-prefix <catalog> <group> <prefix>",
	Short: "Add a filename prefix to a group",
	Args:  cobra.ExactArgs(3),
	RunE: groupsEdit(func(s *groups.Store, k types.CatalogKind, args []string) error {
		return s.AddPrefix(k, args[0], args[1])
	}),
}

var groupsRemovePrefixCmd = &cobra.Command{
	Use:   "remove-prefix <catalog> <group> <prefix>",
	Short: "Remove a filename prefix from a group",
	Args:  cobra.ExactArgs(3),
	RunE: groupsEdit(func(s *groups.Store, k types.CatalogKind, args []string) error {
		return s.RemovePrefix(k, args[0], args[1])
	}),
}

var groupsMoveCmd = &cobra.Command{
	Use:   "move <catalog> <group> <position>",
	Short: "Move a group to a position (1 = first) of the build order",
	Args:  cobra.ExactArgs(3),
	RunE: groupsEdit(func(s *groups.Store, k types.CatalogKind, args []string) error {
		pos, err := strconv.Atoi(args[1])
		if err != nil || pos < 1 {
			return fmt.Errorf("invalid position %q: use 1 or more", args[1])
		}
		return s.Move(k, args[0], pos-1)
	}),
}

var groupsResetCmd = &cobra.Command{
	Use:   "reset <catalog>",
	Short: "Restore the catalog's built-in groups",
	Args:  cobra.ExactArgs(1),
	RunE: groupsEdit(func(s *groups.Store, k types.CatalogKind, args []string) error {
		return s.Reset(k)
	}),
}

// groupsEdit adapts a store edit into a RunE. args[0] is the catalog; fn
// receives the remaining arguments.
func groupsEdit(fn func(*groups.Store, types.CatalogKind, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}
		store, err := openGroups()
		if err != nil {
			return err
		}
		if err := fn(store, kind, args[1:]); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Saved %s groups to %s\n", kind, store.Path())
		return nil
	}
}

func openGroups() (*groups.Store, error) {
	cfg, log, err := setup()
	if err != nil {
		return nil, err
	}
	return groups.Open(cfg.Paths.GroupsFile, log)
}

func parseKind(s string) (types.CatalogKind, error) {
	k := types.CatalogKind(strings.ToLower(s))
	if !k.Valid() {
		return "", fmt.Errorf("unknown catalog %q: use principal or secundario", s)
	}
	return k, nil
}

func init() {
	groupsListCmd.Flags().Bool("json", false, "output groups as JSON")

	groupsCmd.AddCommand(groupsListCmd)
	groupsCmd.AddCommand(groupsAddCmd)
	groupsCmd.AddCommand(groupsRemoveCmd)
	groupsCmd.AddCommand(groupsRenameCmd)
	groupsCmd.AddCommand(groupsAddPrefixCmd)
	groupsCmd.AddCommand(groupsRemovePrefixCmd)
	groupsCmd.AddCommand(groupsMoveCmd)
	groupsCmd.AddCommand(groupsResetCmd)

	rootCmd.AddCommand(groupsCmd)
}
