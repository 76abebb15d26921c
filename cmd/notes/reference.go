package main

import (
	"strings"

	"github.com/notespath/backend/internal/config"
	"github.com/spf13/cobra"
)

func newSubjectsCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var branch string

	cmd := &cobra.Command{
		Use:   "subjects",
		Short: "List subject suggestions of a branch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if branch == "" {
				return errBranchRequired
			}
			return withEnv(cmd.Context(), cfg, func(e *env) error {
				subjects := e.app.Catalog.Subjects(cmd.Context(), branch)
				if *jsonOutput {
					return writeJSON(cmd.OutOrStdout(), subjects)
				}
				return writeLines(cmd.OutOrStdout(), subjects)
			})
		},
	}

	cmd.Flags().StringVar(&branch, "branch", "", "branch")

	return cmd
}

func newOptionsCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List branches, semesters and modules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), cfg, func(e *env) error {
				options := e.app.Catalog.Options()
				if *jsonOutput {
					return writeJSON(cmd.OutOrStdout(), options)
				}
				return writePlain(cmd.OutOrStdout(), "branches: %s\nsemesters: %s\nmodules: %s\n",
					strings.Join(options.Branches, ", "),
					strings.Join(options.Semesters, ", "),
					strings.Join(options.Modules, ", "),
				)
			})
		},
	}
}
