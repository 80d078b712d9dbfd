package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newProjectCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	var description string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			p, err := s.CreateProject(cmd.Context(), args[0], description)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %d: %s\n", p.ID, p.Name)
			return nil
		},
	}
	add.Flags().StringVarP(&description, "description", "d", "", "project description")

	list := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			projects, err := s.ListProjects(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range projects {
				fmt.Fprintf(out, "%4d  %-24s %s\n", p.ID, p.Name, p.Description)
			}
			return nil
		},
	}

	rm := &cobra.Command{
		Use:   "rm <project-id>",
		Short: "Delete a project and its tasks and timers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid project id %q", args[0])
			}
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()
			return s.DeleteProject(cmd.Context(), id)
		},
	}

	cmd.AddCommand(add, list, rm)
	return cmd
}
