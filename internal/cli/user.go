package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newUserCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	var role string
	add := &cobra.Command{
		Use:   "add <username> <email>",
		Short: "Create a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			u, err := s.CreateUser(cmd.Context(), args[0], args[1], role)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created user %d: %s <%s> (%s)\n", u.ID, u.Username, u.Email, u.Role)
			return nil
		},
	}
	add.Flags().StringVar(&role, "role", "user", "user role (user|admin)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			users, err := s.ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, u := range users {
				fmt.Fprintf(out, "%4d  %-20s %-28s %s\n", u.ID, u.Username, u.Email, u.Role)
			}
			return nil
		},
	}

	rm := &cobra.Command{
		Use:   "rm <user-id>",
		Short: "Delete a user and their tasks and timers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()
			return s.DeleteUser(cmd.Context(), id)
		},
	}

	cmd.AddCommand(add, list, rm)
	return cmd
}
