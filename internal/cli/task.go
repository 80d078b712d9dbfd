package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sadopc/clockwise/internal/store"
)

func newTaskCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	cmd.AddCommand(newTaskAddCommand(opts))
	cmd.AddCommand(newTaskListCommand(opts))
	cmd.AddCommand(newTaskStatusCommand(opts))
	cmd.AddCommand(newTaskRmCommand(opts))
	return cmd
}

func newTaskAddCommand(opts *RootOptions) *cobra.Command {
	var projectID, assignee int64
	var estimate int64

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			nt := store.NewTask{
				ProjectID:     projectID,
				Title:         args[0],
				EstimatedTime: estimate,
			}
			if nt.ProjectID == 0 {
				// No project given: file the task under the shared one.
				p, err := s.GetOrCreateDefaultProject(ctx)
				if err != nil {
					return err
				}
				nt.ProjectID = p.ID
			}
			if cmd.Flags().Changed("assignee") {
				nt.AssignedUserID = &assignee
			}

			t, err := s.CreateTask(ctx, nt)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task %d: %s (project %d)\n", t.ID, t.Title, t.ProjectID)
			return nil
		},
	}
	cmd.Flags().Int64VarP(&projectID, "project", "p", 0, "project id (default: shared project)")
	cmd.Flags().Int64VarP(&assignee, "assignee", "a", 0, "assigned user id")
	cmd.Flags().Int64VarP(&estimate, "estimate", "e", 0, "estimated time in seconds")
	return cmd
}

func newTaskListCommand(opts *RootOptions) *cobra.Command {
	var projectID, assignee int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			var f store.TaskFilter
			if cmd.Flags().Changed("project") {
				f.ProjectID = &projectID
			}
			if cmd.Flags().Changed("assignee") {
				f.AssignedUserID = &assignee
			}
			tasks, err := s.ListTasks(cmd.Context(), f)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, t := range tasks {
				line := fmt.Sprintf("%4d  %-32s %-12s est %s", t.ID, truncate(t.Title, 32), t.Status, formatSeconds(t.EstimatedTime))
				if t.Overtime > 0 {
					line += fmt.Sprintf("  overtime %s", formatSeconds(t.Overtime))
				}
				if t.SavedTime > 0 {
					line += fmt.Sprintf("  saved %s", formatSeconds(t.SavedTime))
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().Int64VarP(&projectID, "project", "p", 0, "filter by project id")
	cmd.Flags().Int64VarP(&assignee, "assignee", "a", 0, "filter by assigned user id")
	return cmd
}

func newTaskStatusCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <task-id> <status>",
		Short: "Set a task's status (pending|in_progress|code_review|done)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}
			status, err := store.ParseStatus(args[1])
			if err != nil {
				return err
			}
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if _, err := s.UpdateTaskStatus(cmd.Context(), id, status); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %d is now %s\n", id, status)
			return nil
		},
	}
}

func newTaskRmCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <task-id>",
		Short: "Delete a task and its timers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()
			return s.DeleteTask(cmd.Context(), id)
		},
	}
}
