package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newStartCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "start <task-id>",
		Short: "Start a work timer on a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			timer, err := s.StartTimer(cmd.Context(), taskID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Timer started on task %d at %s\n",
				taskID, timer.StartTime.Format(time.RFC3339))
			return nil
		},
	}
}

func newStopCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stop <task-id>",
		Short: "Stop the running timer on a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := s.StopTimer(cmd.Context(), taskID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Timer stopped on task %d\n", taskID)
			fmt.Fprintf(out, "  total worked: %s\n", formatSeconds(res.TotalDuration))
			if res.Overtime > 0 {
				fmt.Fprintf(out, "  overtime:     %s\n", formatSeconds(res.Overtime))
			}
			if res.SavedTime > 0 {
				fmt.Fprintf(out, "  saved:        %s\n", formatSeconds(res.SavedTime))
			}
			return nil
		},
	}
}

func newStatusCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status <task-id>",
		Short: "Show the task's running timer and accumulated time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			task, err := s.GetTask(ctx, taskID)
			if err != nil {
				return err
			}
			running, err := s.RunningTimer(ctx, taskID)
			if err != nil {
				return err
			}
			total, err := s.AccumulatedDuration(ctx, taskID, time.Now())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Task %d: %s [%s]\n", task.ID, task.Title, task.Status)
			if running != nil {
				fmt.Fprintf(out, "  timer running since %s\n", running.StartTime.Format(time.RFC3339))
			} else {
				fmt.Fprintln(out, "  no timer running")
			}
			fmt.Fprintf(out, "  accumulated: %s", formatSeconds(total))
			if task.EstimatedTime > 0 {
				fmt.Fprintf(out, " of %s estimated", formatSeconds(task.EstimatedTime))
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}
